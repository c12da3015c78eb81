package log

import (
	"log/slog"
	"sync/atomic"
)

// rootLogger wraps the process-wide logger so it can live in an atomic.Pointer.
type rootLogger struct{ Logger }

var root atomic.Pointer[rootLogger]

func init() {
	root.Store(&rootLogger{NewLogger(DiscardHandler())})
}

// SetDefault replaces the logger used by the package level functions and, when
// it is backed by slog, the slog default as well.
// SetDefault 设置默认的全局日志记录器
func SetDefault(l Logger) {
	root.Store(&rootLogger{l})
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// Root returns the root logger
func Root() Logger {
	return root.Load().Logger
}

// The functions below call Write directly so that every path reaches the
// handler at the same call depth and the vmodule filter sees the caller's file.

// Trace logs at trace level on the root logger.
//
//	log.Trace("Discovered Solidity sources", "dir", dir)
func Trace(msg string, ctx ...interface{}) {
	Root().Write(LevelTrace, msg, ctx...)
}

func Debug(msg string, ctx ...interface{}) {
	Root().Write(LevelDebug, msg, ctx...)
}

func Info(msg string, ctx ...interface{}) {
	Root().Write(LevelInfo, msg, ctx...)
}

func Warn(msg string, ctx ...interface{}) {
	Root().Write(LevelWarn, msg, ctx...)
}
