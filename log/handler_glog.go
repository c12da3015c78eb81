package log

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// errVmoduleSyntax is returned when a user vmodule pattern is invalid.
var errVmoduleSyntax = errors.New("expect comma-separated list of filename=N")

// GlogHandler is a log handler that mimics the filtering features of Google's
// glog logger: a global verbosity ceiling which can be raised for individual
// packages or files through callsite pattern matches.
// GlogHandler 模仿 glog 的过滤功能：全局级别加上按调用位置匹配的覆盖规则。
type GlogHandler struct {
	origin slog.Handler

	level    atomic.Int32
	override atomic.Bool

	patterns  []pattern
	siteCache map[uintptr]slog.Level
	lock      sync.RWMutex
}

// NewGlogHandler creates a new log handler with filtering functionality similar
// to Google's glog logger. The returned handler implements Handler.
func NewGlogHandler(h slog.Handler) *GlogHandler {
	return &GlogHandler{
		origin:    h,
		siteCache: make(map[uintptr]slog.Level),
	}
}

// pattern contains a filter for the Vmodule option, holding a verbosity level
// and a file pattern to match.
type pattern struct {
	pattern *regexp.Regexp
	level   slog.Level
}

// Verbosity sets the glog verbosity ceiling. The verbosity of individual packages
// and source files can be raised using Vmodule.
func (h *GlogHandler) Verbosity(level slog.Level) {
	h.level.Store(int32(level))
}

// Vmodule sets the glog verbosity pattern.
//
// The syntax of the argument is a comma-separated list of pattern=N, where the
// pattern is a literal file name or "glob" pattern matching and N is a V level.
//
//	pattern="solidity.go=5"
//	 sets the V level to 5 in all Go files named "solidity.go"
//
//	pattern="compiler=4"
//	 sets V to 4 in all files of any packages whose import path ends in "compiler"
//
//	pattern="common/*=4"
//	 sets V to 4 in all files of any packages whose import path contains "common"
func (h *GlogHandler) Vmodule(ruleset string) error {
	var filter []pattern
	for _, rule := range strings.Split(ruleset, ",") {
		if len(rule) == 0 {
			continue
		}
		parts := strings.Split(rule, "=")
		if len(parts) != 2 {
			return errVmoduleSyntax
		}
		parts[0] = strings.TrimSpace(parts[0])
		parts[1] = strings.TrimSpace(parts[1])
		if len(parts[0]) == 0 || len(parts[1]) == 0 {
			return errVmoduleSyntax
		}
		l, err := strconv.Atoi(parts[1])
		if err != nil {
			return errVmoduleSyntax
		}
		level := FromLegacyLevel(l)
		if level == LevelCrit {
			continue // crit is always logged, no point in a rule for it
		}
		matcher := ".*"
		for _, comp := range strings.Split(parts[0], "/") {
			if comp == "*" {
				matcher += "(/.*)?"
			} else if comp != "" {
				matcher += "/" + regexp.QuoteMeta(comp)
			}
		}
		if !strings.HasSuffix(parts[0], ".go") {
			matcher += "/[^/]+\\.go"
		}
		matcher = matcher + "$"

		re, _ := regexp.Compile(matcher)
		filter = append(filter, pattern{re, level})
	}
	h.lock.Lock()
	defer h.lock.Unlock()

	h.patterns = filter
	h.siteCache = make(map[uintptr]slog.Level)
	h.override.Store(len(filter) != 0)
	return nil
}

// Enabled implements slog.Handler, reporting whether the handler handles records
// at the given level.
func (h *GlogHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	// fast-track skipping logging if override not enabled and the provided verbosity is above configured
	return h.override.Load() || slog.Level(h.level.Load()) <= lvl
}

// WithAttrs implements slog.Handler, returning a new Handler whose attributes
// consist of both the receiver's attributes and the arguments.
func (h *GlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(h.origin.WithAttrs(attrs))
}

// WithGroup implements slog.Handler, qualifying later attributes with name.
func (h *GlogHandler) WithGroup(name string) slog.Handler {
	return h.derive(h.origin.WithGroup(name))
}

// derive returns a handler filtering like h in front of origin. Later
// Verbosity and Vmodule calls on h do not affect it.
func (h *GlogHandler) derive(origin slog.Handler) *GlogHandler {
	h.lock.RLock()
	defer h.lock.RUnlock()

	res := &GlogHandler{
		origin:    origin,
		patterns:  slices.Clone(h.patterns),
		siteCache: maps.Clone(h.siteCache),
	}
	res.level.Store(h.level.Load())
	res.override.Store(h.override.Load())
	return res
}

// Handle implements slog.Handler, filtering a log record through the global
// and callsite filters, finally emitting it if either allows it through.
func (h *GlogHandler) Handle(_ context.Context, r slog.Record) error {
	if slog.Level(h.level.Load()) <= r.Level {
		return h.origin.Handle(context.Background(), r)
	}
	h.lock.RLock()
	lvl, ok := h.siteCache[r.PC]
	h.lock.RUnlock()

	if !ok {
		h.lock.Lock()
		fs := runtime.CallersFrames([]uintptr{r.PC})
		frame, _ := fs.Next()

		for _, rule := range h.patterns {
			if rule.pattern.MatchString(fmt.Sprintf("+%s", frame.File)) {
				h.siteCache[r.PC], lvl, ok = rule.level, rule.level, true
			}
		}
		// If no rule matched, fall back to the global ceiling for this site
		if !ok {
			lvl = slog.Level(h.level.Load())
			h.siteCache[r.PC] = lvl
		}
		h.lock.Unlock()
	}
	if lvl <= r.Level {
		return h.origin.Handle(context.Background(), r)
	}
	return nil
}
