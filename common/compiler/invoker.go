// Copyright 2026 The solaris Authors
// This file is part of the solaris library.
//
// The solaris library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The solaris library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the solaris library. If not, see <http://www.gnu.org/licenses/>.

package compiler

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
)

// Invoker produces a runnable solc process for the given arguments. Resolving
// the executable is deferred to process start, so a missing compiler surfaces
// as a SpawnFailure of the operation that runs the command.
// Invoker 负责构造可运行的 solc 进程描述；可执行文件的解析推迟到进程启动时。
type Invoker interface {
	Command(ctx context.Context, args ...string) *exec.Cmd
}

// DirectInvoker runs the compiler executable by name, resolved through PATH.
type DirectInvoker struct {
	Name string
}

func (d DirectInvoker) Command(ctx context.Context, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, d.Name, args...)
}

// ShellInvoker runs the compiler through a command shell, for hosts where the
// compiler is installed as a script that cannot be executed directly (solc.cmd
// under cmd.exe on Windows).
type ShellInvoker struct {
	Shell  string // e.g. cmd.exe
	Flag   string // e.g. /c
	Script string // e.g. solc.cmd
}

func (s ShellInvoker) Command(ctx context.Context, args ...string) *exec.Cmd {
	shellArgs := make([]string, 0, len(args)+2)
	if s.Flag != "" {
		shellArgs = append(shellArgs, s.Flag)
	}
	shellArgs = append(shellArgs, s.Script)
	shellArgs = append(shellArgs, args...)
	return exec.CommandContext(ctx, s.Shell, shellArgs...)
}

// DefaultInvoker is the invocation strategy of the host platform, chosen once at
// build time: a ShellInvoker for solc.cmd on Windows, a DirectInvoker for solc
// everywhere else.
var DefaultInvoker Invoker = platformInvoker()

// commandString formats the command line for logging, quoting arguments that
// contain spaces.
func commandString(args []string) string {
	var s strings.Builder
	for i, arg := range args {
		if i > 0 {
			s.WriteByte(' ')
		}
		if strings.IndexByte(arg, ' ') >= 0 {
			arg = strconv.QuoteToASCII(arg)
		}
		s.WriteString(arg)
	}
	return s.String()
}
