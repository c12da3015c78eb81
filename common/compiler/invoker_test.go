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
	"errors"
	"fmt"
	"os/exec"
	"reflect"
	"runtime"
	"testing"
)

func TestDirectInvoker(t *testing.T) {
	cmd := DirectInvoker{Name: "solc"}.Command(context.Background(), "--bin", "a.sol")
	if want := []string{"solc", "--bin", "a.sol"}; !reflect.DeepEqual(cmd.Args, want) {
		t.Fatalf("args = %q, want %q", cmd.Args, want)
	}
}

func TestShellInvoker(t *testing.T) {
	inv := ShellInvoker{Shell: "cmd.exe", Flag: "/c", Script: "solc.cmd"}
	cmd := inv.Command(context.Background(), "--link", "--libraries", "a.sol:A:00", "Main.bin")
	want := []string{"cmd.exe", "/c", "solc.cmd", "--link", "--libraries", "a.sol:A:00", "Main.bin"}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Fatalf("args = %q, want %q", cmd.Args, want)
	}
	cmd = ShellInvoker{Shell: "sh", Script: "./solc.sh"}.Command(context.Background(), "--version")
	if want := []string{"sh", "./solc.sh", "--version"}; !reflect.DeepEqual(cmd.Args, want) {
		t.Fatalf("args = %q, want %q", cmd.Args, want)
	}
}

func TestDefaultInvoker(t *testing.T) {
	switch inv := DefaultInvoker.(type) {
	case ShellInvoker:
		if runtime.GOOS != "windows" || inv.Script != "solc.cmd" {
			t.Fatalf("unexpected default invoker %+v on %s", inv, runtime.GOOS)
		}
	case DirectInvoker:
		if runtime.GOOS == "windows" || inv.Name != "solc" {
			t.Fatalf("unexpected default invoker %+v on %s", inv, runtime.GOOS)
		}
	default:
		t.Fatalf("unexpected default invoker type %T", inv)
	}
}

func TestCommandString(t *testing.T) {
	got := commandString([]string{"solc", "-o", "/tmp/my contracts", "a.sol"})
	if want := `solc -o "/tmp/my contracts" a.sol`; got != want {
		t.Fatalf("commandString = %s, want %s", got, want)
	}
}

func TestErrorKinds(t *testing.T) {
	cause := &exec.ExitError{}
	err := fmt.Errorf("wrapped: %w", executionError("link", ErrLinkFailed, cause))

	if !IsKind(err, ExecutionFailure) || IsKind(err, SpawnFailure) {
		t.Fatalf("wrong kind for %v", err)
	}
	if !errors.Is(err, ErrLinkFailed) {
		t.Fatal("link sentinel not reachable")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatal("exit error not reachable")
	}
	if IsKind(errors.New("plain"), ResolutionFailure) {
		t.Fatal("plain error reported as a compiler error")
	}
	if s := ErrorKind(7).String(); s != "unknown failure 7" {
		t.Fatalf("unexpected kind name %q", s)
	}
	if s := spawnError("compile", exec.ErrNotFound).Error(); s != "solc compile: spawn failure: executable file not found in $PATH" {
		t.Fatalf("unexpected message %q", s)
	}
}
