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
	"errors"
	"fmt"
)

// ErrorKind classifies why a compile or link run failed.
type ErrorKind int

const (
	// ResolutionFailure means an input could not be resolved before solc was
	// started: a path that cannot be canonicalized, an unreadable directory, an
	// unreadable artifact or, in strict mode, a library without a placeholder.
	ResolutionFailure ErrorKind = iota

	// SpawnFailure means the solc process could not be started at all, e.g.
	// the executable is missing or not permitted to run.
	SpawnFailure

	// ExecutionFailure means solc ran but exited with a non-zero status.
	ExecutionFailure
)

func (k ErrorKind) String() string {
	switch k {
	case ResolutionFailure:
		return "resolution failure"
	case SpawnFailure:
		return "spawn failure"
	case ExecutionFailure:
		return "execution failure"
	default:
		return fmt.Sprintf("unknown failure %d", int(k))
	}
}

var (
	// ErrCompileFailed is wrapped by the ExecutionFailure of a compile run.
	ErrCompileFailed = errors.New("there was an error while compiling contracts code")

	// ErrLinkFailed is wrapped by the ExecutionFailure of a link run.
	ErrLinkFailed = errors.New("there was an error while linking contracts code")

	// ErrUnmatchedLibrary is returned in strict link mode when a library
	// specifier has no placeholder in the target artifact.
	ErrUnmatchedLibrary = errors.New("library placeholder not found in artifact")

	// ErrInvalidLibrary is returned when a library specifier is not of the
	// form <unit>:<library>:<address>.
	ErrInvalidLibrary = errors.New("invalid library specifier")
)

// Error is returned by every failing compiler operation. Op names the step
// ("compile", "link" or "version"), Kind the failure class.
type Error struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("solc %s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a compiler *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var cerr *Error
	return errors.As(err, &cerr) && cerr.Kind == kind
}

func resolutionError(op string, err error) error {
	return &Error{Op: op, Kind: ResolutionFailure, Err: err}
}

func spawnError(op string, err error) error {
	return &Error{Op: op, Kind: SpawnFailure, Err: err}
}

// executionError wraps both the stage sentinel and the process error, so that
// callers can match on either.
func executionError(op string, sentinel, err error) error {
	return &Error{Op: op, Kind: ExecutionFailure, Err: fmt.Errorf("%w: %w", sentinel, err)}
}
