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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/solaris-evm/solaris/log"
)

// LockFileName is the file locked inside the target directory when
// Solidity.LockDir is set.
const LockFileName = ".solaris.lock"

// compileFlags are passed to every compile run: emit bytecode and ABI, replace
// artifacts left by an earlier run and optimize the bytecode.
var compileFlags = []string{"--bin", "--abi", "--overwrite", "--optimize"}

// ErrVersionFailed is wrapped by the ExecutionFailure of a version query.
var ErrVersionFailed = errors.New("could not determine compiler version")

var versionRegexp = regexp.MustCompile(`([0-9]+)\.([0-9]+)\.([0-9]+)`)

// Solidity runs solc. The zero value is usable and behaves like New().
//
// Every call starts exactly one solc process and blocks until it exits. No
// timeout is applied; use the Context variants to cancel. Calls against the
// same directory are not coordinated unless LockDir is set.
// 每次调用只启动一个 solc 进程并阻塞到其退出；同一目录的并发调用默认不加锁。
type Solidity struct {
	// Invoker builds the solc process. Nil means DefaultInvoker.
	Invoker Invoker

	// Stdout and Stderr receive the compiler diagnostics of a compile run.
	// Nil means the caller's own os.Stdout and os.Stderr. Link output is
	// always discarded.
	Stdout io.Writer
	Stderr io.Writer

	// StrictLink rejects a link when a library specifier matches no
	// placeholder in the target artifact. By default such specifiers are
	// passed to solc, which silently ignores them.
	StrictLink bool

	// LockDir holds an exclusive file lock on the target directory while solc
	// runs, serializing cooperating processes.
	LockDir bool
}

// New returns a Solidity using the platform's default invoker.
func New() *Solidity {
	return &Solidity{Invoker: DefaultInvoker}
}

// Compile compiles every Solidity source directly inside dir using the default
// settings. See Solidity.Compile.
func Compile(dir string) error {
	return New().Compile(dir)
}

// Link links libraries into the artifact target inside dir using the default
// settings. See Solidity.Link.
func Link(libraries []string, target, dir string) error {
	return New().Link(libraries, target, dir)
}

// Compile compiles every Solidity source directly inside dir. On success solc
// has written <dir>/<Contract>.bin and <dir>/<Contract>.abi for each contract
// defined in the sources.
func (s *Solidity) Compile(dir string) error {
	return s.CompileContext(context.Background(), dir)
}

// CompileContext is like Compile but kills solc if ctx is done before it exits.
func (s *Solidity) CompileContext(ctx context.Context, dir string) error {
	const op = "compile"

	outdir, err := canonicalize(dir)
	if err != nil {
		return resolutionError(op, fmt.Errorf("error canonicalizing the contract path: %w", err))
	}
	sources, err := SourceFiles(dir)
	if err != nil {
		return resolutionError(op, fmt.Errorf("contracts directory is not readable: %w", err))
	}
	log.Trace("Discovered Solidity sources", "dir", outdir, "sources", strings.Join(sources, ","))

	cmd := s.invoker().Command(ctx, compileArgs(outdir, sources)...)
	cmd.Dir = dir
	cmd.Stdout, cmd.Stderr = s.stdout(), s.stderr()

	unlock, err := s.lock(outdir)
	if err != nil {
		return resolutionError(op, err)
	}
	defer unlock()

	start := time.Now()
	if err := run(op, cmd, ErrCompileFailed); err != nil {
		return err
	}
	log.Debug("Compiled Solidity sources", "dir", outdir, "sources", len(sources), "elapsed", time.Since(start))
	return nil
}

// Link resolves library placeholders in the artifact target, a file name
// relative to dir. Each entry of libraries has the form
// <unit>:<library>:<address> and is handed to solc unchanged, in order. solc
// rewrites target in place; its output is discarded.
func (s *Solidity) Link(libraries []string, target, dir string) error {
	return s.LinkContext(context.Background(), libraries, target, dir)
}

// LinkContext is like Link but kills solc if ctx is done before it exits.
func (s *Solidity) LinkContext(ctx context.Context, libraries []string, target, dir string) error {
	const op = "link"

	info, err := os.Stat(dir)
	if err != nil {
		return resolutionError(op, err)
	}
	if !info.IsDir() {
		return resolutionError(op, fmt.Errorf("%s is not a directory", dir))
	}
	if s.StrictLink {
		if err := checkLibraries(libraries, filepath.Join(dir, target)); err != nil {
			return resolutionError(op, err)
		}
	}
	cmd := s.invoker().Command(ctx, linkArgs(libraries, target)...)
	cmd.Dir = dir

	unlock, err := s.lock(dir)
	if err != nil {
		return resolutionError(op, err)
	}
	defer unlock()

	if err := run(op, cmd, ErrLinkFailed); err != nil {
		return err
	}
	log.Debug("Linked libraries", "dir", dir, "target", target, "libraries", len(libraries))
	return nil
}

// LinkLibraries is Link for already parsed specifiers.
func (s *Solidity) LinkLibraries(libraries []LibrarySpecifier, target, dir string) error {
	specs := make([]string, len(libraries))
	for i, lib := range libraries {
		specs[i] = lib.String()
	}
	return s.Link(specs, target, dir)
}

// Version describes the solc release found by Solidity.Version.
type Version struct {
	Major, Minor, Patch int
	Full                string // e.g. 0.8.19+commit.7dd6d404.Linux.g++
}

func (v *Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Version runs solc --version and parses its output.
func (s *Solidity) Version(ctx context.Context) (*Version, error) {
	const op = "version"

	var stdout bytes.Buffer
	cmd := s.invoker().Command(ctx, "--version")
	cmd.Stdout = &stdout

	if err := run(op, cmd, ErrVersionFailed); err != nil {
		return nil, err
	}
	v, err := parseVersion(stdout.String())
	if err != nil {
		return nil, &Error{Op: op, Kind: ExecutionFailure, Err: fmt.Errorf("%w: %v", ErrVersionFailed, err)}
	}
	return v, nil
}

// parseVersion extracts the release from solc --version output, preferring the
// "Version:" line when there is one.
func parseVersion(output string) (*Version, error) {
	full := strings.TrimSpace(output)
	for _, line := range strings.Split(output, "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "Version:"); ok {
			full = strings.TrimSpace(rest)
			break
		}
	}
	parts := versionRegexp.FindStringSubmatch(full)
	if parts == nil {
		return nil, fmt.Errorf("no version number in %q", full)
	}
	v := &Version{Full: full}
	v.Major, _ = strconv.Atoi(parts[1])
	v.Minor, _ = strconv.Atoi(parts[2])
	v.Patch, _ = strconv.Atoi(parts[3])
	return v, nil
}

func compileArgs(outdir string, sources []string) []string {
	args := make([]string, 0, len(compileFlags)+2+len(sources))
	args = append(args, compileFlags...)
	args = append(args, "-o", outdir)
	return append(args, sources...)
}

func linkArgs(libraries []string, target string) []string {
	args := make([]string, 0, 2+2*len(libraries))
	args = append(args, "--link")
	for _, lib := range libraries {
		args = append(args, "--libraries", lib)
	}
	return append(args, target)
}

// run starts cmd and waits for it. A start error is a SpawnFailure, a non-zero
// exit an ExecutionFailure wrapping failed.
func run(op string, cmd *exec.Cmd, failed error) error {
	log.Debug("Running solc", "op", op, "dir", cmd.Dir, "cmd", commandString(cmd.Args))
	if err := cmd.Start(); err != nil {
		return spawnError(op, err)
	}
	if err := cmd.Wait(); err != nil {
		return executionError(op, failed, err)
	}
	return nil
}

// checkLibraries verifies that every specifier parses and has a placeholder in
// the artifact at path.
func checkLibraries(libraries []string, path string) error {
	specs := make([]LibrarySpecifier, 0, len(libraries))
	for _, lib := range libraries {
		spec, err := ParseLibrarySpecifier(lib)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}
	present, err := ReadPlaceholders(path)
	if err != nil {
		return err
	}
	if unmatched := unmatchedLibraries(specs, present); len(unmatched) > 0 {
		names := make([]string, len(unmatched))
		for i, lib := range unmatched {
			names[i] = lib.FullyQualifiedName()
		}
		return fmt.Errorf("%w: %s", ErrUnmatchedLibrary, strings.Join(names, ", "))
	}
	return nil
}

// canonicalize returns the absolute path of dir with symlinks resolved. It
// fails if dir does not exist.
func canonicalize(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func (s *Solidity) invoker() Invoker {
	if s.Invoker == nil {
		return DefaultInvoker
	}
	return s.Invoker
}

func (s *Solidity) stdout() io.Writer {
	if s.Stdout == nil {
		return os.Stdout
	}
	return s.Stdout
}

func (s *Solidity) stderr() io.Writer {
	if s.Stderr == nil {
		return os.Stderr
	}
	return s.Stderr
}

// lock takes the directory lock if LockDir is set and returns its release func.
func (s *Solidity) lock(dir string) (func(), error) {
	if !s.LockDir {
		return func() {}, nil
	}
	fl := flock.New(filepath.Join(dir, LockFileName))
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("could not lock %s: %w", dir, err)
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			log.Debug("Failed to release directory lock", "dir", dir, "err", err)
		}
	}, nil
}
