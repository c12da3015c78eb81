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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/solaris-evm/solaris/internal/reexec"
)

// Environment understood by the stand-in solc.
const (
	fakeRecordEnv = "SOLARIS_FAKE_SOLC_RECORD" // file receiving one JSON line per invocation
	fakeExitEnv   = "SOLARIS_FAKE_SOLC_EXIT"   // forced exit status
)

const (
	fakeVersionOutput = "solc, the solidity compiler commandline interface\nVersion: 0.8.19+commit.7dd6d404.Linux.g++\n"
	fakeChatter       = "fake solc says hello"
)

var fakeDeclRegexp = regexp.MustCompile(`(?m)^\s*(?:abstract\s+)?(?:contract|library|interface)\s+([A-Za-z_][A-Za-z0-9_]*)`)

// invocation is what the stand-in solc records about itself.
type invocation struct {
	Args []string `json:"args"`
	Dir  string   `json:"dir"`
}

func TestMain(m *testing.M) {
	reexec.Register("solc", fakeSolc)
	if reexec.Init() {
		return
	}
	os.Exit(m.Run())
}

// fakeSolc mimics the parts of the solc command line used by this package.
func fakeSolc() {
	args := os.Args[1:]
	if record := os.Getenv(fakeRecordEnv); record != "" {
		dir, _ := os.Getwd()
		line, _ := json.Marshal(invocation{Args: args, Dir: dir})
		f, err := os.OpenFile(record, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fakeFatal(err)
		}
		f.Write(append(line, '\n'))
		f.Close()
	}
	fmt.Fprintln(os.Stdout, fakeChatter)
	fmt.Fprintln(os.Stderr, fakeChatter)

	if code, _ := strconv.Atoi(os.Getenv(fakeExitEnv)); code != 0 {
		fmt.Fprintln(os.Stderr, "Error: forced failure")
		os.Exit(code)
	}
	switch {
	case len(args) == 1 && args[0] == "--version":
		fmt.Print(fakeVersionOutput)
	case len(args) > 0 && args[0] == "--link":
		fakeLink(args[1:])
	default:
		fakeCompile(args)
	}
	os.Exit(0)
}

func fakeCompile(args []string) {
	var (
		outdir    string
		overwrite bool
		sources   []string
	)
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "-o":
			i++
			outdir = args[i]
		case arg == "--overwrite":
			overwrite = true
		case strings.HasPrefix(arg, "--"):
		default:
			sources = append(sources, arg)
		}
	}
	if len(sources) == 0 {
		fakeFatal(fmt.Errorf("No input files given. If you wish to use the standard input please specify \"-\" explicitly."))
	}
	for _, source := range sources {
		code, err := os.ReadFile(source)
		if err != nil {
			fakeFatal(err)
		}
		for _, m := range fakeDeclRegexp.FindAllStringSubmatch(string(code), -1) {
			name := m[1]
			bin := filepath.Join(outdir, name+BinSuffix)
			if _, err := os.Stat(bin); err == nil && !overwrite {
				fakeFatal(fmt.Errorf("Refusing to overwrite existing file %q (use --overwrite to force).", bin))
			}
			if err := os.WriteFile(bin, []byte(fakeBytecode(name)), 0644); err != nil {
				fakeFatal(err)
			}
			if err := os.WriteFile(filepath.Join(outdir, name+AbiSuffix), []byte("[]"), 0644); err != nil {
				fakeFatal(err)
			}
		}
	}
}

func fakeLink(args []string) {
	var libs []LibrarySpecifier
	for len(args) > 2 && args[0] == "--libraries" {
		lib, err := ParseLibrarySpecifier(args[1])
		if err != nil {
			fakeFatal(err)
		}
		libs = append(libs, lib)
		args = args[2:]
	}
	if len(args) != 1 {
		fakeFatal(fmt.Errorf("expected exactly one link target, got %q", args))
	}
	code, err := os.ReadFile(args[0])
	if err != nil {
		fakeFatal(err)
	}
	linked := string(code)
	for _, lib := range libs {
		for _, p := range lib.Placeholders() {
			linked = strings.ReplaceAll(linked, p, hex.EncodeToString(lib.Address[:]))
		}
	}
	if err := os.WriteFile(args[0], []byte(linked), 0644); err != nil {
		fakeFatal(err)
	}
	fmt.Printf("Linking completed.\n")
}

func fakeFatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// fakeBytecode is the artifact content the stand-in writes for a contract.
func fakeBytecode(name string) string {
	return "6080604052" + hex.EncodeToString([]byte(name))
}

// useFakeSolc puts the stand-in solc first and alone on PATH and returns the
// path of its invocation record.
func useFakeSolc(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stand-in solc is started through a symbolic link")
	}
	bin := t.TempDir()
	if _, err := reexec.Install(bin, "solc"); err != nil {
		t.Fatalf("could not install stand-in solc: %v", err)
	}
	t.Setenv("PATH", bin)

	record := filepath.Join(t.TempDir(), "invocations.jsonl")
	t.Setenv(fakeRecordEnv, record)
	return record
}

// invocations reads back what the stand-in solc recorded. A missing record
// means the process never ran.
func invocations(t *testing.T, record string) []invocation {
	t.Helper()
	data, err := os.ReadFile(record)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	var calls []invocation
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var call invocation
		if err := json.Unmarshal([]byte(line), &call); err != nil {
			t.Fatalf("bad invocation record %q: %v", line, err)
		}
		calls = append(calls, call)
	}
	return calls
}

// writeFiles populates dir with the given name to content mapping.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}
