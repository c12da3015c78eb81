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

package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/solaris-evm/solaris/log"
	"github.com/urfave/cli/v2"
)

func runSetup(t *testing.T, args ...string) error {
	t.Helper()
	root := log.Root()
	t.Cleanup(func() {
		Exit()
		log.SetDefault(root)
	})
	app := cli.NewApp()
	app.Flags = Flags
	app.Action = Setup
	return app.Run(append([]string{"solaris"}, args...))
}

func TestSetupLogFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "solaris.log")
	if err := runSetup(t, "--log.file", file, "--log.format", "logfmt"); err != nil {
		t.Fatal(err)
	}
	log.Info("Compiled Solidity sources", "sources", 2)
	Exit()

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`msg="Logging configured"`, "format=logfmt", `msg="Compiled Solidity sources"`, "sources=2"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log file misses %q:\n%s", want, data)
		}
	}
}

func TestSetupVerbosity(t *testing.T) {
	file := filepath.Join(t.TempDir(), "solaris.log")
	if err := runSetup(t, "--log.file", file, "--log.format", "json", "--verbosity", "2"); err != nil {
		t.Fatal(err)
	}
	log.Info("hidden")
	log.Warn("shown")
	Exit()

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), `"msg":"shown"`) {
		t.Fatalf("unexpected log output:\n%s", data)
	}
}

func TestSetupErrors(t *testing.T) {
	if err := runSetup(t, "--log.format", "xml"); err == nil || !strings.Contains(err.Error(), "unknown log format") {
		t.Fatalf("unexpected error for bad format: %v", err)
	}
	if err := runSetup(t, "--log.vmodule", "compiler"); err == nil {
		t.Fatal("expected error for bad vmodule")
	}
}
