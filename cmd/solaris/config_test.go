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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/solaris-evm/solaris/cmd/utils"
	"github.com/solaris-evm/solaris/common/compiler"
	"github.com/solaris-evm/solaris/internal/flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "solaris.toml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	return file
}

func TestLoadConfig(t *testing.T) {
	file := writeConfig(t, `
[Compiler]
Executable = "/opt/solc/0.8.19/solc"
LockDir = true

[Linker]
Strict = true
`)
	cfg := defaultConfig()
	require.NoError(t, loadConfig(file, &cfg))
	assert.Equal(t, "/opt/solc/0.8.19/solc", cfg.Compiler.Executable)
	assert.True(t, cfg.Compiler.LockDir)
	assert.True(t, cfg.Linker.Strict)
}

func TestLoadConfigUnknownField(t *testing.T) {
	file := writeConfig(t, `
[Compiler]
Optimize = false
`)
	cfg := defaultConfig()
	err := loadConfig(file, &cfg)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), file+", "), "file name missing from %q", err)
	assert.Contains(t, err.Error(), "field 'Optimize' is not defined")
}

// resetConfigFlag clears the --config value the shared flag keeps between
// app runs, now and when the test ends.
func resetConfigFlag(t *testing.T) {
	reset := func() {
		utils.ConfigFileFlag.Value = ""
		utils.ConfigFileFlag.HasBeenSet = false
	}
	reset()
	t.Cleanup(reset)
}

// runWithConfig runs a single command through a minimal app and returns the
// configuration it resolved.
func runWithConfig(t *testing.T, args ...string) solarisConfig {
	t.Helper()
	cfg, err := resolveConfig(t, args...)
	require.NoError(t, err)
	return cfg
}

func resolveConfig(t *testing.T, args ...string) (solarisConfig, error) {
	t.Helper()
	resetConfigFlag(t)

	var cfg solarisConfig
	app := cli.NewApp()
	app.Flags = []cli.Flag{utils.ConfigFileFlag}
	app.Commands = []*cli.Command{{
		Name:  "link",
		Flags: flags.Merge(utils.CompilerFlags, []cli.Flag{utils.StrictFlag, utils.LibraryFlag}),
		Action: func(ctx *cli.Context) (err error) {
			cfg, err = loadBaseConfig(ctx)
			return err
		},
	}}
	err := app.Run(append([]string{"solaris"}, args...))
	return cfg, err
}

func TestFlagsOverrideConfig(t *testing.T) {
	file := writeConfig(t, `
[Compiler]
Executable = "solc-0.8.19"
Shell = "cmd.exe"
Script = "solc.cmd"

[Linker]
Strict = true
`)
	cfg := runWithConfig(t, "--config", file, "link")
	assert.Equal(t, "cmd.exe", cfg.Compiler.Shell)
	assert.True(t, cfg.Linker.Strict)

	cfg = runWithConfig(t, "--config", file, "link", "--solc", "/usr/local/bin/solc", "--strict=false", "--lock")
	assert.Equal(t, compilerConfig{Executable: "/usr/local/bin/solc", LockDir: true}, cfg.Compiler)
	assert.False(t, cfg.Linker.Strict)
}

func TestConfigErrorsReturned(t *testing.T) {
	// A missing file is reported to the caller instead of ending the process.
	missing := filepath.Join(t.TempDir(), "missing.toml")
	_, err := resolveConfig(t, "--config", missing, "link")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.toml")

	// The flag value does not leak into the next run.
	cfg := runWithConfig(t, "link")
	assert.Equal(t, defaultConfig(), cfg)
}

func TestShellWithoutScript(t *testing.T) {
	_, err := resolveConfig(t, "link", "--solc.shell", "cmd.exe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--solc.script")

	_, err = resolveConfig(t, "link", "--solc", "solc", "--solc.script", "solc.cmd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--solc.shell")

	file := writeConfig(t, `
[Compiler]
Shell = "/bin/sh"
`)
	_, err = resolveConfig(t, "--config", file, "link", "--solc.shell", "/bin/bash")
	require.Error(t, err)

	cfg := runWithConfig(t, "link", "--solc.shell", "/bin/sh", "--solc.script", "./solc.sh")
	assert.Equal(t, "./solc.sh", cfg.Compiler.Script)
}

func TestShellFlag(t *testing.T) {
	tests := map[string]string{
		`C:\Windows\System32\cmd.exe`: "/c",
		`C:\Windows\System32\CMD.EXE`: "/c",
		"cmd":                         "/c",
		"/usr/bin/cmd":                "/c",
		"/bin/sh":                     "",
		`C:\tools\bash.exe`:           "",
	}
	for shell, want := range tests {
		if got := shellFlag(shell); got != want {
			t.Errorf("shellFlag(%q) = %q, want %q", shell, got, want)
		}
	}
}

func TestMakeSolidity(t *testing.T) {
	cfg := solarisConfig{
		Compiler: compilerConfig{Executable: "solc-0.8.19", LockDir: true},
		Linker:   linkerConfig{Strict: true},
	}
	solc := makeSolidity(&cfg)
	assert.Equal(t, compiler.DirectInvoker{Name: "solc-0.8.19"}, solc.Invoker)
	assert.True(t, solc.StrictLink)
	assert.True(t, solc.LockDir)

	cfg.Compiler.Shell, cfg.Compiler.Script = `C:\Windows\System32\cmd.exe`, "solc.cmd"
	assert.Equal(t, compiler.ShellInvoker{Shell: `C:\Windows\System32\cmd.exe`, Flag: "/c", Script: "solc.cmd"}, makeSolidity(&cfg).Invoker)

	cfg.Compiler.Shell, cfg.Compiler.Script = "/bin/sh", "./solc.sh"
	assert.Equal(t, compiler.ShellInvoker{Shell: "/bin/sh", Script: "./solc.sh"}, makeSolidity(&cfg).Invoker)
}

func TestDumpConfig(t *testing.T) {
	resetConfigFlag(t)
	dump := filepath.Join(t.TempDir(), "dump.toml")
	app := cli.NewApp()
	app.Flags = []cli.Flag{utils.ConfigFileFlag}
	app.Commands = []*cli.Command{dumpConfigCommand}
	require.NoError(t, app.Run([]string{"solaris", "dumpconfig", "--solc", "solc-0.8.19", "--lock", dump}))

	data, err := os.ReadFile(dump)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), comment))

	// The dump must be accepted as a configuration file.
	var cfg solarisConfig
	require.NoError(t, loadConfig(dump, &cfg))
	assert.Equal(t, compilerConfig{Executable: "solc-0.8.19", LockDir: true}, cfg.Compiler)
}
