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
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"unicode"

	"github.com/naoina/toml"
	"github.com/solaris-evm/solaris/cmd/utils"
	"github.com/solaris-evm/solaris/common/compiler"
	"github.com/urfave/cli/v2"
)

var dumpConfigCommand = &cli.Command{
	Action:      dumpConfig,
	Name:        "dumpconfig",
	Usage:       "Export configuration values in a TOML format",
	ArgsUsage:   "<dumpfile (optional)>",
	Flags:       utils.CompilerFlags,
	Description: `Export configuration values in TOML format (to stdout by default).`,
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// compilerConfig selects how solc is started.
type compilerConfig struct {
	Executable string // started directly unless Shell is set
	Shell      string `toml:",omitempty"`
	Script     string `toml:",omitempty"`
	LockDir    bool
}

type linkerConfig struct {
	Strict bool
}

type solarisConfig struct {
	Compiler compilerConfig
	Linker   linkerConfig
}

func loadConfig(file string, cfg *solarisConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// defaultConfig mirrors the platform's default way of starting solc.
func defaultConfig() solarisConfig {
	cfg := solarisConfig{Compiler: compilerConfig{Executable: "solc"}}
	switch inv := compiler.DefaultInvoker.(type) {
	case compiler.DirectInvoker:
		cfg.Compiler.Executable = inv.Name
	case compiler.ShellInvoker:
		cfg.Compiler.Shell = inv.Shell
		cfg.Compiler.Script = inv.Script
	}
	return cfg
}

// loadBaseConfig loads the solarisConfig based on the given command line
// parameters and config file.
func loadBaseConfig(ctx *cli.Context) (solarisConfig, error) {
	cfg := defaultConfig()

	// Load config file.
	if file := ctx.String(utils.ConfigFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	// Apply flags.
	applyFlags(ctx, &cfg)
	if err := cfg.Compiler.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// validate rejects invoker settings solc cannot be started with.
func (c *compilerConfig) validate() error {
	switch {
	case c.Shell != "" && c.Script == "":
		return fmt.Errorf("compiler shell %q needs a script to run (--%s)", c.Shell, utils.SolcScriptFlag.Name)
	case c.Shell == "" && c.Script != "":
		return fmt.Errorf("compiler script %q needs a shell to run it (--%s)", c.Script, utils.SolcShellFlag.Name)
	case c.Shell == "" && c.Executable == "":
		return errors.New("no compiler executable configured")
	}
	return nil
}

// applyFlags overrides the loaded configuration with explicitly set flags.
func applyFlags(ctx *cli.Context, cfg *solarisConfig) {
	if ctx.IsSet(utils.SolcFlag.Name) {
		cfg.Compiler.Executable = ctx.String(utils.SolcFlag.Name)
		cfg.Compiler.Shell, cfg.Compiler.Script = "", ""
	}
	if ctx.IsSet(utils.SolcShellFlag.Name) {
		cfg.Compiler.Shell = ctx.String(utils.SolcShellFlag.Name)
	}
	if ctx.IsSet(utils.SolcScriptFlag.Name) {
		cfg.Compiler.Script = ctx.String(utils.SolcScriptFlag.Name)
	}
	if ctx.IsSet(utils.LockFlag.Name) {
		cfg.Compiler.LockDir = ctx.Bool(utils.LockFlag.Name)
	}
	if ctx.IsSet(utils.StrictFlag.Name) {
		cfg.Linker.Strict = ctx.Bool(utils.StrictFlag.Name)
	}
}

// makeSolidity creates the solc driver described by the configuration.
func makeSolidity(cfg *solarisConfig) *compiler.Solidity {
	var inv compiler.Invoker = compiler.DirectInvoker{Name: cfg.Compiler.Executable}
	if cfg.Compiler.Shell != "" {
		inv = compiler.ShellInvoker{
			Shell:  cfg.Compiler.Shell,
			Flag:   shellFlag(cfg.Compiler.Shell),
			Script: cfg.Compiler.Script,
		}
	}
	return &compiler.Solidity{
		Invoker:    inv,
		StrictLink: cfg.Linker.Strict,
		LockDir:    cfg.Compiler.LockDir,
	}
}

// shellFlag returns the switch that makes shell run a script and exit.
func shellFlag(shell string) string {
	// Shell paths may use either separator, whatever the host.
	base := shell[strings.LastIndexAny(shell, `/\`)+1:]
	name := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	if name == "cmd" {
		return "/c"
	}
	return ""
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	dump.WriteString(comment)
	dump.Write(out)

	return nil
}

const comment = "# Note: this config doesn't contain the library addresses, pass them with --library.\n\n"
