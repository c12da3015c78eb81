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

// Package utils contains internal helper functions for solaris commands.
package utils

import (
	"runtime"

	"github.com/solaris-evm/solaris/internal/flags"
	"github.com/urfave/cli/v2"
)

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	ConfigFileFlag = &flags.PathFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		EnvVars:  []string{"SOLARIS_CONFIG"},
		Category: flags.MiscCategory,
	}

	// Compiler settings
	SolcFlag = &cli.StringFlag{
		Name:     "solc",
		Usage:    "Name or path of the solc executable, started directly",
		Category: flags.CompilerCategory,
	}
	SolcShellFlag = &cli.StringFlag{
		Name:     "solc.shell",
		Usage:    "Shell used to start a solc wrapper script (e.g. cmd.exe)",
		Category: flags.CompilerCategory,
	}
	SolcScriptFlag = &cli.StringFlag{
		Name:     "solc.script",
		Usage:    "Wrapper script passed to --solc.shell (e.g. solc.cmd)",
		Category: flags.CompilerCategory,
	}
	JobsFlag = &cli.IntFlag{
		Name:     "jobs",
		Usage:    "Number of directories compiled concurrently",
		Value:    runtime.NumCPU(),
		Category: flags.CompilerCategory,
	}
	LockFlag = &cli.BoolFlag{
		Name:     "lock",
		Usage:    "Hold an exclusive lock on the contracts directory while solc runs",
		Category: flags.CompilerCategory,
	}

	// Linker settings
	StrictFlag = &cli.BoolFlag{
		Name:     "strict",
		Usage:    "Reject libraries that have no placeholder in the target artifact",
		Category: flags.LinkerCategory,
	}
	LibraryFlag = &cli.StringSliceFlag{
		Name:     "library",
		Usage:    "Library address as <unit>:<library>:<address>, may be repeated",
		Category: flags.LinkerCategory,
	}
)

// CompilerFlags are accepted by every command that starts solc.
var CompilerFlags = []cli.Flag{
	SolcFlag,
	SolcShellFlag,
	SolcScriptFlag,
	LockFlag,
}
