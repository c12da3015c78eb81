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

// solaris drives the solc Solidity compiler over a directory of contracts.
package main

import (
	"os"

	"github.com/solaris-evm/solaris/cmd/utils"
	"github.com/solaris-evm/solaris/internal/debug"
	"github.com/solaris-evm/solaris/internal/flags"
	"github.com/urfave/cli/v2"
)

var app = flags.NewApp("the solaris Solidity compiler driver")

func init() {
	app.Commands = []*cli.Command{
		// see compilecmd.go:
		compileCommand,
		linkCommand,
		versionCommand,
		// see config.go
		dumpConfigCommand,
	}
	app.Flags = flags.Merge(
		[]cli.Flag{utils.ConfigFileFlag},
		debug.Flags,
	)
	app.Before = func(ctx *cli.Context) error {
		flags.MigrateGlobalFlags(ctx)
		return debug.Setup(ctx)
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		utils.Fatalf("%v", err)
	}
}
