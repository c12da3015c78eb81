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
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/solaris-evm/solaris/cmd/utils"
	"github.com/solaris-evm/solaris/common/compiler"
	"github.com/solaris-evm/solaris/internal/flags"
	"github.com/solaris-evm/solaris/internal/version"
	"github.com/solaris-evm/solaris/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var (
	compileCommand = &cli.Command{
		Action:    compileContracts,
		Name:      "compile",
		Usage:     "Compile every Solidity source in one or more directories",
		ArgsUsage: "<dir> [<dir>...]",
		Flags:     flags.Merge(utils.CompilerFlags, []cli.Flag{utils.JobsFlag}),
		Description: `
The compile command runs solc once per <dir> over all *.sol files directly
inside it and writes a .bin and .abi artifact per contract next to them.
Existing artifacts are overwritten. Compiler diagnostics are passed through.
Directories are compiled concurrently, at most --jobs at a time.`,
	}
	linkCommand = &cli.Command{
		Action:    linkContract,
		Name:      "link",
		Usage:     "Link library addresses into a compiled artifact",
		ArgsUsage: "<target> <dir>",
		Flags: flags.Merge(utils.CompilerFlags, []cli.Flag{
			utils.LibraryFlag,
			utils.StrictFlag,
		}),
		Description: `
The link command replaces the library placeholders in the artifact <target>,
relative to <dir>, with the addresses given by --library. The artifact is
modified in place.`,
	}
	versionCommand = &cli.Command{
		Action:    printVersion,
		Name:      "version",
		Usage:     "Print version numbers",
		ArgsUsage: " ",
		Flags:     utils.CompilerFlags,
		Description: `
The output of this command is supposed to be machine-readable.`,
	}
)

func compileContracts(ctx *cli.Context) error {
	if ctx.Args().Len() == 0 {
		return errors.New("expected at least one contracts directory")
	}
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	var (
		solc = makeSolidity(&cfg)
		jobs = ctx.Int(utils.JobsFlag.Name)
	)
	if jobs < 1 {
		jobs = 1
	}
	g, gctx := errgroup.WithContext(ctx.Context)
	g.SetLimit(jobs)
	for _, arg := range ctx.Args().Slice() {
		dir := flags.ExpandPath(arg)
		g.Go(func() error {
			return compileDir(gctx, solc, dir)
		})
	}
	return g.Wait()
}

// compileDir compiles a single directory and reports the contracts that still
// carry library placeholders.
func compileDir(ctx context.Context, solc *compiler.Solidity, dir string) error {
	if err := solc.CompileContext(ctx, dir); err != nil {
		return err
	}
	contracts, err := compiler.Contracts(dir)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(contracts))
	for name := range contracts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if unlinked := contracts[name].Unlinked(); unlinked.Cardinality() > 0 {
			log.Info("Contract needs linking", "contract", name, "libraries", unlinked.Cardinality())
		}
	}
	log.Info("Compiled contracts", "dir", dir, "contracts", len(contracts))
	return nil
}

func linkContract(ctx *cli.Context) error {
	if ctx.Args().Len() != 2 {
		return errors.New("expected a target artifact and its directory")
	}
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	var (
		target    = ctx.Args().Get(0)
		dir       = flags.ExpandPath(ctx.Args().Get(1))
		libraries = ctx.StringSlice(utils.LibraryFlag.Name)
	)
	if len(libraries) == 0 {
		log.Warn("No libraries given, solc will leave the artifact unchanged", "target", target)
	}
	if err := makeSolidity(&cfg).LinkContext(ctx.Context, libraries, target, dir); err != nil {
		return err
	}
	log.Info("Linked contract", "target", target, "libraries", len(libraries))
	return nil
}

func printVersion(ctx *cli.Context) error {
	for _, line := range version.Info() {
		fmt.Printf("%s: %s\n", line[0], line[1])
	}
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	solc, err := makeSolidity(&cfg).Version(ctx.Context)
	if err != nil {
		log.Warn("Could not determine solc version", "err", err)
		return nil
	}
	fmt.Println("Solidity Version:", solc.Full)
	return nil
}
