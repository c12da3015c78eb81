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

// Package compiler wraps the Solidity compiler executable (solc).
//
// It compiles every source in a directory into per-contract .bin and .abi
// artifacts and links libraries into compiled bytecode. All parsing,
// compilation and placeholder substitution is done by solc itself; this
// package builds the command lines, runs the process and reports the outcome.
// 本包封装 solc 可执行文件：构造命令行、运行进程并报告结果，编译与链接由 solc 完成。
package compiler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Artifact file suffixes written by solc --bin --abi -o <dir>.
const (
	BinSuffix = ".bin"
	AbiSuffix = ".abi"
)

// Contract contains information about a compiled contract, alongside its code and runtime code.
type Contract struct {
	Code        string            `json:"code"`
	RuntimeCode string            `json:"runtime-code"`
	Info        ContractInfo      `json:"info"`
	Hashes      map[string]string `json:"hashes"`
}

// ContractInfo contains information about a compiled contract, including access
// to the ABI definition, source mapping, user and developer docs, and metadata.
//
// Depending on the source, language version, compiler version, and compiler
// options will provide information about how the contract was compiled.
type ContractInfo struct {
	Source          string      `json:"source"`
	Language        string      `json:"language"`
	LanguageVersion string      `json:"languageVersion"`
	CompilerVersion string      `json:"compilerVersion"`
	CompilerOptions string      `json:"compilerOptions"`
	SrcMap          interface{} `json:"srcMap"`
	SrcMapRuntime   string      `json:"srcMapRuntime"`
	AbiDefinition   interface{} `json:"abiDefinition"`
	UserDoc         interface{} `json:"userDoc"`
	DeveloperDoc    interface{} `json:"developerDoc"`
	Metadata        string      `json:"metadata"`
}

// Unlinked returns the library placeholders still present in the contract code.
func (c *Contract) Unlinked() mapset.Set[string] {
	return Placeholders(c.Code)
}

// ReadContract loads the <name>.bin and <name>.abi artifacts solc wrote into dir.
// Code is returned with a 0x prefix. Only the first line of the .bin file is
// bytecode; solc follows it with "// <placeholder> -> <unit>:<library>" hints
// while libraries are still unlinked.
func ReadContract(dir, name string) (*Contract, error) {
	bin, err := os.ReadFile(filepath.Join(dir, name+BinSuffix))
	if err != nil {
		return nil, err
	}
	abi, err := os.ReadFile(filepath.Join(dir, name+AbiSuffix))
	if err != nil {
		return nil, err
	}
	var definition interface{}
	if err := json.Unmarshal(abi, &definition); err != nil {
		return nil, fmt.Errorf("invalid abi for contract %s: %v", name, err)
	}
	code, _, _ := strings.Cut(strings.TrimSpace(string(bin)), "\n")
	code = strings.TrimSpace(code)
	return &Contract{
		Code: "0x" + strings.TrimPrefix(code, "0x"),
		Info: ContractInfo{
			Language:        "Solidity",
			CompilerOptions: strings.Join(compileFlags, " "),
			AbiDefinition:   definition,
		},
	}, nil
}

// Contracts loads every contract with both a .bin and an .abi artifact in dir,
// keyed by contract name.
func Contracts(dir string) (map[string]*Contract, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	contracts := make(map[string]*Contract)
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), BinSuffix)
		if !ok || entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, name+AbiSuffix)); err != nil {
			continue
		}
		contract, err := ReadContract(dir, name)
		if err != nil {
			return nil, err
		}
		contracts[name] = contract
	}
	return contracts, nil
}
