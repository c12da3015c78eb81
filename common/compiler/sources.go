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
	"os"
	"strings"
	"unicode/utf8"
)

// SourceSuffix is the file name suffix of Solidity sources.
const SourceSuffix = ".sol"

// SourceFiles returns the names of the Solidity sources directly inside dir.
// Subdirectories are not descended into, but an entry is selected on its name
// alone, so a directory called "x.sol" is returned as well. Names that are not
// valid UTF-8 are skipped.
//
// The names come back in the order os.ReadDir yields them, sorted by file name.
func SourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if !utf8.ValidString(name) {
			continue
		}
		if strings.HasSuffix(name, SourceSuffix) {
			files = append(files, name)
		}
	}
	return files, nil
}
