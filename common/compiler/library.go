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
	"fmt"
	"os"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/solaris-evm/solaris/common"
	"github.com/solaris-evm/solaris/crypto"
)

// PlaceholderLength is the width of a library placeholder in hex bytecode: the
// 20 byte address that replaces it, hex encoded.
const PlaceholderLength = 2 * common.AddressLength

// LibrarySpecifier tells solc --link which library placeholder to replace with
// which address. Its textual form is <unit>:<library>:<address>.
// LibrarySpecifier 指定要替换的库占位符及其地址，文本形式为 <unit>:<library>:<address>。
type LibrarySpecifier struct {
	Unit    string // source unit the library is declared in, e.g. test.sol
	Name    string // library name, e.g. TestLibrary
	Address common.Address
}

// ParseLibrarySpecifier parses <unit>:<library>:<address>. The unit may itself
// contain colons, so the string is split at its last two. The address may carry
// a 0x prefix.
func ParseLibrarySpecifier(s string) (LibrarySpecifier, error) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return LibrarySpecifier{}, fmt.Errorf("%w %q", ErrInvalidLibrary, s)
	}
	j := strings.LastIndexByte(s[:i], ':')
	if j <= 0 || j+1 == i {
		return LibrarySpecifier{}, fmt.Errorf("%w %q", ErrInvalidLibrary, s)
	}
	addr, err := common.ParseAddress(s[i+1:])
	if err != nil {
		return LibrarySpecifier{}, fmt.Errorf("%w %q: %v", ErrInvalidLibrary, s, err)
	}
	return LibrarySpecifier{Unit: s[:j], Name: s[j+1 : i], Address: addr}, nil
}

// String returns the specifier in the form solc accepts, with the address as 40
// lowercase hex characters and no prefix.
func (l LibrarySpecifier) String() string {
	return fmt.Sprintf("%s:%s:%s", l.Unit, l.Name, hex.EncodeToString(l.Address[:]))
}

// FullyQualifiedName returns <unit>:<library>, the name placeholders are derived from.
func (l LibrarySpecifier) FullyQualifiedName() string {
	return l.Unit + ":" + l.Name
}

// Placeholders returns every placeholder solc may have emitted for this
// library: the hashed form of current compilers and the legacy forms used
// before 0.5, both fully qualified and by bare library name.
func (l LibrarySpecifier) Placeholders() []string {
	fqn := l.FullyQualifiedName()
	return []string{HashedPlaceholder(fqn), LegacyPlaceholder(fqn), LegacyPlaceholder(l.Name)}
}

// HashedPlaceholder returns the placeholder emitted by solc >= 0.5 for the
// fully qualified library name: __$<34 hex chars of keccak256(fqn)>$__.
func HashedPlaceholder(fqn string) string {
	hash := hex.EncodeToString(crypto.Keccak256([]byte(fqn)))
	return "__$" + hash[:34] + "$__"
}

// LegacyPlaceholder returns the placeholder emitted by solc < 0.5: the name,
// truncated to 36 characters and padded with underscores, between "__" markers.
func LegacyPlaceholder(name string) string {
	const width = PlaceholderLength - 4
	if len(name) > width {
		name = name[:width]
	}
	return "__" + name + strings.Repeat("_", width-len(name)) + "__"
}

// Placeholders returns the distinct library placeholders in hex bytecode.
// Linked bytecode is pure hex, so every "__" starts a placeholder.
func Placeholders(code string) mapset.Set[string] {
	set := mapset.NewThreadUnsafeSet[string]()
	for i := 0; i+PlaceholderLength <= len(code); {
		if code[i] != '_' || code[i+1] != '_' {
			i++
			continue
		}
		candidate := code[i : i+PlaceholderLength]
		if strings.HasSuffix(candidate, "__") {
			set.Add(candidate)
			i += PlaceholderLength
			continue
		}
		i++
	}
	return set
}

// ReadPlaceholders returns the library placeholders in the artifact at path.
func ReadPlaceholders(path string) (mapset.Set[string], error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Placeholders(string(code)), nil
}

// unmatchedLibraries returns the specifiers for which none of the possible
// placeholders occurs in the given set.
func unmatchedLibraries(libraries []LibrarySpecifier, present mapset.Set[string]) []LibrarySpecifier {
	var unmatched []LibrarySpecifier
	for _, lib := range libraries {
		matched := false
		for _, p := range lib.Placeholders() {
			if present.Contains(p) {
				matched = true
				break
			}
		}
		if !matched {
			unmatched = append(unmatched, lib)
		}
	}
	return unmatched
}
