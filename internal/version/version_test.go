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

package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestBuildInfoVCS(t *testing.T) {
	info := &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "7dd6d404f5f9e6f82d8a1b2b3c4d5e6f70819203"},
		{Key: "vcs.time", Value: "2026-03-14T09:26:53Z"},
		{Key: "vcs.modified", Value: "true"},
	}}
	vcs, ok := buildInfoVCS(info)
	if !ok {
		t.Fatal("complete build info rejected")
	}
	if vcs.Commit != "7dd6d404f5f9e6f82d8a1b2b3c4d5e6f70819203" || vcs.Date != "20260314" || !vcs.Dirty {
		t.Fatalf("unexpected vcs info %+v", vcs)
	}
	if _, ok := buildInfoVCS(&debug.BuildInfo{}); ok {
		t.Fatal("empty build info accepted")
	}
}

func TestWithCommit(t *testing.T) {
	v := WithCommit("7dd6d404f5f9e6f8", "20260314")
	if !strings.HasPrefix(v, WithMeta+"-7dd6d404") {
		t.Fatalf("unexpected version %q", v)
	}
	if WithCommit("", "") != WithMeta {
		t.Fatal("empty commit changed the version")
	}
}

func TestInfo(t *testing.T) {
	info := Info()
	if info[0] != [2]string{"Version", WithMeta} {
		t.Fatalf("unexpected first line %q", info[0])
	}
	if info[len(info)-1][0] != "Operating System" {
		t.Fatalf("unexpected last line %q", info[len(info)-1])
	}
}
