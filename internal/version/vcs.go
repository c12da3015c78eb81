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
	"time"
)

// Layouts of the commit time as embedded by the go tool and as printed.
const (
	govcsTimeLayout = "2006-01-02T15:04:05Z"
	ourTimeLayout   = "20060102"
)

// These variables can be set at build-time by the linker:
//
//	go build -ldflags "-X github.com/solaris-evm/solaris/internal/version.gitCommit=$(git rev-parse HEAD)"
var gitCommit, gitDate string

// VCSInfo represents the git repository state.
// VCSInfo 表示 git 仓库的状态。
type VCSInfo struct {
	Commit string // head commit hash
	Date   string // commit time in YYYYMMDD format
	Dirty  bool
}

// VCS returns version control information of the current executable. Linker
// provided values win over the build info embedded by the go tool, which is
// only trusted for builds of this module.
func VCS() (VCSInfo, bool) {
	if gitCommit != "" {
		return VCSInfo{Commit: gitCommit, Date: gitDate}, true
	}
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Path != ourPath {
		return VCSInfo{}, false
	}
	return buildInfoVCS(info)
}

// buildInfoVCS extracts the vcs.* build settings. Both the revision and the
// commit time are required.
func buildInfoVCS(info *debug.BuildInfo) (VCSInfo, bool) {
	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	vcs := VCSInfo{
		Commit: settings["vcs.revision"],
		Dirty:  settings["vcs.modified"] == "true",
	}
	if t, err := time.Parse(govcsTimeLayout, settings["vcs.time"]); err == nil {
		vcs.Date = t.Format(ourTimeLayout)
	}
	return vcs, vcs.Commit != "" && vcs.Date != ""
}
