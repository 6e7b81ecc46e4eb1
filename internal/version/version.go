/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version reports the tincture build.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set at build time via -ldflags "-X bennypowers.dev/tincture/internal/version.Version=...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = "unknown"
	BuildTime = "unknown"
	GitDirty  = ""
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
	Dirty     bool   `json:"dirty"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns the version string: the ldflags version when set, then the
// module version, then a description of the git tag and commit.
func Get() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	if GitTag == "unknown" || GitCommit == "unknown" {
		return "dev"
	}
	return describe(GitTag, GitCommit, GitDirty == "dirty")
}

// describe formats a tag and commit like git describe does, e.g.
// "v0.3.0-1a2b3c4-dirty".
func describe(tag, commit string, dirty bool) string {
	v := tag
	short := commit
	if len(short) > 7 {
		short = short[:7]
	}
	if short != "" && !strings.HasSuffix(tag, short) {
		v = fmt.Sprintf("%s-%s", tag, short)
	}
	if dirty {
		v += "-dirty"
	}
	return v
}

// UserAgent is sent with every remote export request.
func UserAgent() string {
	return "tincture/" + Get()
}

// Info returns the build description of the running binary.
func Info() BuildInfo {
	return BuildInfo{
		Version:   Get(),
		GitCommit: GitCommit,
		GitTag:    GitTag,
		BuildTime: BuildTime,
		Dirty:     GitDirty == "dirty",
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}
