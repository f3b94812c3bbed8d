// Package version provides build version information for the CLI.
package version

import (
	"runtime/debug"
	"strings"
)

const unknownValue = "unknown"

// These variables can be set at build time using -ldflags
var (
	// Version is the version of the binary, set at build time
	Version = "dev"
	// GitCommit is the git commit hash, set at build time
	GitCommit = unknownValue
)

// GetVersion returns the version string, falling back to VCS build metadata
// when no version was injected at build time.
func GetVersion() string {
	v := Version
	if v == "dev" {
		if commit := vcsRevision(); commit != "" {
			v = "dev-" + commit
		}
	}
	return strings.TrimPrefix(v, "v")
}

func vcsRevision() string {
	if GitCommit != unknownValue {
		return shorten(GitCommit)
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range buildInfo.Settings {
		if setting.Key == "vcs.revision" {
			return shorten(setting.Value)
		}
	}
	return ""
}

func shorten(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
