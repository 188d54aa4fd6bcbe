// Package version holds build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version (injected at build time via ldflags)
	Version = "dev"

	// GitCommit is the git commit hash (injected at build time via ldflags)
	GitCommit = "unknown"

	// BuildDate is the build date (injected at build time via ldflags)
	BuildDate = "unknown"
)

// Info is the machine-readable form printed by `patmatch version --json`.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get collects the build metadata of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a detailed version line with build info.
func (i Info) String() string {
	return fmt.Sprintf("patmatch %s (commit: %s, built: %s, %s %s)",
		i.Version, i.Short(), i.BuildDate, i.GoVersion, i.Platform)
}

// Short returns the version with an abbreviated commit, e.g. "1.2.0-3f2b8a4".
func (i Info) Short() string {
	if i.GitCommit != "unknown" && len(i.GitCommit) > 7 {
		return fmt.Sprintf("%s-%s", i.Version, i.GitCommit[:7])
	}
	return i.Version
}
