// Package version exposes build metadata for the advance-app binaries.
//
// Version, GitCommit and BuildDate are intended to be overridden at build
// time with -ldflags; when they are not set the values fall back to whatever
// the Go toolchain recorded in the binary's build info.
package version

import "runtime/debug"

var (
	// Version is the semantic version of the build (set via ldflags).
	Version = "dev"

	// GitCommit is the short commit hash of the build (set via ldflags).
	GitCommit = "unknown"

	// BuildDate is the UTC build timestamp (set via ldflags).
	BuildDate = "unknown"
)

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// Get returns the build information for the running binary.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion

		for _, setting := range bi.Settings {
			switch setting.Key {
			case "vcs.revision":
				if GitCommit == "unknown" && len(setting.Value) >= 7 {
					info.GitCommit = setting.Value[:7]
				}
			case "vcs.time":
				if BuildDate == "unknown" {
					info.BuildDate = setting.Value
				}
			}
		}
	}

	return info
}
