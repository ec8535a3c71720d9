// Package version provides version information for tablewise.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

const unknownValue = "unknown"

// Build-time variables set by ldflags
var (
	Version   = "dev"
	BuildDate = unknownValue
	GitCommit = unknownValue
	GoVersion = runtime.Version()
)

// BuildInfo contains detailed build information
type BuildInfo struct {
	Version   string    `json:"version"`
	BuildDate string    `json:"build_date"`
	GitCommit string    `json:"git_commit"`
	GoVersion string    `json:"go_version"`
	BuildTime time.Time `json:"build_time"`
}

// Info returns detailed build information
func Info() BuildInfo {
	buildTime, _ := time.Parse(time.RFC3339, BuildDate)
	if buildTime.IsZero() {
		buildTime = time.Now()
	}

	info := BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: GoVersion,
		BuildTime: buildTime,
	}

	// Fall back to module build info when ldflags were not set
	if bi, ok := debug.ReadBuildInfo(); ok && info.Version == "dev" {
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
	}

	return info
}

// String returns a human-readable version line
func (b BuildInfo) String() string {
	return fmt.Sprintf("tablewise %s (commit %s, built %s, %s)\n",
		b.Version, b.GitCommit, b.BuildDate, b.GoVersion)
}
