// Package version provides build and version information for SubDeck.
package version

import (
	"fmt"
	"runtime"
)

// Version is the current version of SubDeck.
// Set via ldflags at build time, or defaults to dev:
// -X github.com/nzemmouri/subdeck/pkg/version.Version=$(VERSION)
var Version = "dev"

// Build information set via ldflags at build time.
var (
	// Commit is the git commit hash.
	Commit = "unknown"

	// Date is the build date in RFC3339 format.
	Date = "unknown"

	// GoVersion is the Go version used to build the binary.
	GoVersion = runtime.Version()
)

// BuildInfo is structured version information for JSON output.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Info returns the current build information.
func Info() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns the one-line version string.
func (b BuildInfo) String() string {
	return fmt.Sprintf("subdeck %s (%s, %s, %s)", b.Version, b.Commit, b.Date, b.Platform)
}
