// Package version holds build information injected by ldflags
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version information injected by ldflags during build.
var (
	// Version is the current version (e.g., "1.0.0")
	Version = "dev"
	// Commit is the git commit hash
	Commit = "unknown"
	// BuildDate is the build timestamp
	BuildDate = "unknown"
)

// Semver parses Version, accepting a leading "v"
func Semver() (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(Version, "v"))
}

// IsRelease reports whether Version is a proper release, not a dev build
// or a prerelease
func IsRelease() bool {
	v, err := Semver()
	return err == nil && v.Prerelease() == ""
}

// String returns the version line printed by --version
func String() string {
	name := Version
	if v, err := Semver(); err == nil {
		name = "v" + v.String()
	}
	return fmt.Sprintf("lsgrid %s (commit %s, built %s)", name, Commit, BuildDate)
}
