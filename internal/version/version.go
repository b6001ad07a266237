// Package version holds the pspr build stamp.
package version

import (
	"fmt"
	"runtime/debug"
)

// Name is the program name shown in version strings.
const Name = "pspr"

// Set with -ldflags "-X github.com/tessro/pspr/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Resolved returns Version, falling back to the module version recorded
// by `go install` when no ldflags were given.
func Resolved() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// String is the one-line version banner.
func String() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s)", Name, Resolved(), Commit, Date)
}
