// Package version provides build-time version information for the CLI.
package version

// These variables can be overridden at build time using ldflags:
// go build -ldflags "-X gtmaudit/internal/version.Version=1.2.0 -X gtmaudit/internal/version.Commit=abc123"
var (
	// Version is the semantic version of gtmaudit.
	Version = "1.0.0"

	// Commit is the git commit hash (set at build time).
	Commit = "unknown"

	// BuildDate is the build timestamp (set at build time).
	BuildDate = "unknown"
)

// Info returns a short version string.
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}
