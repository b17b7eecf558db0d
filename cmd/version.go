// Package cmd holds build metadata injected with
// -ldflags "-X github.com/thoreinstein/pkgmeta/cmd.Version=...".
package cmd

var (
	// Version is the release version, "dev" for local builds.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
