// Package buildinfo holds release metadata injected at link time.
package buildinfo

// Injected via ldflags for release binaries; empty for local builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
