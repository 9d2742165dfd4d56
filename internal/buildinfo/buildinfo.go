// Package buildinfo carries release metadata set with -ldflags -X at build time.
package buildinfo

// Empty for local builds; the version command falls back to runtime/debug.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
