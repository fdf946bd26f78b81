// Package version holds build-time version information for the relnote
// binary. The variables are overridden via -ldflags at release time.
package version

// Version is the semantic version of the binary.
var Version = "dev"

// Commit is the git commit the binary was built from.
var Commit = "none"

// Date is the build timestamp.
var Date = "unknown"
