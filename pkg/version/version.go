// Package version holds the build version, overridden at release time via
// -ldflags "-X github.com/jsminer/jsminer/pkg/version.Version=...".
package version

// Version is the current jsminer version.
var Version = "dev"
