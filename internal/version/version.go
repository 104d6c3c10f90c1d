package version

import (
	"fmt"

	"github.com/net64plus/net64update"
)

var (
	// Version of the build. An empty or "dev" version makes every application release look newer.
	Version = "dev"
	// Commit is the short git SHA embedded at build time.
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the version string.
func Short() string {
	return Version
}

// Released reports whether Version is a release tag the updater can compare against.
func Released() bool {
	_, err := net64update.ParseVersion(Version)
	return err == nil
}

// Current returns the version to compare releases against: empty for a development build.
func Current() string {
	if !Released() {
		return ""
	}
	return Version
}

// Full returns a human-readable version string with commit and build time.
func Full() string {
	v := Version
	if !Released() {
		v += " (development build)"
	}
	return fmt.Sprintf("version: %s, commit: %s, built at: %s", v, Commit, BuildTime)
}
