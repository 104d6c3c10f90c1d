// Package version exposes build metadata of the command line tools.
//
// Version, Commit and BuildTime are injected at build time via -ldflags -X.
package version
