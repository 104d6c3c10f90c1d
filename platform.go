package net64update

import "runtime"

// DefaultMarker is the substring every Net64+ artifact name contains
// ("net64plus-2.4.0-win32.zip", "net64plus-server_linux.zip").
const DefaultMarker = "64plus"

// platform identifiers as used in the published asset names
var platformIdentifiers = map[string]string{
	"windows": "win32",
	"darwin":  "darwin",
	"linux":   "linux",
	"freebsd": "freebsd",
	"openbsd": "openbsd",
}

// PlatformIdentifier returns the platform identifier for a GOOS value.
// Unknown systems use their GOOS name.
func PlatformIdentifier(goos string) string {
	if id, ok := platformIdentifiers[goos]; ok {
		return id
	}
	return goos
}

// CurrentPlatform is the platform identifier of the running system
func CurrentPlatform() string {
	return PlatformIdentifier(runtime.GOOS)
}
