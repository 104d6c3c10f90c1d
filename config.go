package net64update

// VersionFunc returns the version currently installed. An empty string means
// nothing is installed yet: any valid release is then considered newer.
type VersionFunc func() string

// StaticVersion returns a VersionFunc always returning version.
func StaticVersion(version string) VersionFunc {
	return func() string {
		return version
	}
}

// Config represents the configuration of an update checker.
type Config struct {
	// Source where to load the releases from (example: GitHubSource).
	// Defaults to GitHub with no authentication.
	Source Source
	// Repository is the release stream to check (see StreamRepository). Mandatory.
	Repository Repository
	// CurrentVersion is called on every check to get the version to compare against.
	// The version of the companion server can change between two checks, hence the function.
	CurrentVersion VersionFunc
	// Downloader used by Download and InstallTo. Defaults to an unauthenticated downloader.
	Downloader *Downloader
	// Validator represents types which enable additional validation of downloaded release.
	// When set, only the assets published along with their validation file are selected.
	Validator Validator
	// Filters are regexp used to filter on specific assets for releases with multiple assets.
	// An asset is selected if it matches any of those, in addition to the marker and platform.
	Filters []string
	// Marker is the artifact family substring an asset name must contain. Defaults to DefaultMarker.
	Marker string
	// Platform is the platform identifier an asset name must contain. Defaults to CurrentPlatform().
	Platform string
	// SkipPrerelease ignores the releases flagged as "pre-release" (default to false)
	SkipPrerelease bool
}
