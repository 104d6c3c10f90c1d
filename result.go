package net64update

import "time"

// CheckStatus is the terminal state of an update check
type CheckStatus int

const (
	// StatusNotFound means the feed was read but no release is both newer and available for this platform.
	StatusNotFound CheckStatus = iota
	// StatusFound means a newer release with a matching asset was found.
	StatusFound
	// StatusFetchFailed means the feed could not be read (offline, timeout, bad response).
	StatusFetchFailed
)

func (s CheckStatus) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusFetchFailed:
		return "fetch failed"
	default:
		return "not found"
	}
}

// UpdateResult is the outcome of an update check.
type UpdateResult struct {
	Status CheckStatus
	// Err is the reason of a StatusFetchFailed
	Err error
	// URL to download the selected asset
	URL string
	// AssetName is the filename of the selected asset
	AssetName string
	// AssetSize represents the size of asset in bytes, when published by the feed
	AssetSize int
	// ValidationURL is the URL of the validation file of the asset (only with a Validator)
	ValidationURL string
	// ValidationAssetName is the filename of the validation file
	ValidationAssetName string
	// Notes are the release notes (patch notes)
	Notes string
	// Version is the tag of the release
	Version string
	// ReleaseName represents a name of the release
	ReleaseName string
	// ReleaseURL is a URL to release page for browsing
	ReleaseURL string
	// PublishedAt is the time when the release was published
	PublishedAt time.Time
	// Prerelease is set to true for alpha, beta or release candidates
	Prerelease bool
}

// Found is true when an update is available
func (r UpdateResult) Found() bool {
	return r.Status == StatusFound
}

// Failed is true when the release feed could not be read
func (r UpdateResult) Failed() bool {
	return r.Status == StatusFetchFailed
}
