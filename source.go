package net64update

import (
	"context"
	"time"
)

// SourceRelease is a release as published on a feed.
type SourceRelease interface {
	GetID() int64
	GetTagName() string
	GetDraft() bool
	GetPrerelease() bool
	GetPublishedAt() time.Time
	GetReleaseNotes() string
	GetName() string
	GetURL() string

	GetAssets() []SourceAsset
}

// SourceAsset is a downloadable file attached to a release.
type SourceAsset interface {
	GetID() int64
	GetName() string
	GetSize() int
	GetBrowserDownloadURL() string
}

// Source interface to load the releases from (GitHubSource for example).
//
// ListReleases issues a single request and returns the releases in feed order (newest first).
// Any failure to obtain the list wraps ErrFetchFailed; an empty feed is a nil error with no release.
type Source interface {
	ListReleases(ctx context.Context, repository Repository) ([]SourceRelease, error)
}
