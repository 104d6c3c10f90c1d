package net64update

import (
	"strings"
	"time"

	"github.com/xanzy/go-gitlab"
)

type GitLabRelease struct {
	upcoming    bool
	name        string
	tagName     string
	url         string
	publishedAt time.Time
	description string
	assets      []SourceAsset
}

// NewGitLabRelease converts a GitLab release. GitLab has no draft and no numeric release ID:
// the release links are the assets. An upcoming release (released_at in the future) is reported
// as a prerelease.
func NewGitLabRelease(from *gitlab.Release) *GitLabRelease {
	release := &GitLabRelease{
		upcoming:    from.UpcomingRelease,
		name:        from.Name,
		tagName:     strings.TrimSpace(from.TagName),
		url:         from.Commit.WebURL,
		description: from.Description,
		assets:      make([]SourceAsset, 0, len(from.Assets.Links)),
	}
	if from.ReleasedAt != nil {
		release.publishedAt = *from.ReleasedAt
	} else if from.CreatedAt != nil {
		release.publishedAt = *from.CreatedAt
	}
	for _, fromLink := range from.Assets.Links {
		if fromLink == nil || fromLink.Name == "" {
			continue
		}
		release.assets = append(release.assets, NewGitLabAsset(fromLink))
	}
	return release
}

func (r *GitLabRelease) GetID() int64 {
	return 0
}

func (r *GitLabRelease) GetTagName() string {
	return r.tagName
}

func (r *GitLabRelease) GetDraft() bool {
	return false
}

func (r *GitLabRelease) GetPrerelease() bool {
	return r.upcoming
}

func (r *GitLabRelease) GetPublishedAt() time.Time {
	return r.publishedAt
}

func (r *GitLabRelease) GetReleaseNotes() string {
	return r.description
}

func (r *GitLabRelease) GetName() string {
	return r.name
}

func (r *GitLabRelease) GetURL() string {
	return r.url
}

func (r *GitLabRelease) GetAssets() []SourceAsset {
	return r.assets
}

type GitLabAsset struct {
	id   int64
	name string
	url  string
}

// NewGitLabAsset prefers the permanent direct asset URL over the link target
func NewGitLabAsset(from *gitlab.ReleaseLink) *GitLabAsset {
	url := from.DirectAssetURL
	if url == "" {
		url = from.URL
	}
	return &GitLabAsset{
		id:   int64(from.ID),
		name: from.Name,
		url:  url,
	}
}

func (a *GitLabAsset) GetID() int64 {
	return a.id
}

func (a *GitLabAsset) GetName() string {
	return a.name
}

func (a *GitLabAsset) GetSize() int {
	return 0
}

func (a *GitLabAsset) GetBrowserDownloadURL() string {
	return a.url
}

// Verify interface
var (
	_ SourceRelease = &GitLabRelease{}
	_ SourceAsset   = &GitLabAsset{}
)
