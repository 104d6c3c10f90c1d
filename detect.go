package net64update

import (
	"context"
	"regexp"
	"strings"
)

// AssetMatcher selects the asset built for a platform within a release.
type AssetMatcher struct {
	// Marker is the artifact family substring ("64plus")
	Marker string
	// Platform is the platform identifier substring ("win32")
	Platform string
	// Filters are optional: when some are defined, the name must match any of them
	Filters []*regexp.Regexp
}

// Match returns true when the asset name contains both the marker and the platform identifier
// and satisfies the filters.
func (m AssetMatcher) Match(name string) bool {
	if name == "" || !strings.Contains(name, m.Marker) || !strings.Contains(name, m.Platform) {
		return false
	}
	if len(m.Filters) == 0 {
		return true
	}
	for _, filter := range m.Filters {
		if filter.MatchString(name) {
			log.Printf("Selected filtered asset: %s", name)
			return true
		}
	}
	log.Printf("Skipping asset %q not matching filters", name)
	return false
}

// CheckForUpdate fetches the release feed and looks for a release newer than the current version
// with an asset for this platform. Releases are scanned in feed order: when the newest release has
// no build for this platform yet, an older (but still newer than current) release can be selected.
//
// It never returns an error: a feed that cannot be read ends in StatusFetchFailed,
// a feed with nothing to offer in StatusNotFound.
func (up *Updater) CheckForUpdate(ctx context.Context) UpdateResult {
	current := up.currentVersion()
	repo, _ := up.repository.Get()
	log.Printf("Checking for a release of %v newer than %q", repo, current)

	rels, err := up.source.ListReleases(ctx, up.repository)
	if err != nil {
		warnf("Update check of %v failed. You might be offline: %v", repo, err)
		return UpdateResult{Status: StatusFetchFailed, Err: err}
	}
	log.Printf("Received %d releases of %v", len(rels), repo)

	rel, asset, validationAsset, found := up.findReleaseAndAsset(rels, current)
	if !found {
		log.Printf("No update available for platform %q", up.matcher.Platform)
		return UpdateResult{Status: StatusNotFound}
	}

	url := asset.GetBrowserDownloadURL()
	log.Printf("Successfully fetched the latest release. tag: %s, name: %s, URL: %s, Asset: %s", rel.GetTagName(), rel.GetName(), rel.GetURL(), url)

	result := UpdateResult{
		Status:      StatusFound,
		URL:         url,
		AssetName:   asset.GetName(),
		AssetSize:   asset.GetSize(),
		Notes:       rel.GetReleaseNotes(),
		Version:     rel.GetTagName(),
		ReleaseName: rel.GetName(),
		ReleaseURL:  rel.GetURL(),
		PublishedAt: rel.GetPublishedAt(),
		Prerelease:  rel.GetPrerelease(),
	}
	if validationAsset != nil {
		result.ValidationURL = validationAsset.GetBrowserDownloadURL()
		result.ValidationAssetName = validationAsset.GetName()
	}
	return result
}

func (up *Updater) findReleaseAndAsset(rels []SourceRelease, current string) (SourceRelease, SourceAsset, SourceAsset, bool) {
	for _, rel := range rels {
		if !IsReleaseValid(rel) {
			continue
		}
		if up.skipPrerelease && rel.GetPrerelease() {
			log.Printf("Skip pre-release version %s", rel.GetTagName())
			continue
		}
		if !IsVersionNewer(rel.GetTagName(), current) {
			log.Printf("Skip version %s not newer than %q", rel.GetTagName(), current)
			continue
		}
		if asset, validationAsset, ok := up.findAssetFromRelease(rel); ok {
			return rel, asset, validationAsset, true
		}
	}
	return nil, nil, nil, false
}

// findAssetFromRelease returns the first matching asset of the release,
// along with its validation asset when a validator is configured
func (up *Updater) findAssetFromRelease(rel SourceRelease) (SourceAsset, SourceAsset, bool) {
	for _, asset := range rel.GetAssets() {
		if asset == nil || !up.matcher.Match(asset.GetName()) {
			continue
		}
		if asset.GetBrowserDownloadURL() == "" {
			log.Printf("Skipping asset %q without download URL", asset.GetName())
			continue
		}
		if up.validator == nil {
			return asset, nil, true
		}
		validationName := up.validator.GetValidationAssetName(asset.GetName())
		validationAsset, ok := findValidationAsset(rel, validationName)
		if !ok {
			warnf("Skipping asset %q: validation file %q is missing from release %s", asset.GetName(), validationName, rel.GetTagName())
			continue
		}
		return asset, validationAsset, true
	}

	log.Printf("No suitable asset was found in release %s", rel.GetTagName())
	return nil, nil, false
}

func findValidationAsset(rel SourceRelease, validationName string) (SourceAsset, bool) {
	for _, asset := range rel.GetAssets() {
		if asset != nil && asset.GetName() == validationName && asset.GetBrowserDownloadURL() != "" {
			return asset, true
		}
	}
	return nil, false
}
