package net64update

import (
	"errors"
	"fmt"
	"regexp"
)

var errMissingRepository = errors.New("a repository must be set to check for updates")

// Updater is responsible for checking one release stream and delivering its assets.
// It is immutable once created and safe for concurrent use.
type Updater struct {
	source         Source
	repository     Repository
	currentVersion VersionFunc
	downloader     *Downloader
	validator      Validator
	matcher        AssetMatcher
	skipPrerelease bool
}

// NewUpdater creates a new updater instance.
// If you don't specify a source in the config object, GitHub will be used
func NewUpdater(config Config) (*Updater, error) {
	if config.Repository == nil {
		return nil, errMissingRepository
	}

	source := config.Source
	if source == nil {
		// default source is GitHub
		var err error
		source, err = NewGitHubSource(GitHubConfig{})
		if err != nil {
			return nil, err
		}
	}

	filtersRe := make([]*regexp.Regexp, 0, len(config.Filters))
	for _, filter := range config.Filters {
		re, err := regexp.Compile(filter)
		if err != nil {
			return nil, fmt.Errorf("could not compile regular expression %q for filtering releases: %w", filter, err)
		}
		filtersRe = append(filtersRe, re)
	}

	marker := config.Marker
	if marker == "" {
		marker = DefaultMarker
	}
	platform := config.Platform
	if platform == "" {
		platform = CurrentPlatform()
	}
	currentVersion := config.CurrentVersion
	if currentVersion == nil {
		currentVersion = StaticVersion("")
	}
	downloader := config.Downloader
	if downloader == nil {
		downloader = NewDownloader(ClientConfig{})
	}

	return &Updater{
		source:         source,
		repository:     config.Repository,
		currentVersion: currentVersion,
		downloader:     downloader,
		validator:      config.Validator,
		matcher: AssetMatcher{
			Marker:   marker,
			Platform: platform,
			Filters:  filtersRe,
		},
		skipPrerelease: config.SkipPrerelease,
	}, nil
}

// Repository returns the release stream checked by this updater
func (up *Updater) Repository() Repository {
	return up.repository
}
