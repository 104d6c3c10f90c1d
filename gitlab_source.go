package net64update

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/xanzy/go-gitlab"
)

// GitLabConfig is an object to pass to NewGitLabSource
type GitLabConfig struct {
	// APIToken represents GitLab API token. If it's not empty, it will be used for authentication for the API
	APIToken string
	// BaseURL is a base URL of your private GitLab instance
	BaseURL string
	// Timeout of the release list request. Defaults to DefaultTimeout.
	Timeout time.Duration
	// Transport used by the HTTP client (default to http.DefaultTransport)
	Transport http.RoundTripper
}

// GitLabSource is used to load release information from GitLab
type GitLabSource struct {
	api *gitlab.Client
}

// NewGitLabSource creates a new GitLabSource from a config object.
// It initializes a GitLab API client.
// If you set your API token to the $GITLAB_TOKEN environment variable, the client will use it.
// You can pass an empty GitLabConfig{} to use the default configuration
// The function will return an error if the GitLab URL in the config object cannot be parsed
func NewGitLabSource(config GitLabConfig) (*GitLabSource, error) {
	token := config.APIToken
	if token == "" {
		// try the environment variable
		token = os.Getenv("GITLAB_TOKEN")
	}
	hc := ClientConfig{Timeout: config.Timeout, Transport: config.Transport}.metadataClient()
	options := []gitlab.ClientOptionFunc{
		gitlab.WithHTTPClient(hc),
		// a failed listing is reported, never retried
		gitlab.WithCustomRetryMax(0),
	}
	if config.BaseURL != "" {
		options = append(options, gitlab.WithBaseURL(config.BaseURL))
	}
	client, err := gitlab.NewClient(token, options...)
	if err != nil {
		return nil, fmt.Errorf("cannot create GitLab client: %w", err)
	}
	return &GitLabSource{
		api: client,
	}, nil
}

// ListReleases returns all available releases.
// The repository can be an "owner/repo" slug or a numeric project ID.
func (s *GitLabSource) ListReleases(ctx context.Context, repository Repository) ([]SourceRelease, error) {
	pid, err := repository.Get()
	if err != nil {
		return nil, err
	}

	rels, res, err := s.api.Releases.ListReleases(pid, nil, gitlab.WithContext(ctx))
	if err != nil {
		if res != nil && res.Response != nil {
			return nil, fmt.Errorf("%w: GitLab API returned status %d for %v: %w", ErrFetchFailed, res.StatusCode, pid, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	releases := make([]SourceRelease, 0, len(rels))
	for _, rel := range rels {
		if rel == nil {
			continue
		}
		releases = append(releases, NewGitLabRelease(rel))
	}
	return releases, nil
}

// Verify interface
var _ Source = &GitLabSource{}
