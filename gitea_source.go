package net64update

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"code.gitea.io/sdk/gitea"
)

// GiteaConfig is an object to pass to NewGiteaSource
type GiteaConfig struct {
	// APIToken represents Gitea API token. If it's not empty, it will be used for authentication for the API
	APIToken string
	// BaseURL is a base URL of your gitea instance
	BaseURL string
	// Timeout of the release list request. Defaults to DefaultTimeout.
	Timeout time.Duration
	// Transport used by the HTTP client (default to http.DefaultTransport)
	Transport http.RoundTripper
}

// GiteaSource is used to load release information from Gitea
type GiteaSource struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewGiteaSource creates a new GiteaSource from a config object.
// If you set your API token to the $GITEA_TOKEN environment variable, the client will use it.
// No request is made before the first call to ListReleases.
func NewGiteaSource(config GiteaConfig) (*GiteaSource, error) {
	token := config.APIToken
	if token == "" {
		// try the environment variable
		token = os.Getenv("GITEA_TOKEN")
	}
	if config.BaseURL == "" {
		return nil, fmt.Errorf("gitea: %w", ErrNoBaseURL)
	}

	return &GiteaSource{
		baseURL: config.BaseURL,
		token:   token,
		client:  ClientConfig{Timeout: config.Timeout, Transport: config.Transport}.metadataClient(),
	}, nil
}

// api returns a Gitea client bound to ctx. The server version probe is skipped
// so a listing costs a single request.
func (s *GiteaSource) api(ctx context.Context) (*gitea.Client, error) {
	options := []gitea.ClientOption{
		gitea.SetContext(ctx),
		gitea.SetHTTPClient(s.client),
		gitea.SetGiteaVersion(""),
	}
	if s.token != "" {
		options = append(options, gitea.SetToken(s.token))
	}
	return gitea.NewClient(s.baseURL, options...)
}

// ListReleases returns all available releases
func (s *GiteaSource) ListReleases(ctx context.Context, repository Repository) ([]SourceRelease, error) {
	owner, repo, err := repository.GetSlug()
	if err != nil {
		return nil, err
	}

	client, err := s.api(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot create Gitea client: %w", ErrFetchFailed, err)
	}

	rels, res, err := client.ListReleases(owner, repo, gitea.ListReleasesOptions{})
	if err != nil {
		if res != nil && res.Response != nil {
			return nil, fmt.Errorf("%w: Gitea API returned status %d for %s/%s: %w", ErrFetchFailed, res.StatusCode, owner, repo, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	releases := make([]SourceRelease, 0, len(rels))
	for _, rel := range rels {
		if rel == nil {
			continue
		}
		releases = append(releases, NewGiteaRelease(rel))
	}
	return releases, nil
}

// Verify interface
var _ Source = &GiteaSource{}
