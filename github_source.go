package net64update

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/go-github/v30/github"
	"golang.org/x/oauth2"
)

// GitHubConfig is an object to pass to NewGitHubSource
type GitHubConfig struct {
	// APIToken represents GitHub API token. If it's not empty, it will be used for authentication of GitHub API
	APIToken string
	// EnterpriseBaseURL is a base URL of GitHub API. If you want to use this library with GitHub Enterprise,
	// please set "https://{your-organization-address}/api/v3/" to this field.
	EnterpriseBaseURL string
	// EnterpriseUploadURL is a URL to upload stuffs to GitHub Enterprise instance. This is often the same as an API base URL.
	// So if this field is not set and EnterpriseBaseURL is set, EnterpriseBaseURL is also set to this field.
	EnterpriseUploadURL string
	// Username and Password are bare credentials, used instead of a token when no token is available.
	Username string
	Password string
	// Timeout of the release list request. Defaults to DefaultTimeout.
	Timeout time.Duration
	// Transport used by the HTTP client (default to http.DefaultTransport)
	Transport http.RoundTripper
}

// GitHubSource is used to load release information from GitHub
type GitHubSource struct {
	api *github.Client
}

// NewGitHubSource creates a new GitHubSource from a config object.
// It initializes a GitHub API client.
// If you set your API token to the $GITHUB_TOKEN environment variable, the client will use it.
// You can pass an empty GitHubConfig{} to use the default configuration
// The function will return an error if the GitHub Entreprise URLs in the config object cannot be parsed
func NewGitHubSource(config GitHubConfig) (*GitHubSource, error) {
	token := config.APIToken
	if token == "" {
		// try the environment variable
		token = os.Getenv("GITHUB_TOKEN")
	}
	hc := newHTTPClient(ClientConfig{
		Username:  config.Username,
		Password:  config.Password,
		Timeout:   config.Timeout,
		Transport: config.Transport,
	}, token)

	if config.EnterpriseBaseURL == "" {
		// public (or private) repository on standard GitHub offering
		return &GitHubSource{
			api: github.NewClient(hc),
		}, nil
	}

	u := config.EnterpriseUploadURL
	if u == "" {
		u = config.EnterpriseBaseURL
	}
	client, err := github.NewEnterpriseClient(config.EnterpriseBaseURL, u, hc)
	if err != nil {
		return nil, fmt.Errorf("cannot parse GitHub entreprise URL: %w", err)
	}
	return &GitHubSource{
		api: client,
	}, nil
}

// ListReleases returns the releases of the repository, newest first.
// A missing repository (404) is a fetch failure like any other.
func (s *GitHubSource) ListReleases(ctx context.Context, repository Repository) ([]SourceRelease, error) {
	owner, repo, err := repository.GetSlug()
	if err != nil {
		return nil, err
	}
	rels, res, err := s.api.Repositories.ListReleases(ctx, owner, repo, nil)
	if err != nil {
		if res != nil {
			return nil, fmt.Errorf("%w: GitHub API returned status %d for %s/%s: %w", ErrFetchFailed, res.StatusCode, owner, repo, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	releases := make([]SourceRelease, 0, len(rels))
	for _, rel := range rels {
		if rel == nil {
			continue
		}
		releases = append(releases, NewGitHubRelease(rel))
	}
	return releases, nil
}

// newHTTPClient returns a client bounded by the metadata timeout, authenticated with token when set,
// or else with the bare credentials of the config
func newHTTPClient(config ClientConfig, token string) *http.Client {
	hc := config.metadataClient()
	if token == "" {
		if config.Username != "" {
			hc.Transport = &github.BasicAuthTransport{
				Username:  config.Username,
				Password:  config.Password,
				Transport: hc.Transport,
			}
		}
		return hc
	}
	hc.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		Base:   hc.Transport,
	}
	return hc
}

// Verify interface
var _ Source = &GitHubSource{}
