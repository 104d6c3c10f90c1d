// Package cmd holds the helpers shared by the command line tools.
package cmd

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/net64plus/net64update"
)

// SourceOptions are the settings common to every release source.
type SourceOptions struct {
	// Token authenticates against the forge API (or is sent as API key to an HTTP feed)
	Token string
	// Feed is the release feed path of an HTTP source
	Feed string
	// Timeout of the release list request
	Timeout time.Duration
}

// SplitDomainSlug tries to make sense of the repository string
// and returns a domain name (if present) and a slug.
//
// Example of valid entries:
//
//   - "owner/name"
//   - "github.com/owner/name"
//   - "http://github.com/owner/name"
func SplitDomainSlug(repo string) (domain, slug string, err error) {
	// simple case first => only a slug
	parts := strings.Split(repo, "/")
	if len(parts) == 2 {
		if parts[0] == "" || parts[1] == "" {
			return "", "", fmt.Errorf("invalid slug or URL %q", repo)
		}
		return "", repo, nil
	}
	repo = strings.TrimSuffix(repo, "/")

	if !strings.HasPrefix(repo, "http") && !strings.Contains(repo, "://") && !strings.HasPrefix(repo, "/") {
		repo = "https://" + repo
	}

	repoURL, err := url.Parse(repo)
	if err != nil {
		return "", "", err
	}

	// make sure hostname looks like a real domain name
	if !strings.Contains(repoURL.Hostname(), ".") {
		return "", "", fmt.Errorf("invalid domain name %q", repoURL.Hostname())
	}
	domain = repoURL.Scheme + "://" + repoURL.Host
	slug = strings.TrimPrefix(repoURL.Path, "/")

	if slug == "" {
		return "", "", fmt.Errorf("invalid URL %q", repo)
	}
	return domain, slug, nil
}

// GetSource returns the release source for a provider name ("github", "gitea", "gitlab" or "http").
// With "auto" or an empty name the provider is guessed from the domain, GitHub being the default.
func GetSource(provider, domain string, options SourceOptions) (net64update.Source, error) {
	if provider != "auto" && provider != "" {
		return getSourceFromName(provider, domain, options)
	}
	return getSourceFromURL(domain, options)
}

func getSourceFromName(name, domain string, options SourceOptions) (net64update.Source, error) {
	switch name {
	case "github":
		return newGitHubSource(domain, options)
	case "gitea":
		return newGiteaSource(domain, options)
	case "gitlab":
		return newGitLabSource(domain, options)
	case "http":
		return net64update.NewHttpSource(net64update.HttpConfig{
			ClientConfig: net64update.ClientConfig{
				BaseURL: domain,
				APIKey:  options.Token,
				Timeout: options.Timeout,
			},
			Feed: options.Feed,
		})
	default:
		return nil, fmt.Errorf("unknown source provider %q", name)
	}
}

func getSourceFromURL(domain string, options SourceOptions) (net64update.Source, error) {
	if strings.Contains(domain, "gitea") {
		return newGiteaSource(domain, options)
	}
	if strings.Contains(domain, "gitlab") {
		return newGitLabSource(domain, options)
	}
	return newGitHubSource(domain, options)
}

func newGitHubSource(domain string, options SourceOptions) (net64update.Source, error) {
	config := net64update.GitHubConfig{
		APIToken: options.Token,
		Timeout:  options.Timeout,
	}
	if domain != "" && !strings.HasSuffix(domain, "://github.com") {
		config.EnterpriseBaseURL = domain
	}
	return net64update.NewGitHubSource(config)
}

func newGiteaSource(domain string, options SourceOptions) (net64update.Source, error) {
	return net64update.NewGiteaSource(net64update.GiteaConfig{
		BaseURL:  domain,
		APIToken: options.Token,
		Timeout:  options.Timeout,
	})
}

func newGitLabSource(domain string, options SourceOptions) (net64update.Source, error) {
	return net64update.NewGitLabSource(net64update.GitLabConfig{
		BaseURL:  domain,
		APIToken: options.Token,
		Timeout:  options.Timeout,
	})
}
