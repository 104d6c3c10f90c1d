// Copyright (c) 2024 Mr. Gecko's Media (James Coleman). http://mrgeckosmedia.com/
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package net64update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// DefaultHttpFeed is the path of the release feed under {BaseURL}/{owner}/{repo}/
const DefaultHttpFeed = "releases"

// HttpManifest is the YAML flavour of a release feed.
type HttpManifest struct {
	LastReleaseID int64          `yaml:"last_release_id"`
	LastAssetID   int64          `yaml:"last_asset_id"`
	Releases      []*HttpRelease `yaml:"releases"`
}

// HttpConfig is an object to pass to NewHttpSource
type HttpConfig struct {
	ClientConfig
	// Feed is the path of the release list relative to {BaseURL}/{owner}/{repo}. Defaults to DefaultHttpFeed.
	// A feed ending with ".yaml" or ".yml" is read as an HttpManifest, anything else as a JSON array of releases
	// (unless the server answers with a YAML content type).
	Feed string
}

// HttpSource is used to load release information from a plain HTTP server
// (a mirror of the GitHub releases API, or a static manifest.yaml).
type HttpSource struct {
	config  ClientConfig
	baseURL string
	feed    string
	client  *http.Client
}

// NewHttpSource creates a new HttpSource from a config object.
func NewHttpSource(config HttpConfig) (*HttpSource, error) {
	if config.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	if _, err := url.ParseRequestURI(config.BaseURL); err != nil {
		return nil, err
	}
	if config.Feed == "" {
		config.Feed = DefaultHttpFeed
	}

	return &HttpSource{
		config:  config.ClientConfig,
		baseURL: config.BaseURL,
		feed:    config.Feed,
		client:  config.metadataClient(),
	}, nil
}

// Returns a full URI for a relative path URI.
func (s *HttpSource) uriRelative(uri, owner, repo string) string {
	if uri == "" {
		return uri
	}
	// an absolute URL is kept as-is
	if u, err := url.Parse(uri); err == nil && u.IsAbs() {
		return uri
	}
	newURL, err := url.JoinPath(s.baseURL, owner, repo, uri)
	if err != nil {
		return uri
	}
	return newURL
}

// ListReleases returns all available releases, in the order of the feed.
func (s *HttpSource) ListReleases(ctx context.Context, repository Repository) ([]SourceRelease, error) {
	owner, repo, err := repository.GetSlug()
	if err != nil {
		return nil, err
	}

	uri, err := url.JoinPath(s.baseURL, owner, repo, s.feed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	s.config.decorate(req)
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP request to %s failed with status code %d", ErrFetchFailed, uri, res.StatusCode)
	}

	var list []*HttpRelease
	if s.isYAML(res) {
		list, err = decodeManifest(res.Body)
	} else {
		err = json.NewDecoder(res.Body).Decode(&list)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode release list from %s: %w", ErrFetchFailed, uri, err)
	}

	releases := make([]SourceRelease, 0, len(list))
	for _, release := range list {
		if release == nil {
			continue
		}
		release.URL = s.uriRelative(release.URL, owner, repo)
		for _, asset := range release.Assets {
			if asset != nil {
				asset.URL = s.uriRelative(asset.URL, owner, repo)
			}
		}
		releases = append(releases, release)
	}
	log.Printf("%d releases found on %s", len(releases), uri)
	return releases, nil
}

func (s *HttpSource) isYAML(res *http.Response) bool {
	if strings.HasSuffix(s.feed, ".yaml") || strings.HasSuffix(s.feed, ".yml") {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(res.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return strings.Contains(mediaType, "yaml")
}

// decodeManifest accepts both a manifest document and a bare list of releases
func decodeManifest(r io.Reader) ([]*HttpRelease, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		var list []*HttpRelease
		err := node.Decode(&list)
		return list, err
	}
	manifest := new(HttpManifest)
	if err := node.Decode(manifest); err != nil {
		return nil, err
	}
	return manifest.Releases, nil
}

// Verify interface
var _ Source = &HttpSource{}
