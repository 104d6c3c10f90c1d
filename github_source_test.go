package net64update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const githubReleasesResponse = `[
	{
		"id": 25000000,
		"tag_name": "v2.1.0",
		"name": "Net64+ 2.1.0",
		"html_url": "https://github.com/Tarnadas/net64plus/releases/tag/v2.1.0",
		"draft": false,
		"prerelease": false,
		"published_at": "2020-03-01T10:00:00Z",
		"body": "Bug fixes",
		"assets": [
			{
				"id": 18000000,
				"name": "net64plus_2.1.0_64plus_win32.zip",
				"size": 54000000,
				"browser_download_url": "https://github.com/Tarnadas/net64plus/releases/download/v2.1.0/net64plus_2.1.0_64plus_win32.zip"
			}
		]
	},
	{
		"id": 24000000,
		"tag_name": "v2.1.0-beta",
		"draft": true,
		"prerelease": true,
		"assets": []
	}
]`

func newGitHubEnterpriseServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/tarnadas/net64plus/releases", handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestGitHubTokenEnv(t *testing.T) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		t.Skip("because $GITHUB_TOKEN is not set")
	}

	if _, err := NewGitHubSource(GitHubConfig{}); err != nil {
		t.Error("Failed to initialize GitHub source with empty config")
	}
	if _, err := NewGitHubSource(GitHubConfig{APIToken: token}); err != nil {
		t.Error("Failed to initialize GitHub source with API token config")
	}
}

func TestGitHubTokenIsNotSet(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	if _, err := NewGitHubSource(GitHubConfig{}); err != nil {
		t.Error("Failed to initialize GitHub source with empty config")
	}
}

func TestGitHubEnterpriseClientInvalidURL(t *testing.T) {
	_, err := NewGitHubSource(GitHubConfig{APIToken: "my_token", EnterpriseBaseURL: ":this is not a URL"})
	if err == nil {
		t.Fatal("Invalid URL should raise an error")
	}
}

func TestGitHubEnterpriseClientValidURL(t *testing.T) {
	_, err := NewGitHubSource(GitHubConfig{APIToken: "my_token", EnterpriseBaseURL: "http://localhost"})
	if err != nil {
		t.Fatal("Failed to initialize GitHub source with valid URL")
	}
}

func TestGitHubListReleasesContextCancelled(t *testing.T) {
	server := newGitHubEnterpriseServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(githubReleasesResponse))
	})
	source, err := NewGitHubSource(GitHubConfig{EnterpriseBaseURL: server.URL + "/api/v3/"})
	require.NoError(t, err)

	ctx, cancelFn := context.WithCancel(context.Background())
	cancelFn()

	_, err = source.ListReleases(ctx, ParseSlug("tarnadas/net64plus"))
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGitHubListReleasesInvalidSlug(t *testing.T) {
	source, err := NewGitHubSource(GitHubConfig{EnterpriseBaseURL: "http://localhost"})
	require.NoError(t, err)

	_, err = source.ListReleases(context.Background(), ParseSlug("net64plus"))
	assert.ErrorIs(t, err, ErrInvalidSlug)
}

func TestGitHubListReleases(t *testing.T) {
	var authorization string
	server := newGitHubEnterpriseServer(t, func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(githubReleasesResponse))
	})
	source, err := NewGitHubSource(GitHubConfig{APIToken: "my_token", EnterpriseBaseURL: server.URL + "/api/v3/"})
	require.NoError(t, err)

	releases, err := source.ListReleases(context.Background(), ParseSlug("tarnadas/net64plus"))
	require.NoError(t, err)
	require.Len(t, releases, 2)
	assert.Equal(t, "Bearer my_token", authorization)

	release := releases[0]
	assert.Equal(t, int64(25000000), release.GetID())
	assert.Equal(t, "v2.1.0", release.GetTagName())
	assert.Equal(t, "Net64+ 2.1.0", release.GetName())
	assert.Equal(t, "Bug fixes", release.GetReleaseNotes())
	assert.Equal(t, "https://github.com/Tarnadas/net64plus/releases/tag/v2.1.0", release.GetURL())
	assert.True(t, release.GetPublishedAt().Equal(time.Date(2020, 3, 1, 10, 0, 0, 0, time.UTC)))

	assets := release.GetAssets()
	require.Len(t, assets, 1)
	assert.Equal(t, int64(18000000), assets[0].GetID())
	assert.Equal(t, "net64plus_2.1.0_64plus_win32.zip", assets[0].GetName())
	assert.Equal(t, 54000000, assets[0].GetSize())
	assert.Equal(t, "https://github.com/Tarnadas/net64plus/releases/download/v2.1.0/net64plus_2.1.0_64plus_win32.zip", assets[0].GetBrowserDownloadURL())

	assert.True(t, releases[1].GetDraft())
	assert.True(t, releases[1].GetPrerelease())
	assert.Empty(t, releases[1].GetAssets())
}

func TestGitHubListReleasesNotFound(t *testing.T) {
	server := newGitHubEnterpriseServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})
	source, err := NewGitHubSource(GitHubConfig{EnterpriseBaseURL: server.URL + "/api/v3/"})
	require.NoError(t, err)

	releases, err := source.ListReleases(context.Background(), ParseSlug("tarnadas/net64plus"))
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.Empty(t, releases)
}

func TestGitHubListReleasesTimeout(t *testing.T) {
	done := make(chan struct{})
	server := newGitHubEnterpriseServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(done) })

	source, err := NewGitHubSource(GitHubConfig{EnterpriseBaseURL: server.URL + "/api/v3/", Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = source.ListReleases(context.Background(), ParseSlug("tarnadas/net64plus"))
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestGitHubListReleasesBasicAuth(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	var username, password string
	var ok bool
	server := newGitHubEnterpriseServer(t, func(w http.ResponseWriter, r *http.Request) {
		username, password, ok = r.BasicAuth()
		_, _ = w.Write([]byte("[]"))
	})
	source, err := NewGitHubSource(GitHubConfig{
		EnterpriseBaseURL: server.URL + "/api/v3/",
		Username:          "tarnadas",
		Password:          "pw",
	})
	require.NoError(t, err)

	releases, err := source.ListReleases(context.Background(), ParseSlug("tarnadas/net64plus"))
	require.NoError(t, err)
	assert.Empty(t, releases)
	assert.True(t, ok)
	assert.Equal(t, "tarnadas", username)
	assert.Equal(t, "pw", password)
}

func TestGitHubListReleasesSkipsNullEntries(t *testing.T) {
	server := newGitHubEnterpriseServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[null, {"id": 1, "tag_name": "v2.0.0", "assets": [null]}, null]`))
	})
	source, err := NewGitHubSource(GitHubConfig{EnterpriseBaseURL: server.URL + "/api/v3/"})
	require.NoError(t, err)

	releases, err := source.ListReleases(context.Background(), ParseSlug("tarnadas/net64plus"))
	require.NoError(t, err)
	require.Len(t, releases, 1)
	assert.Equal(t, "v2.0.0", releases[0].GetTagName())
	assert.Empty(t, releases[0].GetAssets())
}

func TestCheckForUpdateWithNullGitHubFeed(t *testing.T) {
	server := newGitHubEnterpriseServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[null]`))
	})
	source, err := NewGitHubSource(GitHubConfig{EnterpriseBaseURL: server.URL + "/api/v3/"})
	require.NoError(t, err)
	up := newTestUpdater(t, source, "v1.0.0", Config{})

	var result UpdateResult
	assert.NotPanics(t, func() {
		result = up.CheckForUpdate(context.Background())
	})
	assert.Equal(t, StatusNotFound, result.Status)
	assert.NoError(t, result.Err)
}
