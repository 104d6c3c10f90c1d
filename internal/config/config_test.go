package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/net64plus/net64update"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.NoError(t, err)

	assert.Equal(t, "github", cfg.Source.Provider)
	assert.Equal(t, net64update.DefaultHttpFeed, cfg.Source.Feed)
	assert.Equal(t, net64update.DefaultBackendURL, cfg.Backend.URL)
	assert.Equal(t, net64update.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Backend.APIKey)
	assert.Empty(t, cfg.Server.Path)
	assert.False(t, cfg.SkipPrerelease)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	writeFile(t, path, `
source:
  provider: http
  url: https://mirror.example.com/feeds
  feed: manifest.yaml
backend:
  api-key: secret
timeout: 3s
server:
  path: /opt/net64/net64plus-server
  version: 1.0.2
skip-prerelease: true
log:
  level: debug
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, Source{Provider: "http", URL: "https://mirror.example.com/feeds", Feed: "manifest.yaml"}, cfg.Source)
	assert.Equal(t, Backend{URL: net64update.DefaultBackendURL, APIKey: "secret"}, cfg.Backend)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, Server{Path: "/opt/net64/net64plus-server", Version: "1.0.2"}, cfg.Server)
	assert.True(t, cfg.SkipPrerelease)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestEnvironmentAndOverridesPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	writeFile(t, path, `
backend:
  api-key: from-file
  url: https://file.example.com/api/
server:
  version: 1.0.0
`)
	t.Setenv("NET64_BACKEND_API_KEY", "from-env")
	t.Setenv("NET64_SERVER_VERSION", "1.1.0")
	t.Setenv("NET64_SOURCE_TOKEN", "token-from-env")

	cfg, err := Load(path, map[string]any{KeyServerVersion: "2.0.0"})
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Backend.APIKey)
	assert.Equal(t, "https://file.example.com/api/", cfg.Backend.URL)
	assert.Equal(t, "token-from-env", cfg.Source.Token)
	assert.Equal(t, "2.0.0", cfg.Server.Version)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	writeFile(t, path, "   \n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "github", cfg.Source.Provider)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	invalidYAML := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalidYAML, "source: [unterminated\n")

	badTimeout := filepath.Join(dir, "timeout.yaml")
	writeFile(t, badTimeout, "timeout: soon\n")

	negativeTimeout := filepath.Join(dir, "negative.yaml")
	writeFile(t, negativeTimeout, "timeout: -1s\n")

	badProvider := filepath.Join(dir, "provider.yaml")
	writeFile(t, badProvider, "source:\n  provider: bitbucket\n")

	for _, fixture := range []struct {
		name string
		path string
		msg  string
	}{
		{"directory", dir, "is a directory"},
		{"invalid yaml", invalidYAML, "parse"},
		{"bad timeout", badTimeout, "invalid timeout"},
		{"negative timeout", negativeTimeout, "must be positive"},
		{"bad provider", badProvider, "bitbucket"},
	} {
		t.Run(fixture.name, func(t *testing.T) {
			_, err := Load(fixture.path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), fixture.msg)
		})
	}
}

func TestInvalidProviderIsSentinel(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), map[string]any{KeySourceProvider: "svn"})
	assert.ErrorIs(t, err, ErrInvalidProvider)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, DefaultConfigFilename, filepath.Base(DefaultPath()))
}
