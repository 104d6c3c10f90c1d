// Package config loads the settings of the net64-update command.
//
// Values are layered: defaults < config file < NET64_* environment variables < overrides
// (command line flags). A missing config file is not an error.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/net64plus/net64update"
)

const (
	KeySourceProvider = "source.provider"
	KeySourceURL      = "source.url"
	KeySourceToken    = "source.token"
	KeySourceFeed     = "source.feed"
	KeyBackendURL     = "backend.url"
	KeyBackendAPIKey  = "backend.api-key"
	KeyTimeout        = "timeout"
	KeyAppVersion     = "app.version"
	KeyServerPath     = "server.path"
	KeyServerVersion  = "server.version"
	KeyPlatform       = "platform"
	KeySkipPrerelease = "skip-prerelease"
	KeyLogLevel       = "log.level"
)

const (
	// DefaultConfigFilename is looked up in the user configuration directory when no path is given.
	DefaultConfigFilename = "net64-update.yaml"
	envPrefix             = "NET64"
)

// Providers accepted for KeySourceProvider. "auto" guesses from the source URL.
var Providers = []string{"auto", "github", "gitea", "gitlab", "http"}

var ErrInvalidProvider = errors.New("invalid source provider")

// Config is the resolved configuration.
type Config struct {
	Source         Source
	Backend        Backend
	Timeout        time.Duration
	AppVersion     string
	Server         Server
	Platform       string
	SkipPrerelease bool
	LogLevel       string
}

// Source describes where releases are published.
type Source struct {
	Provider string
	URL      string
	Token    string
	Feed     string
}

// Backend is the server listing API.
type Backend struct {
	URL    string
	APIKey string
}

// Server is the local install of the companion server.
type Server struct {
	Path    string
	Version string
}

// Load reads the configuration file at path (or the default one when empty)
// and applies overrides on top of every other layer.
func Load(path string, overrides map[string]any) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := mergeConfigFile(v, path); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	for key, value := range overrides {
		v.Set(key, value)
	}

	return decode(v)
}

// DefaultPath returns the config file in the user configuration directory,
// or DefaultConfigFilename in the working directory when there is none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFilename
	}
	return filepath.Join(dir, "net64plus", DefaultConfigFilename)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeySourceProvider, "github")
	v.SetDefault(KeySourceURL, "")
	v.SetDefault(KeySourceToken, "")
	v.SetDefault(KeySourceFeed, net64update.DefaultHttpFeed)
	v.SetDefault(KeyBackendURL, net64update.DefaultBackendURL)
	v.SetDefault(KeyBackendAPIKey, "")
	v.SetDefault(KeyTimeout, net64update.DefaultTimeout.String())
	v.SetDefault(KeyAppVersion, "")
	v.SetDefault(KeyServerPath, "")
	v.SetDefault(KeyServerVersion, "")
	v.SetDefault(KeyPlatform, "")
	v.SetDefault(KeySkipPrerelease, false)
	v.SetDefault(KeyLogLevel, "info")
}

func decode(v *viper.Viper) (*Config, error) {
	timeout, err := time.ParseDuration(v.GetString(KeyTimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyTimeout, err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid %s: %s must be positive", KeyTimeout, timeout)
	}

	provider := strings.ToLower(strings.TrimSpace(v.GetString(KeySourceProvider)))
	if !isProvider(provider) {
		return nil, fmt.Errorf("%w %q, expected one of %s", ErrInvalidProvider, provider, strings.Join(Providers, ", "))
	}

	return &Config{
		Source: Source{
			Provider: provider,
			URL:      v.GetString(KeySourceURL),
			Token:    v.GetString(KeySourceToken),
			Feed:     v.GetString(KeySourceFeed),
		},
		Backend: Backend{
			URL:    v.GetString(KeyBackendURL),
			APIKey: v.GetString(KeyBackendAPIKey),
		},
		Timeout:    timeout,
		AppVersion: v.GetString(KeyAppVersion),
		Server: Server{
			Path:    v.GetString(KeyServerPath),
			Version: v.GetString(KeyServerVersion),
		},
		Platform:       v.GetString(KeyPlatform),
		SkipPrerelease: v.GetBool(KeySkipPrerelease),
		LogLevel:       v.GetString(KeyLogLevel),
	}, nil
}

func isProvider(name string) bool {
	for _, provider := range Providers {
		if provider == name {
			return true
		}
	}
	return false
}

func mergeConfigFile(v *viper.Viper, path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
