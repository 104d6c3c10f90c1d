package net64update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// DefaultBackendURL is the base URL of the public server listing
const DefaultBackendURL = "https://smmdb.net/api/"

const serverListPath = "getnet64servers"

// Player connected to a server
type Player struct {
	Username    string `json:"username"`
	CharacterID int    `json:"characterId"`
}

// Server is one entry of the public server listing
type Server struct {
	ID               string   `json:"id"`
	IP               string   `json:"ip"`
	Port             int      `json:"port"`
	Domain           string   `json:"domain,omitempty"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	CountryCode      string   `json:"countryCode"`
	Country          string   `json:"country"`
	GameMode         int      `json:"gameMode"`
	PasswordRequired bool     `json:"passwordRequired"`
	Players          []Player `json:"players"`
	Version          string   `json:"version,omitempty"`
}

// Address returns the domain when set, the IP otherwise, with the port
func (s Server) Address() string {
	host := s.Domain
	if host == "" {
		host = s.IP
	}
	return fmt.Sprintf("%s:%d", host, s.Port)
}

// ServerListResult is the outcome of a server listing.
// OK is false when no data could be obtained (Err says why);
// OK with no server means the listing is confirmed empty.
type ServerListResult struct {
	Servers []Server
	OK      bool
	Err     error
}

// BackendClient talks to the server listing backend.
// It is immutable once created and safe for concurrent use.
type BackendClient struct {
	config   ClientConfig
	endpoint string
	client   *http.Client
}

// NewBackendClient creates a BackendClient. The API key of the config, if any,
// is sent with every request to the backend domain.
func NewBackendClient(config ClientConfig) (*BackendClient, error) {
	if config.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	endpoint, err := url.JoinPath(config.BaseURL, serverListPath)
	if err != nil {
		return nil, err
	}
	return &BackendClient{
		config:   config,
		endpoint: endpoint,
		client:   config.metadataClient(),
	}, nil
}

// ListServers fetches the public server listing. Failures are logged as warnings and folded into the result.
func (c *BackendClient) ListServers(ctx context.Context) ServerListResult {
	servers, err := c.fetchServers(ctx)
	if err != nil {
		warnf("Server listing failed. You might be offline: %v", err)
		return ServerListResult{Err: err}
	}
	if servers == nil {
		servers = []Server{}
	}
	log.Printf("%d servers listed", len(servers))
	return ServerListResult{Servers: servers, OK: true}
}

func (c *BackendClient) fetchServers(ctx context.Context) ([]Server, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	c.config.decorate(req)
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP request to %s failed with status code %d", ErrFetchFailed, c.endpoint, res.StatusCode)
	}

	var servers []Server
	if err := json.NewDecoder(res.Body).Decode(&servers); err != nil {
		return nil, fmt.Errorf("%w: cannot decode server list: %w", ErrFetchFailed, err)
	}
	return servers, nil
}
