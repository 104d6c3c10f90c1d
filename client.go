package net64update

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds every metadata request (release feeds, server listing).
const DefaultTimeout = 10 * time.Second

// ClientConfig is the HTTP configuration shared by the feed sources, the downloader and the backend client.
// It is built once at startup and copied by every constructor: changing it afterwards has no effect
// on the objects already created.
type ClientConfig struct {
	// BaseURL of the remote service. Credentials are only sent to hosts within its domain.
	BaseURL string
	// Username and Password are optional bare credentials sent with HTTP basic authentication.
	Username string
	Password string
	// APIKey is sent as "Authorization: APIKEY <key>" when set.
	APIKey string
	// Timeout of a metadata request. Defaults to DefaultTimeout. It does not apply to downloads.
	Timeout time.Duration
	// Transport used by the HTTP clients. Defaults to http.DefaultTransport.
	Transport http.RoundTripper
	// Headers added to every request.
	Headers http.Header
}

func (c ClientConfig) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c ClientConfig) transport() http.RoundTripper {
	if c.Transport == nil {
		return http.DefaultTransport
	}
	return c.Transport
}

// metadataClient returns an HTTP client bounded by the metadata timeout
func (c ClientConfig) metadataClient() *http.Client {
	return &http.Client{
		Transport: c.transport(),
		Timeout:   c.timeout(),
	}
}

// streamingClient returns an HTTP client with no overall timeout: only the request context bounds it
func (c ClientConfig) streamingClient() *http.Client {
	return &http.Client{
		Transport: c.transport(),
	}
}

// decorate adds the configured headers to the request, and the credentials
// when the request goes to the configured domain.
func (c ClientConfig) decorate(req *http.Request) {
	for key, values := range c.Headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if c.Username == "" && c.APIKey == "" {
		return
	}
	ok, err := canUseTokenForDomain(c.BaseURL, req.URL.String())
	if err != nil || !ok {
		log.Printf("Not sending credentials to %s", req.URL.Hostname())
		return
	}
	if c.Username != "" {
		req.SetBasicAuth(c.Username, c.Password)
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "APIKEY "+c.APIKey)
	}
}
