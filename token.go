package net64update

import (
	"net/url"
	"strings"
)

// canUseTokenForDomain returns true if other URL is in the same domain as origin URL.
// It keeps credentials away from third-party download hosts (CDNs, object storage).
func canUseTokenForDomain(origin, other string) (bool, error) {
	originURL, err := url.Parse(origin)
	if err != nil {
		return false, err
	}
	otherURL, err := url.Parse(other)
	if err != nil {
		return false, err
	}
	originHost := originURL.Hostname()
	otherHost := otherURL.Hostname()
	if originHost == "" {
		return false, nil
	}
	return otherHost == originHost || strings.HasSuffix(otherHost, "."+originHost), nil
}
