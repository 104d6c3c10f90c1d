package net64update

import (
	"strings"
)

// RepositorySlug is an "owner/repo" pair identifying a release feed.
type RepositorySlug struct {
	owner string
	repo  string
}

// Repository interface
var _ Repository = RepositorySlug{}

// ParseSlug takes a string "owner/repo" and makes a RepositorySlug.
// A URL-escaped separator ("owner%2Frepo") and a ".git" suffix are accepted.
// An invalid slug is returned empty: GetSlug reports the problem.
func ParseSlug(slug string) RepositorySlug {
	slug = strings.TrimSuffix(strings.TrimSpace(slug), ".git")
	couple := strings.Split(slug, "/")
	if len(couple) != 2 {
		// give it another try
		couple = strings.Split(slug, "%2F")
	}
	if len(couple) != 2 {
		return RepositorySlug{}
	}
	return RepositorySlug{
		owner: couple[0],
		repo:  couple[1],
	}
}

// NewRepositorySlug creates a RepositorySlug from owner and repo parameters
func NewRepositorySlug(owner, repo string) RepositorySlug {
	return RepositorySlug{
		owner: owner,
		repo:  repo,
	}
}

func (r RepositorySlug) GetSlug() (string, string, error) {
	if r.owner == "" && r.repo == "" {
		return "", "", ErrInvalidSlug
	}
	if r.owner == "" {
		return r.owner, r.repo, ErrIncorrectParameterOwner
	}
	if r.repo == "" {
		return r.owner, r.repo, ErrIncorrectParameterRepo
	}
	return r.owner, r.repo, nil
}

func (r RepositorySlug) Get() (interface{}, error) {
	_, _, err := r.GetSlug()
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

func (r RepositorySlug) String() string {
	return r.owner + "/" + r.repo
}
