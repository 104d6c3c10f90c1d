package net64update

import (
	"context"
	"fmt"
)

// MockSource is a Source in memory used for unit tests
type MockSource struct {
	releases []SourceRelease
	err      error
	calls    int
}

// NewMockSource instantiates a new MockSource
func NewMockSource(releases ...SourceRelease) *MockSource {
	return &MockSource{
		releases: releases,
	}
}

// NewFailingSource returns a MockSource failing every call with err (wrapped in ErrFetchFailed)
func NewFailingSource(err error) *MockSource {
	return &MockSource{
		err: fmt.Errorf("%w: %v", ErrFetchFailed, err),
	}
}

// ListReleases returns the list of releases. repository parameter is only validated.
func (s *MockSource) ListReleases(ctx context.Context, repository Repository) ([]SourceRelease, error) {
	s.calls++
	if _, err := repository.Get(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.releases, nil
}

// Verify interface
var _ Source = &MockSource{}
