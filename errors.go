package net64update

import "errors"

// Error
var (
	ErrInvalidSlug              = errors.New("invalid slug format, expected 'owner/name'")
	ErrInvalidID                = errors.New("invalid repository ID, expected 'owner/name' but found number")
	ErrIncorrectParameterOwner  = errors.New("incorrect parameter \"owner\"")
	ErrIncorrectParameterRepo   = errors.New("incorrect parameter \"repo\"")
	ErrInvalidRelease           = errors.New("invalid release")
	ErrAssetNotFound            = errors.New("asset not found")
	ErrValidationAssetNotFound  = errors.New("validation file not found")
	ErrIncorrectChecksumFile    = errors.New("incorrect checksum file format")
	ErrChecksumValidationFailed = errors.New("sha256 validation failed")
	ErrHashNotFound             = errors.New("hash not found in checksum file")
	ErrNoBaseURL                = errors.New("base URL must be set")
	ErrEmptyURL                 = errors.New("empty URL")

	// ErrFetchFailed wraps every failure to obtain a release or server listing:
	// timeout, network error, non-success status or undecodable body.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrDownloadFailed wraps every failure of a single asset download attempt.
	ErrDownloadFailed = errors.New("download failed")
)
