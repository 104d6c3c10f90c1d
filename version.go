package net64update

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// reVersion matches the numeric core of a tag once the non-numeric prefix is removed.
// A pre-release or build suffix ("-beta", "+20200101") is allowed and ignored.
var reVersion = regexp.MustCompile(`^(\d+(?:\.\d+)*)(?:[-+].*)?$`)

var errNoVersion = errors.New("no numeric version")

// Version is the numeric part of a release tag: "v1.2.3", "release-1.2" or "1.2.3.4"
type Version struct {
	raw  string
	core *goversion.Version
}

// zeroVersion is what an absent or unparseable current version compares as.
var zeroVersion = Version{raw: "0", core: goversion.Must(goversion.NewVersion("0"))}

// ParseVersion strips the leading non-numeric prefix of a tag and parses its
// dot-separated numeric components.
func ParseVersion(tag string) (Version, error) {
	text := strings.TrimSpace(tag)
	start := strings.IndexFunc(text, isDigit)
	if start < 0 {
		return Version{}, fmt.Errorf("%q: %w", tag, errNoVersion)
	}
	match := reVersion.FindStringSubmatch(text[start:])
	if match == nil {
		return Version{}, fmt.Errorf("%q: %w", tag, errNoVersion)
	}
	core, err := goversion.NewVersion(match[1])
	if err != nil {
		// components overflowing an int64
		return Version{}, fmt.Errorf("%q: %w", tag, err)
	}
	return Version{raw: tag, core: core}, nil
}

// parseCurrentVersion never fails: an empty or invalid version is "0"
func parseCurrentVersion(current string) Version {
	if current == "" {
		return zeroVersion
	}
	v, err := ParseVersion(current)
	if err != nil {
		log.Printf("Current version %q cannot be parsed, any release will be considered newer", current)
		return zeroVersion
	}
	return v
}

// Compare returns -1, 0 or 1. Missing trailing components count as zero, so 1.2 equals 1.2.0.
func (v Version) Compare(other Version) int {
	return v.core.Compare(other.core)
}

// GreaterThan tests if v is strictly newer than other.
func (v Version) GreaterThan(other Version) bool {
	return v.Compare(other) > 0
}

// Equal tests if the two versions have the same numeric components, ignoring trailing zeros.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// Segments returns the numeric components (at least three, zero padded)
func (v Version) Segments() []int {
	if v.core == nil {
		return nil
	}
	return v.core.Segments()
}

// String returns the tag the version was parsed from
func (v Version) String() string {
	if v.raw == "" && v.core != nil {
		return v.core.String()
	}
	return v.raw
}

// IsVersionNewer returns true when candidateTag is strictly greater than currentVersion.
// An unparseable candidate is never newer; an empty or unparseable current version
// compares as "0", so any valid tag is newer on a first run.
func IsVersionNewer(candidateTag, currentVersion string) bool {
	candidate, err := ParseVersion(candidateTag)
	if err != nil {
		return false
	}
	return candidate.GreaterThan(parseCurrentVersion(currentVersion))
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
