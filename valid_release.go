package net64update

import "fmt"

// IsReleaseValid reports whether a release may be offered as an update:
// it is not a draft, its tag has a parseable version and it carries at least one asset.
func IsReleaseValid(rel SourceRelease) bool {
	if err := ValidateRelease(rel); err != nil {
		log.Printf("Skip release: %v", err)
		return false
	}
	return true
}

// ValidateRelease returns an error wrapping ErrInvalidRelease when the release cannot be offered as an update.
func ValidateRelease(rel SourceRelease) error {
	if rel == nil {
		return fmt.Errorf("%w: nil release", ErrInvalidRelease)
	}
	if rel.GetDraft() {
		return fmt.Errorf("%w: %s is a draft", ErrInvalidRelease, rel.GetTagName())
	}
	if _, err := ParseVersion(rel.GetTagName()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRelease, err)
	}
	if len(rel.GetAssets()) == 0 {
		return fmt.Errorf("%w: %s has no asset", ErrInvalidRelease, rel.GetTagName())
	}
	return nil
}
