// Package exepath resolves the real location of an executable about to be replaced.
package exepath

import (
	"errors"
	"os"
)

// ResolveTarget returns the path of the file to replace when installing to filename:
// symlinks are followed so the link keeps pointing to the new version.
// A filename that does not exist yet is returned unchanged.
func ResolveTarget(filename string) (string, error) {
	if _, err := os.Lstat(filename); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return filename, nil
		}
		return "", err
	}
	return ResolvePath(filename)
}
