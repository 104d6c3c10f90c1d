//go:build !windows

package exepath

import (
	"path/filepath"
)

// ResolvePath returns the path of a given filename with all symlinks resolved.
func ResolvePath(filename string) (string, error) {
	return filepath.EvalSymlinks(filename)
}
