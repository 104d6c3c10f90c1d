//go:build windows

package exepath

import (
	"os"
	"strings"
	"syscall"

	"golang.org/x/sys/windows"
)

// ResolvePath returns the path of a given filename with all symlinks resolved.
func ResolvePath(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]uint16, syscall.MAX_PATH)
	_, err = windows.GetFinalPathNameByHandle(windows.Handle(f.Fd()), &buf[0], uint32(len(buf)), 0)
	if err != nil {
		return "", err
	}
	// strip the "\\?\" prefix of extended-length paths
	return strings.TrimPrefix(syscall.UTF16ToString(buf), `\\?\`), nil
}
