package update

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
)

// Options for Apply update
type Options struct {
	// TargetPath defines the path to the file to update. Mandatory.
	TargetPath string

	// Create TargetPath replacement with this file mode. If zero, defaults to 0755.
	TargetMode os.FileMode

	// Checksum is the SHA256 sum of the new file. If nil, no checksum verification is done.
	Checksum []byte

	// Store the old file at this path after a successful update.
	// The empty string means the old file will be removed after the update.
	OldSavePath string
}

func (o *Options) verifyChecksum(updated []byte) error {
	checksum := sha256.Sum256(updated)
	if !bytes.Equal(o.Checksum, checksum[:]) {
		return fmt.Errorf("updated file has wrong checksum. Expected: %x, got: %x", o.Checksum, checksum)
	}
	return nil
}
