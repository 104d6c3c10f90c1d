package update

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrNoTargetPath is returned by Apply when Options.TargetPath is empty
var ErrNoTargetPath = errors.New("no target path to update")

var (
	openFile = os.OpenFile
	rename   = os.Rename
)

// Apply replaces the file at opts.TargetPath with the contents of the given io.Reader.
// The target does not need to exist: a first install simply creates it.
//
// Apply performs the following actions to ensure a safe cross-platform update:
//
// 1. If configured, computes the checksum of the new file and verifies it matches.
//
// 2. Creates a new file, /path/to/.target.new with the TargetMode with the contents of the updated file
//
// 3. Renames /path/to/target to /path/to/.target.old
//
// 4. Renames /path/to/.target.new to /path/to/target
//
// 5. If the final rename is successful, deletes /path/to/.target.old, returns no error. On Windows,
// the removal of /path/to/.target.old fails while the old executable is running, so Apply hides it instead.
//
// 6. If the final rename fails, attempts to roll back by renaming /path/to/.target.old
// back to /path/to/target.
//
// If the roll back operation fails, the file system is left in an inconsistent state (between steps 4 and 5) where
// there is no new executable file and the old executable file could not be moved to its original location.
// Callers can detect it with RollbackError.
func Apply(update io.Reader, opts Options) error {
	if opts.TargetPath == "" {
		return ErrNoTargetPath
	}
	if opts.TargetMode == 0 {
		opts.TargetMode = 0o755
	}

	newBytes, err := io.ReadAll(update)
	if err != nil {
		return err
	}

	// verify checksum if requested
	if opts.Checksum != nil {
		if err = opts.verifyChecksum(newBytes); err != nil {
			return err
		}
	}

	updateDir := filepath.Dir(opts.TargetPath)
	filename := filepath.Base(opts.TargetPath)

	newPath := filepath.Join(updateDir, fmt.Sprintf(".%s.new", filename))
	if err = writeFile(newPath, newBytes, opts.TargetMode); err != nil {
		return err
	}

	// this is where we'll move the executable to so that we can swap in the updated replacement
	oldPath := opts.OldSavePath
	removeOld := opts.OldSavePath == ""
	if removeOld {
		oldPath = filepath.Join(updateDir, fmt.Sprintf(".%s.old", filename))
	}

	// windows rename operations fail if the destination file already exists
	_ = os.Remove(oldPath)

	hasOld := true
	if err = rename(opts.TargetPath, oldPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			_ = os.Remove(newPath)
			return err
		}
		// first install
		hasOld = false
	}

	if err = rename(newPath, opts.TargetPath); err != nil {
		if !hasOld {
			return err
		}
		// There is no file where the previous executable used to be: restore it.
		rerr := rename(oldPath, opts.TargetPath)
		if rerr != nil {
			return &rollbackError{err, rerr}
		}
		return err
	}

	if hasOld && removeOld {
		if errRemove := os.Remove(oldPath); errRemove != nil {
			_ = hideFile(oldPath)
		}
	}
	return nil
}

func writeFile(path string, content []byte, mode os.FileMode) error {
	fp, err := openFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	_, err = fp.Write(content)
	// windows won't let us move the new executable while the file is still open
	if cerr := fp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
	}
	return err
}

// RollbackError takes an error value returned by Apply and returns the error, if any,
// that occurred when attempting to roll back from a failed update. Applications should
// always call this function on any non-nil errors returned by Apply.
//
// If no rollback was needed or if the rollback was successful, RollbackError returns nil,
// otherwise it returns the error encountered when trying to roll back.
func RollbackError(err error) error {
	var rerr *rollbackError
	if errors.As(err, &rerr) {
		return rerr.rollbackErr
	}
	return nil
}

type rollbackError struct {
	error             // original error
	rollbackErr error // error encountered while rolling back
}

func (e *rollbackError) Unwrap() error {
	return e.error
}
