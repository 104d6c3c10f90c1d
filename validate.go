package net64update

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Validator represents an interface which enables additional validation of downloaded assets.
type Validator interface {
	// Validate validates asset bytes against the content of the validation file.
	// See SHAValidator or ChecksumValidator for more information.
	Validate(filename string, asset, validation []byte) error
	// GetValidationAssetName returns the additional asset name containing the validation checksum.
	// The asset containing the checksum can be based on the release asset name
	GetValidationAssetName(releaseFilename string) string
}

//=====================================================================================================================

// SHAValidator specifies a SHA256 validator for additional file validation
// before updating. The validation file is named after the asset with a ".sha256" suffix.
type SHAValidator struct {
}

// Validate checks the SHA256 sum of the asset against the contents of an
// additional asset file ("<hash>" or "<hash>  <filename>").
func (v *SHAValidator) Validate(filename string, asset, validation []byte) error {
	fields := strings.Fields(string(validation))
	if len(fields) == 0 || len(fields[0]) != sha256.Size*2 {
		return ErrIncorrectChecksumFile
	}
	return compareSHA256(asset, fields[0])
}

// GetValidationAssetName returns the asset name for SHA256 validation.
func (v *SHAValidator) GetValidationAssetName(releaseFilename string) string {
	return releaseFilename + ".sha256"
}

//=====================================================================================================================

// ChecksumValidator is a SHA256 checksum validator where all the validation hash are in a single file (one per line)
type ChecksumValidator struct {
	// UniqueFilename is the name of the global file containing all the checksums
	// Usually "checksums.txt", "SHA256SUMS", etc.
	UniqueFilename string
}

// Validate the SHA256 sum of the asset against the contents of an
// additional asset file containing all the checksums (one file per line).
func (v *ChecksumValidator) Validate(filename string, asset, validation []byte) error {
	hash, err := findChecksum(filename, validation)
	if err != nil {
		return err
	}
	return compareSHA256(asset, hash)
}

// GetValidationAssetName returns the unique asset name for SHA256 validation.
func (v *ChecksumValidator) GetValidationAssetName(releaseFilename string) string {
	return v.UniqueFilename
}

// findChecksum reads a sha256sum formatted file: "<hash>  <filename>" ("<hash> *<filename>" in binary mode)
func findChecksum(filename string, content []byte) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		hash, name, ok := strings.Cut(line, " ")
		if !ok {
			return "", ErrIncorrectChecksumFile
		}
		name = strings.TrimPrefix(strings.TrimSpace(name), "*")
		if name == filename {
			return hash, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", ErrHashNotFound
}

func compareSHA256(content []byte, expected string) error {
	sum := sha256.Sum256(content)
	if !strings.EqualFold(hex.EncodeToString(sum[:]), expected) {
		log.Printf("sha256 mismatch: expected=%q, got=%x", expected, sum)
		return ErrChecksumValidationFailed
	}
	return nil
}

//=====================================================================================================================

// Verify interface
var (
	_ Validator = &SHAValidator{}
	_ Validator = &ChecksumValidator{}
)
