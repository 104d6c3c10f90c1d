package net64update

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

var (
	fileTypes = []struct {
		ext        string
		decompress func(src io.Reader, cmd, platform string) (io.Reader, error)
	}{
		{".zip", unzip},
		{".tar.gz", untar},
		{".tgz", untar},
		{".gzip", gunzip},
		{".gz", gunzip},
		{".tar.xz", untarxz},
		{".xz", unxz},
		{".bz2", unbz2},
	}
)

// DecompressCommand decompresses the given source. Archive and compression format is
// automatically detected from the asset name (or URL).
// This returns a reader for the decompressed command given by 'cmd'. '.zip',
// '.tar.gz', '.tar.xz', '.tgz', '.gz', '.bz2' and '.xz' are supported.
func DecompressCommand(src io.Reader, assetName, cmd, platform string) (io.Reader, error) {
	for _, fileType := range fileTypes {
		if strings.HasSuffix(assetName, fileType.ext) {
			return fileType.decompress(src, cmd, platform)
		}
	}
	log.Print("File is not compressed")
	return src, nil
}

func unzip(src io.Reader, cmd, platform string) (io.Reader, error) {
	log.Print("Decompressing zip file")

	// Zip format requires its file size for Decompressing.
	// So we need to read the HTTP response into a buffer at first.
	buf, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create buffer for zip file: %w", err)
	}

	r := bytes.NewReader(buf)
	z, err := zip.NewReader(r, r.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to decompress zip file: %w", err)
	}

	for _, file := range z.File {
		_, name := filepath.Split(file.Name)
		if !file.FileInfo().IsDir() && matchExecutableName(cmd, platform, name) {
			log.Printf("Executable file %q was found in zip archive", file.Name)
			return file.Open()
		}
	}

	return nil, fmt.Errorf("file %q is not found in zip: %w", cmd, ErrAssetNotFound)
}

func untar(src io.Reader, cmd, platform string) (io.Reader, error) {
	log.Print("Decompressing tar.gz file")

	gz, err := gzip.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress .tar.gz file: %w", err)
	}

	return unarchiveTar(gz, cmd, platform)
}

func gunzip(src io.Reader, cmd, platform string) (io.Reader, error) {
	log.Print("Decompressing gzip file")

	r, err := gzip.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress gzip file: %w", err)
	}

	name := r.Header.Name
	if name != "" && !matchExecutableName(cmd, platform, name) {
		return nil, fmt.Errorf("file name '%s' does not match to command '%s' found", name, cmd)
	}

	log.Printf("Executable file %q was found in gzip file", name)
	return r, nil
}

func untarxz(src io.Reader, cmd, platform string) (io.Reader, error) {
	log.Print("Decompressing tar.xz file")

	xzip, err := xz.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress .tar.xz file: %w", err)
	}

	return unarchiveTar(xzip, cmd, platform)
}

func unxz(src io.Reader, cmd, platform string) (io.Reader, error) {
	log.Print("Decompressing xzip file")

	xzip, err := xz.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress xzip file: %w", err)
	}

	log.Printf("Decompressed file from xzip is assumed to be an executable: %s", cmd)
	return xzip, nil
}

func unbz2(src io.Reader, cmd, platform string) (io.Reader, error) {
	log.Print("Decompressing bzip2 file")

	bz2 := bzip2.NewReader(src)

	log.Printf("Decompressed file from bzip2 is assumed to be an executable: %s", cmd)
	return bz2, nil
}

// matchExecutableName accepts "cmd", "cmd.exe" and the platform suffixed names
// "cmd_win32.exe", "cmd-linux"
func matchExecutableName(cmd, platform, target string) bool {
	if cmd == target || cmd+".exe" == target {
		return true
	}

	for _, delimiter := range []rune{'_', '-'} {
		c := fmt.Sprintf("%s%c%s", cmd, delimiter, platform)
		if c == target || c+".exe" == target {
			return true
		}
	}

	return false
}

func unarchiveTar(src io.Reader, cmd, platform string) (io.Reader, error) {
	t := tar.NewReader(src)
	for {
		h, err := t.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to unarchive tar file: %w", err)
		}
		_, name := filepath.Split(h.Name)
		if h.FileInfo().Mode().IsRegular() && matchExecutableName(cmd, platform, name) {
			log.Printf("Executable file %q was found in tar archive", h.Name)
			return t, nil
		}
	}
	return nil, fmt.Errorf("file %q is not found in tar: %w", cmd, ErrAssetNotFound)
}
