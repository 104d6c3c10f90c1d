package net64update

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serverAssetName = "net64plus-server_0.3.0_64plus_linux.tar.gz"

func newAssetServer(t *testing.T, files map[string][]byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content, ok := files[filepath.Base(r.URL.Path)]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(content)
	}))
	t.Cleanup(server.Close)
	return server
}

func newServerRelease(baseURL string, names ...string) *HttpRelease {
	release := &HttpRelease{TagName: "v0.3.0"}
	for _, name := range names {
		release.Assets = append(release.Assets, &HttpAsset{Name: name, URL: baseURL + "/" + name})
	}
	return release
}

func executablePath(path string) string {
	if runtime.GOOS == "windows" {
		return path + ".exe"
	}
	return path
}

func TestInstallTo(t *testing.T) {
	archive := makeGzip(t, "", makeTar(t, map[string]string{"net64plus-server": testExecutableContent}))
	server := newAssetServer(t, map[string][]byte{
		serverAssetName:             archive,
		serverAssetName + ".sha256": []byte(sha256Line(archive, serverAssetName)),
	})

	up := newTestUpdater(t, NewMockSource(newServerRelease(server.URL, serverAssetName, serverAssetName+".sha256")), "0.2.0", Config{
		Repository: StreamRepository(StreamServer),
		Platform:   "linux",
		Validator:  &SHAValidator{},
		Filters:    []string{`\.tar\.gz$`},
	})
	result := up.CheckForUpdate(context.Background())
	require.True(t, result.Found())

	cmdPath := filepath.Join(t.TempDir(), "server", "net64plus-server")
	var last Progress
	err := up.InstallTo(context.Background(), result, cmdPath, func(p Progress) { last = p })
	require.NoError(t, err)
	assert.True(t, last.Done())
	assert.Equal(t, int64(len(archive)), last.Total)

	content, err := os.ReadFile(executablePath(cmdPath))
	require.NoError(t, err)
	assert.Equal(t, testExecutableContent, string(content))
}

func TestInstallToRejectsInvalidChecksum(t *testing.T) {
	archive := makeGzip(t, "", makeTar(t, map[string]string{"net64plus-server": testExecutableContent}))
	server := newAssetServer(t, map[string][]byte{
		serverAssetName:             archive,
		serverAssetName + ".sha256": []byte(fmt.Sprintf("%x\n", sha256.Sum256([]byte("tampered")))),
	})

	up := newTestUpdater(t, NewMockSource(newServerRelease(server.URL, serverAssetName, serverAssetName+".sha256")), "0.2.0", Config{
		Platform:  "linux",
		Validator: &SHAValidator{},
		Filters:   []string{`\.tar\.gz$`},
	})
	result := up.CheckForUpdate(context.Background())
	require.True(t, result.Found())

	cmdPath := filepath.Join(t.TempDir(), "net64plus-server")
	err := up.InstallTo(context.Background(), result, cmdPath, nil)
	assert.ErrorIs(t, err, ErrChecksumValidationFailed)
	assert.NoFileExists(t, executablePath(cmdPath))
}

func TestInstallToWithoutUpdate(t *testing.T) {
	up := newTestUpdater(t, NewMockSource(), "", Config{})

	err := up.InstallTo(context.Background(), UpdateResult{Status: StatusNotFound}, filepath.Join(t.TempDir(), "net64plus-server"), nil)
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestInstallToDownloadFailure(t *testing.T) {
	server := newAssetServer(t, map[string][]byte{})

	up := newTestUpdater(t, NewMockSource(newServerRelease(server.URL, serverAssetName)), "0.2.0", Config{Platform: "linux"})
	result := up.CheckForUpdate(context.Background())
	require.True(t, result.Found())

	err := up.InstallTo(context.Background(), result, filepath.Join(t.TempDir(), "net64plus-server"), nil)
	assert.ErrorIs(t, err, ErrDownloadFailed)
}

func TestDownloadAndValidateMissingValidationURL(t *testing.T) {
	server := newAssetServer(t, map[string][]byte{serverAssetName: []byte("archive")})
	up := newTestUpdater(t, NewMockSource(), "", Config{Validator: &SHAValidator{}})

	_, err := up.DownloadAndValidate(context.Background(), UpdateResult{
		Status:    StatusFound,
		URL:       server.URL + "/" + serverAssetName,
		AssetName: serverAssetName,
	}, nil)
	assert.ErrorIs(t, err, ErrValidationAssetNotFound)
}

func TestUpdaterDownload(t *testing.T) {
	server := newAssetServer(t, map[string][]byte{serverAssetName: []byte("archive")})
	up := newTestUpdater(t, NewMockSource(), "", Config{})

	data, err := up.Download(context.Background(), UpdateResult{Status: StatusFound, URL: server.URL + "/" + serverAssetName}, nil)
	require.NoError(t, err)
	assert.Equal(t, "archive", string(data))

	_, err = up.Download(context.Background(), UpdateResult{Status: StatusFetchFailed}, nil)
	assert.ErrorIs(t, err, ErrAssetNotFound)
}
