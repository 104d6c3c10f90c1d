package net64update

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxPrealloc bounds the buffer reserved up front from a response's Content-Length
const maxPrealloc = 64 << 20

// Progress of a download. Total is -1 while the size is unknown.
type Progress struct {
	Transferred int64
	Total       int64
}

// Done is true once the whole payload is received
func (p Progress) Done() bool {
	return p.Total >= 0 && p.Transferred == p.Total
}

// Percent returns the completion between 0 and 100, or -1 when the total size is unknown
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return -1
	}
	return float64(p.Transferred) * 100 / float64(p.Total)
}

// ProgressFunc receives the progress of a download. It is called on the goroutine running the download.
type ProgressFunc func(Progress)

// Downloader streams release assets over HTTP.
// It is immutable once created and safe for concurrent use.
type Downloader struct {
	config ClientConfig
	client *http.Client
}

// NewDownloader creates a Downloader. Only the transport, headers and credentials of the config are used:
// a download has no timeout, cancel its context to abort it.
func NewDownloader(config ClientConfig) *Downloader {
	return &Downloader{
		config: config,
		client: config.streamingClient(),
	}
}

// Download fetches url and returns its content.
// progress (optional) is called each time a chunk of data arrives; the bytes transferred never decrease
// and the last call, made before Download returns, reports Transferred == Total.
// A failed attempt is returned as an error wrapping ErrDownloadFailed and is never retried.
// Cancelling ctx aborts the transfer.
func (d *Downloader) Download(ctx context.Context, url string, progress ProgressFunc) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, ErrEmptyURL)
	}
	if progress == nil {
		progress = func(Progress) {}
	}

	log.Printf("Downloading %s", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	d.config.decorate(req)
	req.Header.Set("Accept", "application/octet-stream")

	response, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP request failed with status code %d", ErrDownloadFailed, response.StatusCode)
	}

	total := response.ContentLength
	buffer := &bytes.Buffer{}
	if total > 0 && total <= maxPrealloc {
		buffer.Grow(int(total))
	}
	reader := newProgressReader(response.Body, total, progress)
	if _, err = io.Copy(buffer, reader); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrDownloadFailed, url, err)
	}
	if total >= 0 && reader.transferred != total {
		return nil, fmt.Errorf("%w: received %d bytes out of %d", ErrDownloadFailed, reader.transferred, total)
	}
	reader.finish()

	log.Printf("Downloaded %d bytes from %s", buffer.Len(), url)
	return buffer.Bytes(), nil
}

// progressReader reports the cumulated bytes read from the underlying reader
type progressReader struct {
	r           io.Reader
	transferred int64
	total       int64
	progress    ProgressFunc
	reported    bool
}

func newProgressReader(r io.Reader, total int64, progress ProgressFunc) *progressReader {
	return &progressReader{
		r:        r,
		total:    total,
		progress: progress,
	}
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		r.transferred += int64(n)
		r.reported = r.total >= 0 && r.transferred == r.total
		r.progress(Progress{Transferred: r.transferred, Total: r.total})
	}
	return n, err
}

// finish emits the final event when the last chunk did not already report completion
// (unknown size, or empty payload)
func (r *progressReader) finish() {
	if r.reported {
		return
	}
	r.reported = true
	r.progress(Progress{Transferred: r.transferred, Total: r.transferred})
}

// Verify interface
var _ io.Reader = &progressReader{}
