package net64update

import (
	"errors"
	"io"
)

var (
	errTestRead = errors.New("read error")
)

// errorReader returns errTestRead once failAfter bytes have been read
type errorReader struct {
	r         io.Reader
	failAfter int
	read      int
}

func newErrorReader(r io.Reader, failAfterBytes int) *errorReader {
	return &errorReader{
		r:         r,
		failAfter: failAfterBytes,
	}
}

func (r *errorReader) Read(p []byte) (int, error) {
	left := r.failAfter - r.read
	if left <= 0 {
		return 0, errTestRead
	}
	if len(p) > left {
		p = p[:left]
	}
	n, err := r.r.Read(p)
	r.read += n
	return n, err
}

// Verify interface
var _ io.Reader = &errorReader{}
