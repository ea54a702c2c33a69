// Package iosource adapts an open archive entry into the pull-based
// byte-callback contract the demuxer stage needs, without leaking the
// entry handle itself past the adapter boundary.
package iosource

import (
	"io"

	"github.com/asticode/go-astiav"
)

// bufferSize matches the scratch buffer size the demuxer probe requests
// per read, as specified for the stream source adapter.
const bufferSize = 4096

// Source wraps a single open archive entry and exposes it as the
// read-packet callback the demuxer's custom AVIOContext invokes. Not
// seekable: exactly one Source is alive at a time, mirroring the
// archive's one-entry-open-at-a-time discipline.
type Source struct {
	r io.Reader
}

// New wraps r, which must be the currently open archive entry.
func New(r io.Reader) *Source {
	return &Source{r: r}
}

// Read implements the demuxer's pull callback: a short read is not an
// error, a zero-byte read signals end-of-file, and any other failure is
// returned as-is for the caller to translate into a domain error.
func (s *Source) Read(buf []byte) (int, error) {
	n, err := s.r.Read(buf)
	if err == io.EOF || (n == 0 && err == nil && len(buf) > 0) {
		return n, io.EOF
	}
	return n, err
}

// NewIOContext builds a custom, read-only AVIOContext over src, sized to
// bufferSize, for binding to a format context with no explicit format
// hint.
func NewIOContext(src *Source) (*astiav.IOContext, error) {
	return astiav.AllocIOContext(
		bufferSize,
		false,
		func(buf []byte) (int, error) {
			return src.Read(buf)
		},
		nil,
		nil,
	)
}
