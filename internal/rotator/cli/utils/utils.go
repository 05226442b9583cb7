package utils

import (
	"io"
)

// DummyReadWriteCloser wraps a plain reader or writer with no-op methods for
// the directions it does not support, so it can serve as [io.ReadWriteCloser].
type DummyReadWriteCloser struct {
	Reader io.Reader
	Writer io.Writer
}

// Read implements the [io.Reader] interface.
func (d DummyReadWriteCloser) Read(p []byte) (int, error) {
	if d.Reader == nil {
		return 0, io.EOF
	}

	return d.Reader.Read(p) //nolint:wrapcheck
}

// Write implements the [io.Writer] interface.
func (d DummyReadWriteCloser) Write(p []byte) (int, error) {
	if d.Writer == nil {
		return len(p), nil
	}

	return d.Writer.Write(p) //nolint:wrapcheck
}

// Close implements the [io.Closer] interface.
func (d DummyReadWriteCloser) Close() error {
	return nil
}
