package ports

import "io"

// Archive abstracts a read-only ZIP archive. Implementations open entries
// lazily by name; exactly one entry is alive at a time per the
// conversion core's resource discipline.
type Archive interface {
	// OpenEntry opens the named entry for reading. The caller must close
	// the returned reader before opening another entry.
	OpenEntry(name string) (io.ReadCloser, error)

	// Close releases the archive handle.
	Close() error
}
