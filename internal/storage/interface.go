package storage

import (
	"context"
	"io"
)

// StorageInterface is the file store for proof of delivery images. Keys are
// relative paths such as "proofs/<uuid>.jpg"; only the key is persisted on a
// booking.
type StorageInterface interface {
	// SaveFile writes reader under key, replacing any existing file
	SaveFile(ctx context.Context, key string, reader io.Reader) error

	// ReadFile opens a stored file for reading
	ReadFile(ctx context.Context, key string) (io.ReadCloser, error)

	// FileExists checks if a file exists and returns its size
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a file. Missing files are not an error.
	DeleteFile(ctx context.Context, key string) error

	// URL returns the public path a stored key is served under
	URL(key string) string
}
