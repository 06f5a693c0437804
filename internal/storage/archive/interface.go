// internal/storage/archive/interface.go
package archive

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when nothing is stored at the path.
var ErrNotFound = errors.New("archive: object not found")

// Storage is a write-once file archive for exported reports.
type Storage interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// Write stores data at the given path
	Write(ctx context.Context, path string, data []byte) error

	// Read retrieves data from the given path
	Read(ctx context.Context, path string) ([]byte, error)

	// List returns all paths matching the prefix
	List(ctx context.Context, prefix string) ([]string, error)

	// Exists checks if data exists at the given path
	Exists(ctx context.Context, path string) (bool, error)
}
