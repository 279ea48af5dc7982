package blobstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store persists encoded artifacts under names.
//
// Writes replace the whole blob; there is no append and no partial read.
// Implementations must be safe for concurrent use, but make no ordering
// promise between concurrent Put and Get calls on the same name.
type Store interface {
	// Put replaces the blob stored under name with data.
	Put(ctx context.Context, name string, data []byte) error
	// Get returns the complete content of the blob.
	Get(ctx context.Context, name string) ([]byte, error)
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the names with the given prefix in sorted order.
	List(ctx context.Context, prefix string) ([]string, error)
}
