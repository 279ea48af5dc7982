// Package blobstore provides storage backends for persisted snapshots.
//
// Store is the interface for writing and reading whole artifacts by name.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, full overwrite, fdatasync on write
//   - MemoryStore: in-process map, for tests and file-less runtimes
//   - bolt.Store: a bbolt database holding one key per artifact
//   - minio.Store: MinIO and other S3-compatible services
//   - s3.Store: Amazon S3
//
// # Custom Implementations
//
// Implement the Store interface to support custom storage backends:
//
//	type Store interface {
//	    Put(ctx, name, data) error
//	    Get(ctx, name) ([]byte, error)   // errors.Is(err, ErrNotFound) when missing
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
