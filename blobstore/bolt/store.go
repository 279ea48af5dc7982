// Package bolt provides a blobstore.Store backed by a single bbolt file.
//
// Each artifact is one key in a bucket. Writes are transactional, so a
// reader never sees a half-written artifact, unlike the local file store.
package bolt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/hupe1980/snapgo/blobstore"
)

// DefaultBucket is the bucket used when Options.Bucket is empty.
const DefaultBucket = "snapshots"

// Options configures Open.
type Options struct {
	// Bucket holds the artifacts. Default: DefaultBucket.
	Bucket string
	// Timeout bounds the wait for the file lock. Default: 10s.
	Timeout time.Duration
	// NoSync skips fsync after commits. Only for tests.
	NoSync bool
}

// Store implements blobstore.Store on top of a bbolt database.
type Store struct {
	db     *bbolt.DB
	bucket []byte
}

// Open opens or creates the database at path.
func Open(path string, opt Options) (*Store, error) {
	bopt := &bbolt.Options{}
	*bopt = *bbolt.DefaultOptions
	bopt.Timeout = 10 * time.Second
	if opt.Timeout > 0 {
		bopt.Timeout = opt.Timeout
	}
	bopt.NoSync = opt.NoSync
	bopt.FreelistType = bbolt.FreelistMapType

	bucket := opt.Bucket
	if bucket == "" {
		bucket = DefaultBucket
	}

	db, err := bbolt.Open(path, 0o644, bopt)
	if err != nil {
		return nil, fmt.Errorf("bolt: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bolt: create bucket %q: %w", bucket, err)
	}

	return &Store{db: db, bucket: []byte(bucket)}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores data under name in a single transaction.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" {
		return errors.New("bolt: empty name")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(name), data)
	})
}

// Get returns a copy of the value stored under name.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(name))
		if v == nil {
			return blobstore.ErrNotFound
		}
		// v is only valid for the life of the transaction.
		out = bytes.Clone(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

// Delete removes name. Missing keys are ignored.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(name))
	})
}

// List returns the keys starting with prefix in byte order.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var names []string
	p := []byte(prefix)
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			names = append(names, string(k))
		}
		return nil
	})
	return names, err
}

var _ blobstore.Store = (*Store)(nil)
