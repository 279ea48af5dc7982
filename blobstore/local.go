package blobstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	vfs "github.com/hupe1980/snapgo/internal/fs"
)

// LocalStore implements Store using the local file system.
//
// Relative names resolve against the root directory; absolute names are
// used as given. Put truncates and rewrites the target in place and flushes
// it with fdatasync before returning. There is no rename step, so a reader
// racing a writer may observe a partial file, and concurrent writers to the
// same name are last-writer-wins. A failed Put leaves the previous content,
// or no file at all.
type LocalStore struct {
	root string
	fs   vfs.FileSystem
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return NewLocalStoreWithFS(root, vfs.Default)
}

// NewLocalStoreWithFS creates a LocalStore on top of a custom file system.
func NewLocalStoreWithFS(root string, fsys vfs.FileSystem) *LocalStore {
	if fsys == nil {
		fsys = vfs.Default
	}
	return &LocalStore{root: root, fs: fsys}
}

// Root returns the directory relative names resolve against.
func (s *LocalStore) Root() string {
	return s.root
}

// Path returns the file path a name resolves to.
func (s *LocalStore) Path(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(s.root, name)
}

// Put writes data to the file for name, creating parent directories as
// needed. If the write fails, the previous content is written back, or the
// partial file is removed when there was none.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := s.Path(name)

	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	prev, err := s.fs.ReadFile(path)
	existed := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := s.write(path, data); err != nil {
		if existed && s.write(path, prev) == nil {
			return err
		}
		_ = s.fs.Remove(path)
		return err
	}
	return nil
}

// write truncates path, writes data and syncs. The handle is always closed.
func (s *LocalStore) write(path string, data []byte) error {
	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Get reads the whole file for name. A missing file yields an error
// matching ErrNotFound; other file system errors are returned unchanged.
func (s *LocalStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.fs.ReadFile(s.Path(name))
}

// Delete removes the file for name.
func (s *LocalStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.fs.Remove(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// List returns the regular files in the root directory whose names start
// with prefix. Subdirectories are not descended into.
func (s *LocalStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := s.fs.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
