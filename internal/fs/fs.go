package fs

import (
	"io"
	"os"
)

// File is a file opened for writing.
type File interface {
	io.WriteCloser
	// Sync flushes written data to stable storage.
	Sync() error
}

// FileSystem abstracts the file operations used by the local store.
type FileSystem interface {
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	ReadFile(name string) ([]byte, error)
	Remove(name string) error
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	ReadDir(name string) ([]os.DirEntry, error)
}

// LocalFS implements FileSystem using the local os package.
type LocalFS struct{}

// OpenFile opens name with os.OpenFile. Sync on the returned file uses
// fdatasync where the platform has it.
func (LocalFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &localFile{File: f}, nil
}

func (LocalFS) ReadFile(name string) ([]byte, error)  { return os.ReadFile(name) }
func (LocalFS) Remove(name string) error              { return os.Remove(name) }
func (LocalFS) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }
func (LocalFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}
func (LocalFS) ReadDir(name string) ([]os.DirEntry, error) { return os.ReadDir(name) }

type localFile struct {
	*os.File
}

func (f *localFile) Sync() error {
	return Fdatasync(f.File)
}

// Default is the default local file system.
var Default FileSystem = LocalFS{}
