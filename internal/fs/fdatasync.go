package fs

import "os"

// Fdatasync flushes the data of f to stable storage.
//
// It might be faster than f.Sync() because file metadata that is not needed
// to read the data back (modification time and the like) is not flushed.
//
// An error from Fdatasync leaves the on-disk content undefined. Callers
// should treat the file as lost.
func Fdatasync(f *os.File) error {
	return fdatasync(f)
}
