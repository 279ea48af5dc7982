package fs

import (
	"errors"
	"os"
	"strings"
	"sync"
)

// ErrInjected is the default error returned by injected faults.
var ErrInjected = errors.New("injected fault error")

// Fault defines specific failure behavior. The zero value injects nothing.
type Fault struct {
	FailOnOpen bool
	// FailOnWrite fails every write once FailAfterBytes bytes are in the file.
	FailOnWrite bool
	// FailAfterBytes lets this many bytes through before writes fail.
	// A positive value implies FailOnWrite.
	FailAfterBytes int64
	FailOnSync     bool
	FailOnClose    bool
	// Times limits the rule to the first Times opens of a matching file.
	// Zero means every open.
	Times int
	Err   error
}

func (f Fault) failsWrites() bool {
	return f.FailOnWrite || f.FailAfterBytes > 0
}

// FaultyFS is a FileSystem wrapper that can inject errors.
type FaultyFS struct {
	FS FileSystem

	mu      sync.Mutex
	rules   map[string]Fault // Filename substring -> Fault
	opens   map[string]int
	removed []string
}

// NewFaultyFS creates a new FaultyFS wrapping the provided FS (or Default if nil).
func NewFaultyFS(fs FileSystem) *FaultyFS {
	if fs == nil {
		fs = Default
	}
	return &FaultyFS{
		FS:    fs,
		rules: make(map[string]Fault),
		opens: make(map[string]int),
	}
}

// AddRule adds a fault injection rule for files whose name contains pattern.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fault.Err == nil {
		fault.Err = ErrInjected
	}
	f.rules[pattern] = fault
	delete(f.opens, pattern)
}

// Removed returns the names passed to Remove so far.
func (f *FaultyFS) Removed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.removed...)
}

// match returns the rule for name and counts the open against it.
func (f *FaultyFS) match(name string) (Fault, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for pattern, rule := range f.rules {
		if !strings.Contains(name, pattern) {
			continue
		}
		if rule.Times > 0 && f.opens[pattern] >= rule.Times {
			continue
		}
		f.opens[pattern]++
		return rule, true
	}
	return Fault{}, false
}

func (f *FaultyFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	fault, ok := f.match(name)
	if ok && fault.FailOnOpen {
		return nil, fault.Err
	}
	file, err := f.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	if !ok {
		return file, nil
	}
	return &faultyFile{File: file, fault: fault}, nil
}

func (f *FaultyFS) ReadFile(name string) ([]byte, error) {
	return f.FS.ReadFile(name)
}

func (f *FaultyFS) Remove(name string) error {
	f.mu.Lock()
	f.removed = append(f.removed, name)
	f.mu.Unlock()
	return f.FS.Remove(name)
}

func (f *FaultyFS) Stat(name string) (os.FileInfo, error) {
	return f.FS.Stat(name)
}

func (f *FaultyFS) MkdirAll(path string, perm os.FileMode) error {
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultyFS) ReadDir(name string) ([]os.DirEntry, error) {
	return f.FS.ReadDir(name)
}

type faultyFile struct {
	File
	fault   Fault
	written int64
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	if ff.fault.failsWrites() && ff.written+int64(len(p)) > ff.fault.FailAfterBytes {
		// Write what fits so a partial file is left behind.
		allowed := max(ff.fault.FailAfterBytes-ff.written, 0)
		n, _ := ff.File.Write(p[:allowed])
		ff.written += int64(n)
		return n, ff.fault.Err
	}
	n, err := ff.File.Write(p)
	ff.written += int64(n)
	return n, err
}

func (ff *faultyFile) Sync() error {
	if ff.fault.FailOnSync {
		return ff.fault.Err
	}
	return ff.File.Sync()
}

func (ff *faultyFile) Close() error {
	if ff.fault.FailOnClose {
		_ = ff.File.Close()
		return ff.fault.Err
	}
	return ff.File.Close()
}
