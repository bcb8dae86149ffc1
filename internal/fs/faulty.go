package fs

import (
	"errors"
	"os"
	"strings"
	"sync"
)

// ErrInjected is the error returned by injected faults that set no Err.
var ErrInjected = errors.New("fs: injected fault")

// Fault describes the failures injected into files whose name matches a rule.
type Fault struct {
	// FailAfterBytes fails the write that would cross this many bytes
	// written to the file. Negative disables it.
	FailAfterBytes int64
	// FailReadAfterBytes fails reads once this many bytes were read.
	// Negative disables it.
	FailReadAfterBytes int64
	FailOnOpen         bool
	FailOnSync         bool
	FailOnClose        bool
	Err                error
}

func (f Fault) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

// NoFault is a Fault that injects nothing.
var NoFault = Fault{FailAfterBytes: -1, FailReadAfterBytes: -1}

// FaultyFS is a FileSystem wrapper that injects errors.
type FaultyFS struct {
	FS FileSystem

	mu    sync.Mutex
	rules map[string]Fault
	// Default applies to files no rule matches.
	Default Fault
}

// NewFaultyFS wraps fsys, or Default if fsys is nil.
func NewFaultyFS(fsys FileSystem) *FaultyFS {
	if fsys == nil {
		fsys = Default
	}
	return &FaultyFS{
		FS:      fsys,
		rules:   make(map[string]Fault),
		Default: NoFault,
	}
}

// AddRule applies fault to every file whose name contains pattern.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
}

func (f *FaultyFS) match(name string) Fault {
	f.mu.Lock()
	defer f.mu.Unlock()

	fault := f.Default
	best := -1
	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) && len(pattern) > best {
			fault, best = rule, len(pattern)
		}
	}
	return fault
}

func (f *FaultyFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	fault := f.match(name)
	if fault.FailOnOpen {
		return nil, &os.PathError{Op: "open", Path: name, Err: fault.err()}
	}

	file, err := f.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &faultyFile{File: file, fault: fault}, nil
}

func (f *FaultyFS) Remove(name string) error                     { return f.FS.Remove(name) }
func (f *FaultyFS) Rename(oldpath, newpath string) error         { return f.FS.Rename(oldpath, newpath) }
func (f *FaultyFS) Stat(name string) (os.FileInfo, error)        { return f.FS.Stat(name) }
func (f *FaultyFS) MkdirAll(path string, perm os.FileMode) error { return f.FS.MkdirAll(path, perm) }

type faultyFile struct {
	File
	fault   Fault
	written int64
	read    int64
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	if ff.fault.FailAfterBytes >= 0 && ff.written+int64(len(p)) > ff.fault.FailAfterBytes {
		// Write the part that fits so the file holds a torn tail.
		keep := ff.fault.FailAfterBytes - ff.written
		n, _ := ff.File.Write(p[:keep])
		ff.written += int64(n)
		return n, ff.fault.err()
	}

	n, err := ff.File.Write(p)
	ff.written += int64(n)
	return n, err
}

func (ff *faultyFile) Read(p []byte) (int, error) {
	if ff.fault.FailReadAfterBytes >= 0 {
		remaining := ff.fault.FailReadAfterBytes - ff.read
		if remaining <= 0 {
			return 0, ff.fault.err()
		}
		if int64(len(p)) > remaining {
			p = p[:remaining]
		}
	}

	n, err := ff.File.Read(p)
	ff.read += int64(n)
	return n, err
}

func (ff *faultyFile) Sync() error {
	if ff.fault.FailOnSync {
		return ff.fault.err()
	}
	return ff.File.Sync()
}

func (ff *faultyFile) Close() error {
	if ff.fault.FailOnClose {
		_ = ff.File.Close()
		return ff.fault.err()
	}
	return ff.File.Close()
}
