package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tfs "github.com/hupe1980/tfrec/internal/fs"
	"github.com/hupe1980/tfrec/internal/mmap"
)

// LocalStore implements Store on a local directory. Names may contain
// slashes; they map to subdirectories.
type LocalStore struct {
	root string
	fs   tfs.FileSystem
}

// NewLocalStore creates a LocalStore rooted at root.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root, fs: tfs.Default}
}

// NewLocalStoreFS is NewLocalStore on a custom file system.
func NewLocalStoreFS(root string, fsys tfs.FileSystem) *LocalStore {
	return &LocalStore{root: root, fs: fsys}
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// Open maps the blob into memory when the file system allows it and reads
// it as a stream otherwise.
func (s *LocalStore) Open(_ context.Context, name string) (Blob, error) {
	f, err := tfs.Open(s.fs, s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	if fder, ok := f.(mmap.Fder); ok {
		m, err := mmap.Map(fder, fi.Size())
		_ = f.Close()
		if err != nil {
			return nil, err
		}
		return &mappedBlob{Reader: bytes.NewReader(m.Bytes()), m: m}, nil
	}

	return &fileBlob{File: f, size: fi.Size()}, nil
}

// Create writes to a temporary file next to the target and renames it into
// place on Close.
func (s *LocalStore) Create(_ context.Context, name string) (WritableBlob, error) {
	path := s.path(name)
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	tmp := path + ".partial"
	f, err := tfs.Create(s.fs, tmp)
	if err != nil {
		return nil, err
	}
	return &localWritableBlob{fs: s.fs, f: f, tmp: tmp, path: path}, nil
}

// Delete removes a blob.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	err := s.fs.Remove(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// List walks the root and returns the sorted slash-separated names
// starting with prefix. Partial uploads are skipped.
func (s *LocalStore) List(_ context.Context, prefix string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == s.root {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, ".partial") {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		if name := filepath.ToSlash(rel); strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}

type mappedBlob struct {
	*bytes.Reader
	m *mmap.Mapping
}

func (b *mappedBlob) Close() error { return b.m.Close() }
func (b *mappedBlob) Size() int64  { return int64(b.m.Size()) }

type fileBlob struct {
	tfs.File
	size int64
}

func (b *fileBlob) Size() int64 { return b.size }

type localWritableBlob struct {
	fs   tfs.FileSystem
	f    tfs.File
	tmp  string
	path string
	done bool
}

func (w *localWritableBlob) Write(p []byte) (int, error) {
	if w.done {
		return 0, os.ErrClosed
	}
	return w.f.Write(p)
}

func (w *localWritableBlob) Close() error {
	if w.done {
		return nil
	}
	w.done = true

	if err := w.f.Sync(); err != nil {
		_ = w.f.Close()
		_ = w.fs.Remove(w.tmp)
		return err
	}
	if err := w.f.Close(); err != nil {
		_ = w.fs.Remove(w.tmp)
		return err
	}
	return w.fs.Rename(w.tmp, w.path)
}

func (w *localWritableBlob) Abort() error {
	if w.done {
		return nil
	}
	w.done = true
	_ = w.f.Close()
	return w.fs.Remove(w.tmp)
}
