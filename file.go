package tfrec

import (
	"bytes"
	"io"

	"github.com/hupe1980/tfrec/internal/fs"
	"github.com/hupe1980/tfrec/internal/mmap"
)

// Create creates or truncates the file at path and returns a Writer for it.
// Closing the Writer syncs and closes the file.
func Create[S any](path string, pack PackFunc[S], optFns ...Option) (*Writer[S], error) {
	if pack == nil {
		return nil, errNilPack
	}

	opts := applyOptions(optFns)
	if _, err := opts.codec(); err != nil {
		return nil, err
	}

	f, err := fs.Create(opts.fileSystem, path)
	if err != nil {
		return nil, &IOError{Op: "create", Err: err}
	}

	w, err := NewWriter(fileSink{f}, pack, optFns...)
	if err != nil {
		_ = f.Close()
		_ = opts.fileSystem.Remove(path)
		return nil, err
	}

	w.opts.logger = w.opts.logger.WithStream(path)
	return w, nil
}

// Open opens the file at path and returns a Reader for it. Closing the
// Reader closes the file.
func Open[S any](path string, unpack UnpackFunc[S], optFns ...Option) (*Reader[S], error) {
	if unpack == nil {
		return nil, errNilUnpack
	}

	opts := applyOptions(optFns)
	if _, err := opts.codec(); err != nil {
		return nil, err
	}

	f, err := fs.Open(opts.fileSystem, path)
	if err != nil {
		return nil, &IOError{Op: "open", Err: err}
	}

	var src io.Reader = f
	if opts.mmap {
		if m, ok := mapFile(f); ok {
			_ = f.Close()
			src = &mappedSource{Reader: bytes.NewReader(m.Bytes()), m: m}
		}
	}

	r, err := NewReader(src, unpack, optFns...)
	if err != nil {
		if c, ok := src.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, err
	}

	r.opts.logger = r.opts.logger.WithStream(path)
	return r, nil
}

// mapFile maps f when it is backed by an OS descriptor. Any failure leaves
// the caller reading f as a stream.
func mapFile(f fs.File) (*mmap.Mapping, bool) {
	fder, ok := f.(mmap.Fder)
	if !ok {
		return nil, false
	}
	fi, err := f.Stat()
	if err != nil {
		return nil, false
	}
	m, err := mmap.Map(fder, fi.Size())
	if err != nil {
		return nil, false
	}
	return m, true
}

// fileSink makes Writer.Flush and Writer.Close sync the file.
type fileSink struct {
	fs.File
}

func (s fileSink) Flush() error { return s.Sync() }

type mappedSource struct {
	*bytes.Reader
	m *mmap.Mapping
}

func (s *mappedSource) Close() error { return s.m.Close() }
