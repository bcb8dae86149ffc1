package mmap

import (
	"bytes"
	"errors"
	"io"
	"sync/atomic"
)

var (
	// ErrClosed is returned when a closed mapping is accessed.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned for negative or unaddressable sizes.
	ErrInvalidSize = errors.New("mmap: invalid size")
)

// Fder is implemented by files backed by an OS descriptor, such as *os.File.
type Fder interface {
	Fd() uintptr
}

// Mapping is a read-only view of a file.
type Mapping struct {
	data   []byte
	closed atomic.Bool
	unmap  func([]byte) error
}

// Map maps size bytes of f. The mapping stays valid after f is closed.
// A zero size yields an empty mapping without a system call.
func Map(f Fder, size int64) (*Mapping, error) {
	if size < 0 || int64(int(size)) != size {
		return nil, ErrInvalidSize
	}
	if size == 0 {
		return &Mapping{}, nil
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		return nil, err
	}

	m := &Mapping{data: data, unmap: unmap}
	_ = osAdviseSequential(data)

	return m, nil
}

// Bytes returns the mapped memory. It must not be used after Close.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the mapped length in bytes.
func (m *Mapping) Size() int {
	return len(m.data)
}

// NewReader returns a reader over the mapped bytes.
func (m *Mapping) NewReader() (io.Reader, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	return bytes.NewReader(m.data), nil
}

// Close unmaps the memory. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	if m.unmap != nil && m.data != nil {
		return m.unmap(m.data)
	}
	return nil
}
