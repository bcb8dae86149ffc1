//go:build !unix

package mmap

import (
	"errors"
	"io"
)

func osMap(f Fder, size int) ([]byte, func([]byte) error, error) {
	r, ok := f.(io.ReaderAt)
	if !ok {
		return nil, nil, errors.New("mmap: file does not support ReadAt")
	}

	data := make([]byte, size)
	if _, err := r.ReadAt(data, 0); err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, err
	}
	return data, nil, nil
}

func osAdviseSequential([]byte) error { return nil }
