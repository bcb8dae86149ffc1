//go:build unix

package mmap

import (
	"errors"

	"golang.org/x/sys/unix"
)

func osMap(f Fder, size int) ([]byte, func([]byte) error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED) //nolint:gosec // descriptors fit in int
	if err != nil {
		return nil, nil, err
	}
	return data, unix.Munmap, nil
}

func osAdviseSequential(data []byte) error {
	err := unix.Madvise(data, unix.MADV_SEQUENTIAL)
	if errors.Is(err, unix.EINVAL) {
		// Advisory only; some kernels reject unaligned ranges.
		return nil
	}
	return err
}
