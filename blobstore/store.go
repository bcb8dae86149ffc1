package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist. It is os.ErrNotExist
// so callers can test either.
var ErrNotFound = os.ErrNotExist

// ErrAborted is reported by readers of an upload that was aborted.
var ErrAborted = errors.New("blobstore: upload aborted")

// Store reads, writes, lists and deletes named blobs.
type Store interface {
	// Open opens a blob for sequential reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Create starts a blob. It becomes visible when the returned writer is closed.
	Create(ctx context.Context, name string) (WritableBlob, error)
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a sequential reader over a stored blob.
type Blob interface {
	io.ReadCloser
	// Size returns the blob size in bytes.
	Size() int64
}

// WritableBlob is a blob under construction.
type WritableBlob interface {
	io.WriteCloser
	// Abort discards everything written. It is a no-op after Close.
	Abort() error
}
