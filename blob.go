package tfrec

import (
	"context"

	"github.com/hupe1980/tfrec/blobstore"
)

// CreateBlob starts the blob name in store and returns a Writer for it. The
// blob is committed when the Writer closes cleanly and aborted when a write
// failed. ctx bounds the upload and any rate limiting.
func CreateBlob[S any](ctx context.Context, store blobstore.Store, name string, pack PackFunc[S], optFns ...Option) (*Writer[S], error) {
	if pack == nil {
		return nil, errNilPack
	}

	opts := applyOptions(optFns)
	if _, err := opts.codec(); err != nil {
		return nil, err
	}

	blob, err := store.Create(ctx, name)
	if err != nil {
		return nil, &IOError{Op: "create", Err: err}
	}

	w, err := newWriter(ctx, blob, pack, optFns)
	if err != nil {
		_ = blob.Abort()
		return nil, err
	}

	w.opts.logger = w.opts.logger.WithStream(name)
	return w, nil
}

// OpenBlob opens the blob name in store and returns a Reader for it.
// A missing blob yields an *IOError matching blobstore.ErrNotFound.
func OpenBlob[S any](ctx context.Context, store blobstore.Store, name string, unpack UnpackFunc[S], optFns ...Option) (*Reader[S], error) {
	if unpack == nil {
		return nil, errNilUnpack
	}

	opts := applyOptions(optFns)
	if _, err := opts.codec(); err != nil {
		return nil, err
	}

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, &IOError{Op: "open", Err: err}
	}

	r, err := newReader(ctx, blob, unpack, optFns)
	if err != nil {
		_ = blob.Close()
		return nil, err
	}

	r.opts.logger = r.opts.logger.WithStream(name)
	return r, nil
}
