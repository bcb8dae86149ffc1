package tfrec

import (
	"context"
	"errors"
	"io"
	"iter"
	"time"

	"github.com/hupe1980/tfrec/compress"
	"github.com/hupe1980/tfrec/feature"
	"github.com/hupe1980/tfrec/internal/throttle"
	"github.com/hupe1980/tfrec/record"
)

// UnpackFunc converts the feature set of one record back into a sample.
type UnpackFunc[S any] func(set *feature.Set) (S, error)

// Reader yields the samples of a stream, front to back.
//
// A Reader is lazy and forward-only: each call reads exactly one record from
// the source. Every error, including the clean io.EOF, is final and
// returned again by later calls. Open a new Reader to start over.
type Reader[S any] struct {
	src    io.Reader
	codec  compress.Codec
	dec    io.Reader
	unpack UnpackFunc[S]
	frames *record.Reader
	opts   options
	err    error
	closed bool
}

// NewReader returns a Reader that decodes records from src and converts
// them with unpack. The compression option must match the one used to write
// the stream. Nothing is read until the first call to Next.
func NewReader[S any](src io.Reader, unpack UnpackFunc[S], optFns ...Option) (*Reader[S], error) {
	return newReader(context.Background(), src, unpack, optFns)
}

var errNilUnpack = errors.New("tfrec: nil unpack func")

func newReader[S any](ctx context.Context, src io.Reader, unpack UnpackFunc[S], optFns []Option) (*Reader[S], error) {
	if src == nil {
		return nil, errors.New("tfrec: nil source")
	}
	if unpack == nil {
		return nil, errNilUnpack
	}

	opts := applyOptions(optFns)

	codec, err := opts.codec()
	if err != nil {
		return nil, err
	}

	in := src
	if opts.throttle.Limited() {
		in = throttle.NewReader(ctx, src, opts.throttle)
	}

	dec := codec.NewReader(in)
	opts.logger = opts.logger.WithCompression(codec.Type().String())

	return &Reader[S]{
		src:    src,
		codec:  codec,
		dec:    dec,
		unpack: unpack,
		frames: record.NewReader(dec, record.WithMaxRecordSize(opts.maxRecordSize)),
		opts:   opts,
	}, nil
}

// NewFeatureReader returns a Reader that yields the decoded feature sets.
func NewFeatureReader(src io.Reader, optFns ...Option) (*Reader[*feature.Set], error) {
	return NewReader(src, UnpackFeatures, optFns...)
}

// UnpackFeatures is the identity UnpackFunc.
func UnpackFeatures(s *feature.Set) (*feature.Set, error) {
	return s, nil
}

// Next returns the next sample. It returns io.EOF after the last record.
func (r *Reader[S]) Next() (S, error) {
	var zero S

	set, err := r.NextFeatures()
	if err != nil {
		return zero, err
	}

	sample, err := r.unpack(set)
	if err != nil {
		r.err = &UnpackError{Record: r.Count() - 1, Err: err}
		r.opts.logger.LogRead(context.Background(), r.Count()-1, 0, r.err)
		return zero, r.err
	}
	return sample, nil
}

// NextFeatures returns the feature set of the next record without
// unpacking it. It returns io.EOF after the last record.
func (r *Reader[S]) NextFeatures() (*feature.Set, error) {
	if r.closed {
		return nil, ErrReaderClosed
	}
	if r.err != nil {
		return nil, r.err
	}

	ctx := context.Background()
	start := time.Now()
	index := r.frames.Count()
	offset := r.frames.Offset()

	payload, err := r.frames.Next()
	if err == nil {
		var set *feature.Set
		if set, err = feature.Decode(payload); err == nil {
			r.opts.metricsCollector.RecordRead(len(payload), time.Since(start), nil)
			r.opts.logger.LogRead(ctx, index, len(payload), nil)
			return set, nil
		}
	}

	r.err = translateReadError(err)
	if r.err == io.EOF { //nolint:errorlint // sentinel passed through unwrapped
		r.opts.logger.LogRead(ctx, index, 0, r.err)
		return nil, r.err
	}

	r.opts.metricsCollector.RecordRead(0, time.Since(start), r.err)
	if IsCorruption(r.err) {
		r.opts.metricsCollector.RecordCorruption(r.err)
		r.opts.logger.LogCorruption(ctx, index, offset, r.err)
	} else {
		r.opts.logger.LogRead(ctx, index, 0, r.err)
	}
	return nil, r.err
}

// All returns an iterator over the remaining samples. Iteration stops after
// the clean end of the stream or after yielding the first error.
//
//	for sample, err := range r.All() {
//	    if err != nil {
//	        return err
//	    }
//	    ...
//	}
func (r *Reader[S]) All() iter.Seq2[S, error] {
	return func(yield func(S, error) bool) {
		for {
			sample, err := r.Next()
			if err == io.EOF { //nolint:errorlint // sentinel passed through unwrapped
				return
			}
			if err != nil {
				var zero S
				yield(zero, err)
				return
			}
			if !yield(sample, nil) {
				return
			}
		}
	}
}

// Err returns the error that ended reading, or nil while the stream is
// healthy or after a clean end.
func (r *Reader[S]) Err() error {
	if r.err == io.EOF { //nolint:errorlint // sentinel passed through unwrapped
		return nil
	}
	return r.err
}

// Count returns the number of records read successfully.
func (r *Reader[S]) Count() int64 {
	return r.frames.Count()
}

// Offset returns the position of the next record in the decompressed stream.
func (r *Reader[S]) Offset() int64 {
	return r.frames.Offset()
}

// Compression returns the stream envelope in use.
func (r *Reader[S]) Compression() compress.Type {
	return r.codec.Type()
}

// Close releases the decompressor and closes the source if it is an
// io.Closer. It is idempotent.
func (r *Reader[S]) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	// Decompressor state is released without checking; a stream abandoned
	// midway reports its own error there.
	if c, ok := r.dec.(io.Closer); ok {
		_ = c.Close()
	}

	var err error
	if c, ok := r.src.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil {
			err = &IOError{Op: "close", Err: cerr}
		}
	}

	r.opts.logger.LogClose(context.Background(), r.Count(), r.Offset(), err)
	return err
}
