package tfrec

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/hupe1980/tfrec/compress"
	"github.com/hupe1980/tfrec/feature"
	"github.com/hupe1980/tfrec/internal/throttle"
	"github.com/hupe1980/tfrec/record"
)

// maxRetainedPayload is the largest encode buffer kept between writes.
const maxRetainedPayload = 1 << 20

// PackFunc converts a sample into the feature set stored in one record.
type PackFunc[S any] func(sample S) (*feature.Set, error)

// Writer appends samples to a sink as framed, optionally compressed records.
//
// A Writer is not safe for concurrent use. Pack and encode failures leave
// the writer usable because nothing reached the sink. A sink failure is
// sticky: the stream may end in a partial record, so every later write
// returns the same *IOError.
type Writer[S any] struct {
	sink   io.Writer
	pack   PackFunc[S]
	codec  compress.Codec
	comp   compress.Writer
	frames *record.Writer
	opts   options
	buf    []byte
	err    error
	closed bool
}

// NewWriter returns a Writer that packs samples with pack and writes them
// to sink. On Close the compressor is finished and sink is closed if it is
// an io.Closer.
func NewWriter[S any](sink io.Writer, pack PackFunc[S], optFns ...Option) (*Writer[S], error) {
	return newWriter(context.Background(), sink, pack, optFns)
}

// NewFeatureWriter returns a Writer for samples that already are feature sets.
func NewFeatureWriter(sink io.Writer, optFns ...Option) (*Writer[*feature.Set], error) {
	return NewWriter(sink, PackFeatures, optFns...)
}

// PackFeatures is the identity PackFunc.
func PackFeatures(s *feature.Set) (*feature.Set, error) {
	return s, nil
}

var errNilPack = errors.New("tfrec: nil pack func")

func newWriter[S any](ctx context.Context, sink io.Writer, pack PackFunc[S], optFns []Option) (*Writer[S], error) {
	if sink == nil {
		return nil, errors.New("tfrec: nil sink")
	}
	if pack == nil {
		return nil, errNilPack
	}

	opts := applyOptions(optFns)

	codec, err := opts.codec()
	if err != nil {
		return nil, err
	}

	dst := sink
	if opts.throttle.Limited() {
		dst = throttle.NewWriter(ctx, sink, opts.throttle)
	}

	comp, err := codec.NewWriter(dst)
	if err != nil {
		return nil, &IOError{Op: "open compressor", Err: err}
	}

	opts.logger = opts.logger.WithCompression(codec.Type().String())

	return &Writer[S]{
		sink:   sink,
		pack:   pack,
		codec:  codec,
		comp:   comp,
		frames: record.NewWriter(comp),
		opts:   opts,
	}, nil
}

// WriteSample packs, encodes, frames and writes one sample.
func (w *Writer[S]) WriteSample(sample S) error {
	if err := w.usable(); err != nil {
		return err
	}

	set, err := w.pack(sample)
	if err != nil {
		err = &PackError{Err: err}
		w.opts.logger.LogWrite(context.Background(), w.Count(), 0, err)
		return err
	}

	return w.WriteFeatures(set)
}

// WriteFeatures encodes, frames and writes an already packed feature set.
func (w *Writer[S]) WriteFeatures(set *feature.Set) error {
	if err := w.usable(); err != nil {
		return err
	}

	ctx := context.Background()
	start := time.Now()
	index := w.Count()

	payload, err := feature.Append(w.buf[:0], set)
	if err != nil {
		w.opts.logger.LogWrite(ctx, index, 0, err)
		return err
	}

	n, err := w.frames.Write(payload)
	if cap(payload) <= maxRetainedPayload {
		w.buf = payload
	}
	if err != nil {
		w.err = &IOError{Op: "write", Err: err}
		w.opts.metricsCollector.RecordWrite(n, time.Since(start), w.err)
		w.opts.logger.LogWrite(ctx, index, n, w.err)
		return w.err
	}

	w.opts.metricsCollector.RecordWrite(n, time.Since(start), nil)
	w.opts.logger.LogWrite(ctx, index, n, nil)
	return nil
}

// Flush pushes buffered compressed data to the sink, and flushes the sink
// too if it has a Flush method. It does not end the compression stream.
func (w *Writer[S]) Flush() error {
	if err := w.usable(); err != nil {
		return err
	}

	if err := w.comp.Flush(); err != nil {
		w.err = &IOError{Op: "flush", Err: err}
		return w.err
	}
	if err := flushSink(w.sink); err != nil {
		w.err = &IOError{Op: "flush", Err: err}
		return w.err
	}
	return nil
}

// Close finishes the compression stream, then closes the sink if it is an
// io.Closer. After a sink failure the sink is aborted instead when it has an
// Abort method, so an incomplete blob is never committed. Close is
// idempotent; only the first call does any work.
func (w *Writer[S]) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error

	if w.err == nil {
		if err := w.comp.Close(); err != nil {
			w.err = &IOError{Op: "close", Err: err}
			errs = append(errs, w.err)
		} else if err := flushSink(w.sink); err != nil {
			w.err = &IOError{Op: "close", Err: err}
			errs = append(errs, w.err)
		}
	}

	if err := closeSink(w.sink, w.err != nil); err != nil {
		errs = append(errs, &IOError{Op: "close", Err: err})
	}

	err := errors.Join(errs...)
	w.opts.logger.LogClose(context.Background(), w.Count(), w.Bytes(), err)
	return err
}

// Count returns the number of records written.
func (w *Writer[S]) Count() int64 {
	return w.frames.Count()
}

// Bytes returns the number of framed bytes written, before compression.
func (w *Writer[S]) Bytes() int64 {
	return w.frames.Written()
}

// Compression returns the stream envelope in use.
func (w *Writer[S]) Compression() compress.Type {
	return w.codec.Type()
}

func (w *Writer[S]) usable() error {
	if w.closed {
		return ErrWriterClosed
	}
	return w.err
}

type flusher interface {
	Flush() error
}

type aborter interface {
	Abort() error
}

func flushSink(sink io.Writer) error {
	if f, ok := sink.(flusher); ok {
		return f.Flush()
	}
	return nil
}

func closeSink(sink io.Writer, failed bool) error {
	if a, ok := sink.(aborter); ok && failed {
		return a.Abort()
	}
	if c, ok := sink.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
