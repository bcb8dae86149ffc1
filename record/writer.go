package record

import (
	"io"
)

// maxRetainedBuffer is the largest frame buffer kept between writes.
const maxRetainedBuffer = 1 << 20

// Writer frames payloads and writes each record to the underlying writer
// with a single Write call.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	w       io.Writer
	buf     []byte
	records int64
	written int64
}

// NewWriter returns a Writer appending records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write frames payload and writes the record. It returns the number of
// bytes handed to the underlying writer.
func (w *Writer) Write(payload []byte) (int, error) {
	w.buf = AppendFrame(w.buf[:0], payload)

	n, err := w.w.Write(w.buf)
	w.written += int64(n)
	if err == nil && n < len(w.buf) {
		err = io.ErrShortWrite
	}

	if cap(w.buf) > maxRetainedBuffer {
		w.buf = nil
	}

	if err != nil {
		return n, err
	}

	w.records++
	return n, nil
}

// Count returns the number of records written.
func (w *Writer) Count() int64 {
	return w.records
}

// Written returns the number of framed bytes handed to the underlying writer.
func (w *Writer) Written() int64 {
	return w.written
}
