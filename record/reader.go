package record

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/tfrec/internal/hash"
)

// readChunk bounds how much payload memory is committed ahead of the bytes
// actually read, so a huge declared length on a short stream fails as
// truncated instead of allocating the declared size up front.
const readChunk = 1 << 20

// ReaderOptions configures a Reader.
type ReaderOptions struct {
	// MaxRecordSize rejects records whose validated length exceeds it.
	// Zero means no limit.
	MaxRecordSize int64
}

// Reader reads records sequentially from an io.Reader.
//
// A Reader is not safe for concurrent use. Errors are sticky: once Next
// returns an error, including io.EOF, every later call returns it again.
type Reader struct {
	r       io.Reader
	opts    ReaderOptions
	header  [HeaderSize]byte
	footer  [FooterSize]byte
	offset  int64
	records int64
	err     error
}

// NewReader returns a Reader positioned at the first record of r.
func NewReader(r io.Reader, optFns ...func(o *ReaderOptions)) *Reader {
	opts := ReaderOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Reader{r: r, opts: opts}
}

// Offset returns the stream offset of the next record. After an error it is
// the offset the reader had reached when the error occurred.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Count returns the number of valid records returned so far.
func (r *Reader) Count() int64 {
	return r.records
}

// Next returns the payload of the next record. It returns io.EOF when the
// stream ends cleanly at a record boundary.
//
// The returned slice is newly allocated and owned by the caller.
func (r *Reader) Next() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}

	payload, err := r.next()
	if err != nil {
		r.err = err
		return nil, err
	}

	r.records++
	return payload, nil
}

func (r *Reader) next() ([]byte, error) {
	start := r.offset

	n, err := io.ReadFull(r.r, r.header[:])
	r.offset += int64(n)
	//nolint:errorlint // io.ReadFull returns these sentinels unwrapped; wrapped ones come from the source.
	switch {
	case err == io.EOF:
		return nil, io.EOF
	case err == io.ErrUnexpectedEOF:
		return nil, truncated(start, "header", n, HeaderSize)
	case err != nil:
		return nil, err
	}

	lengthBytes := r.header[:8]
	stored := binary.LittleEndian.Uint32(r.header[8:])
	if actual := hash.CRC32C(lengthBytes); hash.Unmask(stored) != actual {
		return nil, &ChecksumError{Region: RegionLength, Offset: start, Stored: stored, Actual: hash.Mask(actual)}
	}

	length := binary.LittleEndian.Uint64(lengthBytes)
	if length > math.MaxInt64 || (r.opts.MaxRecordSize > 0 && length > uint64(r.opts.MaxRecordSize)) {
		return nil, fmt.Errorf("%w: record at offset %d declares %d bytes", ErrRecordTooLarge, start, length)
	}

	payload, err := r.readPayload(start, length)
	if err != nil {
		return nil, err
	}

	n, err = io.ReadFull(r.r, r.footer[:])
	r.offset += int64(n)
	//nolint:errorlint // see above
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil, truncated(start, "payload checksum", n, FooterSize)
	} else if err != nil {
		return nil, err
	}

	stored = binary.LittleEndian.Uint32(r.footer[:])
	if actual := hash.CRC32C(payload); hash.Unmask(stored) != actual {
		return nil, &ChecksumError{Region: RegionPayload, Offset: start, Stored: stored, Actual: hash.Mask(actual)}
	}

	return payload, nil
}

func (r *Reader) readPayload(start int64, length uint64) ([]byte, error) {
	buf := make([]byte, 0, min(length, readChunk))

	for uint64(len(buf)) < length {
		chunk := int(min(length-uint64(len(buf)), readChunk)) //nolint:gosec // bounded by readChunk
		if cap(buf)-len(buf) < chunk {
			grown := make([]byte, len(buf), len(buf)+chunk)
			copy(grown, buf)
			buf = grown
		}

		n, err := io.ReadFull(r.r, buf[len(buf):len(buf)+chunk])
		buf = buf[:len(buf)+n]
		r.offset += int64(n)
		//nolint:errorlint // see next()
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, truncated(start, "payload", len(buf), int(length)) //nolint:gosec // length <= MaxInt64
		} else if err != nil {
			return nil, err
		}
	}

	return buf, nil
}

func truncated(offset int64, part string, have, want int) error {
	return fmt.Errorf("%w: record at offset %d: %s has %d of %d bytes", ErrTruncatedRecord, offset, part, have, want)
}

// WithMaxRecordSize limits the payload size a Reader accepts.
func WithMaxRecordSize(n int64) func(o *ReaderOptions) {
	return func(o *ReaderOptions) {
		o.MaxRecordSize = n
	}
}
