package tfrec

import (
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/tfrec/compress"
	"github.com/hupe1980/tfrec/feature"
	"github.com/hupe1980/tfrec/record"
)

var (
	// ErrWriterClosed is returned by writes to a closed Writer.
	ErrWriterClosed = errors.New("tfrec: writer closed")

	// ErrReaderClosed is returned by reads from a closed Reader.
	ErrReaderClosed = errors.New("tfrec: reader closed")

	// ErrIO is matched by every *IOError.
	ErrIO = errors.New("tfrec: io error")

	// ErrPack is matched by every *PackError.
	ErrPack = errors.New("tfrec: pack failed")

	// ErrUnpack is matched by every *UnpackError.
	ErrUnpack = errors.New("tfrec: unpack failed")
)

// Errors of the lower layers, re-exported so callers need a single import.
var (
	ErrMalformedFeature       = feature.ErrMalformedFeature
	ErrMalformedFeatureSet    = feature.ErrMalformedFeatureSet
	ErrTruncatedRecord        = record.ErrTruncatedRecord
	ErrChecksumMismatch       = record.ErrChecksumMismatch
	ErrRecordTooLarge         = record.ErrRecordTooLarge
	ErrCompressionStream      = compress.ErrCompressionStream
	ErrUnsupportedCompression = compress.ErrUnsupportedCompression
)

// IOError reports a failure of the underlying sink or source.
//
// The original error can be accessed via errors.Unwrap.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("tfrec: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrIO) succeed.
func (e *IOError) Is(target error) bool { return target == ErrIO }

// PackError wraps an error returned by a PackFunc.
type PackError struct {
	Err error
}

func (e *PackError) Error() string {
	return fmt.Sprintf("tfrec: pack: %v", e.Err)
}

func (e *PackError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrPack) succeed.
func (e *PackError) Is(target error) bool { return target == ErrPack }

// UnpackError wraps an error returned by an UnpackFunc.
type UnpackError struct {
	// Record is the zero-based index of the record that failed to unpack.
	Record int64
	Err    error
}

func (e *UnpackError) Error() string {
	return fmt.Sprintf("tfrec: unpack record %d: %v", e.Record, e.Err)
}

func (e *UnpackError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrUnpack) succeed.
func (e *UnpackError) Is(target error) bool { return target == ErrUnpack }

// IsCorruption reports whether err means the stored bytes are damaged, as
// opposed to the storage failing or the caller misusing the API.
func IsCorruption(err error) bool {
	return errors.Is(err, ErrTruncatedRecord) ||
		errors.Is(err, ErrChecksumMismatch) ||
		errors.Is(err, ErrCompressionStream) ||
		errors.Is(err, ErrMalformedFeatureSet) ||
		errors.Is(err, ErrMalformedFeature) ||
		errors.Is(err, ErrRecordTooLarge)
}

// translateReadError keeps the taxonomy errors of the lower layers and wraps
// everything else, which can only come from the source, as an IOError.
func translateReadError(err error) error {
	if err == nil || err == io.EOF || IsCorruption(err) { //nolint:errorlint // io.EOF is returned unwrapped by the framer
		return err
	}
	return &IOError{Op: "read", Err: err}
}
