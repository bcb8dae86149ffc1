package compress

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedCompression is returned for compression names or types
	// outside none, zlib and gzip.
	ErrUnsupportedCompression = errors.New("unsupported compression")

	// ErrCompressionStream is matched by every *StreamError.
	ErrCompressionStream = errors.New("compression stream error")
)

// StreamError reports a failure of the decompressor, such as a bad header,
// corrupt deflate data or a stream that ends early.
type StreamError struct {
	Type Type
	Err  error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("%s stream: %v", e.Type, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrCompressionStream) succeed.
func (e *StreamError) Is(target error) bool {
	return target == ErrCompressionStream
}
