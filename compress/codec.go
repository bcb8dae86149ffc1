package compress

import (
	"bytes"
	"fmt"
	"io"
)

// Writer is a streaming compressor.
//
// Close finishes the envelope (writes trailers) but never closes the
// underlying writer.
type Writer interface {
	io.Writer
	// Flush pushes buffered data to the underlying writer without ending the stream.
	Flush() error
	Close() error
}

// Codec compresses and decompresses whole buffers and streams of one Type.
//
// Codecs are stateless and safe for concurrent use; the Writers and Readers
// they create are not.
type Codec interface {
	Type() Type

	// Compress returns the complete envelope for data.
	Compress(data []byte) ([]byte, error)

	// Decompress returns the content of a complete envelope. Decompressor
	// failures are returned as *StreamError.
	Decompress(data []byte) ([]byte, error)

	// NewWriter returns a compressor writing to w.
	NewWriter(w io.Writer) (Writer, error)

	// NewReader returns a lazy decompressor reading from r. The returned
	// reader also implements io.Closer, which releases decompressor state
	// without closing r.
	NewReader(r io.Reader) io.Reader
}

// CreateCodec returns the Codec for t.
func CreateCodec(t Type) (Codec, error) {
	switch t {
	case None:
		return noopCodec{}, nil
	case Zlib:
		return zlibCodec{}, nil
	case Gzip:
		return gzipCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, t)
	}
}

// CodecFor is CreateCodec for a compression name.
func CodecFor(name string) (Codec, error) {
	t, err := ParseType(name)
	if err != nil {
		return nil, err
	}
	return CreateCodec(t)
}

func compressAll(c Codec, data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := c.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func decompressAll(c Codec, data []byte) ([]byte, error) {
	r := c.NewReader(bytes.NewReader(data))
	defer func() {
		if cl, ok := r.(io.Closer); ok {
			_ = cl.Close()
		}
	}()

	return io.ReadAll(r)
}
