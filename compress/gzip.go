package compress

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

type gzipCodec struct{}

var _ Codec = gzipCodec{}

func (gzipCodec) Type() Type { return Gzip }

func (c gzipCodec) Compress(data []byte) ([]byte, error) {
	return compressAll(c, data)
}

func (c gzipCodec) Decompress(data []byte) ([]byte, error) {
	return decompressAll(c, data)
}

func (gzipCodec) NewWriter(w io.Writer) (Writer, error) {
	return gzip.NewWriter(w), nil
}

// NewReader accepts concatenated gzip members as one stream.
func (gzipCodec) NewReader(r io.Reader) io.Reader {
	return newStreamReader(Gzip, r, func(src io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(src)
	})
}
