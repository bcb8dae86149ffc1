package compress

import (
	"io"

	"github.com/klauspost/compress/zlib"
)

type zlibCodec struct{}

var _ Codec = zlibCodec{}

func (zlibCodec) Type() Type { return Zlib }

func (c zlibCodec) Compress(data []byte) ([]byte, error) {
	return compressAll(c, data)
}

func (c zlibCodec) Decompress(data []byte) ([]byte, error) {
	return decompressAll(c, data)
}

func (zlibCodec) NewWriter(w io.Writer) (Writer, error) {
	return zlib.NewWriter(w), nil
}

func (zlibCodec) NewReader(r io.Reader) io.Reader {
	return newStreamReader(Zlib, r, func(src io.Reader) (io.ReadCloser, error) {
		return zlib.NewReader(src)
	})
}
