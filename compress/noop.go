package compress

import "io"

type noopCodec struct{}

var _ Codec = noopCodec{}

func (noopCodec) Type() Type { return None }

// Compress returns data unchanged, sharing its memory.
func (noopCodec) Compress(data []byte) ([]byte, error) { return data, nil }

// Decompress returns data unchanged, sharing its memory.
func (noopCodec) Decompress(data []byte) ([]byte, error) { return data, nil }

func (noopCodec) NewWriter(w io.Writer) (Writer, error) {
	return nopWriter{w}, nil
}

func (noopCodec) NewReader(r io.Reader) io.Reader {
	return nopReader{r}
}

type nopWriter struct {
	io.Writer
}

func (nopWriter) Flush() error { return nil }
func (nopWriter) Close() error { return nil }

type nopReader struct {
	io.Reader
}

func (nopReader) Close() error { return nil }
