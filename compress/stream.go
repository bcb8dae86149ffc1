package compress

import (
	"bufio"
	"errors"
	"io"
)

var errReaderClosed = errors.New("compress: read after close")

// streamReader opens the decompressor on first Read and classifies errors:
// failures of the source pass through unchanged, everything else the
// decompressor reports becomes a *StreamError. Errors are sticky.
//
// When an envelope ends before the source does, the next envelope is opened
// on the remaining bytes. Concatenated envelopes read as one stream and
// trailing bytes that are not an envelope fail as a *StreamError.
type streamReader struct {
	typ  Type
	src  *sourceReader
	br   *bufio.Reader
	open func(io.Reader) (io.ReadCloser, error)
	dec  io.ReadCloser
	err  error
}

func newStreamReader(typ Type, r io.Reader, open func(io.Reader) (io.ReadCloser, error)) *streamReader {
	src := &sourceReader{r: r}
	return &streamReader{typ: typ, src: src, br: bufio.NewReader(src), open: open}
}

func (s *streamReader) Read(p []byte) (int, error) {
	for {
		if s.err != nil {
			return 0, s.err
		}

		if s.dec == nil {
			if err := s.next(); err != nil {
				s.err = err
				return 0, err
			}
		}

		n, err := s.dec.Read(p)
		if err == io.EOF { //nolint:errorlint // decompressors report the envelope end unwrapped
			// The envelope is complete; a following one is opened on the next call.
			_ = s.dec.Close()
			s.dec = nil
			err = nil
		}
		if err != nil {
			s.err = s.classify(err)
			return n, s.err
		}
		if n > 0 || len(p) == 0 {
			return n, nil
		}
	}
}

// next opens the decompressor for the envelope at the current position. A
// source without a single byte left is the clean end of the stream.
func (s *streamReader) next() error {
	if _, err := s.br.Peek(1); err != nil {
		return s.classify(err)
	}

	dec, err := s.open(s.br)
	if err != nil {
		return s.classify(err)
	}
	s.dec = dec
	return nil
}

func (s *streamReader) classify(err error) error {
	if err == io.EOF { //nolint:errorlint // clean end is reported unwrapped
		return io.EOF
	}
	if s.src.err != nil && errors.Is(err, s.src.err) {
		return s.src.err
	}
	return &StreamError{Type: s.typ, Err: err}
}

// Close releases the decompressor. The source is left open. Reads after
// Close fail, whether or not anything was read before.
func (s *streamReader) Close() error {
	if s.err == nil || s.err == io.EOF { //nolint:errorlint // sentinel set by this reader
		s.err = errReaderClosed
	}
	if s.dec == nil {
		return nil
	}
	err := s.dec.Close()
	s.dec = nil
	return err
}

// sourceReader remembers the first non-EOF error of the compressed source.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF && s.err == nil { //nolint:errorlint // io.EOF is never wrapped by readers
		s.err = err
	}
	return n, err
}
