package record

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tfrec/internal/hash"
)

func stream(payloads ...[]byte) []byte {
	var b []byte
	for _, p := range payloads {
		b = AppendFrame(b, p)
	}
	return b
}

func readAll(t *testing.T, r *Reader) ([][]byte, error) {
	t.Helper()

	var out [][]byte
	for {
		p, err := r.Next()
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
}

func TestReader_RoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte("first"),
		{},
		bytes.Repeat([]byte{0x5a}, 3*readChunk+17),
		[]byte("last"),
	}

	r := NewReader(bytes.NewReader(stream(payloads...)))
	got, err := readAll(t, r)

	assert.ErrorIs(t, err, io.EOF)
	require.Len(t, got, len(payloads))
	for i := range payloads {
		assert.True(t, bytes.Equal(payloads[i], got[i]), "record %d", i)
	}
	assert.Equal(t, int64(len(payloads)), r.Count())
}

func TestReader_EmptyStream(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))

	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, int64(0), r.Offset())
}

func TestReader_Offset(t *testing.T) {
	r := NewReader(bytes.NewReader(stream([]byte("ab"), []byte("cde"))))

	_, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(FramedSize(2)), r.Offset())

	_, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(FramedSize(2)+FramedSize(3)), r.Offset())
}

func TestReader_StrayBytes(t *testing.T) {
	data := append(stream([]byte("valid")), 0x01, 0x02, 0x03)
	r := NewReader(bytes.NewReader(data))

	p, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, []byte("valid"), p)

	_, err = r.Next()
	assert.ErrorIs(t, err, ErrTruncatedRecord)
}

func TestReader_Truncated(t *testing.T) {
	full := stream([]byte("payload"))

	for cut := 1; cut < len(full); cut++ {
		r := NewReader(bytes.NewReader(full[:cut]))
		_, err := r.Next()
		assert.ErrorIs(t, err, ErrTruncatedRecord, "cut at %d", cut)
	}
}

func TestReader_LengthChecksum(t *testing.T) {
	data := stream([]byte("payload"))
	data[0] ^= 0x01

	_, err := NewReader(bytes.NewReader(data)).Next()
	require.ErrorIs(t, err, ErrChecksumMismatch)

	var ce *ChecksumError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, RegionLength, ce.Region)
	assert.Equal(t, int64(0), ce.Offset)
}

func TestReader_PayloadChecksum(t *testing.T) {
	data := stream([]byte("one"), []byte("two"))
	data[FramedSize(3)+HeaderSize] ^= 0x80

	r := NewReader(bytes.NewReader(data))
	_, err := r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	var ce *ChecksumError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, RegionPayload, ce.Region)
	assert.Equal(t, int64(FramedSize(3)), ce.Offset)
}

func TestReader_BitFlips(t *testing.T) {
	data := stream([]byte("some payload bytes"))

	for i := range data {
		for bit := 0; bit < 8; bit++ {
			corrupt := bytes.Clone(data)
			corrupt[i] ^= 1 << bit

			_, err := NewReader(bytes.NewReader(corrupt)).Next()
			require.Error(t, err, "byte %d bit %d", i, bit)
			assert.True(t,
				errors.Is(err, ErrChecksumMismatch) || errors.Is(err, ErrTruncatedRecord),
				"byte %d bit %d: %v", i, bit, err)
		}
	}
}

func TestReader_HugeLengthShortStream(t *testing.T) {
	data := binary.LittleEndian.AppendUint64(nil, 1<<40)
	data = binary.LittleEndian.AppendUint32(data, hash.MaskedCRC32C(data))
	data = append(data, []byte("short")...)

	_, err := NewReader(bytes.NewReader(data)).Next()
	assert.ErrorIs(t, err, ErrTruncatedRecord)
}

func TestReader_MaxRecordSize(t *testing.T) {
	data := stream(make([]byte, 64))

	_, err := NewReader(bytes.NewReader(data), WithMaxRecordSize(63)).Next()
	assert.ErrorIs(t, err, ErrRecordTooLarge)

	p, err := NewReader(bytes.NewReader(data), WithMaxRecordSize(64)).Next()
	require.NoError(t, err)
	assert.Len(t, p, 64)
}

func TestReader_StickyError(t *testing.T) {
	data := stream([]byte("x"))
	data[len(data)-1] ^= 0xff

	r := NewReader(bytes.NewReader(append(data, stream([]byte("y"))...)))
	_, err1 := r.Next()
	_, err2 := r.Next()

	require.Error(t, err1)
	assert.Equal(t, err1, err2)
	assert.Equal(t, int64(0), r.Count())
}

type failingReader struct {
	data []byte
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestReader_SourceErrorPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	full := stream([]byte("payload"))

	for _, cut := range []int{0, 4, HeaderSize + 3, len(full) - 2} {
		r := NewReader(&failingReader{data: bytes.Clone(full[:cut]), err: boom})
		_, err := r.Next()
		assert.ErrorIs(t, err, boom, "cut at %d", cut)
		assert.NotErrorIs(t, err, ErrTruncatedRecord, "cut at %d", cut)
	}
}
