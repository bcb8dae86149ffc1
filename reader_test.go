package tfrec

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tfrec/compress"
	"github.com/hupe1980/tfrec/feature"
	"github.com/hupe1980/tfrec/record"
	"github.com/hupe1980/tfrec/testutil"
)

type closeTracker struct {
	io.Reader
	closed int
	err    error
}

func (c *closeTracker) Close() error {
	c.closed++
	return c.err
}

type errReader struct {
	err error
}

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func TestReader_NilArguments(t *testing.T) {
	_, err := NewReader(nil, unpackExample)
	assert.Error(t, err)

	_, err = NewReader[example](&bytes.Buffer{}, nil)
	assert.Error(t, err)
}

func TestReader_EOFSticky(t *testing.T) {
	data := writeExamples(t, compress.None, examples(2))

	r, err := NewReader(bytes.NewReader(data), unpackExample)
	require.NoError(t, err)

	for range 2 {
		_, err := r.Next()
		require.NoError(t, err)
	}
	for range 3 {
		_, err := r.Next()
		assert.Equal(t, io.EOF, err)
	}
	assert.NoError(t, r.Err())
	assert.Equal(t, int64(2), r.Count())
	assert.Equal(t, int64(len(data)), r.Offset())
}

func TestReader_CorruptionSticky(t *testing.T) {
	data := writeExamples(t, compress.None, examples(3))
	data[len(data)-1] ^= 0xff

	metrics := &BasicMetricsCollector{}
	r, err := NewReader(bytes.NewReader(data), unpackExample, WithMetricsCollector(metrics))
	require.NoError(t, err)

	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	require.ErrorIs(t, err, ErrChecksumMismatch)
	assert.True(t, IsCorruption(err))

	_, again := r.Next()
	assert.Equal(t, err, again)
	assert.Equal(t, err, r.Err())
	assert.Equal(t, int64(1), metrics.GetStats().Corruptions)
}

func TestReader_UnpackError(t *testing.T) {
	data := writeExamples(t, compress.None, examples(3))

	boom := errors.New("bad sample")
	calls := 0
	unpack := func(s *feature.Set) (example, error) {
		calls++
		if calls == 2 {
			return example{}, boom
		}
		return unpackExample(s)
	}

	r, err := NewReader(bytes.NewReader(data), unpack)
	require.NoError(t, err)

	_, err = r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnpack)
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsCorruption(err))

	var ue *UnpackError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, int64(1), ue.Record)

	_, again := r.Next()
	assert.Equal(t, err, again)
}

func TestReader_MissingFieldIsUnpackError(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewFeatureWriter(&buf)
	require.NoError(t, err)
	s := feature.NewSet(1)
	s.Set("id", feature.StringList("not an int"))
	require.NoError(t, w.WriteSample(s))
	require.NoError(t, w.Close())

	r, err := NewReader(&buf, unpackExample)
	require.NoError(t, err)

	_, err = r.Next()
	assert.ErrorIs(t, err, ErrUnpack)
	assert.ErrorIs(t, err, feature.ErrKindMismatch)
}

func TestReader_MalformedPayload(t *testing.T) {
	// A record whose checksums hold but whose payload is not a feature set.
	framed := record.Frame([]byte{0x01, 0x00})
	r, err := NewFeatureReader(bytes.NewReader(framed))
	require.NoError(t, err)

	_, err = r.Next()
	assert.ErrorIs(t, err, ErrMalformedFeatureSet)
	assert.True(t, IsCorruption(err))
}

func TestReader_MaxRecordSize(t *testing.T) {
	big := example{ID: 1, Tags: []string{string(make([]byte, 4096))}}
	data := writeExamples(t, compress.None, []example{{ID: 0}, big})

	r, err := NewReader(bytes.NewReader(data), unpackExample, WithMaxRecordSize(1024))
	require.NoError(t, err)

	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	assert.ErrorIs(t, err, ErrRecordTooLarge)
}

func TestReader_SourceErrorIsIOError(t *testing.T) {
	boom := errors.New("connection reset")

	for _, c := range allTypes {
		t.Run(c.String(), func(t *testing.T) {
			r, err := NewReader(errReader{boom}, unpackExample, WithCompression(c))
			require.NoError(t, err)

			_, err = r.Next()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrIO)
			assert.ErrorIs(t, err, boom)
			assert.False(t, IsCorruption(err))
		})
	}
}

func TestReader_AllStopsEarly(t *testing.T) {
	data := writeExamples(t, compress.Gzip, examples(10))

	r, err := NewReader(bytes.NewReader(data), unpackExample, WithCompression(compress.Gzip))
	require.NoError(t, err)

	n := 0
	for _, err := range r.All() {
		require.NoError(t, err)
		n++
		if n == 4 {
			break
		}
	}
	assert.Equal(t, int64(4), r.Count())

	// The iterator resumes where the previous one stopped.
	for _, err := range r.All() {
		require.NoError(t, err)
		n++
	}
	assert.Equal(t, 10, n)
}

func TestReader_AllYieldsError(t *testing.T) {
	data := writeExamples(t, compress.None, examples(3))

	var samples, errs int
	r, err := NewReader(bytes.NewReader(data[:len(data)-5]), unpackExample)
	require.NoError(t, err)
	for _, err := range r.All() {
		if err != nil {
			errs++
			assert.ErrorIs(t, err, ErrTruncatedRecord)
			continue
		}
		samples++
	}
	assert.Equal(t, 2, samples)
	assert.Equal(t, 1, errs)
}

func TestReader_Close(t *testing.T) {
	data := writeExamples(t, compress.Zlib, examples(3))
	src := &closeTracker{Reader: bytes.NewReader(data)}

	r, err := NewReader(src, unpackExample, WithCompression(compress.Zlib))
	require.NoError(t, err)
	_, err = r.Next()
	require.NoError(t, err)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.Equal(t, 1, src.closed)

	_, err = r.Next()
	assert.ErrorIs(t, err, ErrReaderClosed)
}

func TestReader_CloseError(t *testing.T) {
	boom := errors.New("close failed")
	src := &closeTracker{Reader: bytes.NewReader(nil), err: boom}

	r, err := NewReader(src, unpackExample)
	require.NoError(t, err)

	err = r.Close()
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, boom)
}

func TestReader_LogsCorruption(t *testing.T) {
	data := writeExamples(t, compress.None, examples(2))
	data = testutil.FlipBit(data, 8*20)

	var logs bytes.Buffer
	r, err := NewReader(bytes.NewReader(data), unpackExample,
		WithLogger(NewTextLoggerTo(&logs, slog.LevelWarn)))
	require.NoError(t, err)

	_, err = r.Next()
	require.ErrorIs(t, err, ErrChecksumMismatch)
	assert.Contains(t, logs.String(), "corrupt stream")
	assert.Contains(t, logs.String(), "offset=0")
}

func TestReader_RandomFeatureSets(t *testing.T) {
	rng := testutil.NewRNG(7)
	sets := rng.FeatureSets(40, 6, 16)

	for _, c := range allTypes {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewFeatureWriter(&buf, WithCompression(c))
			require.NoError(t, err)
			for _, s := range sets {
				require.NoError(t, w.WriteSample(s))
			}
			require.NoError(t, w.Close())

			r, err := NewFeatureReader(&buf, WithCompression(c))
			require.NoError(t, err)

			i := 0
			for got, err := range r.All() {
				require.NoError(t, err)
				require.Less(t, i, len(sets))
				assert.True(t, sets[i].Equal(got), "record %d", i)
				i++
			}
			assert.Equal(t, len(sets), i)
		})
	}
}

func TestReader_RateLimit(t *testing.T) {
	data := writeExamples(t, compress.Gzip, examples(20))

	r, err := NewReader(bytes.NewReader(data), unpackExample,
		WithCompression(compress.Gzip), WithRateLimit(1<<30))
	require.NoError(t, err)

	n := 0
	for _, err := range r.All() {
		require.NoError(t, err)
		n++
	}
	assert.Equal(t, 20, n)
}
