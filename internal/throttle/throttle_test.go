package throttle

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	chunks []int
	buf    bytes.Buffer
}

func (r *recordingWriter) Write(p []byte) (int, error) {
	r.chunks = append(r.chunks, len(p))
	return r.buf.Write(p)
}

func TestController_Unlimited(t *testing.T) {
	var c *Controller
	assert.False(t, c.Limited())
	assert.Equal(t, 0, c.Burst())
	require.NoError(t, c.AcquireIO(context.Background(), 1<<30))
	require.NoError(t, c.AcquireWorker(context.Background()))
	assert.True(t, c.TryAcquireWorker())
	c.ReleaseWorker()

	c = New(Config{})
	assert.False(t, c.Limited())
}

func TestController_DefaultBurst(t *testing.T) {
	c := New(Config{BytesPerSec: 4096})
	assert.True(t, c.Limited())
	assert.Equal(t, 4096, c.Burst())
}

func TestController_AcquireIOAboveBurst(t *testing.T) {
	c := New(Config{BytesPerSec: 1 << 20, Burst: 16})

	// A single WaitN above the burst would fail outright.
	require.NoError(t, c.AcquireIO(context.Background(), 64))
}

func TestController_AcquireIOCanceled(t *testing.T) {
	c := New(Config{BytesPerSec: 1, Burst: 1})
	require.NoError(t, c.AcquireIO(context.Background(), 1))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := c.AcquireIO(ctx, 1)
	assert.Error(t, err)
}

func TestController_Workers(t *testing.T) {
	c := New(Config{MaxWorkers: 2})

	require.NoError(t, c.AcquireWorker(context.Background()))
	assert.True(t, c.TryAcquireWorker())
	assert.False(t, c.TryAcquireWorker())

	c.ReleaseWorker()
	assert.True(t, c.TryAcquireWorker())
}

func TestWriter_ChunksByBurst(t *testing.T) {
	c := New(Config{BytesPerSec: 1 << 20, Burst: 10})
	rec := &recordingWriter{}
	w := NewWriter(context.Background(), rec, c)

	data := bytes.Repeat([]byte("x"), 35)
	n, err := w.Write(data)
	require.NoError(t, err)
	assert.Equal(t, 35, n)

	assert.Equal(t, []int{10, 10, 10, 5}, rec.chunks)
	for _, chunk := range rec.chunks {
		assert.LessOrEqual(t, chunk, c.Burst())
	}
	assert.Equal(t, data, rec.buf.Bytes())
}

func TestWriter_Passthrough(t *testing.T) {
	rec := &recordingWriter{}
	w := NewWriter(context.Background(), rec, nil)

	_, err := w.Write(make([]byte, 100))
	require.NoError(t, err)
	assert.Equal(t, []int{100}, rec.chunks)
	assert.Equal(t, rec, w.Unwrap())
}

func TestReader_CapsReads(t *testing.T) {
	c := New(Config{BytesPerSec: 1 << 20, Burst: 8})
	r := NewReader(context.Background(), bytes.NewReader(make([]byte, 20)), c)

	n, err := r.Read(make([]byte, 64))
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Len(t, rest, 12)
}
