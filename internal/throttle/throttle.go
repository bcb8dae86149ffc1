// Package throttle limits IO throughput and worker concurrency.
package throttle

import (
	"context"
	"io"
	"math"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds throttling limits.
type Config struct {
	// BytesPerSec is the sustained IO throughput. If 0, IO is unlimited.
	BytesPerSec int64

	// Burst is the largest number of bytes released by a single wait.
	// If 0, defaults to BytesPerSec.
	Burst int

	// MaxWorkers bounds concurrent workers. If 0, defaults to 1.
	MaxWorkers int64
}

// Controller hands out IO budget and worker slots.
//
// A nil *Controller imposes no limits.
type Controller struct {
	cfg     Config
	workers *semaphore.Weighted
	io      *rate.Limiter
}

// New creates a Controller.
func New(cfg Config) *Controller {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}

	c := &Controller{
		cfg:     cfg,
		workers: semaphore.NewWeighted(cfg.MaxWorkers),
	}

	if cfg.BytesPerSec > 0 {
		if cfg.Burst <= 0 {
			cfg.Burst = int(min(cfg.BytesPerSec, math.MaxInt32))
		}
		c.cfg.Burst = cfg.Burst
		c.io = rate.NewLimiter(rate.Limit(cfg.BytesPerSec), cfg.Burst)
	}

	return c
}

// Limited reports whether IO is rate limited.
func (c *Controller) Limited() bool {
	return c != nil && c.io != nil
}

// Burst returns the largest chunk released by one wait, or 0 when unlimited.
func (c *Controller) Burst() int {
	if !c.Limited() {
		return 0
	}
	return c.cfg.Burst
}

// AcquireIO waits until the limit allows n bytes. Requests above the burst
// are split into burst-sized waits.
func (c *Controller) AcquireIO(ctx context.Context, n int) error {
	if !c.Limited() {
		return nil
	}
	for n > 0 {
		chunk := min(n, c.cfg.Burst)
		if err := c.io.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// AcquireWorker reserves a worker slot, blocking until one is free or ctx is done.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.workers.Acquire(ctx, 1)
}

// TryAcquireWorker reserves a worker slot without blocking.
func (c *Controller) TryAcquireWorker() bool {
	if c == nil {
		return true
	}
	return c.workers.TryAcquire(1)
}

// ReleaseWorker returns a slot taken by AcquireWorker or TryAcquireWorker.
func (c *Controller) ReleaseWorker() {
	if c == nil {
		return
	}
	c.workers.Release(1)
}

// Writer is an io.Writer that never passes more than one burst to the
// underlying writer per wait.
type Writer struct {
	ctx context.Context
	w   io.Writer
	c   *Controller
}

// NewWriter wraps w. If c is not limited, writes go straight through.
func NewWriter(ctx context.Context, w io.Writer, c *Controller) *Writer {
	return &Writer{ctx: ctx, w: w, c: c}
}

func (w *Writer) Write(p []byte) (int, error) {
	if !w.c.Limited() {
		return w.w.Write(p)
	}

	var written int
	for len(p) > 0 {
		chunk := p[:min(len(p), w.c.cfg.Burst)]
		if err := w.c.AcquireIO(w.ctx, len(chunk)); err != nil {
			return written, err
		}
		n, err := w.w.Write(chunk)
		written += n
		if err != nil {
			return written, err
		}
		p = p[n:]
	}
	return written, nil
}

// Unwrap returns the underlying writer.
func (w *Writer) Unwrap() io.Writer {
	return w.w
}

// Reader is an io.Reader whose reads are capped at one burst and charged
// against the limit before they happen.
type Reader struct {
	ctx context.Context
	r   io.Reader
	c   *Controller
}

// NewReader wraps r. If c is not limited, reads go straight through.
func NewReader(ctx context.Context, r io.Reader, c *Controller) *Reader {
	return &Reader{ctx: ctx, r: r, c: c}
}

func (r *Reader) Read(p []byte) (int, error) {
	if !r.c.Limited() {
		return r.r.Read(p)
	}
	if len(p) > r.c.cfg.Burst {
		p = p[:r.c.cfg.Burst]
	}
	if err := r.c.AcquireIO(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
