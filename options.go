package tfrec

import (
	"log/slog"

	"github.com/hupe1980/tfrec/compress"
	"github.com/hupe1980/tfrec/internal/fs"
	"github.com/hupe1980/tfrec/internal/throttle"
)

type options struct {
	compression      compress.Type
	compressionErr   error
	metricsCollector MetricsCollector
	logger           *Logger
	maxRecordSize    int64
	bytesPerSec      int64
	throttle         *throttle.Controller
	fileSystem       fs.FileSystem
	mmap             bool
}

// Option configures Writer and Reader construction.
type Option func(*options)

// WithCompression selects the stream envelope. Writers and readers of the
// same stream must agree on it. The default is compress.None.
func WithCompression(t compress.Type) Option {
	return func(o *options) {
		o.compression = t
	}
}

// WithCompressionName is WithCompression for a name such as "gzip". An
// unknown name makes the constructor fail with ErrUnsupportedCompression.
func WithCompressionName(name string) Option {
	return func(o *options) {
		o.compression, o.compressionErr = compress.ParseType(name)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &tfrec.BasicMetricsCollector{}
//	w, _ := tfrec.NewWriter(sink, pack, tfrec.WithMetricsCollector(metrics))
//	// ... write ...
//	stats := metrics.GetStats()
//	fmt.Printf("Records: %d, Bytes: %d\n", stats.WriteCount, stats.WriteBytes)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := tfrec.NewJSONLogger(slog.LevelInfo)
//	r, _ := tfrec.NewReader(src, unpack, tfrec.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMaxRecordSize makes readers reject records whose payload is larger
// than n bytes with ErrRecordTooLarge. Zero means no limit.
func WithMaxRecordSize(n int64) Option {
	return func(o *options) {
		o.maxRecordSize = n
	}
}

// WithRateLimit caps the bytes per second a writer hands to its sink or a
// reader pulls from its source, measured on the compressed stream. Zero
// means unlimited.
func WithRateLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.bytesPerSec = bytesPerSec
	}
}

// WithFileSystem sets the file system used by Create and Open.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		o.fileSystem = fsys
	}
}

// WithMmap makes Open map the file into memory instead of reading it
// through the file system. It applies only when the file system returns OS
// files; otherwise Open falls back to streaming.
func WithMmap(enabled bool) Option {
	return func(o *options) {
		o.mmap = enabled
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		compression:      compress.None,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		fileSystem:       fs.Default,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.fileSystem == nil {
		o.fileSystem = fs.Default
	}
	if o.bytesPerSec > 0 {
		o.throttle = throttle.New(throttle.Config{BytesPerSec: o.bytesPerSec})
	}
	return o
}

func (o *options) codec() (compress.Codec, error) {
	if o.compressionErr != nil {
		return nil, o.compressionErr
	}
	return compress.CreateCodec(o.compression)
}
