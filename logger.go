package tfrec

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with tfrec-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewJSONLoggerTo(os.Stderr, level)
}

// NewJSONLoggerTo is NewJSONLogger writing to w.
func NewJSONLoggerTo(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewTextLoggerTo(os.Stderr, level)
}

// NewTextLoggerTo is NewTextLogger writing to w.
func NewTextLoggerTo(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithStream tags every entry with the stream being read or written.
func (l *Logger) WithStream(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("stream", name),
	}
}

// WithCompression adds the compression type to every entry.
func (l *Logger) WithCompression(c string) *Logger {
	return &Logger{
		Logger: l.Logger.With("compression", c),
	}
}

// LogWrite logs a record write.
func (l *Logger) LogWrite(ctx context.Context, index int64, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "write failed",
			"record", index,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "record written",
			"record", index,
			"bytes", size,
		)
	}
}

// LogRead logs a record read. The clean end of a stream is logged at debug level.
func (l *Logger) LogRead(ctx context.Context, index int64, size int, err error) {
	switch {
	case err == io.EOF: //nolint:errorlint // end of stream is never wrapped
		l.DebugContext(ctx, "end of stream",
			"records", index,
		)
	case err != nil:
		l.ErrorContext(ctx, "read failed",
			"record", index,
			"error", err,
		)
	default:
		l.DebugContext(ctx, "record read",
			"record", index,
			"bytes", size,
		)
	}
}

// LogCorruption logs a stream that cannot be read past offset.
func (l *Logger) LogCorruption(ctx context.Context, index, offset int64, err error) {
	l.WarnContext(ctx, "corrupt stream",
		"record", index,
		"offset", offset,
		"error", err,
	)
}

// LogClose logs closing a writer or reader.
func (l *Logger) LogClose(ctx context.Context, records, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "close failed",
			"records", records,
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "stream closed",
			"records", records,
			"bytes", bytes,
		)
	}
}
