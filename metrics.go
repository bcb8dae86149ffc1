package tfrec

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    writeBytes prometheus.Counter
//	    corrupt    prometheus.Counter
//	}
//
//	func (p *PrometheusCollector) RecordWrite(bytes int, duration time.Duration, err error) {
//	    p.writeBytes.Add(float64(bytes))
//	}
type MetricsCollector interface {
	// RecordWrite is called after each record write. bytes is the framed
	// size handed to the compressor, err is nil if successful.
	RecordWrite(bytes int, duration time.Duration, err error)

	// RecordRead is called after each record read, except for the clean
	// end of a stream.
	RecordRead(bytes int, duration time.Duration, err error)

	// RecordCorruption is called when a read fails because the stored
	// bytes are damaged.
	RecordCorruption(err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordWrite(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRead(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordCorruption(error)                {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	WriteCount      atomic.Int64
	WriteErrors     atomic.Int64
	WriteBytes      atomic.Int64
	WriteTotalNanos atomic.Int64
	ReadCount       atomic.Int64
	ReadErrors      atomic.Int64
	ReadBytes       atomic.Int64
	ReadTotalNanos  atomic.Int64
	Corruptions     atomic.Int64
}

// RecordWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWrite(bytes int, duration time.Duration, err error) {
	b.WriteCount.Add(1)
	b.WriteTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.WriteErrors.Add(1)
		return
	}
	b.WriteBytes.Add(int64(bytes))
}

// RecordRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRead(bytes int, duration time.Duration, err error) {
	b.ReadCount.Add(1)
	b.ReadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReadErrors.Add(1)
		return
	}
	b.ReadBytes.Add(int64(bytes))
}

// RecordCorruption implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCorruption(error) {
	b.Corruptions.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		WriteCount:    b.WriteCount.Load(),
		WriteErrors:   b.WriteErrors.Load(),
		WriteBytes:    b.WriteBytes.Load(),
		WriteAvgNanos: avg(b.WriteTotalNanos.Load(), b.WriteCount.Load()),
		ReadCount:     b.ReadCount.Load(),
		ReadErrors:    b.ReadErrors.Load(),
		ReadBytes:     b.ReadBytes.Load(),
		ReadAvgNanos:  avg(b.ReadTotalNanos.Load(), b.ReadCount.Load()),
		Corruptions:   b.Corruptions.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	WriteCount    int64
	WriteErrors   int64
	WriteBytes    int64
	WriteAvgNanos int64
	ReadCount     int64
	ReadErrors    int64
	ReadBytes     int64
	ReadAvgNanos  int64
	Corruptions   int64
}
