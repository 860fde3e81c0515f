package voxgo

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
//	    pageIns   prometheus.Counter
//	    pageInLat prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordPageIn(bytes int, duration time.Duration, err error) {
//	    p.pageIns.Inc()
//	    p.pageInLat.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordPageIn is called after each pager fault-in.
	// bytes is the compressed payload size, err is nil if successful.
	RecordPageIn(bytes int, duration time.Duration, err error)

	// RecordPageOut is called after each pager write-back.
	RecordPageOut(bytes int, duration time.Duration, err error)

	// RecordEviction is called after a resident chunk was evicted.
	// dirty reports whether the chunk had to be compressed and written.
	RecordEviction(dirty bool)

	// RecordExtraction is called after each surface extraction pass.
	RecordExtraction(triangles int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPageIn(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordPageOut(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordEviction(bool)                     {}
func (NoopMetricsCollector) RecordExtraction(int, time.Duration)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	PageInCount       atomic.Int64
	PageInErrors      atomic.Int64
	PageInBytes       atomic.Int64
	PageInTotalNanos  atomic.Int64
	PageOutCount      atomic.Int64
	PageOutErrors     atomic.Int64
	PageOutBytes      atomic.Int64
	PageOutTotalNanos atomic.Int64
	EvictionCount     atomic.Int64
	DirtyEvictions    atomic.Int64
	ExtractionCount   atomic.Int64
	TrianglesEmitted  atomic.Int64
}

// RecordPageIn implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPageIn(bytes int, duration time.Duration, err error) {
	b.PageInCount.Add(1)
	b.PageInTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.PageInErrors.Add(1)
		return
	}
	b.PageInBytes.Add(int64(bytes))
}

// RecordPageOut implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPageOut(bytes int, duration time.Duration, err error) {
	b.PageOutCount.Add(1)
	b.PageOutTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.PageOutErrors.Add(1)
		return
	}
	b.PageOutBytes.Add(int64(bytes))
}

// RecordEviction implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEviction(dirty bool) {
	b.EvictionCount.Add(1)
	if dirty {
		b.DirtyEvictions.Add(1)
	}
}

// RecordExtraction implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExtraction(triangles int, _ time.Duration) {
	b.ExtractionCount.Add(1)
	b.TrianglesEmitted.Add(int64(triangles))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		PageInCount:      b.PageInCount.Load(),
		PageInErrors:     b.PageInErrors.Load(),
		PageInBytes:      b.PageInBytes.Load(),
		PageInAvgNanos:   avg(b.PageInTotalNanos.Load(), b.PageInCount.Load()),
		PageOutCount:     b.PageOutCount.Load(),
		PageOutErrors:    b.PageOutErrors.Load(),
		PageOutBytes:     b.PageOutBytes.Load(),
		PageOutAvgNanos:  avg(b.PageOutTotalNanos.Load(), b.PageOutCount.Load()),
		EvictionCount:    b.EvictionCount.Load(),
		DirtyEvictions:   b.DirtyEvictions.Load(),
		ExtractionCount:  b.ExtractionCount.Load(),
		TrianglesEmitted: b.TrianglesEmitted.Load(),
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
	PageInCount      int64
	PageInErrors     int64
	PageInBytes      int64
	PageInAvgNanos   int64
	PageOutCount     int64
	PageOutErrors    int64
	PageOutBytes     int64
	PageOutAvgNanos  int64
	EvictionCount    int64
	DirtyEvictions   int64
	ExtractionCount  int64
	TrianglesEmitted int64
}
