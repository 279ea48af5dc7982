package snapgo

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/snapgo/codec"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the metric
// package provides a Prometheus implementation.
//
// size is the encoded artifact size in bytes, or 0 when the operation failed
// before an artifact existed.
type MetricsCollector interface {
	// RecordPersist is called after each Persist.
	RecordPersist(f codec.Format, size int, duration time.Duration, err error)
	// RecordRestore is called after each Restore.
	RecordRestore(f codec.Format, size int, duration time.Duration, err error)
	// RecordExport is called after each Export.
	RecordExport(f codec.Format, size int, duration time.Duration, err error)
	// RecordImport is called after each Import.
	RecordImport(f codec.Format, size int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPersist(codec.Format, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRestore(codec.Format, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordExport(codec.Format, int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordImport(codec.Format, int, time.Duration, error)  {}

// opCounters tracks one operation kind.
type opCounters struct {
	Count      atomic.Int64
	Errors     atomic.Int64
	Bytes      atomic.Int64
	TotalNanos atomic.Int64
}

func (c *opCounters) record(size int, duration time.Duration, err error) {
	c.Count.Add(1)
	c.TotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		c.Errors.Add(1)
		return
	}
	c.Bytes.Add(int64(size))
}

func (c *opCounters) stats() OpStats {
	s := OpStats{
		Count:  c.Count.Load(),
		Errors: c.Errors.Load(),
		Bytes:  c.Bytes.Load(),
	}
	if s.Count > 0 {
		s.AvgNanos = c.TotalNanos.Load() / s.Count
	}
	return s
}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	Persist opCounters
	Restore opCounters
	Export  opCounters
	Import  opCounters
}

// RecordPersist implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPersist(_ codec.Format, size int, duration time.Duration, err error) {
	b.Persist.record(size, duration, err)
}

// RecordRestore implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRestore(_ codec.Format, size int, duration time.Duration, err error) {
	b.Restore.record(size, duration, err)
}

// RecordExport implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExport(_ codec.Format, size int, duration time.Duration, err error) {
	b.Export.record(size, duration, err)
}

// RecordImport implements MetricsCollector.
func (b *BasicMetricsCollector) RecordImport(_ codec.Format, size int, duration time.Duration, err error) {
	b.Import.record(size, duration, err)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		Persist: b.Persist.stats(),
		Restore: b.Restore.stats(),
		Export:  b.Export.stats(),
		Import:  b.Import.stats(),
	}
}

// OpStats summarizes one operation kind. Bytes counts successful operations only.
type OpStats struct {
	Count    int64
	Errors   int64
	Bytes    int64
	AvgNanos int64
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	Persist OpStats
	Restore OpStats
	Export  OpStats
	Import  OpStats
}
