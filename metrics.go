package renderstream

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Calls arrive on the goroutine that owns the manager, except for batch
// prepares which are recorded once the batch has joined.
type MetricsCollector interface {
	// RecordAdd is called after each single component add.
	// elements is the number of elements committed.
	RecordAdd(result AddResult, elements int, duration time.Duration)

	// RecordBatchAdd is called after each batch add.
	// count is the number of components attempted, failed is the number that failed.
	RecordBatchAdd(count, failed int, duration time.Duration)

	// RecordRemove is called after each component removal.
	// unreferenced is the number of assets that lost their last reference.
	RecordRemove(unreferenced int, duration time.Duration)

	// RecordCompile is called after each element compilation.
	RecordCompile(elements int, duration time.Duration)

	// RecordTrim is called after each trim or defragmentation that ran.
	RecordTrim(moved, releasedLanes int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(AddResult, int, time.Duration) {}
func (NoopMetricsCollector) RecordBatchAdd(int, int, time.Duration)  {}
func (NoopMetricsCollector) RecordRemove(int, time.Duration)         {}
func (NoopMetricsCollector) RecordCompile(int, time.Duration)        {}
func (NoopMetricsCollector) RecordTrim(int, int)                     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount         atomic.Int64
	AddFailed        atomic.Int64
	AddDensityFailed atomic.Int64
	AddElements      atomic.Int64
	AddTotalNanos    atomic.Int64
	BatchAddCount    atomic.Int64
	BatchAddItems    atomic.Int64
	BatchAddFailed   atomic.Int64
	RemoveCount      atomic.Int64
	Unreferenced     atomic.Int64
	CompileCount     atomic.Int64
	CompileElements  atomic.Int64
	CompileNanos     atomic.Int64
	TrimCount        atomic.Int64
	TrimMoved        atomic.Int64
	TrimLanes        atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(result AddResult, elements int, duration time.Duration) {
	b.AddCount.Add(1)
	b.AddTotalNanos.Add(duration.Nanoseconds())
	switch result {
	case AddSuccess:
		b.AddElements.Add(int64(elements))
	case AddFailDensityConstraint:
		b.AddDensityFailed.Add(1)
		b.AddFailed.Add(1)
	default:
		b.AddFailed.Add(1)
	}
}

// RecordBatchAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchAdd(count, failed int, duration time.Duration) {
	b.BatchAddCount.Add(1)
	b.BatchAddItems.Add(int64(count))
	b.BatchAddFailed.Add(int64(failed))
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(unreferenced int, duration time.Duration) {
	b.RemoveCount.Add(1)
	b.Unreferenced.Add(int64(unreferenced))
}

// RecordCompile implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCompile(elements int, duration time.Duration) {
	b.CompileCount.Add(1)
	b.CompileElements.Add(int64(elements))
	b.CompileNanos.Add(duration.Nanoseconds())
}

// RecordTrim implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTrim(moved, releasedLanes int) {
	b.TrimCount.Add(1)
	b.TrimMoved.Add(int64(moved))
	b.TrimLanes.Add(int64(releasedLanes))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:         b.AddCount.Load(),
		AddFailed:        b.AddFailed.Load(),
		AddDensityFailed: b.AddDensityFailed.Load(),
		AddElements:      b.AddElements.Load(),
		AddAvgNanos:      avg(b.AddTotalNanos.Load(), b.AddCount.Load()),
		BatchAddCount:    b.BatchAddCount.Load(),
		BatchAddItems:    b.BatchAddItems.Load(),
		BatchAddFailed:   b.BatchAddFailed.Load(),
		RemoveCount:      b.RemoveCount.Load(),
		Unreferenced:     b.Unreferenced.Load(),
		CompileCount:     b.CompileCount.Load(),
		CompileElements:  b.CompileElements.Load(),
		CompileAvgNanos:  avg(b.CompileNanos.Load(), b.CompileCount.Load()),
		TrimCount:        b.TrimCount.Load(),
		TrimMoved:        b.TrimMoved.Load(),
		TrimLanes:        b.TrimLanes.Load(),
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
	AddCount         int64
	AddFailed        int64
	AddDensityFailed int64
	AddElements      int64
	AddAvgNanos      int64
	BatchAddCount    int64
	BatchAddItems    int64
	BatchAddFailed   int64
	RemoveCount      int64
	Unreferenced     int64
	CompileCount     int64
	CompileElements  int64
	CompileAvgNanos  int64
	TrimCount        int64
	TrimMoved        int64
	TrimLanes        int64
}
