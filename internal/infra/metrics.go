package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Streaming counters
	quotesProcessed atomic.Uint64
	recordsSkipped  atomic.Uint64

	// Quote persistence counters
	writesEnqueued atomic.Uint64
	writesDropped  atomic.Uint64
	writesFailed   atomic.Uint64

	// Reconciliation counters
	refreshes       atomic.Uint64
	refreshFailures atomic.Uint64

	// Gauges
	streamConnected atomic.Int32 // 1 = connected, 0 = not
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordQuote records one quote applied to the cache.
func (m *Metrics) RecordQuote() {
	m.quotesProcessed.Add(1)
}

// RecordSkippedRecords records feed records dropped during frame decoding.
func (m *Metrics) RecordSkippedRecords(n int) {
	m.recordsSkipped.Add(uint64(n))
}

// RecordWriteEnqueued records a quote accepted by the persistence queue.
func (m *Metrics) RecordWriteEnqueued() {
	m.writesEnqueued.Add(1)
}

// RecordWriteDropped records a quote rejected by a full persistence queue.
func (m *Metrics) RecordWriteDropped() {
	m.writesDropped.Add(1)
}

// RecordWriteFailed records a persistence insert failure.
func (m *Metrics) RecordWriteFailed() {
	m.writesFailed.Add(1)
}

// RecordRefresh records one reconciliation run and its outcome.
func (m *Metrics) RecordRefresh(failed bool) {
	m.refreshes.Add(1)
	if failed {
		m.refreshFailures.Add(1)
	}
}

// SetStreamConnected sets the streaming connection gauge.
func (m *Metrics) SetStreamConnected(connected bool) {
	if connected {
		m.streamConnected.Store(1)
	} else {
		m.streamConnected.Store(0)
	}
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	QuotesProcessed uint64
	RecordsSkipped  uint64
	WritesEnqueued  uint64
	WritesDropped   uint64
	WritesFailed    uint64
	Refreshes       uint64
	RefreshFailures uint64
	StreamConnected bool
	Timestamp       time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		QuotesProcessed: m.quotesProcessed.Load(),
		RecordsSkipped:  m.recordsSkipped.Load(),
		WritesEnqueued:  m.writesEnqueued.Load(),
		WritesDropped:   m.writesDropped.Load(),
		WritesFailed:    m.writesFailed.Load(),
		Refreshes:       m.refreshes.Load(),
		RefreshFailures: m.refreshFailures.Load(),
		StreamConnected: m.streamConnected.Load() == 1,
		Timestamp:       time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.quotesProcessed.Store(0)
	m.recordsSkipped.Store(0)
	m.writesEnqueued.Store(0)
	m.writesDropped.Store(0)
	m.writesFailed.Store(0)
	m.refreshes.Store(0)
	m.refreshFailures.Store(0)
	m.streamConnected.Store(0)
}
