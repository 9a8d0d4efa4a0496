// Package perf tracks conversion throughput.
package perf

import (
	"sync"
	"time"
)

// keepBatches bounds the retained per-batch durations after Cleanup.
const keepBatches = 50

// Report summarizes a conversion.
type Report struct {
	Duration          time.Duration `json:"duration"`
	ElementsPerSecond float64       `json:"elementsPerSecond"`
	// SuccessRate is (processed - failed) / total * 100.
	SuccessRate  float64       `json:"successRate"`
	Total        int           `json:"total"`
	Processed    int           `json:"processed"`
	Created      int           `json:"created"`
	Failed       int           `json:"failed"`
	Skipped      int           `json:"skipped"`
	Images       int           `json:"images"`
	Batches      int           `json:"batches"`
	AverageBatch time.Duration `json:"averageBatch"`
	// Cleanups counts the eviction passes run during the conversion.
	Cleanups int `json:"cleanups"`
}

// Monitor accumulates conversion metrics. It is safe for concurrent use.
type Monitor struct {
	mu    sync.Mutex
	now   func() time.Time
	start time.Time
	end   time.Time

	total, processed, created, failed, skipped, images int

	batches   int
	batchSum  time.Duration
	durations []time.Duration
	cleanups  int
}

// New returns a monitor using the wall clock.
func New() *Monitor {
	return &Monitor{now: time.Now}
}

// Start resets the monitor for a run over total elements.
func (m *Monitor) Start(total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.start, m.end = m.now(), time.Time{}
	m.total, m.processed, m.created, m.failed, m.skipped, m.images = total, 0, 0, 0, 0, 0
	m.batches, m.batchSum, m.durations, m.cleanups = 0, 0, nil, 0
}

// RecordBatch adds one finished batch.
func (m *Monitor) RecordBatch(d time.Duration, processed, created, failed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches++
	m.batchSum += d
	m.durations = append(m.durations, d)
	m.processed += processed
	m.created += created
	m.failed += failed
}

// AddSkipped counts elements dropped for degenerate bounds.
func (m *Monitor) AddSkipped(n int) {
	m.mu.Lock()
	m.skipped += n
	m.mu.Unlock()
}

// AddImages counts applied image fills.
func (m *Monitor) AddImages(n int) {
	m.mu.Lock()
	m.images += n
	m.mu.Unlock()
}

// AverageBatch returns the mean batch duration so far.
func (m *Monitor) AverageBatch() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.average()
}

func (m *Monitor) average() time.Duration {
	if m.batches == 0 {
		return 0
	}
	return m.batchSum / time.Duration(m.batches)
}

// Durations returns the retained batch durations, oldest first.
func (m *Monitor) Durations() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.durations...)
}

// Cleanup drops all but the most recent batch durations. Totals and the
// running average are unaffected.
func (m *Monitor) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleanups++
	if n := len(m.durations); n > keepBatches {
		m.durations = append([]time.Duration(nil), m.durations[n-keepBatches:]...)
	}
}

// Finish stops the clock. Report uses the current time until then.
func (m *Monitor) Finish() {
	m.mu.Lock()
	m.end = m.now()
	m.mu.Unlock()
}

// Report returns the summary.
func (m *Monitor) Report() Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	end := m.end
	if end.IsZero() {
		end = m.now()
	}
	r := Report{
		Duration:     end.Sub(m.start),
		Total:        m.total,
		Processed:    m.processed,
		Created:      m.created,
		Failed:       m.failed,
		Skipped:      m.skipped,
		Images:       m.images,
		Batches:      m.batches,
		AverageBatch: m.average(),
		Cleanups:     m.cleanups,
	}
	if s := r.Duration.Seconds(); s > 0 {
		r.ElementsPerSecond = float64(m.processed) / s
	}
	if m.total > 0 {
		r.SuccessRate = float64(m.processed-m.failed) / float64(m.total) * 100
	}
	return r
}
