package perf

import (
	"math"
	"sync"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestReport(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	m := New()
	m.now = clock.now
	m.Start(20)

	m.RecordBatch(200*time.Millisecond, 15, 14, 1)
	m.RecordBatch(400*time.Millisecond, 5, 5, 0)
	m.AddImages(3)
	m.AddSkipped(2)
	clock.t = clock.t.Add(2 * time.Second)
	m.Finish()
	clock.t = clock.t.Add(time.Hour)

	r := m.Report()
	if r.Duration != 2*time.Second {
		t.Errorf("Duration = %v, want 2s (frozen at Finish)", r.Duration)
	}
	if r.ElementsPerSecond != 10 {
		t.Errorf("ElementsPerSecond = %v, want 10", r.ElementsPerSecond)
	}
	if math.Abs(r.SuccessRate-95) > 1e-9 {
		t.Errorf("SuccessRate = %v, want 95", r.SuccessRate)
	}
	if r.Created != 19 || r.Failed != 1 || r.Images != 3 || r.Skipped != 2 || r.Batches != 2 {
		t.Errorf("Report = %+v", r)
	}
	if r.AverageBatch != 300*time.Millisecond {
		t.Errorf("AverageBatch = %v", r.AverageBatch)
	}
}

func TestReportEmpty(t *testing.T) {
	m := New()
	m.Start(0)
	r := m.Report()
	if r.SuccessRate != 0 || r.ElementsPerSecond < 0 {
		t.Errorf("empty report = %+v", r)
	}
}

func TestCleanupKeepsAverage(t *testing.T) {
	m := New()
	m.Start(100)
	for i := range 120 {
		m.RecordBatch(time.Duration(i)*time.Millisecond, 1, 1, 0)
	}
	before := m.AverageBatch()
	m.Cleanup()
	if n := len(m.Durations()); n != keepBatches {
		t.Errorf("retained %d durations, want %d", n, keepBatches)
	}
	if m.AverageBatch() != before {
		t.Errorf("average changed: %v -> %v", before, m.AverageBatch())
	}
	if m.Durations()[0] != 70*time.Millisecond {
		t.Errorf("oldest retained = %v", m.Durations()[0])
	}
	if got := m.Report().Cleanups; got != 1 {
		t.Errorf("Cleanups = %d, want 1", got)
	}
}

func TestConcurrentRecord(t *testing.T) {
	m := New()
	m.Start(1000)
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordBatch(time.Millisecond, 10, 9, 1)
			m.AddImages(1)
		}()
	}
	wg.Wait()
	r := m.Report()
	if r.Processed != 1000 || r.Failed != 100 || r.Images != 100 {
		t.Errorf("Report = %+v", r)
	}
}
