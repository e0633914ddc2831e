package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Histogram bounds, in nanoseconds: 1ns to 1 hour at 3 significant figures.
const (
	histogramMin     = 1
	histogramMax     = int64(time.Hour)
	histogramSigFigs = 3
)

// WorkerStats summarizes how long individual workers of parallel runs spent
// in their reduction loop. Imbalance is Max/Mean; 1.0 means every worker
// finished at the same moment.
type WorkerStats struct {
	Count     int64         `json:"count"`
	Min       time.Duration `json:"min"`
	Max       time.Duration `json:"max"`
	Mean      time.Duration `json:"mean"`
	P50       time.Duration `json:"p50"`
	P99       time.Duration `json:"p99"`
	Imbalance float64       `json:"imbalance"`
}

// WorkerRecorder accumulates per-worker durations across one or more
// parallel runs.
//
// The underlying HDR histogram is not safe for concurrent writes, so every
// access goes through mu.
type WorkerRecorder struct {
	mu   sync.Mutex
	hist *hdrhistogram.Histogram
}

// NewWorkerRecorder returns an empty recorder.
func NewWorkerRecorder() *WorkerRecorder {
	return &WorkerRecorder{
		hist: hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs),
	}
}

// Record adds each duration in ds.
func (r *WorkerRecorder) Record(ds []time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range ds {
		v := int64(d)
		// Clamp to valid range
		if v < histogramMin {
			v = histogramMin
		}
		if v > histogramMax {
			v = histogramMax
		}
		_ = r.hist.RecordValue(v)
	}
}

// Stats returns the current summary.
func (r *WorkerRecorder) Stats() WorkerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := r.hist.TotalCount()
	if count == 0 {
		return WorkerStats{}
	}

	mean := r.hist.Mean()
	imbalance := 0.0
	if mean > 0 {
		imbalance = float64(r.hist.Max()) / mean
	}

	return WorkerStats{
		Count:     count,
		Min:       time.Duration(r.hist.Min()),
		Max:       time.Duration(r.hist.Max()),
		Mean:      time.Duration(mean),
		P50:       time.Duration(r.hist.ValueAtQuantile(50)),
		P99:       time.Duration(r.hist.ValueAtQuantile(99)),
		Imbalance: imbalance,
	}
}

// Reset clears all recorded values.
func (r *WorkerRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hist.Reset()
}

// WorkerTimings is a convenience for summarizing a single set of durations.
func WorkerTimings(ds []time.Duration) WorkerStats {
	r := NewWorkerRecorder()
	r.Record(ds)
	return r.Stats()
}
