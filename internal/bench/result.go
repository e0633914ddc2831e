package bench

import (
	"time"

	"github.com/IlyaSylkin/OS-2-lab/internal/config"
	"github.com/IlyaSylkin/OS-2-lab/internal/metrics"
)

// Status classifies a (problem size, thread count) combination.
type Status string

const (
	// StatusOK means the parallel result matched the baseline.
	StatusOK Status = "ok"

	// StatusSkipped means the thread count exceeded N and was not run.
	StatusSkipped Status = "skipped"

	// StatusMismatch means the parallel result differed from the baseline.
	StatusMismatch Status = "mismatch"

	// StatusFailed means a worker failed and the run was abandoned.
	StatusFailed Status = "failed"
)

// Row is the outcome of one thread count for one test. Timing and derived
// metrics are only meaningful when Status is StatusOK.
type Row struct {
	Test          string               `json:"test"`
	K             int                  `json:"k"`
	N             int                  `json:"n"`
	TotalElements int64                `json:"totalElements"`
	Threads       int                  `json:"threads"`
	Status        Status               `json:"status"`
	Error         string               `json:"error,omitempty"`
	SeqTime       time.Duration        `json:"seqTime"`
	ParTime       time.Duration        `json:"parTime"`
	Parallel      metrics.Summary      `json:"parallel"`
	Speedup       float64              `json:"speedup"`
	Efficiency    float64              `json:"efficiency"`
	Throughput    float64              `json:"throughput"`
	Workers       *metrics.WorkerStats `json:"workers,omitempty"`
}

// OK reports whether the row carries valid metrics.
func (r Row) OK() bool { return r.Status == StatusOK }

// TestResult groups the baseline and rows of one problem size.
type TestResult struct {
	config.TestCase
	TotalElements int64           `json:"totalElements"`
	Baseline      metrics.Summary `json:"baseline"`
	Rows          []Row           `json:"rows"`
}

// Report is the complete outcome of a sweep.
type Report struct {
	Name      string        `json:"name"`
	Seed      uint64        `json:"seed"`
	Repeat    int           `json:"repeat"`
	Tolerance float64       `json:"tolerance"`
	Threads   []int         `json:"threads"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Duration  time.Duration `json:"duration"`
	Tests     []*TestResult `json:"tests"`
}

// Rows returns every row of every test in sweep order.
func (r *Report) Rows() []Row {
	var rows []Row
	for _, tr := range r.Tests {
		rows = append(rows, tr.Rows...)
	}
	return rows
}

// Counts returns how many rows ended in each status.
func (r *Report) Counts() map[Status]int {
	counts := make(map[Status]int)
	for _, row := range r.Rows() {
		counts[row.Status]++
	}
	return counts
}
