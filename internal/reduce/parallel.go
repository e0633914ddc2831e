package reduce

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Run describes one completed parallel reduction.
type Run struct {
	// Workers is the number of goroutines actually started.
	Workers int `json:"workers"`

	// Partitions holds the output range of each worker, indexed by worker id.
	Partitions []Partition `json:"partitions"`

	// Elapsed covers starting and joining the workers, not planning.
	Elapsed time.Duration `json:"elapsed"`

	// WorkerTimes is the time each worker spent in its reduction loop.
	WorkerTimes []time.Duration `json:"workerTimes"`
}

// WorkerError reports a worker that did not complete its partition.
type WorkerError struct {
	Worker    int
	Partition Partition
	Cause     any
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d [%d,%d) failed: %v", e.Worker, e.Partition.Start, e.Partition.End, e.Cause)
}

// reduceFunc is the per-partition body. Tests swap it to inject failures.
var reduceFunc = sumColumns

// sumColumns writes, for each i in [start, end), the sum of column i over all
// rows of src into dst[i]. Rows are accumulated in order k = 0..K-1 with a
// fresh accumulator per column, which fixes the rounding behaviour the
// verifier relies on.
func sumColumns(src *Matrix, dst []float64, start, end int) {
	k := src.rows
	cols := src.cols
	data := src.data
	for i := start; i < end; i++ {
		s := 0.0
		for r := 0; r < k; r++ {
			s += data[r*cols+i]
		}
		dst[i] = s
	}
}

func checkShape(src *Matrix, dst []float64) error {
	if src == nil {
		return fmt.Errorf("nil source matrix: %w", ErrShape)
	}
	if len(dst) != src.cols {
		return fmt.Errorf("result has %d elements, source has %d columns: %w", len(dst), src.cols, ErrShape)
	}
	return nil
}

// Parallel sums the columns of src into dst using one goroutine per partition
// of Plan(src.Cols(), threads) and blocks until all of them have finished.
//
// Shapes are validated before any worker starts. If any worker fails the run
// is abandoned: the returned error joins every *WorkerError and dst must be
// treated as garbage. There is no cancellation; a worker that never returns
// blocks Parallel forever.
func Parallel(src *Matrix, dst []float64, threads int) (*Run, error) {
	if err := checkShape(src, dst); err != nil {
		return nil, err
	}

	parts := Plan(src.cols, threads)
	run := &Run{
		Workers:     len(parts),
		Partitions:  parts,
		WorkerTimes: make([]time.Duration, len(parts)),
	}
	if len(parts) == 0 {
		return run, nil
	}

	errs := make([]error, len(parts))

	var wg sync.WaitGroup
	start := time.Now()

	wg.Add(len(parts))
	for _, p := range parts {
		go func(p Partition) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[p.Worker] = &WorkerError{Worker: p.Worker, Partition: p, Cause: r}
				}
			}()

			t0 := time.Now()
			reduceFunc(src, dst, p.Start, p.End)
			run.WorkerTimes[p.Worker] = time.Since(t0)
		}(p)
	}
	wg.Wait()

	run.Elapsed = time.Since(start)

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("parallel run with %d workers: %w", len(parts), err)
	}
	return run, nil
}

// Sequential sums the columns of src into dst on the calling goroutine, in
// the same accumulation order as Parallel, and returns the elapsed time.
func Sequential(src *Matrix, dst []float64) (time.Duration, error) {
	if err := checkShape(src, dst); err != nil {
		return 0, err
	}
	start := time.Now()
	sumColumns(src, dst, 0, src.cols)
	return time.Since(start), nil
}
