// Package bench runs the sequential-versus-parallel summation sweep.
package bench

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/IlyaSylkin/OS-2-lab/internal/config"
	"github.com/IlyaSylkin/OS-2-lab/internal/datagen"
	"github.com/IlyaSylkin/OS-2-lab/internal/metrics"
	"github.com/IlyaSylkin/OS-2-lab/internal/reduce"
)

// Observer receives progress as the sweep runs. Calls are made from the
// goroutine that called Run, in sweep order.
type Observer interface {
	TestStarted(tc config.TestCase)
	BaselineDone(tc config.TestCase, baseline metrics.Summary)
	RowDone(row Row)
	TestFinished(tr *TestResult)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) TestStarted(config.TestCase)                   {}
func (NopObserver) BaselineDone(config.TestCase, metrics.Summary) {}
func (NopObserver) RowDone(Row)                                   {}
func (NopObserver) TestFinished(*TestResult)                      {}

// Options configures a Runner.
type Options struct {
	Observer Observer
	Logger   *slog.Logger
}

// Runner executes a sweep: for every test it allocates a workspace, fills it
// with generated data, times the sequential baseline and then times and
// verifies the parallel path for every configured thread count.
type Runner struct {
	cfg      *config.SweepConfig
	gen      *datagen.Generator
	observer Observer
	logger   *slog.Logger

	// parallel is reduce.Parallel outside of tests.
	parallel func(src *reduce.Matrix, dst []float64, threads int) (*reduce.Run, error)
}

// NewRunner validates cfg and returns a runner for it.
func NewRunner(cfg *config.SweepConfig, opts Options) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Runner{
		cfg:      cfg,
		gen:      datagen.New(cfg.Seed),
		observer: opts.Observer,
		logger:   opts.Logger,
		parallel: reduce.Parallel,
	}, nil
}

// Seed returns the data generation seed actually in use.
func (r *Runner) Seed() uint64 { return r.gen.Seed() }

// Run executes every test in order. Mismatches and worker failures are
// recorded as rows and the sweep continues; an allocation failure aborts the
// sweep and is returned together with the report collected so far.
func (r *Runner) Run() (*Report, error) {
	report := &Report{
		Name:      r.cfg.Name,
		Seed:      r.gen.Seed(),
		Repeat:    r.cfg.Repeat,
		Tolerance: r.cfg.Tolerance,
		Threads:   append([]int(nil), r.cfg.Threads...),
		StartTime: time.Now(),
	}

	defer func() {
		report.EndTime = time.Now()
		report.Duration = report.EndTime.Sub(report.StartTime)
	}()

	r.logger.Debug("bench: sweep starting", "name", r.cfg.Name, "tests", len(r.cfg.Tests), "seed", report.Seed)

	for _, tc := range r.cfg.Tests {
		tr, err := r.runTest(tc)
		if err != nil {
			return report, fmt.Errorf("test %s (K=%d, N=%d): %w", tc.Label, tc.K, tc.N, err)
		}
		report.Tests = append(report.Tests, tr)
	}

	return report, nil
}

// runTest runs one problem size inside its own workspace.
func (r *Runner) runTest(tc config.TestCase) (*TestResult, error) {
	r.observer.TestStarted(tc)

	ws, err := reduce.NewWorkspace(tc.K, tc.N, r.cfg.MaxMemoryBytes())
	if err != nil {
		return nil, err
	}
	defer ws.Release()

	r.logger.Debug("bench: workspace allocated", "test", tc.Label, "k", tc.K, "n", tc.N)

	r.gen.Fill(ws.Source)

	baseline, err := r.runBaseline(ws)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("bench: baseline done", "test", tc.Label, "mean", baseline.Mean)
	r.observer.BaselineDone(tc, baseline)

	tr := &TestResult{
		TestCase:      tc,
		TotalElements: tc.TotalElements(),
		Baseline:      baseline,
	}

	for _, threads := range r.cfg.Threads {
		row := r.runThreads(tc, ws, baseline.Mean, threads)
		tr.Rows = append(tr.Rows, row)
		r.observer.RowDone(row)
	}

	r.observer.TestFinished(tr)
	return tr, nil
}

func (r *Runner) runBaseline(ws *reduce.Workspace) (metrics.Summary, error) {
	samples := make([]time.Duration, 0, r.cfg.Repeat)
	for i := 0; i < r.cfg.Repeat; i++ {
		d, err := reduce.Sequential(ws.Source, ws.Sequential)
		if err != nil {
			return metrics.Summary{}, fmt.Errorf("sequential baseline: %w", err)
		}
		samples = append(samples, d)
	}
	return metrics.Summarize(samples), nil
}

// runThreads times and verifies the parallel path for one thread count.
func (r *Runner) runThreads(tc config.TestCase, ws *reduce.Workspace, seq time.Duration, threads int) Row {
	row := Row{
		Test:          tc.Label,
		K:             tc.K,
		N:             tc.N,
		TotalElements: tc.TotalElements(),
		Threads:       threads,
		SeqTime:       seq,
	}

	// A capped run would be reported under the wrong thread count.
	if threads > tc.N {
		row.Status = StatusSkipped
		row.Error = fmt.Sprintf("%d threads exceed %d elements", threads, tc.N)
		r.logger.Debug("bench: skipped", "test", tc.Label, "threads", threads, "n", tc.N)
		return row
	}

	recorder := metrics.NewWorkerRecorder()
	samples := make([]time.Duration, 0, r.cfg.Repeat)

	for i := 0; i < r.cfg.Repeat; i++ {
		ws.ResetParallel()

		run, err := r.parallel(ws.Source, ws.Parallel, threads)
		if err != nil {
			row.Status = StatusFailed
			row.Error = err.Error()
			r.logger.Warn("bench: parallel run failed", "test", tc.Label, "threads", threads, "err", err)
			return row
		}

		if err := reduce.Verify(ws.Sequential, ws.Parallel, r.cfg.Tolerance); err != nil {
			row.Status = StatusMismatch
			row.Error = err.Error()
			var mm *reduce.MismatchError
			if errors.As(err, &mm) {
				r.logger.Warn("bench: result mismatch", "test", tc.Label, "threads", threads, "index", mm.Index, "want", mm.Want, "got", mm.Got)
			}
			return row
		}

		samples = append(samples, run.Elapsed)
		recorder.Record(run.WorkerTimes)
	}

	row.Status = StatusOK
	row.Parallel = metrics.Summarize(samples)
	row.ParTime = row.Parallel.Mean
	row.Speedup = metrics.Speedup(seq, row.ParTime)
	row.Efficiency = metrics.Efficiency(row.Speedup, threads)
	row.Throughput = metrics.Throughput(row.TotalElements, row.ParTime)
	stats := recorder.Stats()
	row.Workers = &stats

	r.logger.Debug("bench: parallel done", "test", tc.Label, "threads", threads,
		"elapsed", row.ParTime, "speedup", row.Speedup, "imbalance", stats.Imbalance)
	return row
}
