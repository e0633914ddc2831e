package bench

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlyaSylkin/OS-2-lab/internal/config"
	"github.com/IlyaSylkin/OS-2-lab/internal/metrics"
	"github.com/IlyaSylkin/OS-2-lab/internal/reduce"
)

// recordingObserver captures the event order for assertions.
type recordingObserver struct {
	events []string
	rows   []Row
}

func (o *recordingObserver) TestStarted(tc config.TestCase) {
	o.events = append(o.events, "start:"+tc.Label)
}

func (o *recordingObserver) BaselineDone(tc config.TestCase, _ metrics.Summary) {
	o.events = append(o.events, "baseline:"+tc.Label)
}

func (o *recordingObserver) RowDone(row Row) {
	o.events = append(o.events, "row:"+row.Test)
	o.rows = append(o.rows, row)
}

func (o *recordingObserver) TestFinished(tr *TestResult) {
	o.events = append(o.events, "finish:"+tr.Label)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func smallConfig() *config.SweepConfig {
	cfg := &config.SweepConfig{
		Seed:    7,
		Repeat:  2,
		Threads: []int{1, 2, 4, 8},
		Tests: []config.TestCase{
			{Label: "A", K: 3, N: 100},
			{Label: "B", K: 2, N: 5},
		},
	}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestRunner_Sweep(t *testing.T) {
	obs := &recordingObserver{}
	runner, err := NewRunner(smallConfig(), Options{Observer: obs, Logger: quietLogger()})
	require.NoError(t, err)

	report, err := runner.Run()
	require.NoError(t, err)

	assert.Equal(t, uint64(7), report.Seed)
	assert.Equal(t, 2, report.Repeat)
	require.Len(t, report.Tests, 2)
	assert.False(t, report.EndTime.Before(report.StartTime))

	a := report.Tests[0]
	assert.Equal(t, int64(300), a.TotalElements)
	assert.Equal(t, 2, a.Baseline.Count)
	require.Len(t, a.Rows, 4)
	for _, row := range a.Rows {
		assert.Equal(t, StatusOK, row.Status, "threads=%d: %s", row.Threads, row.Error)
		assert.Equal(t, 2, row.Parallel.Count)
		require.NotNil(t, row.Workers)
		assert.Equal(t, int64(2*row.Threads), row.Workers.Count)
		assert.Equal(t, a.Baseline.Mean, row.SeqTime)
	}

	// N=5 cannot be split across 8 workers without relabelling the run.
	b := report.Tests[1]
	require.Len(t, b.Rows, 4)
	assert.Equal(t, StatusOK, b.Rows[2].Status)
	assert.Equal(t, StatusSkipped, b.Rows[3].Status)
	assert.Equal(t, 8, b.Rows[3].Threads)
	assert.Nil(t, b.Rows[3].Workers)

	assert.Equal(t, map[Status]int{StatusOK: 7, StatusSkipped: 1}, report.Counts())
	assert.Len(t, report.Rows(), 8)

	assert.Equal(t, []string{
		"start:A", "baseline:A", "row:A", "row:A", "row:A", "row:A", "finish:A",
		"start:B", "baseline:B", "row:B", "row:B", "row:B", "row:B", "finish:B",
	}, obs.events)
}

func TestRunner_MismatchContinuesSweep(t *testing.T) {
	runner, err := NewRunner(smallConfig(), Options{Logger: quietLogger()})
	require.NoError(t, err)

	runner.parallel = func(src *reduce.Matrix, dst []float64, threads int) (*reduce.Run, error) {
		run, err := reduce.Parallel(src, dst, threads)
		if threads == 2 {
			dst[len(dst)-1] += 1
		}
		return run, err
	}

	report, err := runner.Run()
	require.NoError(t, err)

	for _, tr := range report.Tests {
		assert.Equal(t, StatusOK, tr.Rows[0].Status)
		assert.Equal(t, StatusMismatch, tr.Rows[1].Status)
		assert.Contains(t, tr.Rows[1].Error, "result mismatch at index")
		assert.Zero(t, tr.Rows[1].Speedup)
		assert.Equal(t, StatusOK, tr.Rows[2].Status)
	}
}

func TestRunner_WorkerFailureContinuesSweep(t *testing.T) {
	runner, err := NewRunner(smallConfig(), Options{Logger: quietLogger()})
	require.NoError(t, err)

	runner.parallel = func(src *reduce.Matrix, dst []float64, threads int) (*reduce.Run, error) {
		if threads == 4 {
			return nil, &reduce.WorkerError{Worker: 3, Cause: "injected"}
		}
		return reduce.Parallel(src, dst, threads)
	}

	report, err := runner.Run()
	require.NoError(t, err)

	row := report.Tests[0].Rows[2]
	assert.Equal(t, StatusFailed, row.Status)
	assert.Contains(t, row.Error, "injected")
	assert.Equal(t, StatusOK, report.Tests[0].Rows[3].Status)
}

func TestRunner_AllocationFailureAborts(t *testing.T) {
	cfg := smallConfig()
	cfg.Tests = append(cfg.Tests, config.TestCase{Label: "Huge", K: 1000, N: 1000000})
	cfg.MaxMemoryMB = 1

	runner, err := NewRunner(cfg, Options{Logger: quietLogger()})
	require.NoError(t, err)

	report, err := runner.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, reduce.ErrAllocation))
	assert.Contains(t, err.Error(), "test Huge")
	assert.Len(t, report.Tests, 2)
}

func TestNewRunner_InvalidConfig(t *testing.T) {
	_, err := NewRunner(&config.SweepConfig{}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRunner_ZeroSeedIsRecorded(t *testing.T) {
	cfg := smallConfig()
	cfg.Seed = 0
	runner, err := NewRunner(cfg, Options{Logger: quietLogger()})
	require.NoError(t, err)
	assert.NotZero(t, runner.Seed())
}
