package main

import (
	"fmt"
	"os"
	"time"

	"github.com/IlyaSylkin/OS-2-lab/internal/bench"
	"github.com/IlyaSylkin/OS-2-lab/internal/config"
	"github.com/IlyaSylkin/OS-2-lab/internal/metrics"
	"github.com/IlyaSylkin/OS-2-lab/internal/report"
)

// Synthetic machine model: nanoseconds per summed element on one core, the
// parallelizable fraction of a run and the number of physical cores.
const (
	nsPerElement     = 0.9
	parallelFraction = 0.97
	cores            = 8
)

func main() {
	result := createSampleReport()

	outputPath := "sample-speedup-report.html"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	err := report.GenerateHTML(result, outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sample report generated: %s\n", outputPath)
}

// createSampleReport builds a report for the default sweep with timings from
// Amdahl's law, capped at the core count, so the HTML can be previewed
// without running the benchmark.
func createSampleReport() *bench.Report {
	cfg := config.DefaultConfig()
	cfg.Seed = 42
	now := time.Now()

	rep := &bench.Report{
		Name:      cfg.Name + " (sample)",
		Seed:      cfg.Seed,
		Repeat:    cfg.Repeat,
		Tolerance: cfg.Tolerance,
		Threads:   cfg.Threads,
		StartTime: now.Add(-90 * time.Second),
		EndTime:   now,
		Duration:  90 * time.Second,
	}

	for _, tc := range cfg.Tests {
		seq := time.Duration(float64(tc.TotalElements()) * nsPerElement)
		tr := &bench.TestResult{
			TestCase:      tc,
			TotalElements: tc.TotalElements(),
			Baseline:      metrics.Summary{Count: 1, Mean: seq, Min: seq, Max: seq},
		}

		for _, threads := range cfg.Threads {
			row := bench.Row{
				Test:          tc.Label,
				K:             tc.K,
				N:             tc.N,
				TotalElements: tc.TotalElements(),
				Threads:       threads,
				Status:        bench.StatusOK,
				SeqTime:       seq,
			}

			effective := float64(min(threads, cores))
			par := time.Duration(float64(seq) * ((1 - parallelFraction) + parallelFraction/effective))
			row.ParTime = par
			row.Parallel = metrics.Summary{Count: 1, Mean: par, Min: par, Max: par}
			row.Speedup = metrics.Speedup(seq, par)
			row.Efficiency = metrics.Efficiency(row.Speedup, threads)
			row.Throughput = metrics.Throughput(tc.TotalElements(), par)

			workerTimes := make([]time.Duration, threads)
			for i := range workerTimes {
				workerTimes[i] = par - time.Duration(i)*par/time.Duration(4*threads)
			}
			stats := metrics.WorkerTimings(workerTimes)
			row.Workers = &stats

			tr.Rows = append(tr.Rows, row)
		}
		rep.Tests = append(rep.Tests, tr)
	}

	return rep
}
