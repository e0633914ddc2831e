// Package metrics turns raw benchmark timings into speedup, efficiency and
// distribution statistics.
package metrics

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Speedup returns seq/par. It is zero when par is not positive.
func Speedup(seq, par time.Duration) float64 {
	if par <= 0 {
		return 0
	}
	return float64(seq) / float64(par)
}

// Efficiency returns speedup per thread as a percentage.
func Efficiency(speedup float64, threads int) float64 {
	if threads <= 0 {
		return 0
	}
	return speedup / float64(threads) * 100
}

// Throughput returns processed elements per millisecond.
func Throughput(elements int64, d time.Duration) float64 {
	ms := Milliseconds(d)
	if ms <= 0 {
		return 0
	}
	return float64(elements) / ms
}

// Milliseconds returns d as fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Summary describes repeated measurements of the same operation.
type Summary struct {
	Count  int           `json:"count"`
	Mean   time.Duration `json:"mean"`
	StdDev time.Duration `json:"stdDev"`
	Min    time.Duration `json:"min"`
	Max    time.Duration `json:"max"`
}

// Summarize computes a Summary over samples. An empty input yields the zero
// Summary.
func Summarize(samples []time.Duration) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	xs := make([]float64, len(samples))
	lo, hi := samples[0], samples[0]
	for i, s := range samples {
		xs[i] = float64(s)
		lo = min(lo, s)
		hi = max(hi, s)
	}

	mean := xs[0]
	std := 0.0
	if len(xs) > 1 {
		mean, std = stat.MeanStdDev(xs, nil)
	}

	return Summary{
		Count:  len(samples),
		Mean:   time.Duration(mean),
		StdDev: time.Duration(std),
		Min:    lo,
		Max:    hi,
	}
}
