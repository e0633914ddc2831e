package config

import (
	"fmt"

	"github.com/IlyaSylkin/OS-2-lab/internal/reduce"
)

// Defaults used when the configuration leaves a field empty.
const (
	DefaultName   = "Parallel summation study"
	DefaultRepeat = 1
	DefaultCSV    = "results.csv"
)

// DefaultThreads are the worker counts tried when none are configured.
func DefaultThreads() []int {
	return []int{2, 4, 8, 16, 32}
}

// DefaultTests are the small, medium and large problem sizes.
func DefaultTests() []TestCase {
	return []TestCase{
		{Label: "Test1", Description: "Small task", K: 10, N: 10000},
		{Label: "Test2", Description: "Medium task", K: 100, N: 100000},
		{Label: "Test3", Description: "Large task", K: 1000, N: 1000000},
	}
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *SweepConfig {
	cfg := &SweepConfig{}
	ApplyDefaults(cfg)
	cfg.Output.CSV = DefaultCSV
	return cfg
}

// ApplyDefaults fills empty fields in cfg.
func ApplyDefaults(cfg *SweepConfig) {
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	if cfg.Repeat == 0 {
		cfg.Repeat = DefaultRepeat
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = reduce.DefaultTolerance
	}
	if len(cfg.Threads) == 0 {
		cfg.Threads = DefaultThreads()
	}
	if len(cfg.Tests) == 0 {
		cfg.Tests = DefaultTests()
	}
	for i := range cfg.Tests {
		if cfg.Tests[i].Label == "" {
			cfg.Tests[i].Label = fmt.Sprintf("Test%d", i+1)
		}
	}
}
