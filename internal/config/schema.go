// Package config provides configuration parsing and validation for benchmark sweeps.
package config

// SweepConfig is the root configuration for a benchmark sweep.
//
// Example YAML:
//
//	name: "Parallel summation study"
//	seed: 42
//	repeat: 3
//	threads: [2, 4, 8, 16, 32]
//	tests:
//	  - label: Test1
//	    description: Small task
//	    k: 10
//	    n: 10000
//	output:
//	  csv: results.csv
type SweepConfig struct {
	// Name of the sweep (for reporting)
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Seed for data generation; 0 picks a time-based seed
	Seed uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	// Repeat is how many times each baseline and parallel run is timed
	Repeat int `json:"repeat,omitempty" yaml:"repeat,omitempty"`

	// Tolerance is the per-index absolute difference allowed between the
	// sequential and parallel results
	Tolerance float64 `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`

	// MaxMemoryMB caps the workspace allocated for one problem size; 0 means
	// no limit
	MaxMemoryMB int64 `json:"maxMemoryMB,omitempty" yaml:"maxMemoryMB,omitempty"`

	// Threads lists the worker counts tried for every test
	Threads []int `json:"threads,omitempty" yaml:"threads,omitempty"`

	// Tests lists the problem sizes, run in order
	Tests []TestCase `json:"tests,omitempty" yaml:"tests,omitempty"`

	// Output selects the files written after the sweep
	Output OutputConfig `json:"output,omitempty" yaml:"output,omitempty"`
}

// TestCase is one (K, N) problem size.
type TestCase struct {
	// Label identifies the test in CSV and reports (e.g. "Test1")
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Description is a human-readable name (e.g. "Small task")
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// K is the number of source arrays
	K int `json:"k" yaml:"k"`

	// N is the length of every array
	N int `json:"n" yaml:"n"`
}

// TotalElements returns K×N.
func (tc TestCase) TotalElements() int64 {
	return int64(tc.K) * int64(tc.N)
}

// OutputConfig lists report destinations. Empty paths are skipped.
type OutputConfig struct {
	CSV  string `json:"csv,omitempty" yaml:"csv,omitempty"`
	JSON string `json:"json,omitempty" yaml:"json,omitempty"`
	HTML string `json:"html,omitempty" yaml:"html,omitempty"`
}

// MaxMemoryBytes returns the workspace limit in bytes, or 0 for no limit.
func (c *SweepConfig) MaxMemoryBytes() int64 {
	if c.MaxMemoryMB <= 0 {
		return 0
	}
	return c.MaxMemoryMB << 20
}

// jsonSchema is checked against the raw document before it is decoded, so
// misspelled keys are reported instead of silently ignored.
const jsonSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string"},
    "seed": {"type": "integer", "minimum": 0},
    "repeat": {"type": "integer", "minimum": 1},
    "tolerance": {"type": "number", "exclusiveMinimum": 0},
    "maxMemoryMB": {"type": "integer", "minimum": 0},
    "threads": {
      "type": "array",
      "items": {"type": "integer", "minimum": 1}
    },
    "tests": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["k", "n"],
        "properties": {
          "label": {"type": "string"},
          "description": {"type": "string"},
          "k": {"type": "integer", "minimum": 1},
          "n": {"type": "integer", "minimum": 1}
        }
      }
    },
    "output": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "csv": {"type": "string"},
        "json": {"type": "string"},
        "html": {"type": "string"}
      }
    }
  }
}`
