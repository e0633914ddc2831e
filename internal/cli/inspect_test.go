package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlyaSylkin/OS-2-lab/internal/bench"
	"github.com/IlyaSylkin/OS-2-lab/internal/config"
	"github.com/IlyaSylkin/OS-2-lab/internal/metrics"
	"github.com/IlyaSylkin/OS-2-lab/internal/output"
)

func writeSampleReport(t *testing.T) string {
	t.Helper()
	rep := &bench.Report{
		Name:     "Saved sweep",
		Seed:     3,
		Repeat:   1,
		Threads:  []int{2, 4},
		Duration: 250 * time.Millisecond,
		Tests: []*bench.TestResult{{
			TestCase:      config.TestCase{Label: "Test1", Description: "Small task", K: 10, N: 10000},
			TotalElements: 100000,
			Baseline:      metrics.Summary{Count: 1, Mean: 3 * time.Millisecond},
			Rows: []bench.Row{
				{Test: "Test1", Threads: 2, Status: bench.StatusOK, Speedup: 1.9},
				{Test: "Test1", Threads: 4, Status: bench.StatusMismatch, Error: "result mismatch"},
			},
		}},
	}

	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, output.SaveReport(path, rep))
	return path
}

func TestInspectReport_Digest(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, inspectReport(writeSampleReport(t), "", &out))

	text := out.String()
	assert.Contains(t, text, "Report:   Saved sweep")
	assert.Contains(t, text, "Duration: 250ms")
	assert.Contains(t, text, "Test1 (Small task), 100000 elements, sequential 3.00 ms")
	assert.Contains(t, text, "best speedup 1.900 at 2 threads")
	assert.Contains(t, text, "1 ok, 0 skipped, 1 failed")
	assert.True(t, strings.HasSuffix(text, "Failed rows: 1\n"))
}

func TestInspectReport_Query(t *testing.T) {
	path := writeSampleReport(t)

	var out bytes.Buffer
	require.NoError(t, inspectReport(path, "$.tests[0].rows[1].status", &out))
	assert.Equal(t, "mismatch\n", out.String())

	err := inspectReport(path, "$.nope", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestInspectReport_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.json")
	assert.Error(t, inspectReport(missing, "", &bytes.Buffer{}))
	assert.Error(t, inspectReport(missing, "$.name", &bytes.Buffer{}))
}
