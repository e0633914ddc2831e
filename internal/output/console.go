// Package output renders sweep progress and results to the console and to
// CSV and JSON files.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/IlyaSylkin/OS-2-lab/internal/bench"
	"github.com/IlyaSylkin/OS-2-lab/internal/config"
	"github.com/IlyaSylkin/OS-2-lab/internal/metrics"
)

// Box drawing characters
const (
	ruleHeavy = "="
	ruleLight = "─"

	boxVertical = "│"
)

// Table column widths, excluding the one-space padding on each side.
var columnWidths = []int{7, 11, 10, 12, 10}

var columnTitles = []string{"Threads", "Time(ms)", "Speedup", "Efficiency", "El/ms"}

// ConsoleOutput prints sweep progress as the bench.Runner reports it. It
// implements bench.Observer.
type ConsoleOutput struct {
	writer io.Writer
	colors *ColorScheme
	quiet  bool

	mu sync.Mutex
}

// ConsoleOutputConfig contains configuration for ConsoleOutput.
type ConsoleOutputConfig struct {
	Writer      io.Writer
	Quiet       bool
	NoColor     bool
	ForceColors bool
}

// NewConsoleOutput creates a new console output handler.
func NewConsoleOutput(config ConsoleOutputConfig) *ConsoleOutput {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}

	var colors *ColorScheme
	switch {
	case config.NoColor:
		colors = NoColorScheme()
	case config.ForceColors:
		colors = ForcedColorScheme()
	case isTerminal(config.Writer) && supportsColors():
		colors = ForcedColorScheme()
	default:
		colors = NoColorScheme()
	}

	return &ConsoleOutput{
		writer: config.Writer,
		colors: colors,
		quiet:  config.Quiet,
	}
}

var _ bench.Observer = (*ConsoleOutput)(nil)

// PrintHeader prints the sweep banner.
func (c *ConsoleOutput) PrintHeader(name string) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	line := strings.Repeat(ruleHeavy, 52)
	c.writeln(c.colors.Border.Sprint(line))
	c.writeln(c.colors.Title.Sprint("   " + name))
	c.writeln(c.colors.Border.Sprint(line))
}

// TestStarted prints the header of a problem size.
func (c *ConsoleOutput) TestStarted(tc config.TestCase) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	title := tc.Description
	if title == "" {
		title = tc.Label
	}
	c.writeln("")
	c.writeln(c.colors.Highlight.Sprint(title))
	c.writeln(fmt.Sprintf("K=%d, N=%d, Total elements: %s", tc.K, tc.N, formatNumber(tc.TotalElements())))
	c.writeln(strings.Repeat(ruleHeavy, 50))
	c.writeln("")
	c.writeln("Generating data...")
}

// BaselineDone prints the sequential timing.
func (c *ConsoleOutput) BaselineDone(tc config.TestCase, baseline metrics.Summary) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writeln("")
	c.writeln(c.colors.Title.Sprint("Sequential version (baseline):"))
	c.writeln(fmt.Sprintf("  Time:        %s ms", c.colors.Value.Sprint(formatMillis(baseline.Mean))))
	if baseline.Count > 1 {
		c.writeln(fmt.Sprintf("  Std dev:     %s ms (%d runs)", formatMillis(baseline.StdDev), baseline.Count))
	}
	c.writeln(fmt.Sprintf("  Throughput:  %.0f el/ms", metrics.Throughput(tc.TotalElements(), baseline.Mean)))
	c.writeln("")
	c.writeln(c.colors.Title.Sprint("Parallel versions:"))
	c.writeln(c.rule("┌", "┬", "┐"))
	c.writeln(c.tableRow(columnTitles, nil))
	c.writeln(c.rule("├", "┼", "┤"))
}

// RowDone prints one table row.
func (c *ConsoleOutput) RowDone(row bench.Row) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	threads := fmt.Sprintf("%d", row.Threads)
	switch row.Status {
	case bench.StatusOK:
		eff := c.colors.Efficiency(row.Efficiency)
		c.writeln(c.tableRow(
			[]string{
				threads,
				formatMillis(row.ParTime),
				fmt.Sprintf("%.2f", row.Speedup),
				fmt.Sprintf("%.1f%%", row.Efficiency),
				fmt.Sprintf("%.0f", row.Throughput),
			},
			[]colorFunc{nil, c.colors.Value.Sprint, eff.Sprint, eff.Sprint, nil},
		))
	case bench.StatusSkipped:
		c.writeln(c.tableRow(
			[]string{threads, "N/A", "N/A", "N/A", "N/A"},
			[]colorFunc{nil, c.colors.Dim.Sprint, c.colors.Dim.Sprint, c.colors.Dim.Sprint, c.colors.Dim.Sprint},
		))
	default:
		c.writeln(c.tableRow(
			[]string{threads, "ERROR", "ERROR", "ERROR", "ERROR"},
			[]colorFunc{nil, c.colors.Bad.Sprint, c.colors.Bad.Sprint, c.colors.Bad.Sprint, c.colors.Bad.Sprint},
		))
	}
}

// TestFinished closes the table and lists any failures.
func (c *ConsoleOutput) TestFinished(tr *bench.TestResult) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writeln(c.rule("└", "┴", "┘"))
	for _, row := range tr.Rows {
		if row.Status == bench.StatusMismatch || row.Status == bench.StatusFailed {
			c.writeln(fmt.Sprintf("  %s %d threads: %s", ErrorIcon(!c.colorsOn()), row.Threads, row.Error))
		}
	}
}

// FileLine names a report file and its format for the final summary.
type FileLine struct {
	Kind string
	Path string
}

// PrintSummary prints the closing block of a sweep.
func (c *ConsoleOutput) PrintSummary(report *bench.Report, files []FileLine) {
	c.mu.Lock()
	defer c.mu.Unlock()

	counts := report.Counts()
	failed := counts[bench.StatusMismatch] + counts[bench.StatusFailed]

	if c.quiet {
		if failed > 0 {
			c.writeln(c.colors.Bad.Sprintf("COMPLETED WITH %d FAILED RUNS", failed))
		} else {
			c.writeln(c.colors.Good.Sprint("COMPLETED"))
		}
		return
	}

	line := strings.Repeat(ruleHeavy, 52)
	c.writeln("")
	c.writeln(c.colors.Border.Sprint(line))
	c.writeln(c.colors.Title.Sprint("           BENCHMARK COMPLETE"))
	c.writeln(c.colors.Border.Sprint(line))

	for _, f := range files {
		c.writeln(fmt.Sprintf("%s report: %s", f.Kind, f.Path))
	}
	if len(files) > 0 {
		c.writeln(fmt.Sprintf("CSV format: %s", strings.Join(CSVHeader, ",")))
	}

	threads := make([]string, len(report.Threads))
	for i, t := range report.Threads {
		threads[i] = fmt.Sprintf("%d", t)
	}

	c.writeln("")
	c.writeln("Summary:")
	c.writeln(fmt.Sprintf("- Problem sizes tested: %d", len(report.Tests)))
	c.writeln(fmt.Sprintf("- Threads: %s", strings.Join(threads, ", ")))
	c.writeln(fmt.Sprintf("- Measurements: %d (%d ok, %d skipped, %d failed)",
		len(report.Rows()), counts[bench.StatusOK], counts[bench.StatusSkipped], failed))
	c.writeln(fmt.Sprintf("- Seed: %d", report.Seed))
	c.writeln(fmt.Sprintf("- Duration: %s", formatDuration(report.Duration)))

	if best, ok := bestRow(report); ok {
		c.writeln(fmt.Sprintf("- Best speedup: %s (%s, %d threads)",
			c.colors.Good.Sprintf("%.2fx", best.Speedup), best.Test, best.Threads))
	}
}

// PrintResultHead prints the first limit elements of result as "C[i] = v".
func (c *ConsoleOutput) PrintResultHead(result []float64, limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writeln("")
	c.writeln(fmt.Sprintf("First %d elements of the result:", min(limit, len(result))))
	for i := 0; i < len(result) && i < limit; i++ {
		c.writeln(fmt.Sprintf("C[%d] = %.2f", i, result[i]))
	}
}

// Println writes a plain line unless the output is quiet.
func (c *ConsoleOutput) Println(s string) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeln(s)
}

type colorFunc func(a ...interface{}) string

// tableRow pads every cell to its column width and then colors it, so
// escape codes never disturb the alignment.
func (c *ConsoleOutput) tableRow(cells []string, colors []colorFunc) string {
	var sb strings.Builder
	bar := c.colors.Dim.Sprint(boxVertical)
	sb.WriteString(bar)
	for i, cell := range cells {
		padded := fmt.Sprintf(" %*s ", columnWidths[i], cell)
		if i < len(colors) && colors[i] != nil {
			padded = colors[i](padded)
		}
		sb.WriteString(padded)
		sb.WriteString(bar)
	}
	return sb.String()
}

func (c *ConsoleOutput) rule(left, mid, right string) string {
	parts := make([]string, len(columnWidths))
	for i, w := range columnWidths {
		parts[i] = strings.Repeat(ruleLight, w+2)
	}
	return c.colors.Dim.Sprint(left + strings.Join(parts, mid) + right)
}

func (c *ConsoleOutput) colorsOn() bool {
	return c.colors.Good.Sprint("x") != "x"
}

// writeln writes to the output with a newline.
func (c *ConsoleOutput) writeln(s string) {
	fmt.Fprintln(c.writer, s)
}

func bestRow(report *bench.Report) (bench.Row, bool) {
	var best bench.Row
	found := false
	for _, row := range report.Rows() {
		if row.OK() && (!found || row.Speedup > best.Speedup) {
			best = row
			found = true
		}
	}
	return best, found
}
