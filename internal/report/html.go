// Package report renders sweep results as a self-contained HTML page and
// reads saved JSON reports back for inspection.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/IlyaSylkin/OS-2-lab/internal/bench"
	"github.com/IlyaSylkin/OS-2-lab/internal/metrics"
)

// ReportData contains all data needed to render the HTML report.
type ReportData struct {
	*bench.Report
	Passed     bool
	Failed     int
	Skipped    int
	SeriesJSON template.JS
}

// Series is the chart data of one test. Values are nil where the row did
// not produce a measurement, which Chart.js draws as a gap.
type Series struct {
	Label       string     `json:"label"`
	Description string     `json:"description"`
	Threads     []int      `json:"threads"`
	SeqTimeMs   float64    `json:"seqTimeMs"`
	ParTimeMs   []*float64 `json:"parTimeMs"`
	Speedup     []*float64 `json:"speedup"`
	Efficiency  []*float64 `json:"efficiency"`
}

// GenerateHTML generates an HTML report and writes it to a file.
func GenerateHTML(report *bench.Report, outputPath string) error {
	html, err := GenerateHTMLString(report)
	if err != nil {
		return fmt.Errorf("failed to generate HTML: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}

	return nil
}

// GenerateHTMLString generates an HTML report and returns it as a string.
func GenerateHTMLString(report *bench.Report) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report cannot be nil")
	}

	tmpl, err := template.New("report").Funcs(templateFuncs()).Parse(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	seriesJSON, err := convertSeriesJSON(report)
	if err != nil {
		return "", fmt.Errorf("failed to convert series: %w", err)
	}

	counts := report.Counts()
	failed := counts[bench.StatusMismatch] + counts[bench.StatusFailed]
	data := ReportData{
		Report:     report,
		Passed:     failed == 0,
		Failed:     failed,
		Skipped:    counts[bench.StatusSkipped],
		SeriesJSON: template.JS(seriesJSON),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// BuildSeries converts every test of the report into chart data.
func BuildSeries(report *bench.Report) []Series {
	series := make([]Series, 0, len(report.Tests))
	for _, tr := range report.Tests {
		s := Series{
			Label:       tr.Label,
			Description: tr.Description,
			SeqTimeMs:   metrics.Milliseconds(tr.Baseline.Mean),
		}
		for _, row := range tr.Rows {
			s.Threads = append(s.Threads, row.Threads)
			if !row.OK() {
				s.ParTimeMs = append(s.ParTimeMs, nil)
				s.Speedup = append(s.Speedup, nil)
				s.Efficiency = append(s.Efficiency, nil)
				continue
			}
			s.ParTimeMs = append(s.ParTimeMs, ptr(metrics.Milliseconds(row.ParTime)))
			s.Speedup = append(s.Speedup, ptr(row.Speedup))
			s.Efficiency = append(s.Efficiency, ptr(row.Efficiency))
		}
		series = append(series, s)
	}
	return series
}

func convertSeriesJSON(report *bench.Report) (string, error) {
	if len(report.Tests) == 0 {
		return "[]", nil
	}

	jsonBytes, err := json.Marshal(BuildSeries(report))
	if err != nil {
		return "[]", err
	}
	return string(jsonBytes), nil
}

func ptr(v float64) *float64 { return &v }

// templateFuncs returns the template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDuration": formatDuration,
		"formatNumber":   formatNumber,
		"formatMillis":   formatMillis,
		"statusClass":    statusClass,
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dm %ds", mins, secs)
}

// formatNumber formats a large number with commas.
func formatNumber(n int64) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	str := fmt.Sprintf("%d", n)
	result := ""
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}

// formatMillis formats a duration as milliseconds with two decimals.
func formatMillis(d time.Duration) string {
	return fmt.Sprintf("%.2f", metrics.Milliseconds(d))
}

// statusClass maps a row status to a CSS class.
func statusClass(s bench.Status) string {
	switch s {
	case bench.StatusOK:
		return "pass"
	case bench.StatusSkipped:
		return "skip"
	default:
		return "fail"
	}
}
