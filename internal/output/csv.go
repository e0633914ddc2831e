package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/IlyaSylkin/OS-2-lab/internal/bench"
	"github.com/IlyaSylkin/OS-2-lab/internal/metrics"
)

// CSVHeader is the fixed header line of the results file.
var CSVHeader = []string{
	"Test", "K", "N", "TotalElements", "Threads",
	"SeqTime_ms", "ParTime_ms", "Speedup", "Efficiency",
}

// WriteCSV writes one line per successful row of report. Skipped and failed
// combinations are left out so every line carries valid measurements.
func WriteCSV(w io.Writer, report *bench.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range report.Rows() {
		if !row.OK() {
			continue
		}
		if err := cw.Write(csvRecord(row)); err != nil {
			return fmt.Errorf("failed to write CSV row %s/%d: %w", row.Test, row.Threads, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func csvRecord(row bench.Row) []string {
	return []string{
		row.Test,
		strconv.Itoa(row.K),
		strconv.Itoa(row.N),
		strconv.FormatInt(row.TotalElements, 10),
		strconv.Itoa(row.Threads),
		fmt.Sprintf("%.2f", metrics.Milliseconds(row.SeqTime)),
		fmt.Sprintf("%.2f", metrics.Milliseconds(row.ParTime)),
		fmt.Sprintf("%.3f", row.Speedup),
		fmt.Sprintf("%.2f", row.Efficiency),
	}
}

// SaveCSV writes the CSV results to path, replacing any existing file.
func SaveCSV(path string, report *bench.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}

	if err := WriteCSV(f, report); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close CSV file: %w", err)
	}
	return nil
}
