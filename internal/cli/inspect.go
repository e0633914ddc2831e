package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/IlyaSylkin/OS-2-lab/internal/report"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <report.json>",
	Short: "Summarize a saved JSON report",
	Long: `Print the best speedup of every test in a JSON report written by
"sumbench bench --json", or extract a single value with --query:

  sumbench inspect results.json
  sumbench inspect results.json --query '$.tests[2].rows[4].speedup'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		return inspectReport(args[0], query, cmd.OutOrStdout())
	},
}

// inspectReport prints the digest of the report at path, or the value at
// query when one is given.
func inspectReport(path, query string, out io.Writer) error {
	if query != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read report: %w", err)
		}
		value, err := report.Query(data, query)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, value)
		return nil
	}

	digest, err := report.LoadDigest(path)
	if err != nil {
		return err
	}
	printDigest(digest, out)
	return nil
}

func printDigest(d *report.Digest, out io.Writer) {
	fmt.Fprintf(out, "Report:   %s\n", d.Name)
	fmt.Fprintf(out, "Seed:     %d\n", d.Seed)
	fmt.Fprintf(out, "Repeat:   %d\n", d.Repeat)
	fmt.Fprintf(out, "Duration: %s\n", d.Duration)
	fmt.Fprintln(out)

	failed := 0
	for _, t := range d.Tests {
		name := t.Label
		if t.Description != "" {
			name = fmt.Sprintf("%s (%s)", t.Label, t.Description)
		}
		fmt.Fprintf(out, "%s, %d elements, sequential %.2f ms\n", name, t.TotalElements, t.SeqTimeMs)
		if t.Measured > 0 {
			fmt.Fprintf(out, "  best speedup %.3f at %d threads\n", t.BestSpeedup, t.BestThreads)
		} else {
			fmt.Fprintln(out, "  no successful measurements")
		}
		fmt.Fprintf(out, "  %d ok, %d skipped, %d failed\n", t.Measured, t.Skipped, t.Failed)
		failed += t.Failed
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Failed rows: %d\n", failed)
}

func init() {
	inspectCmd.Flags().String("query", "", "JSONPath expression to extract, e.g. $.tests[0].rows[1].speedup")
}
