package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/IlyaSylkin/OS-2-lab/internal/bench"
	"github.com/IlyaSylkin/OS-2-lab/internal/config"
	"github.com/IlyaSylkin/OS-2-lab/internal/output"
	"github.com/IlyaSylkin/OS-2-lab/internal/report"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the speedup sweep over every problem size and thread count",
	Long: `Run the batch benchmark: for every problem size generate random data,
time the sequential baseline, then time and verify the parallel sum for every
thread count. Results are printed as a table and written to CSV.

Defaults (no config file):
  sumbench bench

Config file mode:
  sumbench bench --config sweep.yaml

Override single settings:
  sumbench bench --threads 1,2,4,8 --repeat 5 --seed 42 \
    --csv results.csv --json results.json --html report.html`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

// sweepOptions are the console settings that do not belong in a config file.
type sweepOptions struct {
	Quiet   bool
	NoColor bool
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := buildSweepConfig(cmd.Flags())
	if err != nil {
		return err
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	noColor, _ := cmd.Flags().GetBool("no-color")

	return executeSweep(cfg, cmd.OutOrStdout(), loggerFor(cmd), sweepOptions{Quiet: quiet, NoColor: noColor})
}

// buildSweepConfig loads the config file, if any, and lets flags that were
// set explicitly override it.
func buildSweepConfig(flags *pflag.FlagSet) (*config.SweepConfig, error) {
	configFile, _ := flags.GetString("config")

	var cfg *config.SweepConfig
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
		if loaded.Output == (config.OutputConfig{}) {
			loaded.Output.CSV = config.DefaultCSV
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
	}

	if flags.Changed("threads") {
		raw, _ := flags.GetString("threads")
		threads, err := parseThreads(raw)
		if err != nil {
			return nil, err
		}
		cfg.Threads = threads
	}
	if flags.Changed("repeat") {
		cfg.Repeat, _ = flags.GetInt("repeat")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("max-memory") {
		cfg.MaxMemoryMB, _ = flags.GetInt64("max-memory")
	}
	if flags.Changed("csv") {
		cfg.Output.CSV, _ = flags.GetString("csv")
	}
	if flags.Changed("json") {
		cfg.Output.JSON, _ = flags.GetString("json")
	}
	if flags.Changed("html") {
		cfg.Output.HTML, _ = flags.GetString("html")
	}

	config.ApplyDefaults(cfg)
	return cfg, nil
}

// parseThreads parses thread counts from CLI format "2,4,8"
func parseThreads(s string) ([]int, error) {
	var threads []int

	for i, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		t, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("thread count %d: invalid value '%s'", i+1, part)
		}
		if t <= 0 {
			return nil, fmt.Errorf("thread count %d: must be positive, got %d", i+1, t)
		}
		threads = append(threads, t)
	}

	if len(threads) == 0 {
		return nil, fmt.Errorf("at least one thread count is required")
	}

	return threads, nil
}

// executeSweep runs the sweep with the console as observer and writes the
// configured report files. Reports are written even when the sweep aborts,
// so the measurements taken before the failure are kept.
func executeSweep(cfg *config.SweepConfig, out io.Writer, logger *slog.Logger, opts sweepOptions) error {
	console := output.NewConsoleOutput(output.ConsoleOutputConfig{
		Writer:  out,
		Quiet:   opts.Quiet,
		NoColor: opts.NoColor,
	})

	runner, err := bench.NewRunner(cfg, bench.Options{Observer: console, Logger: logger})
	if err != nil {
		return err
	}
	logger.Debug("cli: sweep configured", "tests", len(cfg.Tests), "threads", cfg.Threads, "seed", runner.Seed())

	console.PrintHeader(cfg.Name)

	result, runErr := runner.Run()
	if result == nil {
		return runErr
	}

	files, writeErr := writeReports(cfg.Output, result)
	console.PrintSummary(result, files)

	return errors.Join(runErr, writeErr)
}

// writeReports saves every configured report and returns the files written.
func writeReports(dest config.OutputConfig, result *bench.Report) ([]output.FileLine, error) {
	var files []output.FileLine
	var errs []error

	if dest.CSV != "" {
		if err := ensureDir(dest.CSV); err != nil {
			errs = append(errs, err)
		} else if err := output.SaveCSV(dest.CSV, result); err != nil {
			errs = append(errs, err)
		} else {
			files = append(files, output.FileLine{Kind: "CSV", Path: dest.CSV})
		}
	}

	if dest.JSON != "" {
		if err := ensureDir(dest.JSON); err != nil {
			errs = append(errs, err)
		} else if err := output.SaveReport(dest.JSON, result); err != nil {
			errs = append(errs, err)
		} else {
			kind := strings.ToUpper(string(output.FormatForPath(dest.JSON)))
			files = append(files, output.FileLine{Kind: kind, Path: dest.JSON})
		}
	}

	if dest.HTML != "" {
		path := dest.HTML
		// Ensure output path has .html extension
		if !strings.HasSuffix(strings.ToLower(path), ".html") {
			path += ".html"
		}
		if err := ensureDir(path); err != nil {
			errs = append(errs, err)
		} else if err := report.GenerateHTML(result, path); err != nil {
			errs = append(errs, fmt.Errorf("failed to generate HTML report: %w", err))
		} else {
			files = append(files, output.FileLine{Kind: "HTML", Path: path})
		}
	}

	return files, errors.Join(errs...)
}

// ensureDir creates the parent directory of path if needed.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

func addBenchFlags(flags *pflag.FlagSet) {
	flags.StringP("config", "c", "", "Sweep configuration file (YAML or JSON)")
	flags.String("threads", "", "Comma-separated thread counts, e.g. 2,4,8,16,32")
	flags.Int("repeat", config.DefaultRepeat, "Timed repetitions per baseline and thread count")
	flags.Uint64("seed", 0, "Data generator seed (0 picks a time-based seed)")
	flags.Int64("max-memory", 0, "Workspace limit per problem size in MB (0 = unlimited)")
	flags.String("csv", config.DefaultCSV, "CSV results file (empty to skip)")
	flags.String("json", "", "JSON or YAML report file, by extension")
	flags.String("html", "", "HTML report file")
	flags.BoolP("quiet", "q", false, "Print only the final status line")
}

func init() {
	addBenchFlags(benchCmd.Flags())
}
