package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/IlyaSylkin/OS-2-lab/internal/datagen"
	"github.com/IlyaSylkin/OS-2-lab/internal/metrics"
	"github.com/IlyaSylkin/OS-2-lab/internal/output"
	"github.com/IlyaSylkin/OS-2-lab/internal/reduce"
)

// resultPreview is how many leading result elements run prints.
const resultPreview = 10

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sum K random arrays of length N once with up to T workers",
	Long: `Run a single parallel summation. Values missing from the flags are
read from standard input:

  sumbench run
  sumbench run -k 10 -n 1000000 -t 8 --verify`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := resolveRunInput(cmd.Flags(), cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		noColor, _ := cmd.Flags().GetBool("no-color")
		in.NoColor = noColor
		return runInteractive(in, cmd.OutOrStdout(), loggerFor(cmd))
	},
}

// runInput is everything a single interactive run needs.
type runInput struct {
	K, N, Threads int
	Verify        bool
	Seed          uint64
	MaxMemoryMB   int64
	NoColor       bool
}

// intPrompt describes one value that may come from a flag or from stdin.
type intPrompt struct {
	flag   string
	prompt string
	name   string
}

var runPrompts = []intPrompt{
	{flag: "arrays", prompt: "Enter number of arrays (K): ", name: "K"},
	{flag: "length", prompt: "Enter array length (N): ", name: "N"},
	{flag: "threads", prompt: "Enter maximum number of threads: ", name: "thread count"},
}

// resolveRunInput takes K, N and T from the flags that were set and prompts
// for the rest. Every value must be a positive integer.
func resolveRunInput(flags *pflag.FlagSet, stdin io.Reader, prompts io.Writer) (runInput, error) {
	reader := bufio.NewReader(stdin)
	values := make([]int, len(runPrompts))

	for i, p := range runPrompts {
		if flags.Changed(p.flag) {
			v, _ := flags.GetInt(p.flag)
			if v <= 0 {
				return runInput{}, fmt.Errorf("invalid %s: must be a positive integer, got %d", p.name, v)
			}
			values[i] = v
			continue
		}

		fmt.Fprint(prompts, p.prompt)
		v, err := readPositiveInt(reader)
		if err != nil {
			return runInput{}, fmt.Errorf("invalid %s: %w", p.name, err)
		}
		values[i] = v
	}

	in := runInput{K: values[0], N: values[1], Threads: values[2]}
	in.Verify, _ = flags.GetBool("verify")
	in.Seed, _ = flags.GetUint64("seed")
	in.MaxMemoryMB, _ = flags.GetInt64("max-memory")
	return in, nil
}

// readPositiveInt reads one line and parses it as a positive integer.
func readPositiveInt(r *bufio.Reader) (int, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("unexpected end of input")
		}
		return 0, err
	}

	text := strings.TrimSpace(line)
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("'%s' is not an integer", text)
	}
	if v <= 0 {
		return 0, fmt.Errorf("must be a positive integer, got %d", v)
	}
	return v, nil
}

// runInteractive generates data, runs the parallel sum once and prints the
// head of the result. With Verify set it also runs the baseline and compares.
func runInteractive(in runInput, out io.Writer, logger *slog.Logger) error {
	console := output.NewConsoleOutput(output.ConsoleOutputConfig{Writer: out, NoColor: in.NoColor})

	ws, err := reduce.NewWorkspace(in.K, in.N, in.MaxMemoryMB<<20)
	if err != nil {
		return fmt.Errorf("failed to allocate %dx%d arrays: %w", in.K, in.N, err)
	}
	defer ws.Release()

	gen := datagen.New(in.Seed)
	console.Println(fmt.Sprintf("Generating data (seed %d)...", gen.Seed()))
	gen.Fill(ws.Source)

	workers := reduce.EffectiveWorkers(in.N, in.Threads)
	console.Println(fmt.Sprintf("Using %d threads, block of %d elements", workers, in.N/workers))
	logger.Debug("cli: run planned", "k", in.K, "n", in.N, "requested", in.Threads, "workers", workers)

	run, err := reduce.Parallel(ws.Source, ws.Parallel, in.Threads)
	if err != nil {
		return fmt.Errorf("parallel run failed: %w", err)
	}
	console.Println(fmt.Sprintf("Parallel time: %.2f ms", metrics.Milliseconds(run.Elapsed)))

	if in.Verify {
		seq, err := reduce.Sequential(ws.Source, ws.Sequential)
		if err != nil {
			return fmt.Errorf("sequential run failed: %w", err)
		}
		if err := reduce.Verify(ws.Sequential, ws.Parallel, reduce.DefaultTolerance); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		speedup := metrics.Speedup(seq, run.Elapsed)
		console.Println(fmt.Sprintf("Sequential time: %.2f ms", metrics.Milliseconds(seq)))
		console.Println(fmt.Sprintf("Results match. Speedup %.2f, efficiency %.1f%%",
			speedup, metrics.Efficiency(speedup, workers)))
	}

	console.PrintResultHead(ws.Parallel, resultPreview)
	console.Println("Done.")
	return nil
}

func addRunFlags(flags *pflag.FlagSet) {
	flags.IntP("arrays", "k", 0, "Number of arrays (K)")
	flags.IntP("length", "n", 0, "Length of every array (N)")
	flags.IntP("threads", "t", 0, "Maximum number of threads; capped at N")
	flags.Bool("verify", false, "Also run the sequential sum and compare results")
	flags.Uint64("seed", 0, "Data generator seed (0 picks a time-based seed)")
	flags.Int64("max-memory", 0, "Workspace limit in MB (0 = unlimited)")
}

func init() {
	addRunFlags(runCmd.Flags())
}
