package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "sumbench",
	Short:   "Measure the speedup of parallel element-wise array summation",
	Version: version,
	Long: `sumbench sums K arrays of length N element by element, once on a single
goroutine and once split across T workers, verifies both results agree and
reports speedup and efficiency for every thread count.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print help
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(RootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

// newLogger builds the diagnostic logger. Tables and prompts go to stdout;
// structured events go to w, at debug level only with --verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loggerFor returns the logger configured by the persistent --verbose flag.
func loggerFor(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return newLogger(cmd.ErrOrStderr(), verbose)
}

func init() {
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose diagnostic logging on stderr")
	RootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Add subcommands to root command
	RootCmd.AddCommand(benchCmd)
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(inspectCmd)

	RootCmd.SetErr(os.Stderr)
}
