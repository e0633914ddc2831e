package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlyaSylkin/OS-2-lab/internal/reduce"
)

func TestReadPositiveInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr string
	}{
		{name: "Plain", input: "10\n", want: 10},
		{name: "Whitespace", input: "  42 \r\n", want: 42},
		{name: "No trailing newline", input: "7", want: 7},
		{name: "Zero", input: "0\n", wantErr: "positive"},
		{name: "Negative", input: "-3\n", wantErr: "positive"},
		{name: "Not a number", input: "ten\n", wantErr: "not an integer"},
		{name: "Empty input", input: "", wantErr: "end of input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPositiveInt(bufio.NewReader(strings.NewReader(tt.input)))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newRunFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
	addRunFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestResolveRunInput(t *testing.T) {
	t.Run("all prompted", func(t *testing.T) {
		var prompts bytes.Buffer
		in, err := resolveRunInput(newRunFlags(t), strings.NewReader("3\n100\n4\n"), &prompts)
		require.NoError(t, err)

		assert.Equal(t, runInput{K: 3, N: 100, Threads: 4}, in)
		assert.Equal(t,
			"Enter number of arrays (K): Enter array length (N): Enter maximum number of threads: ",
			prompts.String())
	})

	t.Run("flags skip prompts", func(t *testing.T) {
		var prompts bytes.Buffer
		in, err := resolveRunInput(newRunFlags(t, "-k", "2", "-t", "8", "--verify", "--seed", "5"),
			strings.NewReader("50\n"), &prompts)
		require.NoError(t, err)

		assert.Equal(t, runInput{K: 2, N: 50, Threads: 8, Verify: true, Seed: 5}, in)
		assert.Equal(t, "Enter array length (N): ", prompts.String())
	})

	t.Run("invalid prompt value", func(t *testing.T) {
		_, err := resolveRunInput(newRunFlags(t), strings.NewReader("3\n0\n"), io.Discard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid N")
	})

	t.Run("invalid flag value", func(t *testing.T) {
		_, err := resolveRunInput(newRunFlags(t, "-k", "-1"), strings.NewReader(""), io.Discard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid K")
	})
}

func TestRunInteractive(t *testing.T) {
	var out bytes.Buffer
	err := runInteractive(runInput{K: 2, N: 20, Threads: 4, Verify: true, Seed: 9, NoColor: true},
		&out, newLogger(io.Discard, false))
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Generating data (seed 9)...")
	assert.Contains(t, text, "Using 4 threads, block of 5 elements")
	assert.Contains(t, text, "Results match.")
	assert.Contains(t, text, "First 10 elements of the result:")
	assert.Contains(t, text, "C[9] = ")
	assert.NotContains(t, text, "C[10] = ")
	assert.True(t, strings.HasSuffix(text, "Done.\n"))
}

func TestRunInteractive_CapsThreadsAtN(t *testing.T) {
	var out bytes.Buffer
	err := runInteractive(runInput{K: 1, N: 3, Threads: 16, NoColor: true}, &out, newLogger(io.Discard, false))
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Using 3 threads, block of 1 elements")
	assert.Contains(t, text, "First 3 elements of the result:")
}

func TestRunInteractive_MemoryLimit(t *testing.T) {
	err := runInteractive(runInput{K: 1000, N: 1000000, Threads: 2, MaxMemoryMB: 1, NoColor: true},
		io.Discard, newLogger(io.Discard, false))
	require.Error(t, err)
	assert.True(t, errors.Is(err, reduce.ErrAllocation))
}
