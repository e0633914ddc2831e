package cli

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

// TestExecute tests the Execute function
func TestExecute(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Execute() panicked: %v", r)
		}
	}()

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs([]string{})
	defer RootCmd.SetArgs(nil)

	if err := Execute(); err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("sumbench")) {
		t.Errorf("expected help output, got %q", out.String())
	}
}

func TestRootCommands(t *testing.T) {
	for _, name := range []string{"bench", "run", "inspect"} {
		cmd, _, err := RootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	var errOut bytes.Buffer
	RootCmd.SetErr(&errOut)
	RootCmd.SetArgs([]string{"nope"})
	defer RootCmd.SetArgs(nil)

	if err := Execute(); err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !bytes.Contains(errOut.Bytes(), []byte("Error:")) {
		t.Errorf("expected error on stderr, got %q", errOut.String())
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	newLogger(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug events must be hidden without --verbose, got %q", buf.String())
	}

	logger := newLogger(&buf, true)
	logger.Debug("shown", "k", 1)
	if !bytes.Contains(buf.Bytes(), []byte("msg=shown k=1")) {
		t.Errorf("expected debug event, got %q", buf.String())
	}
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("verbose logger must enable debug level")
	}
}
