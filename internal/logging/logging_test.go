package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNew_FiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Output = &buf
	logger := New(opts)

	logger.Info("hidden")
	logger.Warn("saved list", "path", "Groceries.todo")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at warn level:\n%s", out)
	}
	for _, want := range []string{"WARN", "todo", "saved list", "path=Groceries.todo"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestNew_JSONFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: log.DebugLevel, Formatter: log.JSONFormatter, Output: &buf})
	logger.Debug("loaded", "entries", 4)

	out := buf.String()
	if !strings.Contains(out, `"msg":"loaded"`) || !strings.Contains(out, `"entries":4`) {
		t.Fatalf("unexpected json log line: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want log.Level
	}{
		{"", log.WarnLevel},
		{"debug", log.DebugLevel},
		{" INFO ", log.InfoLevel},
		{"error", log.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseLevel("fatal"); err == nil {
		t.Fatalf("expected error for fatal")
	}
}

func TestParseFormatter(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]log.Formatter{"": log.TextFormatter, "json": log.JSONFormatter, "LOGFMT": log.LogfmtFormatter} {
		got, err := ParseFormatter(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormatter(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormatter("xml"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOpen_Appends(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "todo.log")
	for i := 0; i < 2; i++ {
		f, err := Open(path)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		logger := New(Options{Level: log.InfoLevel, Output: f})
		logger.Info("line")
		_ = f.Close()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Count(string(b), "line") != 2 {
		t.Fatalf("expected two lines:\n%s", b)
	}
	if _, err := Open(" "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
