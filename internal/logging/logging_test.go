package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewFileLogger(t *testing.T) {
	t.Run("creates nested directory and appends", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state", "todoui", "todoui.log")

		logger, err := NewFileLogger(path, "debug", "todoui")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		logger.Info("fetch done", "todos", 3)
		if err := logger.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read log: %v", err)
		}
		if !strings.Contains(string(raw), "fetch done") || !strings.Contains(string(raw), "todos=3") {
			t.Fatalf("unexpected log contents %q", raw)
		}
	})

	t.Run("empty path returns error", func(t *testing.T) {
		if _, err := NewFileLogger(" ", "info", "todoui"); err == nil {
			t.Fatal("expected error for empty path")
		}
	})

	t.Run("bad level returns error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "x.log")
		if _, err := NewFileLogger(path, "loud", "todoui"); err == nil {
			t.Fatal("expected error for bad level")
		}
	})
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, log.WarnLevel, "")
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"":      log.InfoLevel,
		"DEBUG": log.DebugLevel,
		" warn": log.WarnLevel,
		"error": log.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewServerLogger(t *testing.T) {
	logger, err := NewServerLogger("debug")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !logger.Core().Enabled(-1) {
		t.Fatal("expected debug enabled")
	}
	if _, err := NewServerLogger("chatty"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
