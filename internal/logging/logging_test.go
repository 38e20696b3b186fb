package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "todo.log")

	logger, err := New(path, "info")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("hidden")
	logger.Warn("save failed", "err", "disk full")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "save failed") || !strings.Contains(out, "disk full") {
		t.Errorf("missing warn line: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be filtered at info level: %q", out)
	}
}

func TestNewAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.log")

	for _, msg := range []string{"first", "second"} {
		logger, err := New(path, "info")
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		logger.Info(msg)
		logger.Close()
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Errorf("log should be appended, got %q", data)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "todo.log"), "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing happens")
	if err := logger.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
