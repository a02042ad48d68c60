package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	if err := Init(Config{Debug: true, Dir: dir}); err != nil {
		t.Fatalf("init logger: %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	Debug("debug line", "key", "value")
	Info("info line")

	data, err := os.ReadFile(filepath.Join(dir, "housekeep.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "debug line") || !strings.Contains(out, "info line") {
		t.Fatalf("log missing messages: %q", out)
	}
}

func TestHelpersAreNilSafe(t *testing.T) {
	Logger = nil
	Debug("x")
	Info("x")
	Warn("x")
	Error("x")
}
