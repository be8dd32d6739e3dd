package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.log")
	l, closer, err := New(Options{Level: "debug", File: path, Prefix: "gocube3d"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Debug("turn started", "layer", "U")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "turn started") || !strings.Contains(string(data), "layer=U") {
		t.Errorf("log file = %q", data)
	}
}

func TestNewLevel(t *testing.T) {
	l, closer, err := New(Options{Level: "warn"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closer.Close()
	if l.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want warn", l.GetLevel())
	}

	if _, _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("unknown level should fail")
	}
}
