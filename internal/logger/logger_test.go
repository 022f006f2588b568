package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/certquiz-bot/internal/config"
)

// TestNewRespectsLevel verifies the configured level overrides the environment default.
func TestNewRespectsLevel(t *testing.T) {
	lg, err := New(&config.Config{Env: "local", LogLevel: "warn"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lg.Core().Enabled(zap.InfoLevel) {
		t.Fatalf("expected info to be disabled")
	}
	if !lg.Core().Enabled(zap.WarnLevel) {
		t.Fatalf("expected warn to be enabled")
	}
}

// TestNewRejectsUnknownLevel verifies a typo in the level is reported.
func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(&config.Config{LogLevel: "loud"}); err == nil {
		t.Fatalf("expected error")
	}
}

// TestNewWritesToFile verifies output paths replace stderr.
func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.log")

	lg, err := New(&config.Config{Env: "production"}, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lg.Info("hello")
	_ = lg.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) || !strings.Contains(string(data), `"env":"production"`) {
		t.Fatalf("unexpected log output %q", data)
	}
	if lg.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("expected production logger to skip debug")
	}
}
