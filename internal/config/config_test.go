package config

import (
	"errors"
	"testing"
	"time"
)

// TestLoadDefaults verifies defaults apply without a config file.
func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Quiz.AnswerDelay != 200*time.Millisecond {
		t.Fatalf("expected 200ms answer delay, got %v", cfg.Quiz.AnswerDelay)
	}
	if cfg.Certificate.PageWidth != 841.89 || cfg.Certificate.PageHeight != 595.28 {
		t.Fatalf("expected A4 landscape, got %vx%v", cfg.Certificate.PageWidth, cfg.Certificate.PageHeight)
	}
	if cfg.DB.Enabled() {
		t.Fatalf("expected database to be disabled")
	}
	if err := cfg.RequireTelegram(); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("expected missing token error, got %v", err)
	}
}

// TestLoadEnvironment verifies environment variables override defaults.
func TestLoadEnvironment(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "123:abc")
	t.Setenv("DATABASE_URL", "postgres://localhost/quiz")
	t.Setenv("APP_ENV", "production")
	t.Setenv("QUIZ_ANSWER_DELAY", "1s")
	t.Setenv("ASSETS_BASE_URL", "http://assets.local/assets")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.TelegramAPIToken != "123:abc" || cfg.RequireTelegram() != nil {
		t.Fatalf("expected token from environment")
	}
	if !cfg.DB.Enabled() || cfg.DB.URL != "postgres://localhost/quiz" {
		t.Fatalf("expected database url, got %q", cfg.DB.URL)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected production env, got %q", cfg.Env)
	}
	if cfg.Quiz.AnswerDelay != time.Second {
		t.Fatalf("expected 1s answer delay, got %v", cfg.Quiz.AnswerDelay)
	}
	if cfg.Assets.BaseURL != "http://assets.local/assets" {
		t.Fatalf("unexpected base url %q", cfg.Assets.BaseURL)
	}
}

// TestLoadRejectsBadPageSize verifies a zero page size is refused.
func TestLoadRejectsBadPageSize(t *testing.T) {
	t.Setenv("CERTIFICATE_PAGE_WIDTH", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected page size error")
	}
}
