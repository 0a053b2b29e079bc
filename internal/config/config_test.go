package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("QUIZ_API_BASE_URL", "")
	t.Setenv("QUIZ_HTTP_TIMEOUT", "")
	t.Setenv("QUIZ_TOKEN_FILE", "")
	t.Setenv("QUIZ_CACHE_DB", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.TokenFile != ".quiz-token" || cfg.CacheDB != "quiz-cache.db" {
		t.Fatalf("paths = %q %q", cfg.TokenFile, cfg.CacheDB)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("QUIZ_API_BASE_URL", "https://quiz.example.com")
	t.Setenv("QUIZ_HTTP_TIMEOUT", "30s")
	t.Setenv("QUIZ_TOKEN_FILE", "/tmp/token")
	t.Setenv("QUIZ_CACHE_DB", "/tmp/cache.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIBaseURL != "https://quiz.example.com" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.TokenFile != "/tmp/token" || cfg.CacheDB != "/tmp/cache.db" {
		t.Fatalf("paths = %q %q", cfg.TokenFile, cfg.CacheDB)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("QUIZ_HTTP_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error for bad duration")
	}
}
