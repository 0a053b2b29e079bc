package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultBaseURL   = "http://localhost:8000"
	defaultTimeout   = 10 * time.Second
	defaultTokenFile = ".quiz-token"
	defaultCacheDB   = "quiz-cache.db"
)

// Config holds everything the client needs from the environment.
type Config struct {
	APIBaseURL  string
	HTTPTimeout time.Duration
	TokenFile   string
	CacheDB     string
}

// Load reads configuration from environment variables, after loading a .env
// file if one exists. Every key has a default; Load never fails on absence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:  getenvDefault("QUIZ_API_BASE_URL", defaultBaseURL),
		HTTPTimeout: defaultTimeout,
		TokenFile:   getenvDefault("QUIZ_TOKEN_FILE", defaultTokenFile),
		CacheDB:     getenvDefault("QUIZ_CACHE_DB", defaultCacheDB),
	}

	if raw := os.Getenv("QUIZ_HTTP_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, err
		}
		cfg.HTTPTimeout = timeout
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
