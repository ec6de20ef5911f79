package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Search modes.
const (
	ModeLive   = "live"
	ModeSubmit = "submit"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string

	GitHubAPIURL          string
	GitHubToken           string
	GitHubRPS             int
	RequestTimeoutSeconds int
	CacheTTLSeconds       int

	DebounceMillis int
	SearchMode     string

	HistoryEnabled     bool
	HistoryWorkerCount int
	HistoryQueueSize   int

	RateLimitRPS   int
	RateLimitBurst int

	ThemeFile string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                  envOr("ADDR", ":8080"),
		DBPath:                envOr("DB_PATH", "file:ghlookup.db"),
		LogLevel:              envOr("LOG_LEVEL", "INFO"),
		GitHubAPIURL:          strings.TrimRight(envOr("GITHUB_API_URL", "https://api.github.com"), "/"),
		GitHubToken:           os.Getenv("GITHUB_TOKEN"),
		GitHubRPS:             envIntOr("GITHUB_RPS", 2),
		RequestTimeoutSeconds: envIntOr("REQUEST_TIMEOUT_SECONDS", 15),
		CacheTTLSeconds:       envIntOr("CACHE_TTL_SECONDS", 0),
		DebounceMillis:        envIntOr("DEBOUNCE_MS", 500),
		SearchMode:            strings.ToLower(envOr("SEARCH_MODE", ModeLive)),
		HistoryEnabled:        envBoolOr("HISTORY_ENABLED", true),
		HistoryWorkerCount:    envIntOr("HISTORY_WORKER_COUNT", 1),
		HistoryQueueSize:      envIntOr("HISTORY_QUEUE_SIZE", 64),
		RateLimitRPS:          envIntOr("RATE_LIMIT_RPS", 10),
		RateLimitBurst:        envIntOr("RATE_LIMIT_BURST", 20),
		ThemeFile:             os.Getenv("THEME_FILE"),
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.HistoryEnabled && c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty when history is enabled")
	}
	u, err := url.Parse(c.GitHubAPIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("GITHUB_API_URL must be an absolute URL, got %q", c.GitHubAPIURL)
	}
	if c.GitHubRPS <= 0 {
		return fmt.Errorf("GITHUB_RPS must be positive, got %d", c.GitHubRPS)
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive, got %d", c.RequestTimeoutSeconds)
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS cannot be negative, got %d", c.CacheTTLSeconds)
	}
	if c.DebounceMillis <= 0 || c.DebounceMillis > 10000 {
		return fmt.Errorf("DEBOUNCE_MS must be between 1 and 10000, got %d", c.DebounceMillis)
	}
	if c.SearchMode != ModeLive && c.SearchMode != ModeSubmit {
		return fmt.Errorf("SEARCH_MODE must be %q or %q, got %q", ModeLive, ModeSubmit, c.SearchMode)
	}
	if c.HistoryEnabled {
		if c.HistoryWorkerCount <= 0 {
			return fmt.Errorf("HISTORY_WORKER_COUNT must be positive, got %d", c.HistoryWorkerCount)
		}
		if c.HistoryQueueSize <= 0 {
			return fmt.Errorf("HISTORY_QUEUE_SIZE must be positive, got %d", c.HistoryQueueSize)
		}
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

// Debounce returns the live-search quiet interval.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

// RequestTimeout returns the outbound HTTP timeout.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// CacheTTL returns the profile cache lifetime; zero disables caching.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
