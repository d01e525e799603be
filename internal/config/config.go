// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	FrontendURL string
	DBPath      string
	Remote      RemoteConfig
	RateLimit   RateLimitConfig
	RevealDelay time.Duration
	Transcript  TranscriptConfig
}

// RemoteConfig configures the chat-completion endpoint. An empty APIKey
// disables remote completions; every question then resolves locally.
type RemoteConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// RateLimitConfig holds the per-browser question quotas. The gate is always
// active; a deployment that wants it effectively off must set the limits
// very high on purpose rather than relying on hidden behavior.
type RateLimitConfig struct {
	DailyLimit  int
	HourlyLimit int
}

// TranscriptConfig controls NDJSON transcript logging.
type TranscriptConfig struct {
	Enabled   bool
	Dir       string
	QueueSize int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", ""),
		DBPath:      getEnv("DB_PATH", "./data/refaq.db"),
		Remote: RemoteConfig{
			APIKey:  getEnv("XAI_API_KEY", ""),
			BaseURL: getEnv("XAI_BASE_URL", ""),
			Model:   getEnv("CHAT_MODEL", "grok-3-mini"),
			Timeout: getEnvDuration("REMOTE_TIMEOUT", 10*time.Second),
		},
		RateLimit: RateLimitConfig{
			DailyLimit:  getEnvInt("DAILY_QUESTION_LIMIT", 15),
			HourlyLimit: getEnvInt("HOURLY_QUESTION_LIMIT", 5),
		},
		RevealDelay: getEnvDuration("REVEAL_DELAY", 200*time.Millisecond),
		Transcript: TranscriptConfig{
			Enabled:   getEnvBool("TRANSCRIPT_LOG_ENABLED", false),
			Dir:       getEnv("TRANSCRIPT_LOG_DIR", "./data/logs/transcripts"),
			QueueSize: getEnvInt("TRANSCRIPT_LOG_QUEUE_SIZE", 1000),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.RateLimit.DailyLimit <= 0 {
		return fmt.Errorf("DAILY_QUESTION_LIMIT must be > 0")
	}
	if c.RateLimit.HourlyLimit <= 0 {
		return fmt.Errorf("HOURLY_QUESTION_LIMIT must be > 0")
	}
	if c.Remote.Timeout <= 0 {
		return fmt.Errorf("REMOTE_TIMEOUT must be > 0")
	}
	if c.RevealDelay < 0 {
		return fmt.Errorf("REVEAL_DELAY cannot be negative")
	}
	if c.Transcript.Enabled && c.Transcript.Dir == "" {
		return fmt.Errorf("TRANSCRIPT_LOG_DIR cannot be empty")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
