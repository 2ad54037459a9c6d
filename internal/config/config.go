// Package config provides gateway configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const insecureSecret = "change-me"

// Config holds all gateway configuration.
type Config struct {
	Port           string
	Env            string
	BackendURL     string
	BackendTimeout time.Duration
	SessionSecret  string
	SessionTTL     time.Duration
	CookieSecure   bool
	RedisURL       string // empty selects the in-memory store and in-process events
	RedisPrefix    string
	ActivityDBPath string
	ActionLimit    int // mutating requests per session per minute, 0 disables
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "9000"),
		Env:            strings.ToLower(getEnv("ENV", "development")),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8000"),
		BackendTimeout: getEnvDuration("BACKEND_TIMEOUT", 30*time.Second),
		SessionSecret:  getEnv("SESSION_SECRET", insecureSecret),
		SessionTTL:     getEnvDuration("SESSION_TTL", 30*24*time.Hour),
		CookieSecure:   getEnvBool("COOKIE_SECURE", false),
		RedisURL:       getEnv("REDIS_URL", ""),
		RedisPrefix:    getEnv("REDIS_KEY_PREFIX", "tokenasset:session:"),
		ActivityDBPath: getEnv("ACTIVITY_DB_PATH", "./data/tokenasset.db"),
		ActionLimit:    getEnvInt("ACTION_LIMIT_PER_MINUTE", 30),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT: %s", c.Port)
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid BACKEND_URL: %q", c.BackendURL)
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET cannot be empty")
	}
	if c.IsProduction() && c.SessionSecret == insecureSecret {
		return errors.New("SESSION_SECRET must be set in production")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be > 0")
	}
	if c.BackendTimeout <= 0 {
		return errors.New("BACKEND_TIMEOUT must be > 0")
	}
	if c.ActivityDBPath == "" {
		return errors.New("ACTIVITY_DB_PATH cannot be empty")
	}
	if c.ActionLimit < 0 {
		return errors.New("ACTION_LIMIT_PER_MINUTE must be >= 0")
	}
	return nil
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
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
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
