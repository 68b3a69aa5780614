// Package config loads the service configuration from the environment and
// owns the auth primitives built on it: JWT settings and password hashing.
package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// DefaultAddr is the listen address when LISTEN_ADDR is not set.
	DefaultAddr = ":8080"
	// DefaultSessionTTL bounds idle wizard sessions when SESSION_TTL is not set.
	DefaultSessionTTL = 24 * time.Hour
)

// Config is the deployment configuration of the wizard service. Values come
// from the environment; the CLI loads an optional .env file first.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string
	// GeminiAPIKey authenticates model calls.
	GeminiAPIKey string
	// SessionTTL is how long an idle session stays resumable.
	SessionTTL time.Duration
	// LayoutLimitsFile optionally overrides the compiled-in layout limits.
	LayoutLimitsFile string
	// ThemesDir optionally serves themes from disk instead of the embedded set.
	ThemesDir string
	// ChromePath optionally pins the browser binary used for PDF printing.
	ChromePath string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:             envOr("LISTEN_ADDR", DefaultAddr),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		SessionTTL:       DefaultSessionTTL,
		LayoutLimitsFile: os.Getenv("LAYOUT_LIMITS_FILE"),
		ThemesDir:        os.Getenv("THEMES_DIR"),
		ChromePath:       os.Getenv("CHROME_PATH"),
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL: %v", err)
		}
		cfg.SessionTTL = ttl
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates values that have no required/optional distinction.
func (c *Config) normalize() error {
	if c.SessionTTL < time.Minute {
		return fmt.Errorf("SESSION_TTL must be at least 1 minute, got: %s", c.SessionTTL)
	}
	return nil
}

// ValidateServe checks the settings the HTTP service cannot run without.
// Offline subcommands skip it.
func (c *Config) ValidateServe() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required but not set")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
