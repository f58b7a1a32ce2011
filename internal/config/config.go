package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Database
	DBPath string

	// Category suggestion
	GeminiAPIKey      string
	Model             string
	CategorizeDelay   time.Duration
	CategorizeTimeout time.Duration

	// Presentation
	PageSize int
}

func Load() *Config {
	return &Config{
		DBPath: getEnv("PENGESJEKK_DB_PATH", "./data/pengesjekk.db"),

		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		Model:             getEnv("PENGESJEKK_MODEL", "gemini-2.5-flash"),
		CategorizeDelay:   getEnvDuration("PENGESJEKK_CATEGORIZE_DELAY", 5*time.Second),
		CategorizeTimeout: getEnvDuration("PENGESJEKK_CATEGORIZE_TIMEOUT", 30*time.Second),

		PageSize: getEnvInt("PENGESJEKK_PAGE_SIZE", 15),
	}
}

// Validate checks the configuration and returns all problems at once.
// It only reports; the database directory is created by the store when
// it opens. The Gemini key is checked lazily by the categorize command,
// not here, so every other operation works without one.
func (c *Config) Validate() error {
	var errors []string

	if c.DBPath == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if c.Model == "" {
		errors = append(errors, "model name cannot be empty")
	}
	if c.CategorizeDelay < 0 {
		errors = append(errors, fmt.Sprintf("invalid categorize delay %v: must not be negative", c.CategorizeDelay))
	}
	if c.CategorizeTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid categorize timeout %v: must be at least 1 second", c.CategorizeTimeout))
	}
	if c.PageSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid page size %d: must be at least 1", c.PageSize))
	} else if c.PageSize > 1000 {
		errors = append(errors, fmt.Sprintf("invalid page size %d: must be at most 1000", c.PageSize))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
