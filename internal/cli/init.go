// Package cli provides common initialization shared by the commands:
// logging, .env loading, configuration and the SQLite store.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/hakdo/pengesjekk/internal/config"
	applog "github.com/hakdo/pengesjekk/internal/log"
	"github.com/hakdo/pengesjekk/internal/storage"
)

// SetupLogger initializes structured logging and sets it as the default.
// Dev mode lowers the level to debug.
func SetupLogger(dev bool) *applog.Logger {
	cfg := applog.DefaultConfig()
	if dev {
		cfg.Level = slog.LevelDebug
		cfg.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		// Keep stdout clean for command output.
		cfg.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	}
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	logger.Debug("Logging initialized", "dev", dev)
	return logger
}

// LoadEnvFile loads the .env file for local development. A missing file
// is fine; a file that exists but cannot be read is worth a warning.
func LoadEnvFile() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		applog.ForComponent(applog.ComponentCLI).Warn("Could not load .env file", "error", err)
	}
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// InitSQLite opens the SQLite store, runs migrations and makes sure the
// default account exists.
func InitSQLite(ctx context.Context, dbPath string) (*storage.SQLiteRepository, error) {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite store at %s: %w", dbPath, err)
	}
	if err := repo.EnsureDefaultAccount(ctx); err != nil {
		repo.Close()
		return nil, err
	}
	applog.ForComponent(applog.ComponentCLI).Info("SQLite store ready", "path", dbPath)
	return repo, nil
}
