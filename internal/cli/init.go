// Package cli provides common initialization for cmd/splittab.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"splittab/internal/config"
	"splittab/internal/ledger"
	"splittab/internal/log"
)

// SetupLogger initializes structured logging with default settings.
func SetupLogger() *log.Logger {
	return log.New(log.Config{Component: log.ComponentApp})
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", log.FieldError, err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitLedger builds the in-memory ledger, seeded from the configured
// seed directory when one is set.
func InitLedger(logger *log.Logger, cfg *config.Config) *ledger.Ledger {
	seed := ledger.DefaultCategories()
	if cfg.SeedDir != "" {
		seed = ledger.SeedFromDir(cfg.SeedDir)
	}
	led := ledger.New(seed)
	logger.Info("Ledger initialized", log.FieldCount, len(seed))
	return led
}
