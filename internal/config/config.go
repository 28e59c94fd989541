// Package config loads and validates the application configuration from
// the environment.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v8"

	"splittab/internal/core"
	"splittab/internal/i18n"
)

type Config struct {
	// HTTP server
	Port string `env:"PORT" envDefault:"8081"`

	// Display defaults; every value can still be switched per request.
	PrimaryCurrency string `env:"PRIMARY_CURRENCY" envDefault:"EUR"`
	DefaultCurrency string `env:"DEFAULT_CURRENCY" envDefault:"EUR"`
	Language        string `env:"LANGUAGE" envDefault:"en"`

	// Category seeds; empty means the built-in default set.
	SeedDir string `env:"SEED_DIR" envDefault:""`

	// Rate limiting and partial-render cache
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
	CacheSize          int           `env:"CACHE_SIZE" envDefault:"64"`
	CacheTTL           time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration and returns an error listing every
// invalid value.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !core.Currency(c.PrimaryCurrency).Valid() {
		errors = append(errors, fmt.Sprintf("invalid primary currency '%s': must be one of %v", c.PrimaryCurrency, core.Currencies()))
	}
	if !core.Currency(c.DefaultCurrency).Valid() {
		errors = append(errors, fmt.Sprintf("invalid default currency '%s': must be one of %v", c.DefaultCurrency, core.Currencies()))
	}

	validLang := false
	for _, lang := range i18n.Languages() {
		if c.Language == lang {
			validLang = true
			break
		}
	}
	if !validLang {
		errors = append(errors, fmt.Sprintf("invalid language '%s': must be one of %v", c.Language, i18n.Languages()))
	}

	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1", c.RateLimitPerMinute))
	}
	if c.CacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
	}
	if c.CacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
	} else if c.CacheTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at most 24 hours", c.CacheTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}
