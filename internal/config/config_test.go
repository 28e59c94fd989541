package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:               "8081",
		PrimaryCurrency:    "EUR",
		DefaultCurrency:    "USD",
		Language:           "en",
		RateLimitPerMinute: 60,
		CacheSize:          64,
		CacheTTL:           5 * time.Minute,
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8081" {
		t.Fatalf("default port = %q", cfg.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Port = "oops" }, "invalid port"},
		{"port range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"bad primary currency", func(c *Config) { c.PrimaryCurrency = "GBP" }, "invalid primary currency"},
		{"bad default currency", func(c *Config) { c.DefaultCurrency = "XXX" }, "invalid default currency"},
		{"bad language", func(c *Config) { c.Language = "de" }, "invalid language"},
		{"bad rate limit", func(c *Config) { c.RateLimitPerMinute = 0 }, "invalid rate limit"},
		{"bad cache size", func(c *Config) { c.CacheSize = 0 }, "invalid cache size"},
		{"ttl too small", func(c *Config) { c.CacheTTL = time.Millisecond }, "invalid cache TTL"},
		{"ttl too large", func(c *Config) { c.CacheTTL = 48 * time.Hour }, "invalid cache TTL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "oops"
	cfg.Language = "xx"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid port") || !strings.Contains(err.Error(), "invalid language") {
		t.Fatalf("expected both errors, got: %v", err)
	}
}
