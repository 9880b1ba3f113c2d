// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// CatalogPath is the SQLite asset catalog file.
	CatalogPath string

	// HTTP transport settings. HTTPPort 0 disables the HTTP transport and
	// the server runs on stdio only.
	HTTPPort     int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// OTEL settings.
	OTELEndpoint string
	OTELInsecure bool
	ServiceName  string

	// Operational settings.
	LogLevel string
}

// Load reads configuration from environment variables with sensible
// defaults.
func Load() (Config, error) {
	cfg := Config{
		CatalogPath:  envStr("ANIMSMITH_CATALOG", ".animsmith/catalog.db"),
		HTTPPort:     envInt("ANIMSMITH_HTTP_PORT", 0),
		ReadTimeout:  envDuration("ANIMSMITH_READ_TIMEOUT", 30*time.Second),
		WriteTimeout: envDuration("ANIMSMITH_WRITE_TIMEOUT", 30*time.Second),
		OTELEndpoint: envStr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTELInsecure: envStr("OTEL_EXPORTER_OTLP_INSECURE", "") == "true",
		ServiceName:  envStr("OTEL_SERVICE_NAME", "animsmith"),
		LogLevel:     envStr("ANIMSMITH_LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present and in range.
func (c Config) Validate() error {
	if c.CatalogPath == "" {
		return fmt.Errorf("config: ANIMSMITH_CATALOG is required")
	}
	if c.HTTPPort < 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("config: ANIMSMITH_HTTP_PORT %d out of range", c.HTTPPort)
	}
	return nil
}

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
