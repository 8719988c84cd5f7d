// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. An optional .env file is read first; real environment
// variables always win over it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// StoreBackend is BackendPostgres or BackendMemory.
	StoreBackend string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey backs the shared rate limiter. Empty host disables it.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	CORSOrigins []string

	// RateLimitRequests per RateLimitWindow per client. Zero disables limiting.
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Load reads configuration from the environment (after loading .env if
// present), applying development defaults. Returns an error if a value
// is malformed or a production requirement is not met.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		StoreBackend: envOrDefault("STORE_BACKEND", BackendPostgres),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "blogapi"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "blogapi"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		CORSOrigins: splitList(envOrDefault("CORS_ORIGINS", "*")),
	}

	var err error
	if cfg.RateLimitRequests, err = strconv.Atoi(envOrDefault("RATE_LIMIT_REQUESTS", "100")); err != nil || cfg.RateLimitRequests < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_REQUESTS must be a non-negative integer")
	}
	if cfg.RateLimitWindow, err = time.ParseDuration(envOrDefault("RATE_LIMIT_WINDOW", "1m")); err != nil || cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be a positive duration")
	}

	switch cfg.StoreBackend {
	case BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendPostgres, BackendMemory, cfg.StoreBackend)
	}

	if cfg.Env == "production" {
		if cfg.StoreBackend == BackendPostgres && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ValkeyEnabled reports whether a Valkey host was configured.
func (c *Config) ValkeyEnabled() bool {
	return c.ValkeyHost != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList parses a comma separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
