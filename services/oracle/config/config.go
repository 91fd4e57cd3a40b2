// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads and validates the SAT oracle daemon configuration.
//
// Configuration is resolved in three layers, later layers winning:
//
//  1. Built-in defaults (Default).
//  2. An optional YAML file named by the ORACLE_CONFIG environment variable.
//  3. ORACLE_* environment variables.
//
// The merged result is validated with go-playground/validator struct tags
// before use. A Watcher can re-read the YAML file on change for settings
// that are safe to hot-reload (currently the log level).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the environment variable holding the optional YAML
// config file path.
const EnvConfigFile = "ORACLE_CONFIG"

// configValidate is the validator instance for daemon configuration.
var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
}

// Config holds the SAT oracle daemon configuration.
//
// # Description
//
// Config centralizes all configuration for the oracle service. Values can
// be populated from environment variables, a YAML config file, or
// programmatically for testing.
//
// # Examples
//
//	// Minimal config (uses all defaults)
//	cfg := config.Default()
//
//	// Custom port and tighter solver limits
//	cfg := config.Default()
//	cfg.Port = 8080
//	cfg.MaxVariables = 12
type Config struct {
	// Port is the HTTP server port. Default: 8000.
	Port int `yaml:"port" validate:"required,gte=1,lte=65535"`

	// GinMode sets the Gin framework mode: "debug", "release", or "test".
	// Empty leaves Gin's own GIN_MODE handling in effect.
	GinMode string `yaml:"gin_mode" validate:"omitempty,oneof=debug release test"`

	// LogLevel is the slog level: "debug", "info", "warn", or "error".
	// This is the one setting the Watcher hot-reloads.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// Shots is the number of simulated measurement shots per solve.
	Shots int `yaml:"shots" validate:"required,gte=1"`

	// MaxVariables is the hard variable cap; expressions above it are
	// rejected with a solve error.
	MaxVariables int `yaml:"max_variables" validate:"required,gte=1"`

	// OracleVariableLimit is the measurement cutoff; expressions above it
	// still enumerate solutions but skip the histogram.
	OracleVariableLimit int `yaml:"oracle_variable_limit" validate:"required,gte=1"`

	// RateLimitRPS is the global request rate limit in requests per second.
	// Zero or negative disables rate limiting.
	RateLimitRPS float64 `yaml:"rate_limit_rps"`

	// RateLimitBurst is the rate limiter burst size.
	RateLimitBurst int `yaml:"rate_limit_burst" validate:"gte=0"`

	// AllowedOrigins lists CORS origins. Empty allows all origins, which
	// mirrors the development default of the original service.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the built-in daemon defaults.
func Default() Config {
	return Config{
		Port:                8000,
		LogLevel:            "info",
		Shots:               1024,
		MaxVariables:        16,
		OracleVariableLimit: 8,
		RateLimitRPS:        0,
		RateLimitBurst:      0,
	}
}

// Load resolves the daemon configuration from defaults, the optional YAML
// file named by ORACLE_CONFIG, and ORACLE_* environment variables.
//
// # Outputs
//
//   - Config: The merged, validated configuration.
//   - error: Non-nil if the file cannot be read or parsed, or if the merged
//     result fails validation.
func Load() (Config, error) {
	return LoadFrom(FilePath())
}

// FilePath returns the configured YAML file path, or "" when unset.
func FilePath() string {
	return os.Getenv(EnvConfigFile)
}

// LoadFrom is Load with an explicit file path. An empty path skips the
// file layer entirely.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// applyEnvOverrides layers ORACLE_* environment variables over cfg.
func applyEnvOverrides(cfg *Config) {
	cfg.Port = getEnvInt("ORACLE_PORT", cfg.Port)
	cfg.GinMode = getEnvString("ORACLE_GIN_MODE", cfg.GinMode)
	cfg.LogLevel = getEnvString("ORACLE_LOG_LEVEL", cfg.LogLevel)
	cfg.Shots = getEnvInt("ORACLE_SHOTS", cfg.Shots)
	cfg.MaxVariables = getEnvInt("ORACLE_MAX_VARIABLES", cfg.MaxVariables)
	cfg.OracleVariableLimit = getEnvInt("ORACLE_VARIABLE_LIMIT", cfg.OracleVariableLimit)
	cfg.RateLimitRPS = getEnvFloat("ORACLE_RATE_LIMIT_RPS", cfg.RateLimitRPS)
	cfg.RateLimitBurst = getEnvInt("ORACLE_RATE_LIMIT_BURST", cfg.RateLimitBurst)

	if origins := os.Getenv("ORACLE_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitOrigins(origins)
	}
}

// splitOrigins parses a comma-separated origin list, dropping empties.
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// getEnvString returns the environment variable value or a default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat returns the environment variable as float64 or a default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
