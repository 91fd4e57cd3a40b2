// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// writeConfigFile writes YAML content to a temp config file and returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oracle.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Port != 8000 {
		t.Errorf("Port = %d, want %d", cfg.Port, 8000)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.Shots != 1024 {
		t.Errorf("Shots = %d, want %d", cfg.Shots, 1024)
	}
	if cfg.MaxVariables != 16 {
		t.Errorf("MaxVariables = %d, want %d", cfg.MaxVariables, 16)
	}
	if cfg.OracleVariableLimit != 8 {
		t.Errorf("OracleVariableLimit = %d, want %d", cfg.OracleVariableLimit, 8)
	}
	if cfg.RateLimitRPS > 0 {
		t.Errorf("RateLimitRPS = %v, want rate limiting disabled by default", cfg.RateLimitRPS)
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoadFrom_EmptyPath(t *testing.T) {
	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom(\"\") error = %v", err)
	}

	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("LoadFrom(\"\") = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadFrom_File(t *testing.T) {
	path := writeConfigFile(t, `
port: 9000
log_level: debug
shots: 256
allowed_origins:
  - http://localhost:3000
  - http://localhost:5173
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want %d", cfg.Port, 9000)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.Shots != 256 {
		t.Errorf("Shots = %d, want %d", cfg.Shots, 256)
	}
	// Keys the file omits keep their defaults
	if cfg.MaxVariables != 16 {
		t.Errorf("MaxVariables = %d, want default %d", cfg.MaxVariables, 16)
	}
	wantOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, wantOrigins) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, wantOrigins)
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "port: 9000\n")
	t.Setenv("ORACLE_PORT", "9100")
	t.Setenv("ORACLE_LOG_LEVEL", "warn")
	t.Setenv("ORACLE_RATE_LIMIT_RPS", "25.5")
	t.Setenv("ORACLE_RATE_LIMIT_BURST", "50")
	t.Setenv("ORACLE_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Port != 9100 {
		t.Errorf("Port = %d, want env override %d", cfg.Port, 9100)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
	if cfg.RateLimitRPS != 25.5 {
		t.Errorf("RateLimitRPS = %v, want %v", cfg.RateLimitRPS, 25.5)
	}
	if cfg.RateLimitBurst != 50 {
		t.Errorf("RateLimitBurst = %d, want %d", cfg.RateLimitBurst, 50)
	}
	wantOrigins := []string{"http://a.test", "http://b.test"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, wantOrigins) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, wantOrigins)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("LoadFrom() with missing file should fail")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("error = %v, want read failure", err)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "port: [not an int\n")

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("LoadFrom() with invalid YAML should fail")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("error = %v, want parse failure", err)
	}
}

func TestLoadFrom_ValidationFailure(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"port out of range", "port: 70000\n"},
		{"bad log level", "log_level: verbose\n"},
		{"zero shots", "shots: 0\n"},
		{"negative burst", "rate_limit_burst: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)

			_, err := LoadFrom(path)
			if err == nil {
				t.Fatal("LoadFrom() should fail validation")
			}
			if !strings.Contains(err.Error(), "invalid config") {
				t.Errorf("error = %v, want validation failure", err)
			}
		})
	}
}

func TestLoad_UsesEnvConfigPath(t *testing.T) {
	path := writeConfigFile(t, "port: 9000\n")
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want %d", cfg.Port, 9000)
	}
}

func TestSplitOrigins(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single", "http://a.test", []string{"http://a.test"}},
		{"multiple with spaces", "http://a.test, http://b.test", []string{"http://a.test", "http://b.test"}},
		{"trailing comma", "http://a.test,", []string{"http://a.test"}},
		{"only commas", ",,", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitOrigins(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitOrigins(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
