// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command oracle starts the SatOracle SAT-solving HTTP server.
//
// This is the main entry point for the containerized oracle service.
// It reads configuration from environment variables (plus an optional
// YAML file) and starts the server.
//
// # Environment Variables
//
//   - ORACLE_PORT: HTTP server port (default: 8000)
//   - ORACLE_CONFIG: path to a YAML config file (optional, hot-reloaded)
//   - ORACLE_LOG_LEVEL: minimum log level - debug, info, warn, error (default: info)
//   - ORACLE_LOG_DIR: directory for JSON log files (optional)
//   - ORACLE_SHOTS: simulated measurement shots per solve (default: 1024)
//   - ORACLE_MAX_VARIABLES: hard variable cap per expression (default: 16)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OpenTelemetry collector (default: localhost:4317)
//
// # Usage
//
//	# Build
//	go build -o oracle ./cmd/oracle
//
//	# Run
//	./oracle
//
//	# Or via container
//	podman-compose up oracle
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/AleutianAI/SatOracle/pkg/logging"
	"github.com/AleutianAI/SatOracle/services/oracle"
	"github.com/AleutianAI/SatOracle/services/oracle/config"
	"github.com/AleutianAI/SatOracle/services/oracle/telemetry"
	"github.com/AleutianAI/SatOracle/services/solver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Setup structured logging. Validation already constrained the level
	// name, so the parse cannot fail here.
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.New(logging.Config{
		Level:   level,
		LogDir:  os.Getenv("ORACLE_LOG_DIR"),
		Service: "oracle",
		JSON:    true,
	})
	defer logger.Close()
	slog.SetDefault(logger.Slog())

	ctx := context.Background()
	shutdown, err := telemetry.Init(ctx, telemetry.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Warn("Telemetry shutdown error", "error", err)
		}
	}()

	engine, err := solver.New(
		solver.WithShots(cfg.Shots),
		solver.WithMaxVariables(cfg.MaxVariables),
		solver.WithOracleVariableLimit(cfg.OracleVariableLimit),
	)
	if err != nil {
		log.Fatalf("Failed to configure solver engine: %v", err)
	}

	// Hot-reload the log level when a config file is in play
	if path := config.FilePath(); path != "" {
		watcher, err := config.NewWatcher(path, func(updated config.Config) {
			newLevel, err := logging.ParseLevel(updated.LogLevel)
			if err != nil {
				slog.Warn("Ignoring invalid log level from config reload",
					"log_level", updated.LogLevel)
				return
			}
			logger.SetLevel(newLevel)
		})
		if err != nil {
			slog.Warn("Config watcher unavailable", "error", err)
		} else {
			watcherCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			defer watcher.Stop()
			go watcher.Start(watcherCtx)
		}
	}

	slog.Info("Starting SAT oracle server",
		"port", cfg.Port,
		"shots", cfg.Shots,
		"max_variables", cfg.MaxVariables,
	)

	svc, err := oracle.New(cfg, engine)
	if err != nil {
		log.Fatalf("Failed to create oracle service: %v", err)
	}

	// Run the server (blocks until shutdown)
	if err := svc.Run(); err != nil {
		log.Fatalf("Oracle server error: %v", err)
	}
}
