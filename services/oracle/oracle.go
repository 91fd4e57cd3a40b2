// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package oracle provides the SAT oracle HTTP service.
//
// This package contains the main service type that ties the solver engine
// to its HTTP surface: routing, middleware (tracing, request ids, CORS,
// rate limiting), metrics, and the server lifecycle.
//
// # Usage
//
//	engine, err := solver.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svc, err := oracle.New(config.Default(), engine)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(svc.Run())
//
// Telemetry is global: call telemetry.Init before New so traces export and
// the /metrics route is registered.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/AleutianAI/SatOracle/services/oracle/config"
	"github.com/AleutianAI/SatOracle/services/oracle/middleware"
	"github.com/AleutianAI/SatOracle/services/oracle/routes"
	"github.com/AleutianAI/SatOracle/services/oracle/telemetry"
	"github.com/AleutianAI/SatOracle/services/solver"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long Run waits for in-flight requests after a
// termination signal.
const shutdownTimeout = 10 * time.Second

// =============================================================================
// Interface Definition
// =============================================================================

// Service defines the contract for the oracle service.
//
// # Description
//
// Service abstracts the oracle lifecycle, enabling testing and alternative
// implementations. The interface follows the minimal surface area
// principle - only essential lifecycle methods are exposed.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use. Run() blocks and should
// only be called once per instance.
//
// # Assumptions
//
//   - Service is fully initialized before Run() is called
//   - Run() is called at most once per Service instance
type Service interface {
	// Run starts the HTTP server and blocks until shutdown or error.
	//
	// # Description
	//
	// Starts the HTTP server on the configured port and blocks until a
	// fatal server error or a SIGINT/SIGTERM, after which in-flight
	// requests get a bounded drain period.
	//
	// # Outputs
	//
	//   - error: Non-nil if the server fails to start or shutdown does
	//     not complete in time. Nil on a clean signal-driven exit.
	//
	// # Examples
	//
	//	if err := svc.Run(); err != nil {
	//	    log.Fatalf("server error: %v", err)
	//	}
	Run() error

	// Router returns the underlying Gin engine for testing.
	//
	// # Description
	//
	// Provides access to the configured Gin router, primarily for
	// integration testing where direct HTTP calls are needed.
	//
	// # Outputs
	//
	//   - *gin.Engine: The configured router with all routes registered
	//
	// # Limitations
	//
	//   - Should not be used to modify routes after construction
	Router() *gin.Engine
}

// =============================================================================
// Implementation
// =============================================================================

// service implements Service for production use.
//
// # Description
//
// service coordinates:
//   - HTTP routing via Gin
//   - the solver engine behind POST /solve
//   - OpenTelemetry tracing and metrics
//   - request ids, CORS and rate limiting middleware
//
// # Thread Safety
//
// Thread-safe after construction. All fields are read-only after New()
// returns.
type service struct {
	config  config.Config
	engine  *solver.Engine
	metrics *telemetry.Metrics
	router  *gin.Engine
}

// =============================================================================
// Constructor
// =============================================================================

// New creates a new oracle Service with the given configuration.
//
// # Description
//
// New initializes all service components:
//  1. Applies default configuration for missing values
//  2. Registers the solve-path metric instruments
//  3. Sets up the HTTP router with middleware and routes
//
// # Inputs
//
//   - cfg: Service configuration. Zero values use defaults.
//   - engine: Solver engine backing POST /solve. Required.
//
// # Outputs
//
//   - Service: Ready-to-run oracle service
//   - error: Non-nil if initialization fails
//
// # Examples
//
//	engine, _ := solver.New(solver.WithShots(cfg.Shots))
//	svc, err := oracle.New(cfg, engine)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(svc.Run())
func New(cfg config.Config, engine *solver.Engine) (Service, error) {
	if engine == nil {
		return nil, errors.New("engine must not be nil")
	}

	s := &service{
		config: applyConfigDefaults(cfg),
		engine: engine,
	}

	metrics, err := telemetry.NewMetrics(otel.Meter("satoracle.oracle"))
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}
	s.metrics = metrics

	s.initRouter()

	return s, nil
}

// =============================================================================
// Service Interface Methods
// =============================================================================

// Run starts the HTTP server and blocks until shutdown or error.
//
// # Description
//
// Serves the router on the configured port. On SIGINT or SIGTERM the
// server stops accepting connections and drains in-flight requests for up
// to shutdownTimeout before returning.
//
// # Outputs
//
//   - error: Non-nil if the listener fails or the drain times out.
func (s *service) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.router,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting oracle server", "port", s.config.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("Shutting down oracle server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Router returns the underlying Gin engine for testing.
func (s *service) Router() *gin.Engine {
	return s.router
}

// =============================================================================
// Private Initialization Methods
// =============================================================================

// applyConfigDefaults fills in missing configuration values.
func applyConfigDefaults(cfg config.Config) config.Config {
	defaults := config.Default()
	if cfg.Port == 0 {
		cfg.Port = defaults.Port
	}
	return cfg
}

// initRouter sets up the Gin HTTP router with middleware and all routes.
//
// # Description
//
// Creates the Gin engine and applies the middleware chain: otelgin
// tracing, request ids, CORS, then rate limiting, so rejected requests
// still carry CORS headers and a request id.
func (s *service) initRouter() {
	if s.config.GinMode != "" {
		gin.SetMode(s.config.GinMode)
	}

	s.router = gin.Default()
	s.router.Use(otelgin.Middleware("oracle-service"))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS(s.config.AllowedOrigins))
	s.router.Use(middleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))

	routes.SetupRoutes(s.router, s.engine, s.metrics)
}

// =============================================================================
// Compile-time Interface Compliance
// =============================================================================

var _ Service = (*service)(nil)
