// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func TestNewMetrics(t *testing.T) {
	// Initialize telemetry with prometheus exporter
	cfg := DefaultConfig()
	cfg.TraceExporter = "none"
	cfg.MetricExporter = "prometheus"

	shutdown, err := Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer shutdown(context.Background())

	meter := otel.Meter("test_metrics")
	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	// Verify all metrics are created
	if metrics.SolveRequestsTotal == nil {
		t.Error("SolveRequestsTotal is nil")
	}
	if metrics.SolveDuration == nil {
		t.Error("SolveDuration is nil")
	}
	if metrics.ActiveSolves == nil {
		t.Error("ActiveSolves is nil")
	}
	if metrics.SolveSolutions == nil {
		t.Error("SolveSolutions is nil")
	}
	if metrics.EnumerationDuration == nil {
		t.Error("EnumerationDuration is nil")
	}
	if metrics.ErrorsTotal == nil {
		t.Error("ErrorsTotal is nil")
	}
}

func TestMetrics_RecordSolveMetrics(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = "none"
	cfg.MetricExporter = "prometheus"

	shutdown, err := Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer shutdown(context.Background())

	meter := otel.Meter("test_solve_metrics")
	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String("status", "success"),
	)

	// Should not panic
	metrics.SolveRequestsTotal.Add(ctx, 1, attrs)
	metrics.SolveDuration.Record(ctx, 0.123, attrs)
	metrics.ActiveSolves.Add(ctx, 1)
	metrics.ActiveSolves.Add(ctx, -1)
	metrics.SolveSolutions.Record(ctx, 3)
	metrics.EnumerationDuration.Record(ctx, 0.004)
}

func TestMetrics_RecordErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = "none"
	cfg.MetricExporter = "prometheus"

	shutdown, err := Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer shutdown(context.Background())

	meter := otel.Meter("test_errors")
	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	ctx := context.Background()

	metrics.ErrorsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", "parse_error"),
	))
}
