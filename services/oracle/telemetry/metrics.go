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
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// Metrics contains pre-defined metrics for the SAT oracle service.
//
// Description:
//
//	Provides standard counters, histograms, and gauges for solve requests,
//	solver enumeration, and error tracking.
//	All metrics use the "oracle_" prefix for consistent naming.
//
// Thread Safety: Safe for concurrent use after creation.
type Metrics struct {
	// --- Solve Request Metrics ---

	// SolveRequestsTotal counts total solve requests by status.
	SolveRequestsTotal metric.Int64Counter

	// SolveDuration records end-to-end solve request duration in seconds.
	SolveDuration metric.Float64Histogram

	// ActiveSolves tracks currently in-flight solve requests.
	ActiveSolves metric.Int64UpDownCounter

	// --- Solver Metrics ---

	// SolveSolutions records the number of satisfying assignments found per solve.
	SolveSolutions metric.Int64Histogram

	// EnumerationDuration records SAT enumeration duration in seconds.
	EnumerationDuration metric.Float64Histogram

	// --- Error Metrics ---

	// ErrorsTotal counts total errors by code.
	ErrorsTotal metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
//
// Description:
//
//	Registers all pre-defined metrics with the provided meter.
//	Returns an error if any metric registration fails.
//
// Inputs:
//
//	meter - The OTel meter to use for metric registration.
//
// Outputs:
//
//	*Metrics - The metrics instance with all counters and histograms initialized.
//	error - Non-nil if metric registration fails.
//
// Example:
//
//	meter := otel.Meter("oracle")
//	metrics, err := telemetry.NewMetrics(meter)
//	if err != nil {
//	    return fmt.Errorf("create metrics: %w", err)
//	}
//	metrics.SolveRequestsTotal.Add(ctx, 1, ...)
//
// Thread Safety: Safe for concurrent use after creation.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	// --- Solve Request Metrics ---
	m.SolveRequestsTotal, err = meter.Int64Counter(
		"oracle_solve_requests_total",
		metric.WithDescription("Total solve requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create solve_requests_total: %w", err)
	}

	m.SolveDuration, err = meter.Float64Histogram(
		"oracle_solve_duration_seconds",
		metric.WithDescription("Solve request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		return nil, fmt.Errorf("create solve_duration: %w", err)
	}

	m.ActiveSolves, err = meter.Int64UpDownCounter(
		"oracle_active_solves",
		metric.WithDescription("Currently in-flight solve requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create active_solves: %w", err)
	}

	// --- Solver Metrics ---
	m.SolveSolutions, err = meter.Int64Histogram(
		"oracle_solve_solutions",
		metric.WithDescription("Satisfying assignments found per solve"),
		metric.WithUnit("{solution}"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 4, 8, 16, 32, 64, 128, 256),
	)
	if err != nil {
		return nil, fmt.Errorf("create solve_solutions: %w", err)
	}

	m.EnumerationDuration, err = meter.Float64Histogram(
		"oracle_enumeration_duration_seconds",
		metric.WithDescription("SAT enumeration duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1),
	)
	if err != nil {
		return nil, fmt.Errorf("create enumeration_duration: %w", err)
	}

	// --- Error Metrics ---
	m.ErrorsTotal, err = meter.Int64Counter(
		"oracle_errors_total",
		metric.WithDescription("Total errors by code"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create errors_total: %w", err)
	}

	return m, nil
}
