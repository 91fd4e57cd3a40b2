// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package solver

import (
	"fmt"
	"math/rand"
	"time"
)

// Option configures an Engine created by New.
type Option func(e *Engine) error

// WithShots sets how many simulated measurement shots build the histogram.
func WithShots(shots int) Option {
	return func(e *Engine) error {
		if shots < 1 {
			return fmt.Errorf("shots must be positive, got %d", shots)
		}
		e.shots = shots
		return nil
	}
}

// WithSeed fixes the sampling source so histograms are reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) error {
		e.rng = rand.New(rand.NewSource(seed))
		return nil
	}
}

// WithMaxVariables bounds how many distinct variables one expression may
// use. Enumeration visits every satisfying assignment, so this caps the
// cost of a single request.
func WithMaxVariables(limit int) Option {
	return func(e *Engine) error {
		if limit < 1 {
			return fmt.Errorf("variable limit must be positive, got %d", limit)
		}
		e.maxVariables = limit
		return nil
	}
}

// WithOracleVariableLimit sets the largest variable count that still gets
// a simulated measurement histogram. Expressions above it solve normally
// but return empty counts.
func WithOracleVariableLimit(limit int) Option {
	return func(e *Engine) error {
		if limit < 1 {
			return fmt.Errorf("oracle variable limit must be positive, got %d", limit)
		}
		e.oracleVariableLimit = limit
		return nil
	}
}

// New creates an Engine with opts applied over the defaults.
//
// # Outputs
//
//   - *Engine: Ready to solve; safe for concurrent use.
//   - error: Non-nil when an option rejects its value.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		shots:               DefaultShots,
		maxVariables:        DefaultMaxVariables,
		oracleVariableLimit: DefaultOracleVariableLimit,
		rng:                 rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("solver option: %w", err)
		}
	}
	return e, nil
}
