// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package client

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/AleutianAI/SatOracle/services/oracle/datatypes"
)

// RequestState is the lifecycle state of the controller's request slot.
type RequestState string

const (
	StateIdle      RequestState = "idle"
	StatePending   RequestState = "pending"
	StateSucceeded RequestState = "succeeded"
	StateFailed    RequestState = "failed"
)

// FallbackErrorMessage is stored when a failure carries no detail of its
// own: transport errors, unparsable bodies, and rejections without a
// detail field. It is never empty.
const FallbackErrorMessage = "solve request failed"

// Snapshot is one consistent view of the controller: the expression, the
// lifecycle state, and the mutually exclusive result and error fields.
// Result is non-nil only in StateSucceeded; ErrorMessage is non-empty only
// in StateFailed.
type Snapshot struct {
	Expression   string
	State        RequestState
	Result       *datatypes.SolveResult
	ErrorMessage string
}

// Controller owns the expression text and drives at most one solve call
// at a time.
//
// # Description
//
// The controller is the request-lifecycle state machine behind the UI:
// idle until the first submission, pending while exactly one call is in
// flight, then succeeded or failed. Submitting clears the previous result
// and error before the call is issued, stores a successful payload exactly
// as received, and normalizes every failure into a single user-facing
// message. Submissions while pending are rejected, so no second call can
// ever be outstanding.
//
// All methods are safe for concurrent use; a TUI event loop and the
// settlement goroutine may touch the controller at the same time.
//
// # Examples
//
//	ctrl := client.NewController(client.NewHTTPSolverClient(baseURL))
//	ctrl.SetExpression("(A | B) & (~A | C)")
//	done, ok := ctrl.Submit(ctx)
//	if ok {
//		snapshot := <-done
//		...
//	}
type Controller struct {
	client SolverClient

	mu         sync.Mutex
	expression string
	state      RequestState
	result     *datatypes.SolveResult
	errMessage string
}

// NewController creates an idle controller submitting through c.
func NewController(c SolverClient) *Controller {
	return &Controller{client: c, state: StateIdle}
}

// SetExpression stores text verbatim. It never validates, never trims and
// never touches the request state, even while a call is pending.
func (c *Controller) SetExpression(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expression = text
}

// Expression returns the current expression text.
func (c *Controller) Expression() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expression
}

// State returns the current lifecycle state.
func (c *Controller) State() RequestState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns a consistent view of all controller fields.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Submit issues the current expression to the solving service.
//
// # Description
//
// No-op while a call is pending: returns (nil, false) and changes nothing.
// Otherwise it clears the previous error and result, moves to
// StatePending, and issues exactly one solve call carrying the expression
// verbatim — an empty expression included, since the remote service is the
// sole validation authority. The returned channel is buffered and receives
// the settled snapshot once; the caller may drop it without leaking.
//
// # Inputs
//
//   - ctx: Context governing the network call.
//
// # Outputs
//
//   - <-chan Snapshot: Receives the snapshot taken after settlement.
//   - bool: False when the submission was rejected because one is pending.
func (c *Controller) Submit(ctx context.Context) (<-chan Snapshot, bool) {
	c.mu.Lock()
	if c.state == StatePending {
		c.mu.Unlock()
		return nil, false
	}
	c.errMessage = ""
	c.result = nil
	c.state = StatePending
	expression := c.expression
	c.mu.Unlock()

	slog.Debug("Submitting expression", "length", len(expression))

	done := make(chan Snapshot, 1)
	go func() {
		result, err := c.client.Solve(ctx, expression)
		done <- c.settle(result, err)
	}()
	return done, true
}

// settle applies the single terminal transition for a submission and
// returns the resulting snapshot.
func (c *Controller) settle(result *datatypes.SolveResult, err error) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case err != nil:
		c.state = StateFailed
		c.result = nil
		c.errMessage = failureMessage(err)
		slog.Debug("Solve failed", "error", err)
	case result == nil:
		// A nil payload with a nil error is a misbehaving client; treat
		// it like a transport failure instead of storing nothing.
		c.state = StateFailed
		c.result = nil
		c.errMessage = FallbackErrorMessage
	default:
		c.state = StateSucceeded
		c.result = result
		c.errMessage = ""
		slog.Debug("Solve succeeded", "num_solutions", result.NumSolutions)
	}
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Expression:   c.expression,
		State:        c.state,
		Result:       c.result,
		ErrorMessage: c.errMessage,
	}
}

// failureMessage normalizes a solve failure into the user-facing message:
// the service's detail string when present and non-empty, else the
// fallback constant.
func failureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return FallbackErrorMessage
}
