// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package client is the consumer side of the oracle wire contract: a thin
// HTTP client, a request-lifecycle controller, and the chart projector that
// turns solve results into renderable series.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/AleutianAI/SatOracle/services/oracle/datatypes"
	"github.com/AleutianAI/SatOracle/services/oracle/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("satoracle.oracle.client") // Specific tracer name

// DefaultTimeout bounds one round trip to the solving service. Enumeration
// is CPU-bound on the server, so the bound is generous.
const DefaultTimeout = 60 * time.Second

// SolverClient is the boundary to the solving service.
type SolverClient interface {
	// Solve posts an expression and returns the decoded result.
	Solve(ctx context.Context, expression string) (*datatypes.SolveResult, error)

	// Liveness probes the service root and returns its status message.
	Liveness(ctx context.Context) (string, error)
}

// APIError is a rejection response from the solving service.
//
// Detail carries the response body's detail string when one could be
// decoded; it is empty otherwise. Callers that show errors to users should
// prefer Detail and fall back to a generic message when it is empty.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("solver returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("solver returned status %d: %s", e.StatusCode, e.Detail)
}

// HTTPSolverClient talks to the oracle daemon over HTTP.
//
// # Description
//
// Implements SolverClient against the wire contract: POST {base}/solve with
// a JSON body for solving, GET {base}/ for liveness. Rejection statuses
// become *APIError values; transport and decode failures come back as
// wrapped plain errors.
//
// # Examples
//
//	c := client.NewHTTPSolverClient("http://localhost:8000")
//	result, err := c.Solve(ctx, "(A | B) & (~A | C)")
type HTTPSolverClient struct {
	httpClient *http.Client
	baseURL    string
}

var _ SolverClient = (*HTTPSolverClient)(nil)

// NewHTTPSolverClient creates a client for the service at baseURL. A
// trailing slash on baseURL is tolerated.
func NewHTTPSolverClient(baseURL string) *HTTPSolverClient {
	return &HTTPSolverClient{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Solve posts expression to the solving service and decodes the result.
//
// # Outputs
//
//   - *datatypes.SolveResult: Decoded payload on an acceptance status.
//   - error: *APIError on a rejection status; a wrapped error on transport
//     or decode failure.
func (c *HTTPSolverClient) Solve(ctx context.Context, expression string) (*datatypes.SolveResult, error) {
	ctx, span := tracer.Start(ctx, "HTTPSolverClient.Solve")
	defer span.End()
	span.SetAttributes(attribute.Int("solve.expression_length", len(expression)))

	solveURL := c.baseURL + "/solve"
	slog.Debug("Submitting expression to solver", "url", solveURL)

	reqBytes, err := json.Marshal(datatypes.SolveRequest{Expression: expression})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to marshal request")
		return nil, fmt.Errorf("failed to marshal solve request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, solveURL, bytes.NewBuffer(reqBytes))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create request")
		return nil, fmt.Errorf("failed to create solve request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	telemetry.InjectContext(ctx, req.Header)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("solve request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read response")
		return nil, fmt.Errorf("failed to read solve response: %w", err)
	}
	span.SetAttributes(attribute.Int("solve.status_code", resp.StatusCode))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: decodeDetail(respBytes)}
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, "solver rejected expression")
		return nil, apiErr
	}

	var result datatypes.SolveResult
	if err := json.Unmarshal(respBytes, &result); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode response")
		return nil, fmt.Errorf("failed to decode solve response: %w", err)
	}

	slog.Debug("Solve completed",
		"num_solutions", result.NumSolutions,
		"counts", len(result.Counts))
	return &result, nil
}

// Liveness probes the service root.
//
// # Outputs
//
//   - string: The service's liveness message.
//   - error: *APIError on a rejection status; a wrapped error otherwise.
func (c *HTTPSolverClient) Liveness(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "HTTPSolverClient.Liveness")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create request")
		return "", fmt.Errorf("failed to create liveness request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return "", fmt.Errorf("liveness request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read response")
		return "", fmt.Errorf("failed to read liveness response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: decodeDetail(respBytes)}
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, "liveness probe rejected")
		return "", apiErr
	}

	var liveness datatypes.LivenessResponse
	if err := json.Unmarshal(respBytes, &liveness); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode response")
		return "", fmt.Errorf("failed to decode liveness response: %w", err)
	}
	return liveness.Message, nil
}

// decodeDetail extracts the detail string from a rejection body. Bodies
// that are not the documented error shape yield "".
func decodeDetail(body []byte) string {
	var errResp datatypes.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return ""
	}
	return errResp.Detail
}
