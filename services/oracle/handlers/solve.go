// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/AleutianAI/SatOracle/services/oracle/datatypes"
	"github.com/AleutianAI/SatOracle/services/oracle/middleware"
	"github.com/AleutianAI/SatOracle/services/oracle/telemetry"
	"github.com/AleutianAI/SatOracle/services/solver"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"
)

var solveTracer = otel.Tracer("satoracle.oracle.handlers")

// HandleSolve returns the POST /solve handler.
//
// # Description
//
// Parses the request body, runs the engine, and writes either the solve
// result or an ErrorResponse whose detail clients surface verbatim.
// Concurrent requests for the same expression collapse into one engine
// run and share its outcome.
//
// # Inputs
//
//   - engine: Solver engine. Required.
//   - metrics: Instrument set for the solve path. Required.
func HandleSolve(engine *solver.Engine, metrics *telemetry.Metrics) gin.HandlerFunc {
	var group singleflight.Group
	return func(c *gin.Context) {
		ctx, span := solveTracer.Start(c.Request.Context(), "HandleSolve")
		defer span.End()

		logger := telemetry.LoggerWithTrace(ctx, slog.Default())
		if id := middleware.GetRequestID(c); id != "" {
			logger = logger.With("request_id", id)
		}

		var req datatypes.SolveRequest
		if err := c.BindJSON(&req); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.Error("Failed to parse the solve request", "error", err)
			metrics.ErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("code", "bad_request")))
			c.JSON(http.StatusBadRequest, datatypes.ErrorResponse{Detail: "invalid request body"})
			return
		}
		span.SetAttributes(attribute.Int("solve.expression_length", len(req.Expression)))

		metrics.ActiveSolves.Add(ctx, 1)
		defer metrics.ActiveSolves.Add(ctx, -1)

		start := time.Now()
		resultI, err, shared := group.Do(req.Expression, func() (any, error) {
			return engine.Solve(ctx, req.Expression)
		})
		elapsed := time.Since(start)
		span.SetAttributes(attribute.Bool("solve.shared", shared))

		if err != nil {
			code := errorCode(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.Error("Solve failed", "error", err, "code", code)
			metrics.SolveRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "error")))
			metrics.SolveDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("status", "error")))
			metrics.ErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("code", code)))
			c.JSON(http.StatusBadRequest, datatypes.ErrorResponse{Detail: err.Error()})
			return
		}

		result, ok := resultI.(*solver.Result)
		if !ok {
			err := fmt.Errorf("unexpected type from singleflight group: got %T", resultI)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.Error("Solve failed", "error", err)
			metrics.ErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("code", "internal")))
			c.JSON(http.StatusInternalServerError, datatypes.ErrorResponse{Detail: "internal server error"})
			return
		}

		span.SetAttributes(attribute.Int("solve.solutions", result.NumSolutions))
		metrics.SolveRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "success")))
		metrics.SolveDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("status", "success")))
		metrics.SolveSolutions.Record(ctx, int64(result.NumSolutions))
		metrics.EnumerationDuration.Record(ctx, result.EnumerationTime.Seconds())

		logger.Debug("Solved expression",
			"variables", len(result.Variables),
			"solutions", result.NumSolutions,
			"duration", elapsed,
			"shared", shared)

		c.JSON(http.StatusOK, toSolveResult(result))
	}
}

// toSolveResult converts an engine result into the wire shape. Counts is
// never null on the wire: a solve without a histogram reports {}.
func toSolveResult(result *solver.Result) datatypes.SolveResult {
	resp := datatypes.SolveResult{
		ClassicalSolutions: result.Assignments,
		NumSolutions:       result.NumSolutions,
		Counts:             result.Counts,
	}
	if resp.Counts == nil {
		resp.Counts = datatypes.Counts{}
	}
	if result.TopMeasurement != "" {
		resp.TopMeasurement = &result.TopMeasurement
	}
	return resp
}

// errorCode buckets engine errors for the error counter.
func errorCode(err error) string {
	switch {
	case errors.Is(err, solver.ErrParse):
		return "parse_error"
	case errors.Is(err, solver.ErrNoVariables):
		return "no_variables"
	case errors.Is(err, solver.ErrTooManyVariables):
		return "too_many_variables"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal"
	}
}
