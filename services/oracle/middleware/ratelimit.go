// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package middleware

import (
	"net/http"

	"github.com/AleutianAI/SatOracle/services/oracle/datatypes"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// =============================================================================
// Rate Limit Middleware
// =============================================================================

// RateLimit creates a Gin middleware enforcing a global request budget.
//
// # Description
//
// Uses a token-bucket limiter shared across all requests. Requests that
// arrive with the bucket empty are rejected immediately with
// 429 {"detail": "rate limit exceeded"} rather than queued; solve calls
// are CPU-bound, so shedding load beats buffering it.
//
// An rps of zero or less disables limiting and returns a pass-through
// middleware.
//
// # Inputs
//
//   - rps: Sustained requests per second across all callers.
//   - burst: Bucket size. Values below 1 are raised to 1 so a positive
//     rps always admits traffic.
//
// # Outputs
//
//   - gin.HandlerFunc: Middleware function ready for use with Gin.
//
// # Examples
//
//	router.Use(middleware.RateLimit(50, 100))
//
// # Limitations
//
//   - The budget is global, not per-client; a chatty client can starve
//     others. Per-client budgets need an upstream gateway.
//
// # Thread Safety
//
// Thread-safe. rate.Limiter is safe for concurrent use.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	if burst < 1 {
		burst = 1
	}

	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, datatypes.ErrorResponse{
				Detail: "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
