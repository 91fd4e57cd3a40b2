// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package middleware provides HTTP middleware for the oracle service.
//
// This package contains middleware for request identification, rate
// limiting, and CORS. All middleware uses the service's wire error shape
// ({"detail": "..."}) when rejecting a request.
//
// # Request Flow
//
//	Request
//	   │
//	   ▼
//	RequestID ── assigns or echoes X-Request-ID
//	   │
//	   ▼
//	CORS ── preflight handling and origin checks
//	   │
//	   ▼
//	RateLimit ── 429 {"detail": "rate limit exceeded"} when over budget
//	   │
//	   ▼
//	Handler (retrieves the id via GetRequestID)
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// =============================================================================
// Context Keys
// =============================================================================

// requestIDKey is the context key for storing the request id.
// Using a typed key prevents collisions with other context values.
const requestIDKey = "oracle_request_id"

// HeaderRequestID is the header carrying the request id in both directions.
const HeaderRequestID = "X-Request-ID"

// =============================================================================
// Context Helpers
// =============================================================================

// GetRequestID retrieves the request id from the Gin context.
//
// # Description
//
// Called by handlers to correlate log lines and error reports with a
// specific request. Returns "" if the RequestID middleware did not run.
//
// # Inputs
//
//   - c: Gin context. Must not be nil.
//
// # Outputs
//
//   - string: The request id, or "" when none was assigned.
//
// # Thread Safety
//
// Safe to call concurrently (Gin context is request-scoped).
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(requestIDKey); exists {
		if requestID, ok := id.(string); ok {
			return requestID
		}
	}
	return ""
}

// =============================================================================
// Request ID Middleware
// =============================================================================

// RequestID creates a Gin middleware that assigns each request an id.
//
// # Description
//
// Reuses the caller-provided X-Request-ID header when present so ids
// survive proxies and retries; otherwise generates a fresh UUID. The id is
// stored in the context for handlers and echoed back on the response.
//
// # Outputs
//
//   - gin.HandlerFunc: Middleware function ready for use with Gin.
//
// # Examples
//
//	router.Use(middleware.RequestID())
//
// # Thread Safety
//
// Thread-safe. The returned middleware can be used concurrently.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)

		c.Next()
	}
}
