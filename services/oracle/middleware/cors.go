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
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// =============================================================================
// CORS Middleware
// =============================================================================

// CORS creates a Gin middleware handling cross-origin requests.
//
// # Description
//
// Configures gin-contrib/cors for the oracle's browser consumers. With no
// origins configured all origins are allowed, matching the wide-open
// development posture of the original service; production deployments
// should list their frontends explicitly.
//
// Credentials stay disabled: the API is unauthenticated, and a wildcard
// origin with credentials is forbidden by the CORS spec anyway.
//
// # Inputs
//
//   - allowedOrigins: Origins permitted to call the API. Empty allows all.
//
// # Outputs
//
//   - gin.HandlerFunc: Middleware function ready for use with Gin.
//
// # Examples
//
//	router.Use(middleware.CORS(nil)) // development: allow everything
//	router.Use(middleware.CORS([]string{"https://oracle.example.com"}))
//
// # Thread Safety
//
// Thread-safe. The returned middleware can be used concurrently.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", HeaderRequestID}
	cfg.ExposeHeaders = []string{HeaderRequestID}
	cfg.MaxAge = 12 * time.Hour

	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}

	return cors.New(cfg)
}
