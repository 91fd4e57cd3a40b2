// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"github.com/AleutianAI/SatOracle/services/oracle/handlers"
	"github.com/AleutianAI/SatOracle/services/oracle/telemetry"
	"github.com/AleutianAI/SatOracle/services/solver"
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the oracle's HTTP surface: liveness on /, solving
// on /solve, and Prometheus exposition on /metrics when that exporter is
// enabled.
func SetupRoutes(router *gin.Engine, engine *solver.Engine, metrics *telemetry.Metrics) {
	router.GET("/", handlers.HandleLiveness)
	router.POST("/solve", handlers.HandleSolve(engine, metrics))

	if handler := telemetry.MetricsHandler(); handler != nil {
		router.GET("/metrics", gin.WrapH(handler))
	}
}
