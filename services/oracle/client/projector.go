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

import "github.com/AleutianAI/SatOracle/services/oracle/datatypes"

// ChartBar is one rendered category of a measurement histogram.
type ChartBar struct {
	Label      string
	Value      int
	Emphasized bool
}

// ProjectChart derives the chart series for a solve result.
//
// # Description
//
// Pure and stateless: identical input yields identical output, order
// included. One bar is emitted per counts entry in the histogram's own
// order, with Emphasized set on exactly the bar whose label equals the
// result's top measurement; an absent top measurement emphasizes nothing.
//
// A nil result or an empty histogram returns nil regardless of the other
// fields. Renderers translate that into an explicit "no solution found
// within search limits" indicator rather than an empty chart.
//
// # Inputs
//
//   - result: The last successful solve payload, or nil.
//
// # Outputs
//
//   - []ChartBar: Bars in histogram order, or nil.
func ProjectChart(result *datatypes.SolveResult) []ChartBar {
	if result == nil || len(result.Counts) == 0 {
		return nil
	}
	bars := make([]ChartBar, 0, len(result.Counts))
	for _, entry := range result.Counts {
		bars = append(bars, ChartBar{
			Label:      entry.Label,
			Value:      entry.Count,
			Emphasized: result.TopMeasurement != nil && entry.Label == *result.TopMeasurement,
		})
	}
	return bars
}
