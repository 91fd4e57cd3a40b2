// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"fmt"
	"strings"
)

// DefaultChartWidth is the bar width used when the caller passes zero.
const DefaultChartWidth = 40

// NoSolutionMessage is rendered in place of an empty measurement chart.
const NoSolutionMessage = "no solution found within search limits"

const (
	chartFilledCell = '█'
	chartEmptyCell  = '░'
)

// Bar is one category of a measurement histogram.
type Bar struct {
	// Label is the category name, typically a measurement bitstring.
	Label string

	// Value is the category count.
	Value int

	// Emphasized marks the bar to call out, typically the top measurement.
	Emphasized bool
}

// RenderBarChart renders a horizontal bar chart of measurement counts.
//
// # Description
//
// Bars are drawn in input order and scaled against the largest value, with
// the emphasized bar highlighted and marked. Nonzero values always draw at
// least one filled cell so rare measurements stay visible. An empty series
// renders the no-solution message instead of an empty chart.
//
// In machine personality the output is tab-separated `label<TAB>value`
// lines, with a trailing `*` column on the emphasized bar.
//
// # Inputs
//
//   - bars: Chart series, typically from a solve result projection.
//   - width: Cell width of the longest bar. Zero or negative selects
//     DefaultChartWidth.
//
// # Outputs
//
//   - string: The rendered chart, without a trailing newline.
func RenderBarChart(bars []Bar, width int) string {
	machine := GetPersonality().Level == PersonalityMachine

	if len(bars) == 0 {
		if machine {
			return NoSolutionMessage
		}
		return Styles.Muted.Render(NoSolutionMessage)
	}
	if width <= 0 {
		width = DefaultChartWidth
	}

	maxValue := 0
	labelWidth := 0
	for _, bar := range bars {
		if bar.Value > maxValue {
			maxValue = bar.Value
		}
		if len(bar.Label) > labelWidth {
			labelWidth = len(bar.Label)
		}
	}

	var b strings.Builder
	for i, bar := range bars {
		if i > 0 {
			b.WriteByte('\n')
		}

		if machine {
			fmt.Fprintf(&b, "%s\t%d", bar.Label, bar.Value)
			if bar.Emphasized {
				b.WriteString("\t*")
			}
			continue
		}

		filled := 0
		if maxValue > 0 {
			filled = bar.Value * width / maxValue
		}
		if bar.Value > 0 && filled == 0 {
			filled = 1
		}

		label := fmt.Sprintf("%*s", labelWidth, bar.Label)
		cells := repeatChar(chartFilledCell, filled) + repeatChar(chartEmptyCell, width-filled)
		if bar.Emphasized {
			fmt.Fprintf(&b, "%s %s %s %d",
				string(IconArrow),
				Styles.Highlight.Render(label),
				Styles.Highlight.Render(cells),
				bar.Value)
		} else {
			fmt.Fprintf(&b, "  %s %s %d",
				label,
				Styles.Subtitle.Render(cells),
				bar.Value)
		}
	}
	return b.String()
}

func repeatChar(c rune, n int) string {
	if n <= 0 {
		return ""
	}
	result := make([]rune, n)
	for i := range result {
		result[i] = c
	}
	return string(result)
}
