// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/AleutianAI/SatOracle/pkg/ux"
	"github.com/AleutianAI/SatOracle/services/oracle/client"
	"github.com/AleutianAI/SatOracle/services/oracle/datatypes"
)

// =============================================================================
// Test Helpers
// =============================================================================

// captureStdout redirects stdout while fn runs and returns what it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}
	return buf.String()
}

// asMachine switches the personality to machine mode for one test.
func asMachine(t *testing.T) {
	t.Helper()
	orig := ux.GetPersonality()
	t.Cleanup(func() { ux.SetPersonality(orig) })
	ux.SetPersonality(ux.Personality{Level: ux.PersonalityMachine})
}

func sampleResult() *datatypes.SolveResult {
	top := "10"
	return &datatypes.SolveResult{
		ClassicalSolutions: []string{"A=1,B=0", "A=1,B=1"},
		NumSolutions:       2,
		TopMeasurement:     &top,
		Counts: datatypes.Counts{
			{Label: "10", Count: 650},
			{Label: "01", Count: 374},
		},
	}
}

// =============================================================================
// resultView
// =============================================================================

func TestResultView_NilResult(t *testing.T) {
	view := resultView(nil)
	if !strings.Contains(view, ux.NoSolutionMessage) {
		t.Errorf("nil result should render the no-solution line, got:\n%s", view)
	}
}

func TestResultView_EmptyCounts(t *testing.T) {
	result := &datatypes.SolveResult{NumSolutions: 0, Counts: datatypes.Counts{}}

	view := resultView(result)
	if !strings.Contains(view, ux.NoSolutionMessage) {
		t.Errorf("empty counts should render the no-solution line, got:\n%s", view)
	}
	if strings.Contains(view, "solution(s) found") {
		t.Errorf("empty counts should not render a headline, got:\n%s", view)
	}
}

func TestResultView_Solutions(t *testing.T) {
	view := resultView(sampleResult())

	for _, want := range []string{
		"2 solution(s) found",
		"A=1,B=0",
		"A=1,B=1",
		"top measurement: 10",
		"650",
		"374",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestResultView_ZeroSolutionsWithCounts(t *testing.T) {
	// An unsatisfiable expression still measures something; the headline
	// flips to a warning but the histogram stays.
	result := &datatypes.SolveResult{
		NumSolutions: 0,
		Counts: datatypes.Counts{
			{Label: "00", Count: 260},
			{Label: "01", Count: 252},
		},
	}

	view := resultView(result)
	if !strings.Contains(view, "no solutions found") {
		t.Errorf("view missing the zero-solutions headline:\n%s", view)
	}
	if !strings.Contains(view, "260") {
		t.Errorf("view should still render the histogram:\n%s", view)
	}
}

func TestResultView_NoTopMeasurement(t *testing.T) {
	result := sampleResult()
	result.TopMeasurement = nil

	view := resultView(result)
	if strings.Contains(view, "top measurement") {
		t.Errorf("view should omit the top measurement line:\n%s", view)
	}
}

func TestResultView_MachineMode(t *testing.T) {
	asMachine(t)

	view := resultView(sampleResult())
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")

	want := []string{
		"num_solutions\t2",
		"solution\tA=1,B=0",
		"solution\tA=1,B=1",
		"top_measurement\t10",
		"10\t650\t*",
		"01\t374",
	}
	if len(lines) != len(want) {
		t.Fatalf("machine view has %d lines, want %d:\n%s", len(lines), len(want), view)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestResultView_MachineMode_NoSolution(t *testing.T) {
	asMachine(t)

	view := resultView(&datatypes.SolveResult{})
	if view != ux.NoSolutionMessage+"\n" {
		t.Errorf("machine no-solution view = %q, want %q", view, ux.NoSolutionMessage+"\n")
	}
}

// =============================================================================
// chartBars
// =============================================================================

func TestChartBars(t *testing.T) {
	projected := []client.ChartBar{
		{Label: "10", Value: 650, Emphasized: true},
		{Label: "01", Value: 374, Emphasized: false},
	}

	bars := chartBars(projected)
	if len(bars) != 2 {
		t.Fatalf("len(bars) = %d, want 2", len(bars))
	}
	if bars[0].Label != "10" || bars[0].Value != 650 || !bars[0].Emphasized {
		t.Errorf("bars[0] = %+v, want emphasized 10/650", bars[0])
	}
	if bars[1].Label != "01" || bars[1].Value != 374 || bars[1].Emphasized {
		t.Errorf("bars[1] = %+v, want plain 01/374", bars[1])
	}
}

func TestChartBars_Empty(t *testing.T) {
	if got := chartBars(nil); len(got) != 0 {
		t.Errorf("chartBars(nil) = %v, want empty", got)
	}
}

// =============================================================================
// outputSolveJSON
// =============================================================================

func TestOutputSolveJSON(t *testing.T) {
	result := sampleResult()

	out := captureStdout(t, func() {
		outputSolveJSON(result)
	})

	var decoded datatypes.SolveResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if decoded.NumSolutions != 2 {
		t.Errorf("num_solutions = %d, want 2", decoded.NumSolutions)
	}
	if decoded.TopMeasurement == nil || *decoded.TopMeasurement != "10" {
		t.Errorf("top_measurement = %v, want 10", decoded.TopMeasurement)
	}
	if len(decoded.Counts) != 2 || decoded.Counts[0].Label != "10" {
		t.Errorf("counts order not preserved: %+v", decoded.Counts)
	}
}
