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
	"strings"
	"testing"
)

// =============================================================================
// RenderBarChart Tests
// =============================================================================

func TestRenderBarChart_Empty(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityFull)

	result := RenderBarChart(nil, 0)
	if !strings.Contains(result, NoSolutionMessage) {
		t.Errorf("expected no-solution message, got %q", result)
	}
}

func TestRenderBarChart_Empty_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	result := RenderBarChart([]Bar{}, 0)
	if result != NoSolutionMessage {
		t.Errorf("expected %q, got %q", NoSolutionMessage, result)
	}
}

func TestRenderBarChart_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	bars := []Bar{
		{Label: "01", Value: 24, Emphasized: false},
		{Label: "11", Value: 1000, Emphasized: true},
	}
	result := RenderBarChart(bars, 0)

	lines := strings.Split(result, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), result)
	}
	if lines[0] != "01\t24" {
		t.Errorf("expected '01\\t24', got %q", lines[0])
	}
	if lines[1] != "11\t1000\t*" {
		t.Errorf("expected emphasized marker on second line, got %q", lines[1])
	}
}

func TestRenderBarChart_ScalesToMax(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityStandard)

	bars := []Bar{
		{Label: "00", Value: 512},
		{Label: "11", Value: 1024},
	}
	result := RenderBarChart(bars, 10)

	lines := strings.Split(result, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if got := strings.Count(lines[0], string(chartFilledCell)); got != 5 {
		t.Errorf("expected 5 filled cells on half-max bar, got %d", got)
	}
	if got := strings.Count(lines[1], string(chartFilledCell)); got != 10 {
		t.Errorf("expected 10 filled cells on max bar, got %d", got)
	}
}

func TestRenderBarChart_EmphasizedMarker(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityStandard)

	bars := []Bar{
		{Label: "00", Value: 10},
		{Label: "11", Value: 20, Emphasized: true},
	}
	result := RenderBarChart(bars, 10)

	lines := strings.Split(result, "\n")
	if strings.Contains(lines[0], string(IconArrow)) {
		t.Errorf("unemphasized bar should not carry the arrow: %q", lines[0])
	}
	if !strings.Contains(lines[1], string(IconArrow)) {
		t.Errorf("emphasized bar should carry the arrow: %q", lines[1])
	}
}

func TestRenderBarChart_NonzeroAlwaysVisible(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityStandard)

	// 1 of 1024 rounds to zero cells; it must still draw one
	bars := []Bar{
		{Label: "01", Value: 1},
		{Label: "11", Value: 1024},
	}
	result := RenderBarChart(bars, 10)

	lines := strings.Split(result, "\n")
	if got := strings.Count(lines[0], string(chartFilledCell)); got != 1 {
		t.Errorf("expected 1 filled cell on rare bar, got %d", got)
	}
}

func TestRenderBarChart_AllZero(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityStandard)

	bars := []Bar{
		{Label: "00", Value: 0},
		{Label: "11", Value: 0},
	}
	result := RenderBarChart(bars, 10)

	if strings.Contains(result, string(chartFilledCell)) {
		t.Errorf("zero-valued bars should draw no filled cells: %q", result)
	}
	if !strings.Contains(result, "00") || !strings.Contains(result, "11") {
		t.Errorf("labels should still render: %q", result)
	}
}

func TestRenderBarChart_DefaultWidth(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityStandard)

	bars := []Bar{{Label: "1", Value: 100}}
	result := RenderBarChart(bars, 0)

	if got := strings.Count(result, string(chartFilledCell)); got != DefaultChartWidth {
		t.Errorf("expected %d filled cells at default width, got %d", DefaultChartWidth, got)
	}
}

func TestRenderBarChart_ValuesShown(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityStandard)

	bars := []Bar{
		{Label: "00", Value: 24},
		{Label: "11", Value: 1000, Emphasized: true},
	}
	result := RenderBarChart(bars, 10)

	if !strings.Contains(result, "24") {
		t.Errorf("expected count 24 in output: %q", result)
	}
	if !strings.Contains(result, "1000") {
		t.Errorf("expected count 1000 in output: %q", result)
	}
}

func TestRenderBarChart_PreservesOrder(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	bars := []Bar{
		{Label: "10", Value: 3},
		{Label: "01", Value: 2},
		{Label: "00", Value: 1},
	}
	result := RenderBarChart(bars, 0)

	lines := strings.Split(result, "\n")
	want := []string{"10", "01", "00"}
	for i, label := range want {
		if !strings.HasPrefix(lines[i], label) {
			t.Errorf("line %d: expected label %q, got %q", i, label, lines[i])
		}
	}
}
