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
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/AleutianAI/SatOracle/pkg/ux"
	"github.com/AleutianAI/SatOracle/services/oracle/client"
	"github.com/AleutianAI/SatOracle/services/oracle/datatypes"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// runSolveCommand performs a one-shot solve: expression from the argument
// list (or an interactive prompt), spinner while the server works, then
// the rendered result or the raw JSON payload.
func runSolveCommand(cmd *cobra.Command, args []string) {
	expression := strings.Join(args, " ")
	if strings.TrimSpace(expression) == "" {
		var err error
		expression, err = promptExpression()
		if err != nil {
			ux.Error(fmt.Sprintf("No expression to solve: %v", err))
			os.Exit(1)
		}
	}

	c := client.NewHTTPSolverClient(resolveServerURL())
	ctx, cancel := context.WithTimeout(context.Background(), client.DefaultTimeout)
	defer cancel()

	var result *datatypes.SolveResult
	err := ux.WithSpinner("Consulting the oracle", func() error {
		var solveErr error
		result, solveErr = c.Solve(ctx, expression)
		return solveErr
	})
	if err != nil {
		// WithSpinner already printed the failure line.
		ux.Tip("check that the oracle server is running: satoracle status")
		os.Exit(1)
	}

	if solveJSON {
		outputSolveJSON(result)
		return
	}
	fmt.Print(resultView(result))
}

// promptExpression asks for an expression interactively. Used when solve
// is invoked with no argument on a terminal.
func promptExpression() (string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return "", fmt.Errorf("an expression argument is required when stdin is not a terminal")
	}

	var expression string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Boolean expression").
				Description("Operators: & (and), | (or), ~ (not), parentheses").
				Placeholder("(A | B) & (~A | C)").
				Value(&expression),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	if strings.TrimSpace(expression) == "" {
		return "", fmt.Errorf("expression is empty")
	}
	return expression, nil
}

// =============================================================================
// OUTPUT FORMATTING
// =============================================================================

// outputSolveJSON prints the raw SolveResult for scripting.
func outputSolveJSON(result *datatypes.SolveResult) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
		os.Exit(1)
	}
}

// resultView renders a settled solve outcome: headline, satisfying
// assignments, the top measurement, and the measurement histogram. Both
// the TUI results region and the one-shot solve command use it.
//
// # Description
//
// A nil result or a result with no measurement counts renders the
// no-solution line instead of an empty chart. In machine personality the
// output is line-oriented tab-separated fields; the chart rows come from
// ux.RenderBarChart's machine format.
//
// # Inputs
//
//   - result: The decoded solve payload. May be nil.
//
// # Outputs
//
//   - string: The rendered block, ending with a newline.
func resultView(result *datatypes.SolveResult) string {
	var bars []ux.Bar
	if result != nil {
		bars = chartBars(client.ProjectChart(result))
	}
	machine := ux.GetPersonality().Level == ux.PersonalityMachine

	if result == nil || len(bars) == 0 {
		if machine {
			return ux.NoSolutionMessage + "\n"
		}
		return ux.Styles.Warning.Render(fmt.Sprintf("%s %s", ux.IconWarning, ux.NoSolutionMessage)) + "\n"
	}

	var b strings.Builder
	if machine {
		fmt.Fprintf(&b, "num_solutions\t%d\n", result.NumSolutions)
		for _, s := range result.ClassicalSolutions {
			fmt.Fprintf(&b, "solution\t%s\n", s)
		}
		if result.TopMeasurement != nil {
			fmt.Fprintf(&b, "top_measurement\t%s\n", *result.TopMeasurement)
		}
		b.WriteString(ux.RenderBarChart(bars, ux.DefaultChartWidth))
		b.WriteString("\n")
		return b.String()
	}

	if result.NumSolutions == 0 {
		b.WriteString(ux.Styles.Warning.Render(fmt.Sprintf("%s no solutions found", ux.IconWarning)))
	} else {
		b.WriteString(ux.Styles.Success.Render(fmt.Sprintf("%s %d solution(s) found", ux.IconSuccess, result.NumSolutions)))
	}
	b.WriteString("\n")
	for _, s := range result.ClassicalSolutions {
		fmt.Fprintf(&b, "  %s %s\n", ux.IconBullet, ux.Styles.Bold.Render(s))
	}
	if result.TopMeasurement != nil {
		b.WriteString(ux.Styles.Highlight.Render(fmt.Sprintf("%s top measurement: %s", ux.IconArrow, *result.TopMeasurement)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(ux.RenderBarChart(bars, ux.DefaultChartWidth))
	b.WriteString("\n")
	return b.String()
}

// chartBars converts projected chart bars into the neutral ux type.
func chartBars(bars []client.ChartBar) []ux.Bar {
	out := make([]ux.Bar, len(bars))
	for i, bar := range bars {
		out[i] = ux.Bar{Label: bar.Label, Value: bar.Value, Emphasized: bar.Emphasized}
	}
	return out
}
