// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package solver turns boolean expressions into satisfying assignments and
// a simulated Grover measurement histogram.
//
// The pipeline has three phases: parse the expression, enumerate every
// satisfying assignment with a SAT solver, then sample the analytic
// post-Grover measurement distribution to build a shot histogram. The
// histogram reproduces the observable behavior of a gate-level oracle
// simulation without one: after k Grover iterations each solution state
// carries probability sin²((2k+1)θ)/M and each non-solution state
// cos²((2k+1)θ)/(N−M), with θ = asin(√(M/N)).
package solver

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AleutianAI/SatOracle/services/oracle/datatypes"
	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("satoracle.solver")

// Engine defaults. The shot count and the oracle variable ceiling match
// the reference oracle simulation this engine replaces.
const (
	DefaultShots               = 1024
	DefaultMaxVariables        = 16
	DefaultOracleVariableLimit = 8
)

// Outcomes of a gini Solve call.
const (
	satisfiable   = 1
	unsatisfiable = -1
)

// Result is everything one solve produces.
//
// # Description
//
// Variables fixes the bit order: character j of every Solutions entry is
// the value of Variables[j]. Assignments carries the same models in
// "A=1,B=0,C=1" form. Counts is empty — and TopMeasurement "" — when no
// histogram exists: nothing satisfies the expression, everything does, or
// the variable count exceeds the oracle limit. Otherwise Counts is ordered
// by descending count (ties by ascending label) and TopMeasurement is its
// first label. EnumerationTime is how long model enumeration took, for
// callers that record it.
type Result struct {
	Variables       []string
	Solutions       []string
	Assignments     []string
	NumSolutions    int
	Iterations      int
	TopMeasurement  string
	Counts          datatypes.Counts
	EnumerationTime time.Duration
}

// Engine solves boolean expressions.
//
// # Description
//
// An Engine is safe for concurrent use: every solve builds its own SAT
// solver, and the shared sampling source is mutex-guarded. Construction
// goes through New with functional options.
//
// # Examples
//
//	engine, err := solver.New(solver.WithSeed(42))
//	if err != nil {
//		return err
//	}
//	result, err := engine.Solve(ctx, "(A | B) & (~A | C)")
//
// # Limitations
//
//   - Enumeration visits every satisfying assignment, so cost grows with
//     2^n in the worst case. MaxVariables bounds n.
type Engine struct {
	shots               int
	maxVariables        int
	oracleVariableLimit int

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Solve parses, enumerates and samples one boolean expression.
//
// # Description
//
// Runs the full pipeline: extract variables, parse, enumerate all
// satisfying assignments, compute the Grover iteration count, and sample
// the measurement histogram. The context is checked between phases and
// once per enumerated model, so a cancelled request stops promptly.
//
// # Inputs
//
//   - ctx: Context for cancellation.
//   - expression: Boolean expression over `~`, `&`, `|` and parentheses.
//
// # Outputs
//
//   - *Result: Populated result; Counts empty in the degenerate cases.
//   - error: ErrNoVariables, ErrTooManyVariables, an ErrParse-wrapped
//     syntax error, or the context's error.
func (e *Engine) Solve(ctx context.Context, expression string) (*Result, error) {
	ctx, span := tracer.Start(ctx, "Engine.Solve")
	defer span.End()
	span.SetAttributes(attribute.Int("solver.expression_length", len(expression)))

	variables := ExtractVariables(expression)
	span.SetAttributes(attribute.Int("solver.variables", len(variables)))
	if len(variables) == 0 {
		span.RecordError(ErrNoVariables)
		span.SetStatus(codes.Error, "no variables")
		return nil, ErrNoVariables
	}
	if len(variables) > e.maxVariables {
		err := fmt.Errorf("%w: got %d, limit %d", ErrTooManyVariables, len(variables), e.maxVariables)
		span.RecordError(err)
		span.SetStatus(codes.Error, "variable limit exceeded")
		return nil, err
	}

	root, err := parseExpression(expression)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		return nil, err
	}

	start := time.Now()
	solutions, err := enumerateSolutions(ctx, root, variables)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "enumeration failed")
		return nil, err
	}
	enumTime := time.Since(start)
	slog.Debug("Enumerated satisfying assignments",
		"variables", len(variables),
		"solutions", len(solutions),
		"duration", enumTime)

	total := 1 << len(variables)
	result := &Result{
		Variables:       variables,
		Solutions:       solutions,
		Assignments:     formatAssignments(variables, solutions),
		NumSolutions:    len(solutions),
		Iterations:      groverIterations(len(solutions), total),
		EnumerationTime: enumTime,
	}
	span.SetAttributes(
		attribute.Int("solver.solutions", len(solutions)),
		attribute.Int("solver.iterations", result.Iterations),
	)

	// A measurement histogram only exists when the oracle distinguishes
	// some states from others and the circuit stays simulable.
	if len(solutions) == 0 || len(solutions) == total || len(variables) > e.oracleVariableLimit {
		span.SetAttributes(attribute.Bool("solver.histogram", false))
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Counts = e.sampleCounts(solutions, len(variables), result.Iterations)
	if len(result.Counts) > 0 {
		result.TopMeasurement = result.Counts[0].Label
	}
	span.SetAttributes(attribute.Bool("solver.histogram", true))
	return result, nil
}

// =============================================================================
// Model Enumeration
// =============================================================================

// enumerateSolutions compiles the expression tree into a logic circuit,
// lowers it to CNF, and pulls every model out of the SAT solver.
//
// # Description
//
// Each variable gets a fresh circuit input in sorted order. After each
// satisfying assignment the model is excluded with a blocking clause over
// the variable literals, so the next solve finds a different one. The
// returned bitstrings are sorted ascending, equivalent to walking
// assignments 0..2^n−1 in order.
func enumerateSolutions(ctx context.Context, root *expr, variables []string) ([]string, error) {
	circuit := logic.NewCCap(len(variables))
	lits := make([]z.Lit, len(variables))
	byName := make(map[string]z.Lit, len(variables))
	for i, name := range variables {
		lits[i] = circuit.Lit()
		byName[name] = lits[i]
	}
	rootLit := compileExpr(circuit, root, byName)

	g := gini.New()
	circuit.ToCnf(g)

	var solutions []string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g.Assume(rootLit)
		res := g.Solve()
		if res == unsatisfiable {
			break
		}
		if res != satisfiable {
			return nil, fmt.Errorf("sat solver returned indeterminate result %d", res)
		}

		bits := make([]byte, len(lits))
		for i, lit := range lits {
			if g.Value(lit) {
				bits[i] = '1'
			} else {
				bits[i] = '0'
			}
		}
		solutions = append(solutions, string(bits))

		// Block this model so the next Solve finds a different one.
		for i, lit := range lits {
			if bits[i] == '1' {
				g.Add(lit.Not())
			} else {
				g.Add(lit)
			}
		}
		g.Add(z.LitNull)
	}
	sort.Strings(solutions)
	return solutions, nil
}

// compileExpr lowers an expression tree into the circuit. Every variable
// node resolves through byName, which ExtractVariables populated from the
// same alphabet the parser tokenizes, so lookups never miss.
func compileExpr(c *logic.C, node *expr, byName map[string]z.Lit) z.Lit {
	switch node.kind {
	case exprVar:
		return byName[node.name]
	case exprNot:
		return compileExpr(c, node.left, byName).Not()
	case exprAnd:
		return c.And(compileExpr(c, node.left, byName), compileExpr(c, node.right, byName))
	default:
		return c.Or(compileExpr(c, node.left, byName), compileExpr(c, node.right, byName))
	}
}

// formatAssignments renders each solution bitstring as "A=1,B=0,C=1" in
// sorted variable order.
func formatAssignments(variables []string, solutions []string) []string {
	assignments := make([]string, len(solutions))
	var b strings.Builder
	for i, bits := range solutions {
		b.Reset()
		for j, name := range variables {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteByte(bits[j])
		}
		assignments[i] = b.String()
	}
	return assignments
}

// =============================================================================
// Grover Simulation
// =============================================================================

// groverIterations returns the optimal Grover iteration count for m
// solutions among n candidate states: round(π/(4θ) − ½) with
// θ = asin(√(m/n)), at least 1 whenever any solution exists.
func groverIterations(m, n int) int {
	if m == 0 {
		return 0
	}
	theta := math.Asin(math.Sqrt(float64(m) / float64(n)))
	k := int(math.Round(math.Pi/(4*theta) - 0.5))
	if k < 1 {
		return 1
	}
	return k
}

// measurementProbabilities returns the post-Grover probability of every
// n-variable bitstring, indexed by its integer value.
func measurementProbabilities(solutions []string, n, iterations int) []float64 {
	total := 1 << n
	m := len(solutions)
	theta := math.Asin(math.Sqrt(float64(m) / float64(total)))
	angle := float64(2*iterations+1) * theta
	sin, cos := math.Sin(angle), math.Cos(angle)
	pSolution := sin * sin / float64(m)
	pOther := cos * cos / float64(total-m)

	isSolution := make(map[string]bool, m)
	for _, s := range solutions {
		isSolution[s] = true
	}
	probs := make([]float64, total)
	for i := range probs {
		if isSolution[bitstring(i, n)] {
			probs[i] = pSolution
		} else {
			probs[i] = pOther
		}
	}
	return probs
}

// sampleCounts draws the configured number of shots from the post-Grover
// distribution and tallies them into an ordered histogram: descending by
// count, ties by ascending label. Only observed bitstrings appear.
func (e *Engine) sampleCounts(solutions []string, n, iterations int) datatypes.Counts {
	probs := measurementProbabilities(solutions, n, iterations)
	cumulative := make([]float64, len(probs))
	sum := 0.0
	for i, p := range probs {
		sum += p
		cumulative[i] = sum
	}

	tallies := make(map[int]int)
	e.rngMu.Lock()
	for shot := 0; shot < e.shots; shot++ {
		r := e.rng.Float64() * sum
		idx := sort.SearchFloat64s(cumulative, r)
		if idx >= len(probs) {
			idx = len(probs) - 1
		}
		tallies[idx]++
	}
	e.rngMu.Unlock()

	counts := make(datatypes.Counts, 0, len(tallies))
	for idx, count := range tallies {
		counts = append(counts, datatypes.CountEntry{Label: bitstring(idx, n), Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Label < counts[j].Label
	})
	return counts
}

// bitstring renders i as an n-character binary string, most significant
// bit first, so character j carries the value of sorted variable j.
func bitstring(i, n int) string {
	return fmt.Sprintf("%0*b", n, i)
}
