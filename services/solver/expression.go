// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package solver

import (
	"fmt"
	"regexp"
	"sort"
	"unicode"
)

// variablePattern matches the maximal alphabetic runs that name variables.
var variablePattern = regexp.MustCompile(`[A-Za-z]+`)

// ExtractVariables returns the sorted unique variable names in expression.
//
// # Description
//
// A variable is a maximal run of ASCII letters anywhere in the raw text.
// Extraction runs before parsing, so even unparsable expressions report
// their variables. Sorting is byte-wise ascending, which fixes the bit
// order used everywhere else in the engine: character j of a solution
// bitstring is the value of variable j in this slice.
//
// # Inputs
//
//   - expression: Raw boolean expression text.
//
// # Outputs
//
//   - []string: Sorted unique variable names; empty when none exist.
//
// # Examples
//
//	ExtractVariables("(A | B) & (~A | C)") // [A B C]
func ExtractVariables(expression string) []string {
	seen := make(map[string]struct{})
	var variables []string
	for _, name := range variablePattern.FindAllString(expression, -1) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		variables = append(variables, name)
	}
	sort.Strings(variables)
	return variables
}

// =============================================================================
// Expression Tree
// =============================================================================

// exprKind discriminates expression tree nodes.
type exprKind int

const (
	exprVar exprKind = iota
	exprNot
	exprAnd
	exprOr
)

// expr is one node of a parsed boolean expression. Variable nodes carry
// name; exprNot uses left only; exprAnd and exprOr use both children.
type expr struct {
	kind  exprKind
	name  string
	left  *expr
	right *expr
}

// =============================================================================
// Parser
// =============================================================================

// parser is a recursive-descent parser over `~`, `&`, `|`, parentheses and
// variable names, with precedence ~ > & > |. It walks runes so the
// positions reported in errors count characters rather than bytes.
type parser struct {
	input []rune
	pos   int
}

// parseExpression parses a boolean expression into its tree form.
//
// # Description
//
// Grammar, in precedence order:
//
//	or   := and ('|' and)*
//	and  := not ('&' not)*
//	not  := '~' not | atom
//	atom := VARIABLE | '(' or ')'
//
// Whitespace between tokens is ignored. Every syntax error wraps ErrParse,
// so the message always starts with "failed to parse expression: ".
//
// # Inputs
//
//   - expression: Raw boolean expression text.
//
// # Outputs
//
//   - *expr: Root of the expression tree.
//   - error: Non-nil on any syntax error.
func parseExpression(expression string) (*expr, error) {
	p := &parser{input: []rune(expression)}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return nil, fmt.Errorf("%w: unexpected character %q at position %d",
			ErrParse, p.input[p.pos], p.pos)
	}
	return root, nil
}

func (p *parser) parseOr() (*expr, error) {
	node, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if !p.consume('|') {
			return node, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		node = &expr{kind: exprOr, left: node, right: right}
	}
}

func (p *parser) parseAnd() (*expr, error) {
	node, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if !p.consume('&') {
			return node, nil
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		node = &expr{kind: exprAnd, left: node, right: right}
	}
}

func (p *parser) parseNot() (*expr, error) {
	p.skipSpace()
	if p.consume('~') {
		child, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &expr{kind: exprNot, left: child}, nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (*expr, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrParse)
	}
	r := p.input[p.pos]
	switch {
	case r == '(':
		p.pos++
		node, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.consume(')') {
			return nil, fmt.Errorf("%w: missing closing parenthesis at position %d",
				ErrParse, p.pos)
		}
		return node, nil
	case isLetter(r):
		start := p.pos
		for p.pos < len(p.input) && isLetter(p.input[p.pos]) {
			p.pos++
		}
		return &expr{kind: exprVar, name: string(p.input[start:p.pos])}, nil
	default:
		return nil, fmt.Errorf("%w: unexpected character %q at position %d",
			ErrParse, r, p.pos)
	}
}

// consume advances past r when it is the next rune and reports whether it
// did.
func (p *parser) consume(r rune) bool {
	if p.pos < len(p.input) && p.input[p.pos] == r {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
}

// isLetter matches the same alphabet as variablePattern, so the parser and
// the extractor always agree on what a variable is.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
