// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes provides wire-level data structures for the oracle
// service.
//
// This file contains the request and response types for the solve and
// liveness endpoints. The types here are shared by the server handlers and
// the client package; both sides must agree on field names and on the
// ordering semantics of Counts.
package datatypes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// =============================================================================
// Solve Request Types
// =============================================================================

// SolveRequest is the body of a POST /solve call.
//
// # Description
//
// Carries the boolean expression exactly as the user typed it. The server is
// the sole validation authority: clients submit the raw text, empty string
// included, and surface whatever the server decides.
//
// # Fields
//
//   - Expression: The boolean expression, e.g. "(A | B) & (~A | C)".
type SolveRequest struct {
	Expression string `json:"expression"`
}

// =============================================================================
// Solve Response Types
// =============================================================================

// SolveResult is the successful response body of a POST /solve call.
//
// # Description
//
// Summarizes one oracle run: the satisfying assignments found classically,
// how many there were, and the simulated measurement histogram with the most
// frequently observed bitstring singled out.
//
// # Fields
//
//   - ClassicalSolutions: Satisfying assignments encoded as
//     "A=1,B=0,C=1" strings, in the order the server produced them.
//     Consumers must not re-sort this list.
//   - NumSolutions: Number of satisfying assignments. Always >= 0.
//   - TopMeasurement: The most frequently measured bitstring. Omitted when
//     no histogram exists. When present it is always a key of Counts.
//   - Counts: Measurement histogram, bitstring label -> shot count. Empty
//     or absent when the oracle run produced no usable histogram; consumers
//     must treat either form as "no measurement data".
//
// # Examples
//
//	{
//	    "classical_solutions": ["A=1,B=0,C=1"],
//	    "num_solutions": 1,
//	    "top_measurement": "101",
//	    "counts": {"101": 12, "000": 2}
//	}
//
// # Limitations
//
//   - Counts order is significant and preserved (see Counts), so this type
//     must not be flattened into a plain map.
type SolveResult struct {
	ClassicalSolutions []string `json:"classical_solutions"`
	NumSolutions       int      `json:"num_solutions"`
	TopMeasurement     *string  `json:"top_measurement,omitempty"`
	Counts             Counts   `json:"counts"`
}

// Validate checks the internal consistency of a SolveResult.
//
// # Description
//
// Verifies the invariants the solve pipeline promises: a non-negative
// solution count, and a TopMeasurement that, when present, refers to an
// existing Counts entry.
//
// # Outputs
//
//   - error: Non-nil when an invariant is violated.
func (r *SolveResult) Validate() error {
	if r.NumSolutions < 0 {
		return fmt.Errorf("num_solutions must be non-negative, got %d", r.NumSolutions)
	}
	if r.TopMeasurement != nil {
		if _, ok := r.Counts.Get(*r.TopMeasurement); !ok {
			return fmt.Errorf("top_measurement %q is not a counts key", *r.TopMeasurement)
		}
	}
	return nil
}

// =============================================================================
// Ordered Measurement Counts
// =============================================================================

// CountEntry is a single (bitstring, shot count) pair in a histogram.
type CountEntry struct {
	Label string
	Count int
}

// Counts is an insertion-ordered measurement histogram.
//
// # Description
//
// JSON objects carry an author-chosen key order that encoding/json's map
// types destroy, and the histogram's order is meaningful to consumers (bars
// render in it, and the first key of a server-built histogram is the top
// measurement). Counts therefore stores entries as an ordered slice and
// implements its own JSON codec so the order survives a round trip.
//
// A nil Counts marshals as JSON null and an empty one as {}; both decode
// back to a histogram with no entries.
//
// # Examples
//
//	c := Counts{{Label: "101", Count: 12}, {Label: "000", Count: 2}}
//	data, _ := json.Marshal(c) // {"101":12,"000":2}
//
// # Limitations
//
//   - Lookup by label is a linear scan. Histograms are bounded by the
//     oracle variable limit (at most 2^8 entries) so this never matters.
//
// # Assumptions
//
//   - Counts are whole shot tallies; fractional JSON values are rejected.
type Counts []CountEntry

// Get returns the count stored under label, and whether it exists.
func (c Counts) Get(label string) (int, bool) {
	for _, e := range c {
		if e.Label == label {
			return e.Count, true
		}
	}
	return 0, false
}

// MarshalJSON encodes the histogram as a JSON object in entry order.
func (c Counts) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Label)
		if err != nil {
			return nil, fmt.Errorf("marshal counts key %q: %w", e.Label, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(e.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the histogram, preserving the
// key order of the document. A duplicated key keeps its first position and
// takes its last value, matching how lenient JSON parsers treat duplicates.
func (c *Counts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode counts: %w", err)
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decode counts: expected object, got %v", tok)
	}

	entries := Counts{}
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode counts key: %w", err)
		}
		label, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decode counts: non-string key %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode counts value for %q: %w", label, err)
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return fmt.Errorf("decode counts: value for %q is not a number", label)
		}
		count, err := strconv.Atoi(num.String())
		if err != nil {
			return fmt.Errorf("decode counts: value for %q: %w", label, err)
		}

		if i, seen := index[label]; seen {
			entries[i].Count = count
			continue
		}
		index[label] = len(entries)
		entries = append(entries, CountEntry{Label: label, Count: count})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode counts: %w", err)
	}

	*c = entries
	return nil
}

// =============================================================================
// Error and Liveness Types
// =============================================================================

// ErrorResponse is the body returned by the server for any rejected request.
//
// # Description
//
// The server reports every failure as a JSON object with a single "detail"
// field holding a human-readable message. Clients surface Detail verbatim
// when it is present and non-empty.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// LivenessResponse is the body of the GET / liveness endpoint.
type LivenessResponse struct {
	Message string `json:"message"`
}
