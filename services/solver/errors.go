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

import "errors"

// Engine errors. Handlers surface these verbatim as the response detail
// string, so the text is part of the wire contract.
var (
	// ErrNoVariables indicates the expression names no variables to solve
	// for.
	ErrNoVariables = errors.New("no variables found in expression")

	// ErrParse prefixes every syntax error produced by the expression
	// parser.
	ErrParse = errors.New("failed to parse expression")

	// ErrTooManyVariables indicates the expression exceeds the engine's
	// enumeration limit.
	ErrTooManyVariables = errors.New("too many variables in expression")
)
