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

import (
	"context"

	"github.com/AleutianAI/SatOracle/services/oracle/datatypes"
)

// MockSolverClient implements SolverClient with function fields so tests
// can script responses per call. Nil fields return zero values.
type MockSolverClient struct {
	SolveFunc    func(ctx context.Context, expression string) (*datatypes.SolveResult, error)
	LivenessFunc func(ctx context.Context) (string, error)
}

var _ SolverClient = (*MockSolverClient)(nil)

func (m *MockSolverClient) Solve(ctx context.Context, expression string) (*datatypes.SolveResult, error) {
	if m.SolveFunc == nil {
		return nil, nil
	}
	return m.SolveFunc(ctx, expression)
}

func (m *MockSolverClient) Liveness(ctx context.Context) (string, error) {
	if m.LivenessFunc == nil {
		return "", nil
	}
	return m.LivenessFunc(ctx)
}
