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
	"fmt"

	"github.com/AleutianAI/SatOracle/pkg/ux"
	"github.com/spf13/cobra"
)

// Build metadata, overridden at release time:
//
//	go build -ldflags "-X main.buildVersion=v1.2.0 -X main.buildCommit=$(git rev-parse --short HEAD) -X main.buildDate=$(date -u +%Y-%m-%d)"
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

func runVersionCommand(cmd *cobra.Command, args []string) {
	if ux.GetPersonality().Level == ux.PersonalityMachine {
		fmt.Printf("satoracle\t%s\t%s\t%s\n", buildVersion, buildCommit, buildDate)
		return
	}
	fmt.Printf("satoracle %s (commit %s, built %s)\n", buildVersion, buildCommit, buildDate)
}
