// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package main implements satoracle, the terminal client for the SAT
// oracle solving service.
//
// Run bare on a terminal it opens the interactive TUI: type a boolean
// expression, press enter, and the satisfying assignments come back with
// a measurement histogram. Subcommands cover one-shot solving, liveness
// probing, and build information.
//
// Environment variables:
//   - SATORACLE_SERVER_URL: Oracle server base URL (overrides the config file)
//   - SATORACLE_PERSONALITY: Output style (full, standard, minimal, machine)
//
// Usage:
//
//	satoracle                          # interactive TUI
//	satoracle solve "(A | B) & ~C"     # one-shot solve
//	satoracle solve --json "A & B"     # raw SolveResult for scripting
//	satoracle status                   # probe the configured server
//	satoracle version                  # build information
package main

import (
	"log"
)

func main() {
	// Execute the root command. Cobra handles parsing the arguments.
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}
