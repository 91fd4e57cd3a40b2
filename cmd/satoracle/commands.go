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
	"os"

	"github.com/AleutianAI/SatOracle/cmd/satoracle/config"
	"github.com/AleutianAI/SatOracle/pkg/ux"
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	serverURL        string // CLI override for the oracle server base URL
	configPath       string // Alternate config file path
	personalityLevel string // UX personality level (full/standard/minimal/machine)
	solveJSON        bool   // solve: print the raw SolveResult as JSON

	rootCmd = &cobra.Command{
		Use:   "satoracle",
		Short: "A cli to build and query SAT oracles from boolean expressions",
		Long: `Satoracle turns boolean expressions like (A | B) & (~A | C) into
				oracle circuits, solves them on the oracle server, and renders
				the satisfying assignments with a measurement histogram.
				Run it bare for the interactive TUI, or use the solve
				subcommand for one-shot queries.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load the CLI config first so personality resolution can
			// consult it. The defaults keep working when the file is
			// missing or unreadable, so a failure only warns.
			loadErr := config.Load(configPath)

			// Personality precedence: --personality flag, then the
			// environment, then the config file, then terminal detection.
			switch {
			case personalityLevel != "":
				ux.SetPersonalityLevel(ux.ParsePersonalityLevel(personalityLevel))
			case os.Getenv("SATORACLE_PERSONALITY") != "":
				ux.InitPersonality()
			case config.Global.UX.Personality != "":
				ux.SetPersonalityLevel(ux.ParsePersonalityLevel(config.Global.UX.Personality))
			default:
				ux.InitPersonality()
			}

			if loadErr != nil {
				ux.Warning(fmt.Sprintf("Config load failed, using defaults: %v", loadErr))
			}
		},
		Run: runRootCommand, // Defined in tui.go
	}

	// --- Solve ---
	solveCmd = &cobra.Command{
		Use:   "solve [expression]",
		Short: "Solve a boolean expression against the oracle server",
		Run:   runSolveCommand, // Defined in cmd_solve.go
	}

	// --- Status ---
	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Check that the configured oracle server is alive",
		Run:   runStatusCommand, // Defined in cmd_status.go
	}

	// --- Version ---
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run:   runVersionCommand, // Defined in cmd_version.go
	}
)

// init runs when the Go program starts
func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "",
		"Oracle server base URL (overrides SATORACLE_SERVER_URL and the config file)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the config file (default ~/.satoracle/satoracle.yaml)")
	rootCmd.PersistentFlags().StringVar(&personalityLevel, "personality", "",
		"Output style: full (default), standard, minimal, or machine (scripting)")

	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().BoolVar(&solveJSON, "json", false,
		"Print the raw SolveResult as JSON for scripting")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveServerURL picks the oracle server base URL, in precedence order:
// the --server flag, SATORACLE_SERVER_URL, the config file, the default.
func resolveServerURL() string {
	if serverURL != "" {
		return serverURL
	}
	if env := os.Getenv("SATORACLE_SERVER_URL"); env != "" {
		return env
	}
	if config.Global.Server.URL != "" {
		return config.Global.Server.URL
	}
	return config.DefaultServerURL
}
