// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

// DefaultServerURL is where a locally deployed oracle daemon listens.
const DefaultServerURL = "http://localhost:8000"

type SatOracleConfig struct {
	// Server: where the oracle daemon lives
	Server ServerConfig `yaml:"server"`

	// UX: terminal output preferences
	UX UXConfig `yaml:"ux"`
}

type ServerConfig struct {
	URL string `yaml:"url"` // e.g. http://localhost:8000
}

type UXConfig struct {
	// Personality can be "full", "standard", "minimal", or "machine".
	// Empty defers to SATORACLE_PERSONALITY and terminal detection.
	Personality string `yaml:"personality,omitempty"`
}

func DefaultConfig() SatOracleConfig {
	return SatOracleConfig{
		Server: ServerConfig{URL: DefaultServerURL},
		UX:     UXConfig{},
	}
}
