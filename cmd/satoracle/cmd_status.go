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
	"fmt"
	"os"
	"time"

	"github.com/AleutianAI/SatOracle/pkg/ux"
	"github.com/AleutianAI/SatOracle/services/oracle/client"
	"github.com/spf13/cobra"
)

// statusProbeTimeout bounds one liveness round trip. The probe carries no
// work, so a healthy server answers well inside this.
const statusProbeTimeout = 10 * time.Second

// runStatusCommand probes the configured oracle server and reports its
// liveness message. Exits non-zero when the server is unreachable.
func runStatusCommand(cmd *cobra.Command, args []string) {
	url := resolveServerURL()
	c := client.NewHTTPSolverClient(url)

	ctx, cancel := context.WithTimeout(context.Background(), statusProbeTimeout)
	defer cancel()

	message, err := c.Liveness(ctx)
	if err != nil {
		ux.Error(fmt.Sprintf("Oracle server at %s is not responding: %v", url, err))
		ux.Tip("start the daemon with `oracle`, or point --server / SATORACLE_SERVER_URL at a running one")
		os.Exit(1)
	}
	ux.Success(message)
}
