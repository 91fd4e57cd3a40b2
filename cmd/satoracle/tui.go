// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package main (this file) implements the interactive solve TUI.
//
// The model owns a text input for the expression, a spinner for the
// pending phase, and a request controller that drives at most one solve
// call at a time. Settlement arrives asynchronously on the controller's
// channel and is converted into a bubbletea message, so the event loop
// stays single-threaded:
//
//	Enter → Controller.Submit → waitForSettle ──┐
//	                                            ↓
//	Update(snapshotMsg) ← settled Snapshot ← channel
//
// The input stays editable while a request is pending; only submission
// is gated.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/AleutianAI/SatOracle/pkg/ux"
	"github.com/AleutianAI/SatOracle/services/oracle/client"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// =============================================================================
// Root Command
// =============================================================================

// runRootCommand opens the interactive TUI, or prints guidance when the
// session cannot support one (piped output, machine personality).
func runRootCommand(cmd *cobra.Command, args []string) {
	if !ux.IsInteractive() {
		ux.Warning("interactive mode needs a terminal")
		ux.Info(`use "satoracle solve <expression>" for one-shot solving`)
		return
	}
	if err := runTUI(resolveServerURL()); err != nil {
		ux.Error(fmt.Sprintf("TUI failed: %v", err))
		os.Exit(1)
	}
}

// runTUI runs the solve TUI against the server at serverURL until the
// user quits.
func runTUI(serverURL string) error {
	ctrl := client.NewController(client.NewHTTPSolverClient(serverURL))
	p := tea.NewProgram(newSolveModel(serverURL, ctrl), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// =============================================================================
// Model
// =============================================================================

// snapshotMsg carries a settled controller snapshot into the event loop.
type snapshotMsg client.Snapshot

// solveModel is the bubbletea model for the interactive solve session.
//
// # Fields
//
//   - textInput: The expression being edited. Editable in every state.
//   - spinner: Animation shown while a request is pending.
//   - controller: Request lifecycle state machine; rejects a second
//     submission while one is in flight.
//   - snapshot: The controller view the UI renders from. Updated on
//     submission and again when the settled snapshot arrives.
//
// # Thread Safety
//
// The model itself is only touched by the bubbletea event loop. The
// controller is safe for the settlement goroutine to touch concurrently.
type solveModel struct {
	textInput  textinput.Model
	spinner    spinner.Model
	controller *client.Controller
	snapshot   client.Snapshot
	serverURL  string
	quitting   bool
}

// newSolveModel creates the initial model for a session against serverURL.
func newSolveModel(serverURL string, ctrl *client.Controller) solveModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "(A | B) & (~A | C)"
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ux.Styles.Subtitle

	return solveModel{
		textInput:  ti,
		spinner:    sp,
		controller: ctrl,
		snapshot:   ctrl.Snapshot(),
		serverURL:  serverURL,
	}
}

// waitForSettle converts the controller's settlement channel into a
// bubbletea message.
func waitForSettle(done <-chan client.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-done)
	}
}

// Init initializes the bubbletea model.
func (m solveModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input events for the bubbletea model.
func (m solveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			// Blank input and in-flight requests never submit. The
			// trimmed check is UI-level only: the submitted expression
			// is the verbatim input, whitespace included.
			if strings.TrimSpace(m.textInput.Value()) == "" {
				return m, nil
			}
			if m.snapshot.State == client.StatePending {
				return m, nil
			}
			m.controller.SetExpression(m.textInput.Value())
			done, ok := m.controller.Submit(context.Background())
			if !ok {
				return m, nil
			}
			m.snapshot = m.controller.Snapshot()
			return m, tea.Batch(m.spinner.Tick, waitForSettle(done))
		}

	case snapshotMsg:
		m.snapshot = client.Snapshot(msg)
		return m, nil

	case spinner.TickMsg:
		// Tick only while a request is pending; the spinner goes
		// quiet as soon as the snapshot settles.
		if m.snapshot.State != client.StatePending {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		width := msg.Width - 4
		if width < 20 {
			width = 20
		}
		m.textInput.Width = width
		return m, nil
	}

	// Handle other input
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the session: header, expression input, then whichever
// region the request state calls for.
func (m solveModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(ux.Styles.Title.Render("SAT Oracle"))
	b.WriteString("\n")
	b.WriteString(ux.Styles.Muted.Render(m.serverURL))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	switch m.snapshot.State {
	case client.StatePending:
		b.WriteString(m.spinner.View())
		b.WriteString(ux.Styles.Muted.Render("consulting the oracle..."))
		b.WriteString("\n")
	case client.StateFailed:
		b.WriteString(ux.Styles.Error.Render(fmt.Sprintf("%s %s", ux.IconError, m.snapshot.ErrorMessage)))
		b.WriteString("\n")
	case client.StateSucceeded:
		b.WriteString(resultView(m.snapshot.Result))
	}

	b.WriteString("\n")
	b.WriteString(ux.Styles.Muted.Render("enter: solve • esc: quit"))
	b.WriteString("\n")
	return b.String()
}
