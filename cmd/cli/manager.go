// Package cli provides the developer tool for Lyra argument definitions.
//
// The tool works on definition files (YAML or JSON) the way a script
// author does: preview the generated help text, lint a declaration for
// authoring mistakes, and dry-run an argument list against it without
// touching the real script.
//
// Built on the Orpheus framework, matching the rest of the AGILira
// tooling.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"github.com/agilira/lyra"
	"github.com/agilira/orpheus/pkg/orpheus"
)

// Manager wires the Orpheus application and the optional audit logger.
type Manager struct {
	app         *orpheus.App
	auditLogger *lyra.AuditLogger
}

// NewManager creates the lyra CLI with its command structure.
func NewManager() *Manager {
	app := orpheus.New("lyra").
		SetDescription("Declarative argument validation and help text for scripts").
		SetVersion("1.0.0")

	manager := &Manager{
		app: app,
	}

	manager.setupDefinitionCommands()

	return manager
}

// WithAudit enables audit logging for check runs performed by the tool.
func (m *Manager) WithAudit(auditLogger *lyra.AuditLogger) *Manager {
	m.auditLogger = auditLogger
	return m
}

// Run executes the CLI application with the provided arguments.
func (m *Manager) Run(args []string) error {
	return m.app.Run(args)
}

// setupDefinitionCommands configures the definition-file commands.
func (m *Manager) setupDefinitionCommands() {
	// preview <definition>
	previewCmd := orpheus.NewCommand("preview", "Render the help text a definition produces")
	previewCmd.SetHandler(m.handlePreview)
	previewCmd.AddBoolFlag("no-color", "n", false, "Strip ANSI styling from the output")
	m.app.AddCommand(previewCmd)

	// lint <definition>
	lintCmd := orpheus.NewCommand("lint", "Validate a definition file and report errors and warnings")
	lintCmd.SetHandler(m.handleLint)
	lintCmd.AddBoolFlag("quiet", "q", false, "Suppress warnings, report errors only")
	m.app.AddCommand(lintCmd)

	// check <definition> [--] args...
	checkCmd := orpheus.NewCommand("check", "Dry-run an argument list against a definition")
	checkCmd.SetHandler(m.handleCheck)
	m.app.AddCommand(checkCmd)
}
