// Command handlers for the Lyra CLI
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"
	"os"

	"github.com/agilira/go-errors"
	"github.com/agilira/lyra"
	"github.com/agilira/orpheus/pkg/orpheus"
	"github.com/fatih/color"
)

// handlePreview renders the help text a definition file produces.
func (m *Manager) handlePreview(ctx *orpheus.Context) error {
	def, err := m.loadDefinition(ctx.GetArg(0))
	if err != nil {
		return err
	}

	if ctx.GetFlagBool("no-color") {
		previous := color.NoColor
		color.NoColor = true
		defer func() { color.NoColor = previous }()
	}

	fmt.Println(lyra.HelpText(*def))
	return nil
}

// handleLint validates a definition file and reports detailed results.
// Lint intentionally reads the raw file without the loader's validation
// pass, so authors see every error at once instead of the first.
func (m *Manager) handleLint(ctx *orpheus.Context) error {
	def, err := m.loadDefinitionUnchecked(ctx.GetArg(0))
	if err != nil {
		return err
	}

	result := def.ValidateDetailed()
	fmt.Println(result.String())
	for _, message := range result.Errors {
		fmt.Printf("  error: %s\n", message)
	}
	if !ctx.GetFlagBool("quiet") {
		for _, message := range result.Warnings {
			fmt.Printf("  warning: %s\n", message)
		}
	}

	if !result.Valid {
		return errors.New(lyra.ErrCodeInvalidDefinition, "definition failed validation")
	}
	return nil
}

// handleCheck dry-runs an argument list against a definition using the
// non-terminating orchestrator, reporting the outcome instead of exiting.
func (m *Manager) handleCheck(ctx *orpheus.Context) error {
	def, err := m.loadDefinition(ctx.GetArg(0))
	if err != nil {
		return err
	}

	outcome := lyra.Check(lyra.Options{
		Args:       remainingArgs(ctx, 1),
		Definition: *def,
		Audit:      m.auditLogger,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	})

	switch {
	case outcome.Halted && outcome.Status == 0:
		return nil
	case outcome.Halted:
		return errors.New(lyra.ErrCodeValidationFailed,
			fmt.Sprintf("argument list rejected (exit status %d)", outcome.Status))
	default:
		fmt.Printf("ok: %d value(s), %d positional(s)\n",
			len(outcome.Values)-1, len(outcome.Values.Positionals()))
		return nil
	}
}
