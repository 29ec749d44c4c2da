// definition.go - declaration validation for Lyra definitions
//
// This module validates caller-authored declarations before a script runs,
// catching authoring mistakes (duplicate names, multi-rune short names,
// broken patterns) with detailed error reporting rather than surfacing
// them as confusing runtime behavior.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package lyra

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/agilira/go-errors"
)

// Declaration errors - implementing error codes pattern from Iris
var (
	ErrEmptyArgumentName = errors.New(ErrCodeEmptyArgumentName, "argument name cannot be empty")
	ErrDuplicateArgument = errors.New(ErrCodeDuplicateArgument, "argument names must be unique")
	ErrInvalidShortName  = errors.New(ErrCodeInvalidShortName, "short name must be a single character")
	ErrInvalidPattern    = errors.New(ErrCodeInvalidPattern, "pattern is not a valid regular expression")
	ErrInvalidHelpFlags  = errors.New(ErrCodeInvalidHelpFlags, "help flags must declare a long name")
)

// ValidationResult contains the result of declaration validation with
// detailed feedback: hard errors that make the definition unusable and
// warnings about likely authoring mistakes.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// String returns a human-readable representation of validation results
func (vr ValidationResult) String() string {
	if vr.Valid {
		if len(vr.Warnings) == 0 {
			return "Definition is valid"
		}
		return fmt.Sprintf("Definition is valid with %d warning(s)", len(vr.Warnings))
	}
	return fmt.Sprintf("Definition is invalid: %d error(s), %d warning(s)",
		len(vr.Errors), len(vr.Warnings))
}

// Validate checks the definition and returns the first error found.
// Warnings are only available through ValidateDetailed.
func (d *Definition) Validate() error {
	result := d.ValidateDetailed()
	if result.Valid {
		return nil
	}
	first := result.Errors[0]
	switch {
	case first == ErrEmptyArgumentName.Error():
		return ErrEmptyArgumentName
	case first == ErrInvalidHelpFlags.Error():
		return ErrInvalidHelpFlags
	default:
		return errors.New(ErrCodeInvalidDefinition, first)
	}
}

// ValidateDetailed performs full declaration validation and returns
// detailed results including both errors and warnings.
func (d *Definition) ValidateDetailed() ValidationResult {
	result := ValidationResult{
		Valid:    true,
		Errors:   make([]string, 0),
		Warnings: make([]string, 0),
	}

	d.validateArguments(&result)
	d.validateHelpFlags(&result)
	d.validateUsability(&result)

	result.Valid = len(result.Errors) == 0
	return result
}

// validateArguments checks each declared argument and name uniqueness.
func (d *Definition) validateArguments(result *ValidationResult) {
	seen := make(map[string]bool, len(d.Arguments))

	for _, arg := range d.Arguments {
		if arg.Name == "" {
			result.Errors = append(result.Errors, ErrEmptyArgumentName.Error())
			continue
		}
		if seen[arg.Name] {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: %q", ErrDuplicateArgument.Error(), arg.Name))
		}
		seen[arg.Name] = true

		if arg.ShortName != "" && utf8.RuneCountInString(arg.ShortName) != 1 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: %q on --%s", ErrInvalidShortName.Error(), arg.ShortName, arg.Name))
		}
		if arg.Pattern != "" {
			if _, err := regexp.Compile(arg.Pattern); err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("%s: --%s: %v", ErrInvalidPattern.Error(), arg.Name, err))
			}
		}
		if arg.Description == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("argument --%s has no description", arg.Name))
		}
	}
}

// validateHelpFlags checks the configured help-flag pair for collisions
// with declared arguments.
func (d *Definition) validateHelpFlags(result *ValidationResult) {
	if d.HelpFlags != nil && d.HelpFlags.Long == "" {
		result.Errors = append(result.Errors, ErrInvalidHelpFlags.Error())
		return
	}

	flags := d.helpFlags()
	for _, arg := range d.Arguments {
		if arg.Name == flags.Long {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("argument --%s shadows the help flag and will never be validated", arg.Name))
		}
		if flags.Short != "" && arg.ShortName == flags.Short {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("argument --%s short name -%s collides with the help flag", arg.Name, arg.ShortName))
		}
	}
}

// validateUsability flags declarations that are valid but probably not
// what the author intended.
func (d *Definition) validateUsability(result *ValidationResult) {
	if d.RequireArgs && len(d.Arguments) == 0 {
		result.Warnings = append(result.Warnings,
			"require_args is set but no arguments are declared; every invocation will show help")
	}
	if d.Description == "" {
		result.Warnings = append(result.Warnings, "definition has no description")
	}
}
