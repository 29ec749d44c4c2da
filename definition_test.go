// definition_test.go: Testing declaration validation
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package lyra

import (
	"errors"
	"strings"
	"testing"
)

func TestDefinitionValidateAcceptsWellFormed(t *testing.T) {
	def := testDefinition()
	if err := def.Validate(); err != nil {
		t.Errorf("well-formed definition rejected: %v", err)
	}
}

func TestDefinitionValidateEmptyName(t *testing.T) {
	def := Definition{
		Description: "broken",
		Arguments:   []Argument{{Name: "", Description: "nameless"}},
	}
	if err := def.Validate(); !errors.Is(err, ErrEmptyArgumentName) {
		t.Errorf("expected ErrEmptyArgumentName, got %v", err)
	}
}

func TestDefinitionValidateDuplicateNames(t *testing.T) {
	def := Definition{
		Description: "broken",
		Arguments: []Argument{
			{Name: "target", Description: "one"},
			{Name: "target", Description: "two"},
		},
	}
	err := def.Validate()
	if err == nil || !strings.Contains(err.Error(), "unique") {
		t.Errorf("duplicate names not rejected: %v", err)
	}
}

func TestDefinitionValidateMultiRuneShortName(t *testing.T) {
	def := Definition{
		Description: "broken",
		Arguments:   []Argument{{Name: "target", ShortName: "tg", Description: "x"}},
	}
	err := def.Validate()
	if err == nil || !strings.Contains(err.Error(), "single character") {
		t.Errorf("multi-rune short name not rejected: %v", err)
	}

	// A single multi-byte rune is still one character.
	def.Arguments[0].ShortName = "à"
	if err := def.Validate(); err != nil {
		t.Errorf("single-rune short name rejected: %v", err)
	}
}

func TestDefinitionValidateBrokenPattern(t *testing.T) {
	def := Definition{
		Description: "broken",
		Arguments:   []Argument{{Name: "count", Description: "n", Pattern: "["}},
	}
	err := def.Validate()
	if err == nil || !strings.Contains(err.Error(), "regular expression") {
		t.Errorf("broken pattern not rejected: %v", err)
	}
}

func TestDefinitionValidateHelpFlagsWithoutLong(t *testing.T) {
	def := Definition{
		Description: "broken",
		HelpFlags:   &HelpFlags{Short: "u"},
	}
	if err := def.Validate(); !errors.Is(err, ErrInvalidHelpFlags) {
		t.Errorf("expected ErrInvalidHelpFlags, got %v", err)
	}
}

func TestDefinitionValidateDetailedCollectsEverything(t *testing.T) {
	def := Definition{
		Arguments: []Argument{
			{Name: ""},
			{Name: "target"},
			{Name: "target", Pattern: "["},
		},
		RequireArgs: true,
	}

	result := def.ValidateDetailed()
	if result.Valid {
		t.Fatal("invalid definition reported as valid")
	}
	if len(result.Errors) != 3 {
		t.Errorf("expected 3 errors (empty name, duplicate, pattern), got %v", result.Errors)
	}
	// Missing descriptions on both named arguments, plus the missing
	// definition description.
	if len(result.Warnings) < 3 {
		t.Errorf("expected at least 3 warnings, got %v", result.Warnings)
	}
}

func TestDefinitionValidateDetailedHelpCollisionWarnings(t *testing.T) {
	def := Definition{
		Description: "collides",
		Arguments: []Argument{
			{Name: "help", Description: "shadowed"},
			{Name: "host", ShortName: "h", Description: "colliding short"},
		},
	}

	result := def.ValidateDetailed()
	if !result.Valid {
		t.Fatalf("collisions must be warnings, not errors: %v", result.Errors)
	}
	joined := strings.Join(result.Warnings, "\n")
	if !strings.Contains(joined, "shadows the help flag") {
		t.Errorf("shadow warning missing: %v", result.Warnings)
	}
	if !strings.Contains(joined, "collides with the help flag") {
		t.Errorf("short-name collision warning missing: %v", result.Warnings)
	}
}

func TestDefinitionValidateDetailedRequireArgsWithoutArguments(t *testing.T) {
	def := Definition{Description: "empty but strict", RequireArgs: true}
	result := def.ValidateDetailed()
	if !result.Valid {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "require_args") {
		t.Errorf("usability warning missing: %v", result.Warnings)
	}
}

func TestValidationResultString(t *testing.T) {
	tests := []struct {
		result ValidationResult
		want   string
	}{
		{ValidationResult{Valid: true}, "Definition is valid"},
		{ValidationResult{Valid: true, Warnings: []string{"w"}}, "Definition is valid with 1 warning(s)"},
		{ValidationResult{Valid: false, Errors: []string{"e"}}, "Definition is invalid: 1 error(s), 0 warning(s)"},
	}
	for _, tt := range tests {
		if got := tt.result.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
