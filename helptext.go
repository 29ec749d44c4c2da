// helptext.go: Aligned, annotated help text rendering for Lyra
//
// This file renders the help document for a Definition: one aligned line
// per declared argument plus the trailing help-flag line. All lines share
// a single column width computed from the longest label in the whole
// document, so annotations align against the true global maximum.
//
// Styling decorates labels and annotations only; character semantics are
// untouched, so consumers can strip the ANSI sequences (color.NoColor)
// and measure or assert on plain text.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package lyra

import (
	"strings"

	"github.com/fatih/color"
)

var (
	labelColor      = color.New(color.FgCyan)
	annotationColor = color.New(color.FgMagenta)
)

// helpFlagSuffix is the fixed annotation text for the help-flag line.
const helpFlagSuffix = " - show this help text"

// argumentLabel builds the plain (unstyled) label for an argument line.
func argumentLabel(a Argument) string {
	if a.ShortName != "" {
		return "--" + a.Name + ", -" + a.ShortName
	}
	return "--" + a.Name
}

// helpFlagLabel builds the plain label for the help-flag line.
func helpFlagLabel(flags HelpFlags) string {
	if flags.Short != "" {
		return "--" + flags.Long + ", -" + flags.Short
	}
	return "--" + flags.Long
}

// styleLabel colors each comma-delimited token of a label independently,
// leaving the separators plain.
func styleLabel(label string) string {
	tokens := strings.Split(label, ", ")
	for i, token := range tokens {
		tokens[i] = labelColor.Sprint(token)
	}
	return strings.Join(tokens, ", ")
}

// formatArgumentLine renders one argument as an aligned, annotated line.
// Padding is max(width-len(label)+4, 4); the required/optional annotation
// is styled separately from the label.
func formatArgumentLine(a Argument, width int) string {
	label := argumentLabel(a)
	padding := width - len(label) + 4
	if padding < 4 {
		padding = 4
	}

	annotation := "(required)"
	if a.Optional {
		annotation = "(optional)"
	}

	return styleLabel(label) + strings.Repeat(" ", padding) +
		annotationColor.Sprint(annotation) + " - " + a.Description
}

// formatHelpFlagLine renders the help-flag line. Its padding constant is
// max(3, width-len(label)+3), one less than argument lines: the leading
// space of the suffix then lands the dash in the annotation column.
func formatHelpFlagLine(flags HelpFlags, width int) string {
	label := helpFlagLabel(flags)
	padding := width - len(label) + 3
	if padding < 3 {
		padding = 3
	}
	return styleLabel(label) + strings.Repeat(" ", padding) + helpFlagSuffix
}

// HelpText composes the full help document for a definition: the script
// description, an "Arguments:" header, one line per declared argument in
// declaration order, a blank line, and the help-flag line (no trailing
// newline). Usable standalone for custom help rendering.
func HelpText(def Definition) string {
	flags := def.helpFlags()

	width := 0
	for _, a := range def.Arguments {
		if l := len(argumentLabel(a)); l > width {
			width = l
		}
	}
	if l := len(helpFlagLabel(flags)); l > width {
		width = l
	}

	var b strings.Builder
	b.WriteString(def.Description)
	b.WriteString("\nArguments:\n")
	for _, a := range def.Arguments {
		b.WriteString(formatArgumentLine(a, width))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(formatHelpFlagLine(flags, width))
	return b.String()
}
