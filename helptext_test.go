// helptext_test.go: Testing Lyra help text rendering
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package lyra

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

// plainText disables ANSI styling for the duration of a test so layout
// can be asserted on byte-exact strings.
func plainText(t *testing.T) {
	t.Helper()
	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previous })
}

func testDefinition() Definition {
	return Definition{
		Description: "this script does the thing",
		Arguments: []Argument{
			{Name: "firstArg", Description: "the first argument"},
			{Name: "secondArg", ShortName: "s", Description: "the second argument"},
			{Name: "thirdArg", Description: "the third argument", Optional: true},
		},
	}
}

func TestHelpTextLayout(t *testing.T) {
	plainText(t)

	expected := "this script does the thing\n" +
		"Arguments:\n" +
		"--firstArg         (required) - the first argument\n" +
		"--secondArg, -s    (required) - the second argument\n" +
		"--thirdArg         (optional) - the third argument\n" +
		"\n" +
		"--help, -h         - show this help text"

	got := HelpText(testDefinition())
	if got != expected {
		t.Errorf("help text mismatch:\ngot:\n%s\nwant:\n%s", got, expected)
	}
}

func TestHelpTextIdempotent(t *testing.T) {
	plainText(t)

	def := testDefinition()
	first := HelpText(def)
	second := HelpText(def)
	if first != second {
		t.Error("HelpText is not byte-identical across calls")
	}
}

func TestHelpTextAlignment(t *testing.T) {
	plainText(t)

	def := testDefinition()
	lines := strings.Split(HelpText(def), "\n")

	// Annotation column: every argument line's "(" and the help line's "-"
	// must start at the same character column.
	column := -1
	for _, line := range lines[2:5] {
		idx := strings.Index(line, "(")
		if idx < 0 {
			t.Fatalf("no annotation in line %q", line)
		}
		if column == -1 {
			column = idx
		} else if idx != column {
			t.Errorf("annotation column %d != %d in line %q", idx, column, line)
		}
	}

	helpLine := lines[len(lines)-1]
	if idx := strings.Index(helpLine, "- show this help text"); idx != column {
		t.Errorf("help line dash at column %d, annotations at %d", idx, column)
	}
}

func TestHelpTextAlignmentDrivenByHelpLabel(t *testing.T) {
	plainText(t)

	// The help-flag label (--help, -h = 10 chars) is the longest label here,
	// so it must drive the shared column width.
	def := Definition{
		Description: "tiny",
		Arguments:   []Argument{{Name: "x", Description: "the x"}},
	}
	lines := strings.Split(HelpText(def), "\n")

	argLine := lines[2]
	helpLine := lines[len(lines)-1]

	annotation := strings.Index(argLine, "(required)")
	dash := strings.Index(helpLine, "- show this help text")
	if annotation != dash {
		t.Errorf("annotation at %d, help dash at %d; expected same column", annotation, dash)
	}
	if annotation != len("--help, -h")+4 {
		t.Errorf("column %d not driven by help-flag label", annotation)
	}
}

func TestHelpTextEmptyArguments(t *testing.T) {
	plainText(t)

	def := Definition{Description: "bare script"}
	got := HelpText(def)

	expected := "bare script\nArguments:\n\n--help, -h    - show this help text"
	if got != expected {
		t.Errorf("empty-argument help text mismatch:\ngot:\n%q\nwant:\n%q", got, expected)
	}
}

func TestHelpTextCustomHelpFlags(t *testing.T) {
	plainText(t)

	def := Definition{
		Description: "custom",
		HelpFlags:   &HelpFlags{Long: "usage", Short: "u"},
	}
	got := HelpText(def)
	if !strings.Contains(got, "--usage, -u") {
		t.Errorf("custom help flags not rendered: %q", got)
	}
	if strings.Contains(got, "--help") {
		t.Errorf("default help flag leaked into custom rendering: %q", got)
	}
}

func TestHelpTextLongShortFormOmitted(t *testing.T) {
	plainText(t)

	def := Definition{
		Description: "long only",
		HelpFlags:   &HelpFlags{Long: "help"},
	}
	got := HelpText(def)
	if !strings.HasSuffix(got, "--help    - show this help text") {
		t.Errorf("help line with no short form mismatch: %q", got)
	}
}

func TestHelpTextStylingIsStrippable(t *testing.T) {
	previous := color.NoColor
	t.Cleanup(func() { color.NoColor = previous })

	color.NoColor = true
	plain := HelpText(testDefinition())
	color.NoColor = false
	styled := HelpText(testDefinition())

	// Styling decorates only; removing escape sequences must recover the
	// plain rendering exactly.
	stripped := stripANSI(styled)
	if stripped != plain {
		t.Errorf("styling altered characters:\nstripped:\n%q\nplain:\n%q", stripped, plain)
	}
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			i = j
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
