// validator.go: Per-argument validation for Lyra
//
// This file implements the single-argument validation contract: resolve the
// current value (long name first, short name fallback), resolve the rule
// (caller-supplied, declarative pattern, or the default presence check),
// and emit a diagnostic on the error channel only when the rule rejects.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package lyra

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/fatih/color"
)

// requiredMessage is the fixed diagnostic for the default rule.
const requiredMessage = "is a required argument"

var diagnosticColor = color.New(color.FgRed)

// ValidationRule decides whether a parsed value satisfies an argument.
// The value is the raw parser output: string, bool, or nil when the
// argument was not supplied at all.
type ValidationRule interface {
	Validate(value interface{}) bool
}

// RuleFunc adapts a plain function to the ValidationRule interface.
type RuleFunc func(value interface{}) bool

// Validate implements ValidationRule.
func (f RuleFunc) Validate(value interface{}) bool { return f(value) }

// requiredRule is the default rule: a value passes when it is truthy, or
// when the argument is explicitly optional.
type requiredRule struct {
	optional bool
}

func (r requiredRule) Validate(value interface{}) bool {
	return truthy(value) || r.optional
}

// patternRule validates a string value against a regular expression.
// An absent value passes only for optional arguments; non-string values
// never match.
type patternRule struct {
	expr     string
	optional bool
}

func (p patternRule) Validate(value interface{}) bool {
	if value == nil {
		return p.optional
	}
	text, ok := value.(string)
	if !ok {
		return false
	}
	matched, err := regexp.MatchString(p.expr, text)
	return err == nil && matched
}

// truthy reports whether a parsed value counts as present-and-usable.
// nil (absent), false, and the empty string are falsy; everything else
// is truthy.
func truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	default:
		return true
	}
}

// rule resolves the validation rule to apply for this argument.
func (a Argument) rule() ValidationRule {
	if a.Rule != nil {
		return a.Rule
	}
	if a.Pattern != "" {
		return patternRule{expr: a.Pattern, optional: a.Optional}
	}
	return requiredRule{optional: a.Optional}
}

// failureMessage resolves the diagnostic for a rejected value.
func (a Argument) failureMessage(value interface{}) string {
	if a.InvalidMessage != nil {
		return a.InvalidMessage(value)
	}
	if a.Rule == nil && a.Pattern != "" && value != nil {
		return fmt.Sprintf("must match pattern %s", a.Pattern)
	}
	return requiredMessage
}

// lookupValue resolves the current value for an argument: the long-name
// key wins, the short-name key is the fallback, nil marks absence.
func lookupValue(values ParsedArgs, arg Argument) interface{} {
	if value, ok := values[arg.Name]; ok {
		return value
	}
	if arg.ShortName != "" {
		if value, ok := values[arg.ShortName]; ok {
			return value
		}
	}
	return nil
}

// ValidateArgument checks a single parsed argument against its declaration.
// On rejection it writes a diagnostic combining the argument's long name
// and the resolved message to stderr and returns false. Nothing is emitted
// on success. Usable standalone for custom validation flows.
func ValidateArgument(values ParsedArgs, arg Argument) bool {
	return validateArgumentTo(os.Stderr, values, arg)
}

func validateArgumentTo(w io.Writer, values ParsedArgs, arg Argument) bool {
	value := lookupValue(values, arg)
	if arg.rule().Validate(value) {
		return true
	}
	fmt.Fprintf(w, "%s %s\n", diagnosticColor.Sprint(arg.Name), arg.failureMessage(value))
	return false
}
