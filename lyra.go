// lyra: Declarative argument validation and help text for single-purpose scripts
//
// Philosophy:
// - Minimal dependencies (AGILira ecosystem: go-errors, go-timecache, flash-flags)
// - Declarations are data, owned by the script author and never mutated here
// - One call is one linear run ending in a returned mapping or a halt
// - Help text is deterministic and byte-identical across calls
//
// Example Usage:
//   values := lyra.ValidateArgs(lyra.Options{
//       Args: os.Args[1:],
//       Definition: lyra.Definition{
//           Description: "uploads a build artifact",
//           Arguments: []lyra.Argument{
//               {Name: "target", ShortName: "t", Description: "deployment target"},
//               {Name: "dry-run", Description: "print actions only", Optional: true},
//           },
//       },
//   })
//
//   target := values["target"].(string)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package lyra

import (
	"fmt"
	"io"
	"os"
)

// Error codes for Lyra operations
const (
	ErrCodeInvalidDefinition  = "LYRA_INVALID_DEFINITION"
	ErrCodeEmptyArgumentName  = "LYRA_EMPTY_ARGUMENT_NAME"
	ErrCodeDuplicateArgument  = "LYRA_DUPLICATE_ARGUMENT"
	ErrCodeInvalidShortName   = "LYRA_INVALID_SHORT_NAME"
	ErrCodeInvalidPattern     = "LYRA_INVALID_PATTERN"
	ErrCodeInvalidHelpFlags   = "LYRA_INVALID_HELP_FLAGS"
	ErrCodeValidationFailed   = "LYRA_VALIDATION_FAILED"
	ErrCodeDefinitionNotFound = "LYRA_DEFINITION_NOT_FOUND"
	ErrCodeUnsupportedFormat  = "LYRA_UNSUPPORTED_FORMAT"
	ErrCodeInvalidAuditConfig = "LYRA_INVALID_AUDIT_CONFIG"
	ErrCodeIOError            = "LYRA_IO_ERROR"
)

// PositionalKey is the reserved mapping key holding leftover positional
// tokens as a []string. It is never a valid argument name.
const PositionalKey = "_"

// ParsedArgs is the runtime key/value mapping produced by a token parser
// and normalized by the orchestrator. Values are string, bool, or absent.
type ParsedArgs map[string]interface{}

// Positionals returns the leftover positional tokens, never nil.
func (p ParsedArgs) Positionals() []string {
	if rest, ok := p[PositionalKey].([]string); ok {
		return rest
	}
	return []string{}
}

// HelpFlags is the pair of reserved flag names that trigger help display
// instead of validation. Short may be empty to disable the short form.
type HelpFlags struct {
	Long  string `yaml:"long" json:"long"`
	Short string `yaml:"short" json:"short"`
}

// DefaultHelpFlags is used when a Definition declares no help flags.
var DefaultHelpFlags = HelpFlags{Long: "help", Short: "h"}

// Argument declares a single named argument a script accepts.
//
// Arguments are required unless Optional is set, mirroring the common case
// for single-purpose scripts. Rule overrides the default presence check;
// Pattern is the declarative alternative for file-loaded definitions and
// is ignored when Rule is set. InvalidMessage, when set, receives the
// offending value and produces the diagnostic shown on failure.
type Argument struct {
	Name        string `yaml:"name" json:"name"`
	ShortName   string `yaml:"short" json:"short,omitempty"`
	Description string `yaml:"description" json:"description"`
	Optional    bool   `yaml:"optional" json:"optional,omitempty"`
	Pattern     string `yaml:"pattern" json:"pattern,omitempty"`

	Rule           ValidationRule                `yaml:"-" json:"-"`
	InvalidMessage func(value interface{}) string `yaml:"-" json:"-"`
}

// Definition declares the full argument surface of one script.
type Definition struct {
	Description string     `yaml:"description" json:"description"`
	Arguments   []Argument `yaml:"arguments" json:"arguments"`
	HelpFlags   *HelpFlags `yaml:"help_flags" json:"help_flags,omitempty"`

	// RequireArgs makes an empty invocation show help and halt cleanly,
	// for scripts that cannot do anything useful without input.
	RequireArgs bool `yaml:"require_args" json:"require_args,omitempty"`
}

// helpFlags resolves the configured help-flag pair, falling back to the
// default --help/-h pair when none is declared.
func (d *Definition) helpFlags() HelpFlags {
	if d.HelpFlags == nil || d.HelpFlags.Long == "" {
		return DefaultHelpFlags
	}
	return *d.HelpFlags
}

// Options configures a single validation run.
type Options struct {
	// Args is the raw argument list, typically os.Args[1:].
	Args []string

	// Definition declares the accepted arguments.
	Definition Definition

	// ParseOptions is passed through to the token parser.
	ParseOptions *ParseOptions

	// Parser overrides the built-in token parser. Any parser honoring the
	// ParsedArgs contract (PositionalKey, long/short keys) can be used.
	Parser func(args []string, opts *ParseOptions) ParsedArgs

	// Cleanup, when set, runs exactly once before any halt (help shown or
	// validation failed). It never runs on the successful return path.
	Cleanup func()

	// Audit, when set, records the run outcome to the audit trail.
	Audit *AuditLogger

	// Stdout and Stderr default to os.Stdout and os.Stderr. Help text goes
	// to Stdout, per-argument diagnostics to Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Outcome is the terminal result of a validation run. Either the run
// proceeds with a normalized mapping, or it halts with an exit status.
type Outcome struct {
	Halted bool
	Status int
	Values ParsedArgs
}

// Check runs the full validation cycle without terminating the process:
// parse, help gate, per-argument validation in declaration order, and
// short-to-long name normalization.
//
// The help gate takes precedence over validation: an empty invocation with
// RequireArgs set, or a present help flag (long or short), renders help on
// Stdout and halts with status 0. The validation loop stops at the first
// failing argument, emits its diagnostic on Stderr followed by the full
// help text on Stdout, and halts with status 1.
//
// Callers embedding Lyra should use Check and act on the Outcome;
// ValidateArgs is the terminating wrapper for plain scripts.
func Check(opts Options) Outcome {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	parse := opts.Parser
	if parse == nil {
		parse = Parse
	}

	def := opts.Definition
	values := parse(opts.Args, opts.ParseOptions)

	flags := def.helpFlags()
	_, helpLong := values[flags.Long]
	helpShort := false
	if flags.Short != "" {
		_, helpShort = values[flags.Short]
	}

	if (len(opts.Args) == 0 && def.RequireArgs) || helpLong || helpShort {
		fmt.Fprintln(stdout, HelpText(def))
		opts.Audit.LogHelpShown(def.Description)
		runCleanup(opts.Cleanup)
		return Outcome{Halted: true, Status: 0, Values: values}
	}

	for _, arg := range def.Arguments {
		if !validateArgumentTo(stderr, values, arg) {
			fmt.Fprintln(stdout, HelpText(def))
			opts.Audit.LogValidationFailure(def.Description, arg.Name)
			runCleanup(opts.Cleanup)
			return Outcome{Halted: true, Status: 1, Values: values}
		}

		// Normalize: the long name becomes the only key for this argument.
		value := lookupValue(values, arg)
		if arg.ShortName != "" {
			delete(values, arg.ShortName)
		}
		if value != nil {
			values[arg.Name] = value
		}
	}

	opts.Audit.LogValidated(def.Description, len(def.Arguments))
	return Outcome{Values: values}
}

// ValidateArgs is the terminating entry point for scripts. It runs Check
// and exits the process when the run halts (status 0 after help, status 1
// after a validation failure), so a calling script never proceeds past
// invalid input. On success it returns the normalized mapping.
func ValidateArgs(opts Options) ParsedArgs {
	outcome := Check(opts)
	if outcome.Halted {
		os.Exit(outcome.Status)
	}
	return outcome.Values
}

// runCleanup invokes the caller's cleanup hook at most once, tolerating nil.
func runCleanup(cleanup func()) {
	if cleanup != nil {
		cleanup()
	}
}
