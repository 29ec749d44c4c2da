// Package lyra provides declarative command-line argument validation and
// consistently formatted help text for short, single-purpose scripts.
//
// Lyra is the small sibling of a full CLI framework: no subcommand trees,
// no type coercion, no prompts. A script declares the arguments it
// accepts, Lyra validates user input against that declaration, normalizes
// short names into their long-name slots, and renders aligned help text on
// demand or on failure.
//
// # Declaring and validating
//
// The common path is one call that either returns the validated values or
// ends the process, so a script never runs past invalid input:
//
//	values := lyra.ValidateArgs(lyra.Options{
//		Args: os.Args[1:],
//		Definition: lyra.Definition{
//			Description: "resizes images in a directory",
//			Arguments: []lyra.Argument{
//				{Name: "input", ShortName: "i", Description: "source directory"},
//				{Name: "width", Description: "target width in pixels", Pattern: `^\d+$`},
//				{Name: "verbose", Description: "log every file", Optional: true},
//			},
//		},
//	})
//
// A present --help or -h shows help and exits 0; a failed validation
// prints the diagnostic for the first failing argument followed by the
// full help text and exits 1. An optional Cleanup hook runs exactly once
// before any halt.
//
// # Embedding without termination
//
// Hosts that cannot tolerate os.Exit use Check, which returns a tagged
// Outcome instead of terminating:
//
//	outcome := lyra.Check(opts)
//	if outcome.Halted {
//		return outcome.Status
//	}
//	use(outcome.Values)
//
// # Custom rules
//
// Validation defaults to a presence check (required arguments must carry a
// truthy value). Declarations can override it with a ValidationRule, a
// RuleFunc, or a declarative regexp Pattern; the pattern form survives
// loading definitions from YAML or JSON files via LoadDefinition.
//
// # Invocation auditing
//
// Operational scripts can record every validation run (help shown,
// argument failed, run validated) through an AuditLogger backed by SQLite
// or JSONL; see AuditConfig.
//
// # FlashFlags integration
//
// NewFlagSet and FromFlagSet bridge Lyra declarations with the FlashFlags
// parser for scripts that want typed, declared parsing with Lyra's
// validation and help rendering on top.
//
// Repository: https://github.com/agilira/lyra
package lyra
