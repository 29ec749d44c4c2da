// flagset.go: FlashFlags integration for Lyra
//
// Bridges Lyra declarations with the FlashFlags parser, for scripts that
// want typed, declared flag parsing but Lyra's validation and help text.
// NewFlagSet registers declared arguments on a FlagSet; FromFlagSet turns
// a parsed FlagSet back into the ParsedArgs mapping the orchestrator
// consumes.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package lyra

import (
	flashflags "github.com/agilira/flash-flags"
)

// NewFlagSet builds a FlashFlags set from the declared arguments. Every
// argument is registered as a string flag with its description as usage;
// type coercion stays with the caller, matching Lyra's raw-string model.
func NewFlagSet(name string, def Definition) *flashflags.FlagSet {
	fs := flashflags.New(name)
	if def.Description != "" {
		fs.SetDescription(def.Description)
	}
	for _, arg := range def.Arguments {
		fs.String(arg.Name, "", arg.Description)
	}
	return fs
}

// FromFlagSet converts a parsed FlagSet into a ParsedArgs mapping. Only
// flags the user actually set are carried over, so absent arguments stay
// absent for the default validation rule. FlashFlags normalizes short
// forms itself, so the mapping contains long-name keys only.
func FromFlagSet(fs *flashflags.FlagSet) ParsedArgs {
	values := ParsedArgs{PositionalKey: []string{}}
	fs.VisitAll(func(f *flashflags.Flag) {
		if f.Changed() {
			values[f.Name()] = f.Value()
		}
	})
	return values
}
