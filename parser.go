// parser.go: Built-in raw-token parser for Lyra
//
// This file provides the default parser turning a raw argument list into
// the ParsedArgs mapping. It follows POSIX-ish double/single-dash
// conventions: flagged tokens become string values (or boolean true when
// no value follows), everything else lands under the positional key.
//
// The parser is deliberately permissive: unrecognized flags are kept as-is
// so the orchestrator can inspect them, and short-name keys survive until
// normalization. Callers needing typed, declared parsing should use the
// flash-flags bridge in flagset.go instead.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package lyra

import "strings"

// ParseOptions configures the built-in token parser.
type ParseOptions struct {
	// Aliases maps alternate flag spellings to a canonical key.
	Aliases map[string]string

	// BoolKeys lists flags that never consume a following token.
	BoolKeys []string

	// Defaults seeds the mapping before any token is read.
	Defaults map[string]interface{}
}

func (o *ParseOptions) canonical(name string) string {
	if o == nil {
		return name
	}
	if target, ok := o.Aliases[name]; ok {
		return target
	}
	return name
}

func (o *ParseOptions) isBool(name string) bool {
	if o == nil {
		return false
	}
	for _, key := range o.BoolKeys {
		if key == name {
			return true
		}
	}
	return false
}

// Parse converts a raw argument list into a ParsedArgs mapping.
//
// Supported token shapes:
//   - "--name=value" and "-n=value"
//   - "--name value" and "-n value" (value must not start with a dash)
//   - "--name" and "-n" as boolean true
//   - "--" terminates flag parsing; the rest are positionals
//   - anything else is a positional token
//
// The mapping always contains PositionalKey, holding a non-nil []string.
func Parse(args []string, opts *ParseOptions) ParsedArgs {
	values := ParsedArgs{}
	if opts != nil {
		for key, value := range opts.Defaults {
			values[key] = value
		}
	}

	positionals := []string{}
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}

		var name string
		switch {
		case strings.HasPrefix(arg, "--"):
			name = arg[2:]
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			name = arg[1:]
		default:
			positionals = append(positionals, arg)
			continue
		}

		if eq := strings.IndexByte(name, '='); eq >= 0 {
			values[opts.canonical(name[:eq])] = name[eq+1:]
			continue
		}

		key := opts.canonical(name)
		if !opts.isBool(key) && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			values[key] = args[i+1]
			i++
			continue
		}
		values[key] = true
	}

	values[PositionalKey] = positionals
	return values
}
