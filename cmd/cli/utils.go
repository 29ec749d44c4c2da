// Utility functions for the Lyra CLI
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agilira/go-errors"
	"github.com/agilira/lyra"
	"github.com/agilira/orpheus/pkg/orpheus"
	"go.yaml.in/yaml/v3"
)

// loadDefinition loads and validates a definition file.
func (m *Manager) loadDefinition(path string) (*lyra.Definition, error) {
	if path == "" {
		return nil, errors.New(lyra.ErrCodeInvalidDefinition, "definition file path is required")
	}
	return lyra.LoadDefinition(path)
}

// loadDefinitionUnchecked parses a definition file without validating it,
// for commands that run their own validation pass.
func (m *Manager) loadDefinitionUnchecked(path string) (*lyra.Definition, error) {
	if path == "" {
		return nil, errors.New(lyra.ErrCodeInvalidDefinition, "definition file path is required")
	}

	data, err := os.ReadFile(path) // #nosec G304 -- tool operates on user-chosen files
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(lyra.ErrCodeDefinitionNotFound,
				fmt.Sprintf("definition file does not exist: %s", path))
		}
		return nil, errors.Wrap(err, lyra.ErrCodeIOError, "failed to read definition file")
	}

	var def lyra.Definition
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, errors.Wrap(err, lyra.ErrCodeInvalidDefinition, "invalid YAML definition")
		}
	case ".json":
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, errors.Wrap(err, lyra.ErrCodeInvalidDefinition, "invalid JSON definition")
		}
	default:
		return nil, errors.New(lyra.ErrCodeUnsupportedFormat,
			fmt.Sprintf("unsupported definition format: %s", filepath.Ext(path)))
	}
	return &def, nil
}

// remainingArgs collects positional arguments from start onward. Orpheus
// returns the empty string past the end of the argument list.
func remainingArgs(ctx *orpheus.Context, start int) []string {
	args := []string{}
	for i := start; ; i++ {
		arg := ctx.GetArg(i)
		if arg == "" {
			break
		}
		args = append(args, arg)
	}
	return args
}
