// definition_loader.go: File-based definition loading for Lyra
//
// Script authors can keep argument declarations next to their scripts in
// YAML or JSON instead of building them in code. Loaded definitions carry
// declarative pattern rules only; programmatic rules stay in code.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package lyra

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agilira/go-errors"
	"go.yaml.in/yaml/v3"
)

// LoadDefinition reads an argument definition from a YAML (.yml, .yaml) or
// JSON (.json) file and validates it. The returned definition is ready for
// Check or ValidateArgs.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- definition files are caller-chosen by design
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(ErrCodeDefinitionNotFound,
				fmt.Sprintf("definition file does not exist: %s", path))
		}
		return nil, errors.Wrap(err, ErrCodeIOError, "failed to read definition file")
	}

	var def Definition
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, errors.Wrap(err, ErrCodeInvalidDefinition, "invalid YAML definition")
		}
	case ".json":
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, errors.Wrap(err, ErrCodeInvalidDefinition, "invalid JSON definition")
		}
	default:
		return nil, errors.New(ErrCodeUnsupportedFormat,
			fmt.Sprintf("unsupported definition format: %s", filepath.Ext(path)))
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}
