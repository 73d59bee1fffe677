// Package config provides infrastructure for loading profile definitions.
// This package handles file I/O, format normalization and structural validation.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/jsonc"

	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
)

// Format is the on-disk encoding of a profile definition.
type Format string

const (
	// FormatJSON is JSON, optionally with comments and trailing commas.
	FormatJSON Format = "json"
	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the format from the file extension.
// Anything that is not .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DefinitionValidator validates an encoded definition before it is decoded.
type DefinitionValidator interface {
	ValidateDefinition(data []byte) error
}

// DefinitionLoader loads profile definitions from disk.
type DefinitionLoader struct {
	validator DefinitionValidator
}

// NewDefinitionLoader creates a new definition loader. A nil validator skips
// schema validation.
func NewDefinitionLoader(validator DefinitionValidator) *DefinitionLoader {
	return &DefinitionLoader{validator: validator}
}

// LoadDefinition loads and parses the profile definition at path.
func (l *DefinitionLoader) LoadDefinition(ctx context.Context, path string) (entities.ProfileDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Security: Use os.OpenRoot to prevent path traversal attacks
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open definition directory: %w", err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	file, err := root.Open(base)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile definition: %w", err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	return l.LoadDefinitionFromReader(file, FormatFromPath(path))
}

// LoadDefinitionFromReader parses a profile definition from r.
func (l *DefinitionLoader) LoadDefinitionFromReader(r io.Reader, format Format) (entities.ProfileDefinition, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile definition: %w", err)
	}

	data, err := normalize(raw, format)
	if err != nil {
		return nil, err
	}

	if l.validator != nil {
		if err := l.validator.ValidateDefinition(data); err != nil {
			return nil, fmt.Errorf("profile definition is invalid: %w", err)
		}
	}

	var def entities.ProfileDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to decode profile definition: %w", err)
	}
	if def == nil {
		return nil, fmt.Errorf("profile definition is empty")
	}
	return def, nil
}

// normalize converts raw input to plain JSON.
func normalize(raw []byte, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.YAMLToJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode profile definition YAML: %w", err)
		}
		return data, nil
	case FormatJSON:
		return jsonc.ToJSON(raw), nil
	default:
		return nil, fmt.Errorf("unsupported definition format: %s", format)
	}
}
