// Package validation provides structural validation of documents and requests.
package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

const (
	// ProfileDefinitionSchema validates profile definition documents.
	ProfileDefinitionSchema = "profile-definition.schema.json"
	// MetamodelSchema validates persisted metamodel documents.
	MetamodelSchema = "metamodel.schema.json"
)

// SchemaValidator validates JSON documents against the embedded schemas.
// Schemas are compiled on first use and cached.
type SchemaValidator struct {
	mu       sync.Mutex
	compiled map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a new schema validator.
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{compiled: make(map[string]*jsonschema.Schema)}
}

// ValidateDefinition validates an encoded profile definition.
func (v *SchemaValidator) ValidateDefinition(data []byte) error {
	return v.validate(ProfileDefinitionSchema, data)
}

// ValidateMetamodel validates an encoded metamodel.
func (v *SchemaValidator) ValidateMetamodel(data []byte) error {
	return v.validate(MetamodelSchema, data)
}

func (v *SchemaValidator) validate(name string, data []byte) error {
	schema, err := v.schema(name)
	if err != nil {
		return err
	}

	doc, err := decodeInstance(data)
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return formatSchemaValidationError(validationErr)
		}
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// decodeInstance decodes data for validation. Numbers stay json.Number so
// large integers are checked exactly.
func decodeInstance(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return doc, nil
}

func (v *SchemaValidator) schema(name string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if schema, ok := v.compiled[name]; ok {
		return schema, nil
	}

	raw, err := schemaFiles.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", name, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	v.compiled[name] = schema
	return schema, nil
}

// formatSchemaValidationError formats a JSON Schema validation error into a readable message.
func formatSchemaValidationError(err *jsonschema.ValidationError) error {
	var messages []string

	var collectErrors func(*jsonschema.ValidationError)
	collectErrors = func(e *jsonschema.ValidationError) {
		if e.Message != "" && len(e.Causes) == 0 {
			location := readableLocation(e.InstanceLocation)
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}

		for _, cause := range e.Causes {
			collectErrors(cause)
		}
	}

	collectErrors(err)

	if len(messages) == 0 {
		return fmt.Errorf("validation failed")
	}

	return fmt.Errorf("schema validation failed:\n    - %s", strings.Join(messages, "\n    - "))
}

// readableLocation undoes the percent-escaping of an instance location,
// so "/%2A/profileList" reads "/*/profileList".
func readableLocation(location string) string {
	if unescaped, err := url.PathUnescape(location); err == nil {
		return unescaped
	}
	return location
}
