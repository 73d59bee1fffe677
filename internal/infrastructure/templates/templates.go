// Package templates provides the metamodel templates used on first run and
// when re-templating an existing metamodel.
package templates

import (
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
	"github.com/reglet-dev/metamodelgen/internal/domain/values"
)

//go:embed data/*.json
var templateFiles embed.FS

var embeddedNames = map[values.Shape]string{
	values.ShapeV1: "data/template-1.0.json",
	values.ShapeV2: "data/template-2.0.json",
}

// Overrides are optional template paths replacing the embedded templates.
type Overrides struct {
	V1 string
	V2 string
}

func (o Overrides) path(shape values.Shape) string {
	switch shape {
	case values.ShapeV1:
		return o.V1
	case values.ShapeV2:
		return o.V2
	default:
		return ""
	}
}

// Provider supplies templates, preferring configured override files.
type Provider struct {
	overrides Overrides
}

// NewProvider creates a new template provider.
func NewProvider(overrides Overrides) *Provider {
	return &Provider{overrides: overrides}
}

// Template returns a freshly decoded template of shape.
func (p *Provider) Template(ctx context.Context, shape values.Shape) (entities.Metamodel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, source, err := p.read(shape)
	if err != nil {
		return nil, err
	}

	doc, err := entities.DecodeMetamodelAs(data, shape)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", source, err)
	}
	if got := doc.Head().SchemaVersion.Shape(); got != shape {
		return nil, fmt.Errorf("template %s has schemaVersion %q (%s), expected a %s template",
			source, doc.Head().SchemaVersion, got, shape)
	}
	return doc, nil
}

func (p *Provider) read(shape values.Shape) ([]byte, string, error) {
	if path := p.overrides.path(shape); path != "" {
		//nolint:gosec // G304: template path comes from the project config
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, path, fmt.Errorf("reading %s template: %w", shape, err)
		}
		return data, path, nil
	}

	data, err := Embedded(shape)
	if err != nil {
		return nil, "", err
	}
	return data, embeddedNames[shape], nil
}

// Embedded returns the bytes of the built-in template for shape.
func Embedded(shape values.Shape) ([]byte, error) {
	name, ok := embeddedNames[shape]
	if !ok {
		return nil, fmt.Errorf("no template for shape %s", shape)
	}
	data, err := templateFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}
	return data, nil
}
