package services

import (
	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
	"github.com/reglet-dev/metamodelgen/internal/domain/values"
)

// SchemaSelector chooses the merge strategy for a run.
type SchemaSelector struct{}

// NewSchemaSelector creates a new schema selector.
func NewSchemaSelector() *SchemaSelector {
	return &SchemaSelector{}
}

// Select returns V2 when there is no existing metamodel, otherwise the shape
// its schemaVersion maps to. It never fails.
func (s *SchemaSelector) Select(existing entities.Metamodel) values.Shape {
	if existing == nil {
		return values.ShapeV2
	}
	return existing.Head().SchemaVersion.Shape()
}
