// Package repositories defines interfaces for domain persistence.
package repositories

import (
	"context"

	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
)

// StoredMetamodel is a persisted metamodel together with its stored bytes.
type StoredMetamodel struct {
	Document entities.Metamodel
	Raw      []byte
}

// MetamodelRepository defines the interface for persisting metamodel documents.
type MetamodelRepository interface {
	// Load retrieves the metamodel stored at location.
	// It returns (nil, nil) when nothing is stored there yet.
	Load(ctx context.Context, location string) (*StoredMetamodel, error)

	// Save replaces the document at location with data.
	// A failed save leaves the previous document in place.
	Save(ctx context.Context, location string, data []byte) error
}
