// Package memory provides in-memory implementations of domain repositories.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
	"github.com/reglet-dev/metamodelgen/internal/domain/repositories"
)

// Ensure interface compliance
var _ repositories.MetamodelRepository = (*MetamodelRepository)(nil)

// MetamodelRepository is an in-memory implementation of MetamodelRepository.
// Useful for testing and dry runs.
type MetamodelRepository struct {
	documents map[string][]byte
	saves     int
	mu        sync.RWMutex
}

// NewMetamodelRepository creates a new in-memory repository.
func NewMetamodelRepository() *MetamodelRepository {
	return &MetamodelRepository{
		documents: make(map[string][]byte),
	}
}

// Put stores data at location without counting it as a save.
func (r *MetamodelRepository) Put(location string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.documents[location] = append([]byte(nil), data...)
}

// Load retrieves the metamodel stored at location.
func (r *MetamodelRepository) Load(_ context.Context, location string) (*repositories.StoredMetamodel, error) {
	r.mu.RLock()
	data, ok := r.documents[location]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	doc, err := entities.DecodeMetamodel(data)
	if err != nil {
		return nil, fmt.Errorf("metamodel at %s: %w", location, err)
	}
	return &repositories.StoredMetamodel{
		Document: doc,
		Raw:      append([]byte(nil), data...),
	}, nil
}

// Save stores a copy of data at location.
func (r *MetamodelRepository) Save(_ context.Context, location string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.documents[location] = append([]byte(nil), data...)
	r.saves++
	return nil
}

// Get returns the bytes stored at location.
func (r *MetamodelRepository) Get(location string) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.documents[location]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// Saves returns how many times Save was called.
func (r *MetamodelRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

// Locations returns the stored locations in sorted order.
func (r *MetamodelRepository) Locations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	locations := make([]string, 0, len(r.documents))
	for loc := range r.documents {
		locations = append(locations, loc)
	}
	sort.Strings(locations)
	return locations
}
