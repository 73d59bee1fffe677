package services

import (
	"context"
	"errors"
	"sync"

	"github.com/reglet-dev/metamodelgen/internal/application/dto"
	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
	"github.com/reglet-dev/metamodelgen/internal/domain/repositories"
	"github.com/reglet-dev/metamodelgen/internal/domain/values"
)

// stubDefinitions serves fixed definitions by path.
type stubDefinitions map[string]entities.ProfileDefinition

func (s stubDefinitions) LoadDefinition(_ context.Context, path string) (entities.ProfileDefinition, error) {
	def, ok := s[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return def, nil
}

// recordingDiagnostics captures reported mismatches.
type recordingDiagnostics struct {
	mu         sync.Mutex
	mismatches []*dto.ProfileMismatch
}

func (r *recordingDiagnostics) ReportMismatch(m *dto.ProfileMismatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mismatches = append(r.mismatches, m)
	return nil
}

// failingTemplates always fails.
type failingTemplates struct{}

func (failingTemplates) Template(_ context.Context, _ values.Shape) (entities.Metamodel, error) {
	return nil, errors.New("template missing")
}

// failingSaves loads nothing and refuses every save.
type failingSaves struct{}

func (failingSaves) Load(_ context.Context, _ string) (*repositories.StoredMetamodel, error) {
	return nil, nil
}

func (failingSaves) Save(_ context.Context, _ string, _ []byte) error {
	return errors.New("disk full")
}
