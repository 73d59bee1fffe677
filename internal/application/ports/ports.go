// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"io"

	"github.com/reglet-dev/metamodelgen/internal/application/dto"
	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
	"github.com/reglet-dev/metamodelgen/internal/domain/repositories"
	"github.com/reglet-dev/metamodelgen/internal/domain/values"
	"github.com/reglet-dev/metamodelgen/internal/infrastructure/system"
)

// MetamodelRepository is the persistence port for metamodel documents.
type MetamodelRepository = repositories.MetamodelRepository

// ProfileDefinitionLoader loads profile definitions from storage.
type ProfileDefinitionLoader interface {
	LoadDefinition(ctx context.Context, path string) (entities.ProfileDefinition, error)
}

// TemplateProvider supplies metamodel templates.
// Every call returns a fresh document the caller may mutate.
type TemplateProvider interface {
	Template(ctx context.Context, shape values.Shape) (entities.Metamodel, error)
}

// DocumentEncoder renders a metamodel in its persisted form.
type DocumentEncoder interface {
	Encode(doc entities.Metamodel) ([]byte, error)
}

// ChangeDetector compares two encoded documents for semantic equality.
type ChangeDetector interface {
	Equivalent(a, b []byte) (bool, error)
}

// DiagnosticsReporter reports soft failures to the operator.
type DiagnosticsReporter interface {
	ReportMismatch(mismatch *dto.ProfileMismatch) error
}

// RequestValidator validates request DTOs.
type RequestValidator interface {
	ValidateRequest(req any) error
}

// SystemConfigProvider loads system configuration.
type SystemConfigProvider interface {
	LoadConfig(ctx context.Context, path string) (*system.Config, error)
}

// OutputFormatter formats inspection results.
type OutputFormatter interface {
	Format(result *dto.InspectMetamodelResponse) error
}

// FormatterOptions configures output formatters.
type FormatterOptions struct {
	// Indent pretty-prints structured formats.
	Indent bool
	// Color enables ANSI colors in the table format.
	Color bool
}

// OutputFormatterFactory creates formatters by name.
type OutputFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (OutputFormatter, error)
	SupportedFormats() []string
}
