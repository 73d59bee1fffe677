// Package services contains application use cases.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/reglet-dev/metamodelgen/internal/application/dto"
	apperrors "github.com/reglet-dev/metamodelgen/internal/application/errors"
	"github.com/reglet-dev/metamodelgen/internal/application/ports"
	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
	"github.com/reglet-dev/metamodelgen/internal/domain/repositories"
	"github.com/reglet-dev/metamodelgen/internal/domain/services"
	"github.com/reglet-dev/metamodelgen/internal/domain/values"
)

// highestKnownMajor is the newest schemaVersion major this tool understands.
const highestKnownMajor = 2

// GenerateMetamodelUseCase orchestrates one metamodel generation run.
// This is a pure application layer component that depends only on ports.
type GenerateMetamodelUseCase struct {
	definitions ports.ProfileDefinitionLoader
	metamodels  ports.MetamodelRepository
	templates   ports.TemplateProvider
	encoder     ports.DocumentEncoder
	changes     ports.ChangeDetector
	diagnostics ports.DiagnosticsReporter
	validator   ports.RequestValidator
	assembler   *services.MetamodelAssembler
	logger      *slog.Logger
}

// NewGenerateMetamodelUseCase creates a new generate metamodel use case.
func NewGenerateMetamodelUseCase(
	definitions ports.ProfileDefinitionLoader,
	metamodels ports.MetamodelRepository,
	templates ports.TemplateProvider,
	encoder ports.DocumentEncoder,
	changes ports.ChangeDetector,
	diagnostics ports.DiagnosticsReporter,
	validator ports.RequestValidator,
	logger *slog.Logger,
) *GenerateMetamodelUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &GenerateMetamodelUseCase{
		definitions: definitions,
		metamodels:  metamodels,
		templates:   templates,
		encoder:     encoder,
		changes:     changes,
		diagnostics: diagnostics,
		validator:   validator,
		assembler:   services.NewMetamodelAssembler(),
		logger:      logger,
	}
}

// Execute runs the complete generation workflow.
// The persisted metamodel is only replaced after every step succeeded.
func (uc *GenerateMetamodelUseCase) Execute(ctx context.Context, req dto.GenerateMetamodelRequest) (*dto.GenerateMetamodelResponse, error) {
	startTime := time.Now()

	if err := uc.validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	logger := uc.logger.With("request_id", req.Metadata.RequestID)

	// 1. Load inputs
	definition, stored, err := uc.loadInputs(ctx, req)
	if err != nil {
		return nil, err
	}

	var existing entities.Metamodel
	if stored != nil {
		existing = stored.Document
	}

	// 2. Select shape and template
	shape := uc.assembler.SelectShape(existing)
	warnings := schemaVersionWarnings(existing)
	for _, w := range warnings {
		logger.Warn(w, "path", req.MetamodelPath)
	}

	template, err := uc.templates.Template(ctx, shape)
	if err != nil {
		return nil, apperrors.NewConfigurationError("template", fmt.Sprintf("cannot load %s template", shape), err)
	}

	logger.Info("merging profile definition",
		"profiles", req.ProfilesPath,
		"metamodel", req.MetamodelPath,
		"shape", shape.String(),
		"existing", existing != nil)

	// 3. Assemble
	assembly, err := uc.assembler.Assemble(services.AssembleInput{
		Existing:   existing,
		Template:   template,
		Definition: definition,
		Mandatory:  req.MandatoryProfiles,
	})
	if err != nil {
		return nil, apperrors.NewGenerationError("assemble", "cannot merge profile definition", err)
	}

	resp := &dto.GenerateMetamodelResponse{
		Shape:       shape.String(),
		Diagnostics: dto.Diagnostics{Warnings: warnings},
	}

	if assembly.Mismatch != nil {
		resp.Mismatch = &dto.ProfileMismatch{
			Incoming:  assembly.Mismatch.Incoming,
			Persisted: assembly.Mismatch.Persisted,
		}
		logger.Warn("profiles are not same",
			"incoming", assembly.Mismatch.Incoming,
			"persisted", assembly.Mismatch.Persisted)
		if err := uc.diagnostics.ReportMismatch(resp.Mismatch); err != nil {
			logger.Debug("failed to report profile mismatch", "error", err)
		}
		return uc.finish(resp, req, startTime), nil
	}

	doc := assembly.Document
	resp.SchemaVersion = doc.Head().SchemaVersion.String()
	resp.ProfileCount = assembly.ProfileCount
	resp.UseCaseCount = assembly.UseCaseCount

	// 4. Encode and compare
	data, err := uc.encoder.Encode(doc)
	if err != nil {
		return nil, apperrors.NewGenerationError("encode", "cannot encode metamodel", err)
	}

	resp.Changed = true
	if stored != nil {
		same, err := uc.changes.Equivalent(stored.Raw, data)
		if err != nil {
			logger.Debug("change detection failed, assuming changed", "error", err)
		} else {
			resp.Changed = !same
		}
	}

	// 5. Persist
	switch {
	case req.Options.Check:
		logger.Info("check mode, metamodel not written", "changed", resp.Changed)
	case !resp.Changed:
		logger.Info("metamodel unchanged", "path", req.MetamodelPath)
	default:
		if err := uc.metamodels.Save(ctx, req.MetamodelPath, data); err != nil {
			return nil, apperrors.NewGenerationError("save", "cannot write metamodel", err)
		}
		resp.Written = true
		logger.Info("metamodel written",
			"path", req.MetamodelPath,
			"profiles", resp.ProfileCount,
			"use_cases", resp.UseCaseCount)
	}

	return uc.finish(resp, req, startTime), nil
}

// loadInputs reads the profile definition and the existing metamodel concurrently.
func (uc *GenerateMetamodelUseCase) loadInputs(
	ctx context.Context,
	req dto.GenerateMetamodelRequest,
) (entities.DomainProfiles, *repositories.StoredMetamodel, error) {
	var (
		definition entities.ProfileDefinition
		stored     *repositories.StoredMetamodel
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		def, err := uc.definitions.LoadDefinition(gctx, req.ProfilesPath)
		if err != nil {
			return apperrors.NewValidationError("profiles", "failed to load profile definition", err.Error())
		}
		definition = def
		return nil
	})
	g.Go(func() error {
		s, err := uc.metamodels.Load(gctx, req.MetamodelPath)
		if err != nil {
			return apperrors.NewValidationError("metamodel", "failed to load existing metamodel", err.Error())
		}
		stored = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return entities.DomainProfiles{}, nil, err
	}

	domain, err := definition.Wildcard()
	if err != nil {
		return entities.DomainProfiles{}, nil, apperrors.NewValidationError("profiles", "invalid profile definition", err.Error())
	}
	return domain, stored, nil
}

func (uc *GenerateMetamodelUseCase) finish(
	resp *dto.GenerateMetamodelResponse,
	req dto.GenerateMetamodelRequest,
	startTime time.Time,
) *dto.GenerateMetamodelResponse {
	resp.Metadata = dto.ResponseMetadata{
		RequestID:   req.Metadata.RequestID,
		ProcessedAt: time.Now(),
		Duration:    time.Since(startTime),
	}
	return resp
}

// schemaVersionWarnings flags versions the shape rule accepts only by fallback.
func schemaVersionWarnings(existing entities.Metamodel) []string {
	if existing == nil {
		return nil
	}

	version := existing.Head().SchemaVersion
	if version.IsEmpty() {
		return []string{"existing metamodel has no schemaVersion, merging as v2"}
	}

	sv, err := version.Semver()
	if err != nil {
		if version.Shape() == values.ShapeV2 {
			return []string{fmt.Sprintf("schemaVersion %q is not a semantic version, merging as v2", version)}
		}
		return nil
	}
	if sv.Major() > highestKnownMajor {
		return []string{fmt.Sprintf("schemaVersion %q is newer than v%d, merging as %s", version, highestKnownMajor, version.Shape())}
	}
	return nil
}
