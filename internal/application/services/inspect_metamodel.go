package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/reglet-dev/metamodelgen/internal/application/dto"
	apperrors "github.com/reglet-dev/metamodelgen/internal/application/errors"
	"github.com/reglet-dev/metamodelgen/internal/application/ports"
	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
	"github.com/reglet-dev/metamodelgen/internal/domain/services"
)

// InspectMetamodelUseCase decodes the masks of a persisted metamodel back
// into profile codes.
type InspectMetamodelUseCase struct {
	metamodels ports.MetamodelRepository
	validator  ports.RequestValidator
	viewer     *services.UseCaseViewer
	logger     *slog.Logger
}

// NewInspectMetamodelUseCase creates a new inspect metamodel use case.
func NewInspectMetamodelUseCase(
	metamodels ports.MetamodelRepository,
	validator ports.RequestValidator,
	logger *slog.Logger,
) *InspectMetamodelUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &InspectMetamodelUseCase{
		metamodels: metamodels,
		validator:  validator,
		viewer:     services.NewUseCaseViewer(),
		logger:     logger,
	}
}

// Execute loads, decodes and filters the metamodel named by req.
func (uc *InspectMetamodelUseCase) Execute(ctx context.Context, req dto.InspectMetamodelRequest) (*dto.InspectMetamodelResponse, error) {
	startTime := time.Now()

	if err := uc.validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	filter, err := uc.buildFilter(req.Filters)
	if err != nil {
		return nil, err
	}

	stored, err := uc.metamodels.Load(ctx, req.MetamodelPath)
	if err != nil {
		return nil, apperrors.NewValidationError("metamodel", "failed to load metamodel", err.Error())
	}
	if stored == nil {
		return nil, apperrors.NewValidationError("metamodel", fmt.Sprintf("no metamodel at %s", req.MetamodelPath))
	}

	doc := stored.Document
	entries, err := uc.viewer.Entries(doc)
	if err != nil {
		return nil, apperrors.NewValidationError("metamodel", "cannot decode use case masks", err.Error())
	}

	resp := &dto.InspectMetamodelResponse{
		Shape:         doc.Shape().String(),
		SchemaVersion: doc.Head().SchemaVersion.String(),
		Code:          doc.Head().Code,
		Profiles:      entities.ProfileCodes(doc.Profiles()),
		UseCases:      make([]dto.UseCaseView, 0, len(entries)),
		Total:         len(entries),
	}

	for _, entry := range entries {
		if len(entry.UnassignedSlots) > 0 {
			resp.Diagnostics.Warnings = append(resp.Diagnostics.Warnings,
				fmt.Sprintf("use case %s sets slots %v beyond the profile list", entry.Key, entry.UnassignedSlots))
		}

		if ok, reason := filter.Matches(entry); !ok {
			uc.logger.Debug("use case filtered", "key", entry.Key, "reason", reason)
			continue
		}

		resp.UseCases = append(resp.UseCases, dto.UseCaseView{
			Key:      entry.Key,
			UseCase:  entry.UseCase,
			Masks:    entry.Masks,
			Profiles: entry.Profiles,
		})
	}

	resp.Metadata = dto.ResponseMetadata{
		RequestID:   req.Metadata.RequestID,
		ProcessedAt: time.Now(),
		Duration:    time.Since(startTime),
	}
	return resp, nil
}

func (uc *InspectMetamodelUseCase) buildFilter(opts dto.FilterOptions) (*services.UseCaseFilter, error) {
	filter := services.NewUseCaseFilter().WithProfiles(opts.Profiles)
	if opts.FilterExpression != "" {
		program, err := services.CompileFilterExpression(opts.FilterExpression)
		if err != nil {
			return nil, apperrors.NewValidationError("filter", "invalid filter expression", err.Error())
		}
		filter.WithFilterExpression(program)
	}
	return filter, nil
}
