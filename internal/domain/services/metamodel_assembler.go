package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
	"github.com/reglet-dev/metamodelgen/internal/domain/values"
)

// defaultRoleProfileMasks is the role-tier entry of a use case with no prior state.
var defaultRoleProfileMasks = json.RawMessage(`["` + values.ZeroMask + `"]`)

// AssembleInput carries the already-parsed inputs of one run.
type AssembleInput struct {
	// Existing is the prior metamodel, nil on first run.
	Existing entities.Metamodel
	// Template is a fresh template of the selected shape. It becomes the result.
	Template   entities.Metamodel
	Definition entities.DomainProfiles
	Mandatory  []string
}

// Assembly is the outcome of a run. Document is nil when Mismatch is set.
type Assembly struct {
	Document     entities.Metamodel
	Mismatch     *ProfileMismatch
	ProfileCount int
	UseCaseCount int
}

// MetamodelAssembler merges a profile definition into a metamodel.
//
// Flow: select shape → restore prior header into the template → reconcile
// profiles → encode one mask per use case. The template is mutated in place
// and returned as the document; inputs other than the template are not
// modified.
type MetamodelAssembler struct {
	selector   *SchemaSelector
	reconciler *ProfileReconciler
	encoder    *MatrixEncoder
	merger     *HeaderMerger
}

// NewMetamodelAssembler creates a new metamodel assembler.
func NewMetamodelAssembler() *MetamodelAssembler {
	return &MetamodelAssembler{
		selector:   NewSchemaSelector(),
		reconciler: NewProfileReconciler(),
		encoder:    NewMatrixEncoder(),
		merger:     NewHeaderMerger(),
	}
}

// SelectShape exposes the schema selection so callers can load the matching template.
func (a *MetamodelAssembler) SelectShape(existing entities.Metamodel) values.Shape {
	return a.selector.Select(existing)
}

// Assemble builds the metamodel document for in.
func (a *MetamodelAssembler) Assemble(in AssembleInput) (*Assembly, error) {
	if in.Template == nil {
		return nil, fmt.Errorf("template is required")
	}

	shape := a.selector.Select(in.Existing)
	if in.Template.Shape() != shape {
		return nil, fmt.Errorf("template shape %s does not match selected shape %s", in.Template.Shape(), shape)
	}

	switch shape {
	case values.ShapeV1:
		return a.assembleV1(in)
	case values.ShapeV2:
		return a.assembleV2(in)
	default:
		return nil, fmt.Errorf("unsupported metamodel shape: %s", shape)
	}
}

func (a *MetamodelAssembler) assembleV1(in AssembleInput) (*Assembly, error) {
	doc := in.Template.(*entities.MetamodelV1)

	var prior *entities.MetamodelV1
	if in.Existing != nil {
		p, ok := in.Existing.(*entities.MetamodelV1)
		if !ok {
			return nil, fmt.Errorf("existing metamodel is %s, expected v1", in.Existing.Shape())
		}
		prior = p
		a.merger.Merge(&doc.Header, &prior.Header, HeaderPolicyOf(&doc.Header))
	}

	input := ReconcileInput{
		Incoming:  in.Definition.ProfileList,
		Mandatory: in.Mandatory,
	}
	if prior != nil {
		input.HasExisting = true
		input.Persisted = prior.ProfileList
		input.PersistedMatrix = prior.DefaultPermissionMatrix
	}

	rec, err := a.reconciler.Reconcile(input)
	if err != nil {
		return nil, err
	}
	if rec.Mismatch != nil {
		return &Assembly{Mismatch: rec.Mismatch}, nil
	}

	doc.ProfileList = rec.Profiles
	if prior != nil {
		doc.DefaultPermissionMatrix = rec.DefaultPermissionMatrix
	}
	if doc.UseCaseProfileMap == nil {
		doc.UseCaseProfileMap = make(map[string]string)
	}

	err = a.encodeUseCases(in.Definition.UseCaseMap, &doc.Header, rec.Index, func(key string, mask values.Mask) {
		doc.UseCaseProfileMap[key] = mask.String()
	})
	if err != nil {
		return nil, err
	}

	return &Assembly{
		Document:     doc,
		ProfileCount: rec.Index.Len(),
		UseCaseCount: len(in.Definition.UseCaseMap),
	}, nil
}

func (a *MetamodelAssembler) assembleV2(in AssembleInput) (*Assembly, error) {
	doc := in.Template.(*entities.MetamodelV2)

	var prior *entities.MetamodelV2
	if in.Existing != nil {
		p, ok := in.Existing.(*entities.MetamodelV2)
		if !ok {
			return nil, fmt.Errorf("existing metamodel is %s, expected v2", in.Existing.Shape())
		}
		prior = p
		a.merger.Merge(&doc.Header, &prior.Header, HeaderPolicyOf(&doc.Header))
	}

	input := ReconcileInput{
		Incoming:  in.Definition.ProfileList,
		Mandatory: in.Mandatory,
	}
	if prior != nil {
		input.HasExisting = true
		input.Persisted = prior.RoleGroupProfileList
		input.PersistedMatrix = prior.DefaultPermissionMatrix
	}

	rec, err := a.reconciler.Reconcile(input)
	if err != nil {
		return nil, err
	}
	if rec.Mismatch != nil {
		return &Assembly{Mismatch: rec.Mismatch}, nil
	}

	doc.RoleGroupProfileList = rec.Profiles
	if prior != nil {
		doc.RoleProfileList = copyRaw(prior.RoleProfileList)
		doc.DefaultPermissionMatrix = rec.DefaultPermissionMatrix
	}
	if doc.UseCaseProfileMap == nil {
		doc.UseCaseProfileMap = make(map[string]entities.UseCaseMasks)
	}

	err = a.encodeUseCases(in.Definition.UseCaseMap, &doc.Header, rec.Index, func(key string, mask values.Mask) {
		doc.UseCaseProfileMap[key] = entities.UseCaseMasks{
			RoleGroupProfileMaskList: []string{mask.String()},
			RoleProfileMaskList:      priorRoleProfileMasks(prior, key),
		}
	})
	if err != nil {
		return nil, err
	}

	return &Assembly{
		Document:     doc,
		ProfileCount: rec.Index.Len(),
		UseCaseCount: len(in.Definition.UseCaseMap),
	}, nil
}

// encodeUseCases encodes every use case in sorted order and hands the result
// to store under the use case's key in head's metamodel.
func (a *MetamodelAssembler) encodeUseCases(
	useCases entities.UseCaseMap,
	head *entities.Header,
	index ProfileIndex,
	store func(key string, mask values.Mask),
) error {
	for _, rawID := range useCases.UseCaseIDs() {
		id, err := values.NewUseCaseID(rawID)
		if err != nil {
			return fmt.Errorf("invalid use case %q: %w", rawID, err)
		}

		mask, err := a.encoder.Encode(useCases[rawID], index)
		if err != nil {
			var unknown *entities.UnknownProfileError
			if errors.As(err, &unknown) {
				unknown.UseCase = id.String()
			}
			return err
		}

		store(id.Key(head.Code, head.SchemaVersion), mask)
	}
	return nil
}

// priorRoleProfileMasks returns the role-tier masks carried forward for key,
// or the zero default.
func priorRoleProfileMasks(prior *entities.MetamodelV2, key string) json.RawMessage {
	if prior != nil {
		if entry, ok := prior.UseCaseProfileMap[key]; ok && !isNullJSON(entry.RoleProfileMaskList) {
			return copyRaw(entry.RoleProfileMaskList)
		}
	}
	return copyRaw(defaultRoleProfileMasks)
}

func isNullJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
