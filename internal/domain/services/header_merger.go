package services

import (
	"fmt"

	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
	"github.com/reglet-dev/metamodelgen/internal/domain/values"
)

// HeaderPolicy lists the optional header fields a template declares.
// Optional fields are copied from the prior metamodel only when declared.
type HeaderPolicy struct {
	DefaultCategory bool
	AncestorPathMap bool
	TypeMap         bool
}

// HeaderPolicyOf reads the policy from a template header. A field counts as
// declared when it is present with a non-empty, non-null value, so an
// overridden template decides for itself.
func HeaderPolicyOf(template *entities.Header) HeaderPolicy {
	return HeaderPolicy{
		DefaultCategory: template.DefaultCategory != nil && template.DefaultCategory.String() != "",
		AncestorPathMap: !isNullJSON(template.AncestorPathMap),
		TypeMap:         !isNullJSON(template.TypeMap),
	}
}

// HeaderMerger restores identity and lifecycle fields of a prior metamodel
// into a freshly loaded template.
type HeaderMerger struct{}

// NewHeaderMerger creates a new header merger.
func NewHeaderMerger() *HeaderMerger {
	return &HeaderMerger{}
}

// Merge overwrites dst's header with prior's values according to policy.
func (m *HeaderMerger) Merge(dst, prior *entities.Header, policy HeaderPolicy) {
	dst.Code = prior.Code
	dst.Name = prior.Name
	dst.Version = copyRaw(prior.Version)
	dst.Desc = fmt.Sprintf("%s - metamodel", prior.Code)
	dst.SchemaVersion = values.NewSchemaVersion(prior.SchemaVersion.String())
	dst.StateList = copyRaw(prior.StateList)
	dst.AncestorMap = copyRaw(prior.AncestorMap)
	dst.SynchronizeUuCmdMap = copyRaw(prior.SynchronizeUuCmdMap)
	dst.RouteMap = copyRaw(prior.RouteMap)

	if policy.DefaultCategory && prior.DefaultCategory != nil {
		category := *prior.DefaultCategory
		dst.DefaultCategory = &category
	}
	if policy.AncestorPathMap {
		dst.AncestorPathMap = copyRaw(prior.AncestorPathMap)
	}
	if policy.TypeMap {
		dst.TypeMap = copyRaw(prior.TypeMap)
	}
	// ancestorPathList keeps the template value.
}
