package entities

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/reglet-dev/metamodelgen/internal/domain/values"
)

// Metamodel is a permission-metamodel document in one of the two layouts.
type Metamodel interface {
	// Shape returns the document layout.
	Shape() values.Shape
	// Head returns the identity and lifecycle fields.
	Head() *Header
	// Profiles returns the profile list masks are keyed to
	// (profileList for V1, roleGroupProfileList for V2).
	Profiles() []ProfileRecord
	// UseCaseCount returns the number of use-case entries.
	UseCaseCount() int
}

// Header holds the identity, lifecycle and passthrough fields shared by both layouts.
type Header struct {
	SchemaVersion       values.SchemaVersion `json:"schemaVersion"`
	Code                string               `json:"code"`
	Name                string               `json:"name"`
	Desc                string               `json:"desc"`
	Version             json.RawMessage      `json:"version,omitempty"`
	DefaultCategory     *values.Text         `json:"defaultCategory,omitempty"`
	StateList           json.RawMessage      `json:"stateList,omitempty"`
	AncestorMap         json.RawMessage      `json:"ancestorMap,omitempty"`
	AncestorPathMap     json.RawMessage      `json:"ancestorPathMap,omitempty"`
	AncestorPathList    json.RawMessage      `json:"ancestorPathList,omitempty"`
	TypeMap             json.RawMessage      `json:"typeMap,omitempty"`
	SynchronizeUuCmdMap json.RawMessage      `json:"synchronizeUuCmdMap,omitempty"`
	RouteMap            json.RawMessage      `json:"routeMap,omitempty"`
}

// MetamodelV1 is the single-tier layout.
type MetamodelV1 struct {
	Header
	ProfileList             []ProfileRecord   `json:"profileList"`
	DefaultPermissionMatrix json.RawMessage   `json:"defaultPermissionMatrix,omitempty"`
	UseCaseProfileMap       map[string]string `json:"useCaseProfileMap"`
	Extensions              Extensions        `json:"-"`
}

// MetamodelV2 is the two-tier layout. The role tier is opaque.
type MetamodelV2 struct {
	Header
	RoleGroupProfileList    []ProfileRecord         `json:"roleGroupProfileList"`
	RoleProfileList         json.RawMessage         `json:"roleProfileList,omitempty"`
	DefaultPermissionMatrix json.RawMessage         `json:"defaultPermissionMatrix,omitempty"`
	UseCaseProfileMap       map[string]UseCaseMasks `json:"useCaseProfileMap"`
	Extensions              Extensions              `json:"-"`
}

// UseCaseMasks is a V2 use-case entry.
type UseCaseMasks struct {
	RoleGroupProfileMaskList []string        `json:"roleGroupProfileMaskList"`
	RoleProfileMaskList      json.RawMessage `json:"roleProfileMaskList"`
}

type (
	plainV1 MetamodelV1
	plainV2 MetamodelV2
)

var (
	knownV1Fields = jsonFieldNames(reflect.TypeOf(plainV1{}))
	knownV2Fields = jsonFieldNames(reflect.TypeOf(plainV2{}))
)

// Shape implements Metamodel.
func (m *MetamodelV1) Shape() values.Shape { return values.ShapeV1 }

// Head implements Metamodel.
func (m *MetamodelV1) Head() *Header { return &m.Header }

// Profiles implements Metamodel.
func (m *MetamodelV1) Profiles() []ProfileRecord { return m.ProfileList }

// UseCaseCount implements Metamodel.
func (m *MetamodelV1) UseCaseCount() int { return len(m.UseCaseProfileMap) }

// Shape implements Metamodel.
func (m *MetamodelV2) Shape() values.Shape { return values.ShapeV2 }

// Head implements Metamodel.
func (m *MetamodelV2) Head() *Header { return &m.Header }

// Profiles implements Metamodel.
func (m *MetamodelV2) Profiles() []ProfileRecord { return m.RoleGroupProfileList }

// UseCaseCount implements Metamodel.
func (m *MetamodelV2) UseCaseCount() int { return len(m.UseCaseProfileMap) }

// MarshalJSON implements json.Marshaler
func (m MetamodelV1) MarshalJSON() ([]byte, error) {
	data, err := values.MarshalUnescaped(plainV1(m))
	if err != nil {
		return nil, err
	}
	return appendExtensions(data, m.Extensions, knownV1Fields)
}

// UnmarshalJSON implements json.Unmarshaler
func (m *MetamodelV1) UnmarshalJSON(data []byte) error {
	var p plainV1
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	ext, err := splitExtensions(data, knownV1Fields)
	if err != nil {
		return err
	}
	p.Extensions = ext
	if p.UseCaseProfileMap == nil {
		p.UseCaseProfileMap = make(map[string]string)
	}
	*m = MetamodelV1(p)
	return nil
}

// MarshalJSON implements json.Marshaler
func (m MetamodelV2) MarshalJSON() ([]byte, error) {
	data, err := values.MarshalUnescaped(plainV2(m))
	if err != nil {
		return nil, err
	}
	return appendExtensions(data, m.Extensions, knownV2Fields)
}

// UnmarshalJSON implements json.Unmarshaler
func (m *MetamodelV2) UnmarshalJSON(data []byte) error {
	var p plainV2
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	ext, err := splitExtensions(data, knownV2Fields)
	if err != nil {
		return err
	}
	p.Extensions = ext
	if p.UseCaseProfileMap == nil {
		p.UseCaseProfileMap = make(map[string]UseCaseMasks)
	}
	*m = MetamodelV2(p)
	return nil
}

// DecodeMetamodel decodes a document, choosing the layout from its schemaVersion.
func DecodeMetamodel(data []byte) (Metamodel, error) {
	var head struct {
		SchemaVersion values.SchemaVersion `json:"schemaVersion"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("failed to decode metamodel: %w", err)
	}
	return DecodeMetamodelAs(data, head.SchemaVersion.Shape())
}

// DecodeMetamodelAs decodes a document in the given layout.
func DecodeMetamodelAs(data []byte, shape values.Shape) (Metamodel, error) {
	switch shape {
	case values.ShapeV1:
		var m MetamodelV1
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to decode v1 metamodel: %w", err)
		}
		return &m, nil
	case values.ShapeV2:
		var m MetamodelV2
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to decode v2 metamodel: %w", err)
		}
		return &m, nil
	default:
		return nil, fmt.Errorf("unsupported metamodel shape: %s", shape)
	}
}
