package dto

import (
	"time"
)

// GenerateMetamodelResponse contains the result of generating a metamodel.
type GenerateMetamodelResponse struct {
	// Mismatch is set when the incoming profiles differ from the persisted ones.
	// Nothing is written in that case.
	Mismatch *ProfileMismatch

	// Shape is the layout of the produced document ("v1" or "v2").
	Shape string

	// SchemaVersion of the produced document
	SchemaVersion string

	ProfileCount int
	UseCaseCount int

	// Written is true when the document was persisted.
	Written bool

	// Changed is true when the document differs from the persisted one.
	Changed bool

	// Metadata contains response metadata
	Metadata ResponseMetadata

	// Diagnostics contains additional diagnostic information
	Diagnostics Diagnostics
}

// ProfileMismatch lists both sides of a failed consistency check.
type ProfileMismatch struct {
	Incoming  []string
	Persisted []string
}

// InspectMetamodelResponse contains the decoded use cases of a metamodel.
type InspectMetamodelResponse struct {
	Shape         string           `json:"shape" yaml:"shape"`
	SchemaVersion string           `json:"schemaVersion" yaml:"schemaVersion"`
	Code          string           `json:"code" yaml:"code"`
	Profiles      []string         `json:"profiles" yaml:"profiles"`
	UseCases      []UseCaseView    `json:"useCases" yaml:"useCases"`
	Total         int              `json:"total" yaml:"total"`
	Metadata      ResponseMetadata `json:"-" yaml:"-"`
	Diagnostics   Diagnostics      `json:"-" yaml:"-"`
}

// UseCaseView is one decoded use-case entry.
type UseCaseView struct {
	Key      string   `json:"key" yaml:"key"`
	UseCase  string   `json:"useCase" yaml:"useCase"`
	Masks    []string `json:"masks" yaml:"masks"`
	Profiles []string `json:"profiles" yaml:"profiles"`
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	// RequestID from the original request
	RequestID string

	// ProcessedAt is when the request was processed
	ProcessedAt time.Time

	// Duration is how long the request took
	Duration time.Duration
}

// Diagnostics contains diagnostic information about a run.
type Diagnostics struct {
	// Warnings are non-fatal issues encountered
	Warnings []string
}
