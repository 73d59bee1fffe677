// Package dto contains data transfer objects for application layer use cases.
package dto

// GenerateMetamodelRequest encapsulates all inputs needed to generate a metamodel.
type GenerateMetamodelRequest struct {
	ProfilesPath      string   `validate:"required"`
	MetamodelPath     string   `validate:"required,nefield=ProfilesPath"`
	MandatoryProfiles []string `validate:"dive,required"`
	Options           GenerateOptions
	Metadata          RequestMetadata
}

// GenerateOptions controls how the result is persisted.
type GenerateOptions struct {
	// Check reports whether the metamodel would change without writing it.
	Check bool

	// Indent is the JSON indentation width of the written document.
	Indent int `validate:"gte=0,lte=8"`
}

// InspectMetamodelRequest encapsulates inputs for decoding a persisted metamodel.
type InspectMetamodelRequest struct {
	MetamodelPath string `validate:"required"`
	Filters       FilterOptions
	Metadata      RequestMetadata
}

// FilterOptions defines filters for use-case selection.
type FilterOptions struct {
	FilterExpression string
	Profiles         []string `validate:"dive,required"`
}

// RequestMetadata contains metadata for request tracking.
type RequestMetadata struct {
	// RequestID uniquely identifies this request
	RequestID string
}
