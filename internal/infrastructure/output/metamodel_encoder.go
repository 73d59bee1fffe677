package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
)

// DefaultIndent is the indentation width of written metamodels.
const DefaultIndent = 2

// MetamodelEncoder renders metamodels in their persisted form.
type MetamodelEncoder struct {
	indent string
}

// NewMetamodelEncoder creates an encoder indenting with width spaces.
// A width of zero or less uses DefaultIndent.
func NewMetamodelEncoder(width int) *MetamodelEncoder {
	if width <= 0 {
		width = DefaultIndent
	}
	return &MetamodelEncoder{indent: strings.Repeat(" ", width)}
}

// Encode renders doc as indented JSON without HTML escaping or a trailing newline.
func (e *MetamodelEncoder) Encode(doc entities.Metamodel) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", e.indent)

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode metamodel: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
