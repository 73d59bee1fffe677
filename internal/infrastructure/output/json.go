package output

import (
	"encoding/json"
	"io"

	"github.com/reglet-dev/metamodelgen/internal/application/dto"
)

// JSONFormatter prints the inspection view as one JSON document per run.
// Use-case keys and filter text keep '&', '<' and '>' as written.
type JSONFormatter struct {
	writer io.Writer
	indent bool
}

// NewJSONFormatter creates a JSON formatter, indented by two spaces when indent is set.
func NewJSONFormatter(w io.Writer, indent bool) *JSONFormatter {
	return &JSONFormatter{writer: w, indent: indent}
}

// Format writes the view followed by a newline.
func (f *JSONFormatter) Format(result *dto.InspectMetamodelResponse) error {
	enc := json.NewEncoder(f.writer)
	enc.SetEscapeHTML(false)
	if f.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
