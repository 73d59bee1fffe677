package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/reglet-dev/metamodelgen/internal/application/dto"
)

// DiagnosticsWriter reports soft failures as plain text.
type DiagnosticsWriter struct {
	writer io.Writer
}

// NewDiagnosticsWriter creates a new diagnostics writer.
func NewDiagnosticsWriter(w io.Writer) *DiagnosticsWriter {
	return &DiagnosticsWriter{writer: w}
}

// ReportMismatch writes the mismatch heading followed by both profile sets.
func (d *DiagnosticsWriter) ReportMismatch(mismatch *dto.ProfileMismatch) error {
	_, err := fmt.Fprintf(d.writer,
		"Profiles are not same !!!\nprofiles.json : %s\nmetamodel.json: %s\n",
		strings.Join(mismatch.Incoming, ", "),
		strings.Join(mismatch.Persisted, ", "))
	return err
}
