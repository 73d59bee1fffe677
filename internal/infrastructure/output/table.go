package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/reglet-dev/metamodelgen/internal/application/dto"
)

const (
	colorReset  = "\033[0m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// TableFormatter formats inspection results as a human-readable table.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true, // Default to true, caller can disable
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// Format writes the inspection result as a table.
//
//nolint:errcheck // Table formatting errors are non-critical (best-effort terminal output)
func (f *TableFormatter) Format(result *dto.InspectMetamodelResponse) error {
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
	fmt.Fprintf(f.writer, "Metamodel: %s (schema %s, %s)\n",
		f.colorize(result.Code, colorBold), result.SchemaVersion, result.Shape)
	fmt.Fprintf(f.writer, "Profiles:  %s\n", strings.Join(result.Profiles, ", "))
	fmt.Fprintln(f.writer)

	if len(result.UseCases) == 0 {
		fmt.Fprintln(f.writer, "No use cases matched.")
		return nil
	}

	tw := tabwriter.NewWriter(f.writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USE CASE\tMASK\tPROFILES")
	for _, uc := range result.UseCases {
		profiles := strings.Join(uc.Profiles, ", ")
		if profiles == "" {
			profiles = f.colorize("(none)", colorYellow)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", uc.UseCase, strings.Join(uc.Masks, " "), profiles)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
	fmt.Fprintf(f.writer, "Showing %d of %d use cases\n", len(result.UseCases), result.Total)
	return nil
}
