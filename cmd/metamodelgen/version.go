package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/metamodelgen/internal/version"
)

var versionFormat string

// versionCmd implements the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of metamodelgen",
	Long: `Print the version of metamodelgen.

The text format prints one line. The json and yaml formats print every build
field, for release scripts that pin the generator version.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeVersion(cmd.OutOrStdout(), versionFormat, version.Get())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().StringVar(&versionFormat, "format", "text", "output format (text, json, yaml)")
}

func writeVersion(w io.Writer, format string, info version.Info) error {
	switch format {
	case "text":
		_, err := fmt.Fprintf(w, "metamodelgen version %s\n", info.Full())
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "yaml":
		enc := yaml.NewEncoder(w, yaml.Indent(2))
		if err := enc.Encode(info); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format: %s (supported: text, json, yaml)", format)
	}
}
