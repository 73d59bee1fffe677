package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/metamodelgen/internal/application/dto"
	"github.com/reglet-dev/metamodelgen/internal/application/ports"
)

var (
	inspectFormat   string
	inspectFilter   string
	inspectProfiles []string
	inspectNoColor  bool
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <metamodel>",
	Short: "Show which profiles each use case of a metamodel grants",
	Long: `Decode every use-case mask of a metamodel back into profile codes.

Filtering:
  --profile Readers,Auditors        Use cases granted to Readers OR Auditors
  --filter "profileCount > 2"       Advanced filtering expression over
                                    key, useCase, profiles, masks, profileCount`,
	Example: `  metamodelgen inspect metamodel.json
  metamodelgen inspect metamodel.json --format json
  metamodelgen inspect metamodel.json --filter 'useCase startsWith "item/"'`,
	Args: cobra.ExactArgs(1),
	RunE: withContainer(runInspect),
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "table", "Output format: table, json, yaml")
	inspectCmd.Flags().StringVar(&inspectFilter, "filter", "", "Filter expression (e.g. \"'Auditors' in profiles\")")
	inspectCmd.Flags().StringSliceVar(&inspectProfiles, "profile", nil, "Only use cases granted to these profiles (comma-separated)")
	inspectCmd.Flags().BoolVar(&inspectNoColor, "no-color", false, "Disable colored table output")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cc *CommandContext, cmd *cobra.Command, args []string) error {
	factory := cc.Container.FormatterFactory()
	if err := validateFormat(factory, inspectFormat); err != nil {
		return err
	}

	resp, err := cc.Container.InspectMetamodelUseCase().Execute(cc.Context, dto.InspectMetamodelRequest{
		MetamodelPath: args[0],
		Filters: dto.FilterOptions{
			FilterExpression: inspectFilter,
			Profiles:         splitProfileCodes(inspectProfiles),
		},
		Metadata: dto.RequestMetadata{RequestID: uuid.NewString()},
	})
	if err != nil {
		return err
	}

	for _, w := range resp.Diagnostics.Warnings {
		cc.Logger.Warn(w, "path", args[0])
	}

	formatter, err := factory.Create(inspectFormat, cmd.OutOrStdout(), ports.FormatterOptions{
		Indent: true,
		Color:  !inspectNoColor,
	})
	if err != nil {
		return err
	}
	return formatter.Format(resp)
}

func validateFormat(factory ports.OutputFormatterFactory, format string) error {
	supported := factory.SupportedFormats()
	if !slices.Contains(supported, format) {
		return fmt.Errorf("invalid format: %s (valid: %s)", format, strings.Join(supported, ", "))
	}
	return nil
}
