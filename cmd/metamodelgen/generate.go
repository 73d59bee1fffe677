package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reglet-dev/metamodelgen/internal/application/dto"
)

const mandatoryProfilesKey = "mandatory_profiles"

type generateOptions struct {
	common        CommonOptions
	profilesPath  string
	metamodelPath string
	check         bool
}

var generateOpts = generateOptions{common: DefaultCommonOptions()}

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Merge a profile definition into a metamodel",
	Long: `Read the profile definition and the existing metamodel (if any), then write
the merged metamodel back in place.

The metamodel is not written when its profile list differs from the profile
definition; both sets are printed and the command exits with code 2.
With --check nothing is written and the command exits with code 3 when the
metamodel is out of date.

Mandatory profiles are taken from --mandatory-profiles, then
METAMODELGEN_MANDATORY_PROFILES, then mandatory_profiles in the config file,
and default to Authorities, Executives, Auditors.`,
	Example: `  metamodelgen generate --profiles profiles.json --metamodel metamodel.json
  metamodelgen generate --profiles profiles.json --metamodel metamodel.json \
      --mandatory-profiles Admins,Managers,Inspectors
  metamodelgen generate --profiles profiles.yaml --metamodel metamodel.json --check`,
	Args: cobra.NoArgs,
	RunE: withContainer(runGenerate),
}

func init() {
	flags := generateCmd.Flags()
	flags.StringVar(&generateOpts.profilesPath, "profiles", "", "Profile definition file (JSON or YAML)")
	flags.StringVar(&generateOpts.metamodelPath, "metamodel", "", "Metamodel file to create or update")
	flags.StringSlice("mandatory-profiles", nil, "Profile codes that must be defined, in slot order (comma-separated)")
	flags.BoolVar(&generateOpts.check, "check", false, "Report whether the metamodel is up to date without writing it")
	generateOpts.common.RegisterFlags(generateCmd)

	_ = generateCmd.MarkFlagRequired("profiles")
	_ = generateCmd.MarkFlagRequired("metamodel")
	_ = viper.BindPFlag(mandatoryProfilesKey, flags.Lookup("mandatory-profiles"))

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cc *CommandContext, cmd *cobra.Command, _ []string) error {
	if err := generateOpts.common.ValidateFlags(); err != nil {
		return err
	}

	ctx, cancel := generateOpts.common.ApplyToContext(cc.Context)
	defer cancel()

	req := dto.GenerateMetamodelRequest{
		ProfilesPath:      generateOpts.profilesPath,
		MetamodelPath:     generateOpts.metamodelPath,
		MandatoryProfiles: resolveMandatoryProfiles(viper.GetViper(), cc.Container.SystemConfig().MandatoryProfiles),
		Options: dto.GenerateOptions{
			Check: generateOpts.check,
		},
		Metadata: dto.RequestMetadata{RequestID: uuid.NewString()},
	}

	cc.Logger.Debug("generating metamodel",
		"request_id", req.Metadata.RequestID,
		"mandatory_profiles", req.MandatoryProfiles)

	resp, err := cc.Container.GenerateMetamodelUseCase().Execute(ctx, req)
	if err != nil {
		return err
	}

	return reportGeneration(cmd.OutOrStdout(), req, resp)
}

// resolveMandatoryProfiles prefers the flag, environment or config file value
// known to v, and falls back to the project config.
func resolveMandatoryProfiles(v *viper.Viper, fallback []string) []string {
	if v.IsSet(mandatoryProfilesKey) {
		return splitProfileCodes(v.GetStringSlice(mandatoryProfilesKey))
	}
	return fallback
}

// reportGeneration prints the outcome and maps soft failures to exit codes.
func reportGeneration(w io.Writer, req dto.GenerateMetamodelRequest, resp *dto.GenerateMetamodelResponse) error {
	switch {
	case resp.Mismatch != nil:
		return &exitError{
			code:    exitMismatch,
			message: fmt.Sprintf("%s not written: profile lists differ", req.MetamodelPath),
		}
	case req.Options.Check && resp.Changed:
		fmt.Fprintf(w, "%s is out of date (%d profiles, %d use cases)\n",
			req.MetamodelPath, resp.ProfileCount, resp.UseCaseCount)
		return &exitError{code: exitOutdated, message: req.MetamodelPath + " is out of date"}
	case !resp.Changed:
		fmt.Fprintf(w, "%s is up to date\n", req.MetamodelPath)
	default:
		fmt.Fprintf(w, "✓ Metamodel written to %s (schema %s, %d profiles, %d use cases)\n",
			req.MetamodelPath, resp.SchemaVersion, resp.ProfileCount, resp.UseCaseCount)
	}

	if len(resp.Diagnostics.Warnings) > 0 {
		fmt.Fprintf(w, "warnings:\n  %s\n", strings.Join(resp.Diagnostics.Warnings, "\n  "))
	}
	return nil
}
