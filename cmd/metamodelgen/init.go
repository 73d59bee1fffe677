package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
	"github.com/reglet-dev/metamodelgen/internal/domain/services"
	"github.com/reglet-dev/metamodelgen/internal/infrastructure/system"
)

// InitOptions holds the flags of the init command.
type InitOptions struct {
	ProfilesPath  string
	OutputPath    string
	NoInteractive bool
	Force         bool
}

var initOpts InitOptions

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a project config mapping the mandatory roles to your profiles",
	Long: `Create ` + system.DefaultConfigFile + ` for a profile definition.

Every metamodel needs an owner, an executive and an auditor role, canonically
named Authorities, Executives and Auditors. init asks which of the profiles in
your definition plays each role and stores the answer as mandatory_profiles,
so later generate runs need no --mandatory-profiles flag.`,
	Example: `  metamodelgen init --profiles profiles.json
  metamodelgen init --profiles profiles.json --no-interactive --output config.yaml`,
	Args: cobra.NoArgs,
	RunE: withContainer(runInit),
}

func init() {
	initCmd.Flags().StringVar(&initOpts.ProfilesPath, "profiles", "", "Profile definition file (JSON or YAML)")
	initCmd.Flags().StringVar(&initOpts.OutputPath, "output", system.DefaultConfigFile, "Config file to write")
	initCmd.Flags().BoolVar(&initOpts.NoInteractive, "no-interactive", false, "Disable interactive prompts")
	initCmd.Flags().BoolVar(&initOpts.Force, "force", false, "Overwrite an existing config file")
	_ = initCmd.MarkFlagRequired("profiles")

	rootCmd.AddCommand(initCmd)
}

func runInit(cc *CommandContext, cmd *cobra.Command, _ []string) error {
	if !initOpts.Force {
		if _, err := os.Stat(initOpts.OutputPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", initOpts.OutputPath)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", initOpts.OutputPath, err)
		}
	}

	definition, err := cc.Container.DefinitionLoader().LoadDefinition(cc.Context, initOpts.ProfilesPath)
	if err != nil {
		return fmt.Errorf("failed to load profile definition: %w", err)
	}
	domain, err := definition.Wildcard()
	if err != nil {
		return err
	}

	chooser := chooseProfileByName
	if !initOpts.NoInteractive {
		chooser = chooseProfileInteractively
	}

	mapping, err := mapMandatoryProfiles(services.FilterIgnoredProfiles(domain.ProfileList), chooser)
	if err != nil {
		return err
	}

	cfg := *cc.Container.SystemConfig()
	cfg.MandatoryProfiles = mapping
	if err := cc.Container.ConfigLoader().Save(initOpts.OutputPath, &cfg); err != nil {
		return err
	}

	cc.Logger.Debug("project config written", "path", initOpts.OutputPath, "mandatory_profiles", mapping)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Config saved to %s\n", initOpts.OutputPath)
	return nil
}

// profileChooser picks the profile code that plays role among options.
type profileChooser func(role string, options []string) (string, error)

// mapMandatoryProfiles asks choose for one distinct profile per canonical role,
// in canonical order.
func mapMandatoryProfiles(available []string, choose profileChooser) ([]string, error) {
	remaining := slices.Clone(available)
	mapping := make([]string, 0, len(entities.CanonicalMandatoryProfiles))

	for _, role := range entities.CanonicalMandatoryProfiles {
		if len(remaining) == 0 {
			return nil, fmt.Errorf("no profile left for the %s role: the definition needs at least %d profiles",
				role, len(entities.CanonicalMandatoryProfiles))
		}

		code, err := choose(role, remaining)
		if err != nil {
			return nil, err
		}
		idx := slices.Index(remaining, code)
		if idx < 0 {
			return nil, fmt.Errorf("profile %s chosen for %s is not available", code, role)
		}

		mapping = append(mapping, code)
		remaining = slices.Delete(remaining, idx, idx+1)
	}
	return mapping, nil
}

// chooseProfileByName accepts only a profile named after the role.
func chooseProfileByName(role string, options []string) (string, error) {
	if slices.Contains(options, role) {
		return role, nil
	}
	return "", fmt.Errorf("profile definition has no %s profile; run init interactively to map it", role)
}

func chooseProfileInteractively(role string, options []string) (string, error) {
	choice := options[0]
	if slices.Contains(options, role) {
		choice = role
	}

	err := huh.NewSelect[string]().
		Title(fmt.Sprintf("Which profile plays the %s role?", role)).
		Options(huh.NewOptions(options...)...).
		Value(&choice).
		Run()
	if err != nil {
		return "", err
	}
	return choice, nil
}
