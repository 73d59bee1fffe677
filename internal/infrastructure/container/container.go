// Package container provides dependency injection for the application.
package container

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/reglet-dev/metamodelgen/internal/application/ports"
	"github.com/reglet-dev/metamodelgen/internal/application/services"
	"github.com/reglet-dev/metamodelgen/internal/infrastructure/canonical"
	"github.com/reglet-dev/metamodelgen/internal/infrastructure/config"
	"github.com/reglet-dev/metamodelgen/internal/infrastructure/output"
	"github.com/reglet-dev/metamodelgen/internal/infrastructure/persistence/filesystem"
	"github.com/reglet-dev/metamodelgen/internal/infrastructure/system"
	"github.com/reglet-dev/metamodelgen/internal/infrastructure/templates"
	"github.com/reglet-dev/metamodelgen/internal/infrastructure/validation"
)

// Ensure infrastructure implements ports at compile time
var (
	_ ports.ProfileDefinitionLoader = (*config.DefinitionLoader)(nil)
	_ ports.MetamodelRepository     = (*filesystem.MetamodelRepository)(nil)
	_ ports.TemplateProvider        = (*templates.Provider)(nil)
	_ ports.DocumentEncoder         = (*output.MetamodelEncoder)(nil)
	_ ports.ChangeDetector          = (*canonical.ChangeDetector)(nil)
	_ ports.DiagnosticsReporter     = (*output.DiagnosticsWriter)(nil)
	_ ports.RequestValidator        = (*validation.RequestValidator)(nil)
	_ ports.SystemConfigProvider    = (*system.ConfigLoader)(nil)
	_ ports.OutputFormatterFactory  = (*output.FormatterFactory)(nil)
)

// Container holds all application dependencies.
type Container struct {
	definitions     *config.DefinitionLoader
	generateUseCase *services.GenerateMetamodelUseCase
	inspectUseCase  *services.InspectMetamodelUseCase
	formatters      *output.FormatterFactory
	configLoader    *system.ConfigLoader
	systemCfg       *system.Config
	logger          *slog.Logger
}

// Options configure the container.
type Options struct {
	Logger     *slog.Logger
	ConfigPath string
	// Diagnostics receives operator-facing reports (stderr by default).
	Diagnostics io.Writer
	// Repository replaces the filesystem metamodel repository.
	Repository ports.MetamodelRepository
	// Config replaces the config loaded from ConfigPath.
	Config *system.Config
}

// New creates a new dependency injection container.
func New(opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Diagnostics == nil {
		opts.Diagnostics = os.Stderr
	}

	configLoader := system.NewConfigLoader()

	// Load project config
	systemCfg := opts.Config
	if systemCfg == nil {
		path := opts.ConfigPath
		if path == "" {
			path = system.DefaultConfigFile
		}
		cfg, err := configLoader.LoadConfig(context.TODO(), path)
		if err != nil {
			return nil, err
		}
		systemCfg = cfg
	}

	schemas := validation.NewSchemaValidator()
	requests := validation.NewRequestValidator()

	repository := opts.Repository
	if repository == nil {
		repository = filesystem.NewMetamodelRepository(schemas)
	}

	definitions := config.NewDefinitionLoader(schemas)

	generateUseCase := services.NewGenerateMetamodelUseCase(
		definitions,
		repository,
		templates.NewProvider(templates.Overrides{
			V1: systemCfg.Templates.V1,
			V2: systemCfg.Templates.V2,
		}),
		output.NewMetamodelEncoder(systemCfg.Output.Indent),
		canonical.NewChangeDetector(),
		output.NewDiagnosticsWriter(opts.Diagnostics),
		requests,
		opts.Logger,
	)

	inspectUseCase := services.NewInspectMetamodelUseCase(repository, requests, opts.Logger)

	return &Container{
		definitions:     definitions,
		generateUseCase: generateUseCase,
		inspectUseCase:  inspectUseCase,
		formatters:      output.NewFormatterFactory(),
		configLoader:    configLoader,
		systemCfg:       systemCfg,
		logger:          opts.Logger,
	}, nil
}

// GenerateMetamodelUseCase returns the generate use case.
func (c *Container) GenerateMetamodelUseCase() *services.GenerateMetamodelUseCase {
	return c.generateUseCase
}

// InspectMetamodelUseCase returns the inspect use case.
func (c *Container) InspectMetamodelUseCase() *services.InspectMetamodelUseCase {
	return c.inspectUseCase
}

// FormatterFactory returns the output formatter factory.
func (c *Container) FormatterFactory() ports.OutputFormatterFactory {
	return c.formatters
}

// DefinitionLoader returns the profile definition loader.
func (c *Container) DefinitionLoader() ports.ProfileDefinitionLoader {
	return c.definitions
}

// ConfigLoader returns the project config loader.
func (c *Container) ConfigLoader() *system.ConfigLoader {
	return c.configLoader
}

// SystemConfig returns the loaded project configuration.
func (c *Container) SystemConfig() *system.Config {
	return c.systemCfg
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
