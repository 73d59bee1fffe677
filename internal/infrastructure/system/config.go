// Package system provides infrastructure for project-level configuration.
// This covers loading and saving the project config file (.metamodelgen.yaml).
package system

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
)

// DefaultConfigFile is the project config file name looked up in the working directory.
const DefaultConfigFile = ".metamodelgen.yaml"

// Config represents the project configuration file.
// This is infrastructure-level configuration separate from the profile definition.
type Config struct {
	// MandatoryProfiles must appear in every profile definition.
	// An explicit empty list disables the requirement.
	MandatoryProfiles []string        `yaml:"mandatory_profiles"`
	Templates         TemplatesConfig `yaml:"templates"`
	Output            OutputConfig    `yaml:"output"`
}

// TemplatesConfig overrides the built-in metamodel templates by path.
type TemplatesConfig struct {
	V1 string `yaml:"v1,omitempty"`
	V2 string `yaml:"v2,omitempty"`
}

// OutputConfig controls how metamodels are written.
type OutputConfig struct {
	// Indent is the JSON indentation width (0 means the default of 2)
	Indent int `yaml:"indent,omitempty"`
}

// ConfigLoader loads project configuration from disk.
type ConfigLoader struct{}

// NewConfigLoader creates a new project config loader.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// DefaultConfig returns a Config with defaults for all fields.
// This is used when no project config file exists.
func DefaultConfig() *Config {
	return &Config{
		MandatoryProfiles: append([]string(nil), entities.CanonicalMandatoryProfiles...),
		Output: OutputConfig{
			Indent: 2,
		},
	}
}

// Load loads the project configuration from the specified path.
// If the file does not exist, returns DefaultConfig().
// Keys missing from the file keep their default values.
func (l *ConfigLoader) Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	//nolint:gosec // G304: path is user-provided config file, validated to exist above
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse project config: %w", err)
	}
	if config.MandatoryProfiles == nil {
		config.MandatoryProfiles = []string{}
	}

	return config, nil
}

// LoadConfig implements ports.SystemConfigProvider.
func (l *ConfigLoader) LoadConfig(ctx context.Context, path string) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.Load(path)
}

// Save writes config to path as YAML.
func (l *ConfigLoader) Save(path string, config *Config) error {
	data, err := yaml.MarshalWithOptions(config, yaml.Indent(2))
	if err != nil {
		return fmt.Errorf("failed to encode project config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // G306: config is not secret
		return fmt.Errorf("failed to write project config: %w", err)
	}
	return nil
}
