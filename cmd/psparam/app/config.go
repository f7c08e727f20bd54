package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/phillarmonic/psparam/internal/debug"
)

// Domain: Configuration Management
// This file contains logic for the workspace config and flag precedence

// DefaultConfigFile is the workspace config read when --config is not given
const DefaultConfigFile = ".psparam.yml"

// WorkspaceConfig represents the workspace configuration
type WorkspaceConfig struct {
	Format string `yaml:"format"`
	Trace  string `yaml:"trace"`
}

// Settings are the effective options after merging config and flags
type Settings struct {
	Format debug.Format
	Trace  string
}

// LoadWorkspaceConfig reads the workspace configuration. A missing default file is
// not an error; a missing explicitly named file is.
func LoadWorkspaceConfig(path string) (WorkspaceConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	var config WorkspaceConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return config, nil
		}
		return config, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	return config, nil
}

// resolveSettings applies flags over the workspace configuration
func (a *App) resolveSettings(cmd *cobra.Command) (Settings, error) {
	config, err := LoadWorkspaceConfig(a.configFile)
	if err != nil {
		return Settings{}, err
	}

	formatName := config.Format
	if cmd.Flags().Changed("format") {
		formatName = a.format
	}
	format, err := debug.ParseFormat(formatName)
	if err != nil {
		return Settings{}, err
	}

	trace := config.Trace
	if cmd.Flags().Changed("trace") {
		trace = a.trace
	}
	if err := validateTraceMode(trace); err != nil {
		return Settings{}, err
	}

	return Settings{Format: format, Trace: trace}, nil
}
