// Package config loads and merges the aiderpick application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/aiderpick/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds overrides for the picker pipeline. Every
// field is optional; unset values leave the built-in defaults in place.
type ApplicationConfiguration struct {
	Assistant AssistantConfiguration `mapstructure:"assistant"`
	Finder    FinderConfiguration    `mapstructure:"finder"`
	Skip      SkipConfiguration      `mapstructure:"skip"`
	Tokens    TokenConfiguration     `mapstructure:"tokens"`
}

// AssistantConfiguration configures the pair-programming CLI invocation.
type AssistantConfiguration struct {
	Executable string `mapstructure:"executable"`
}

// FinderConfiguration configures the fuzzy finder invocation.
type FinderConfiguration struct {
	Executable    string `mapstructure:"executable"`
	Preview       string `mapstructure:"preview"`
	PreviewWindow string `mapstructure:"preview_window"`
	Height        string `mapstructure:"height"`
	Header        string `mapstructure:"header"`
}

// SkipConfiguration extends or replaces the built-in skip-lists.
type SkipConfiguration struct {
	Files           []string `mapstructure:"files"`
	Directories     []string `mapstructure:"directories"`
	ReplaceDefaults *bool    `mapstructure:"replace_defaults"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadApplicationConfiguration loads configuration from the global file under
// the user home and the local file in the working directory, local overriding
// global.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfiguration, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	if localPath != "" {
		localConfiguration, loadError := loadConfigurationFromPath(localPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(localConfiguration)
	}

	merged.Skip.Files = utils.DeduplicatePatterns(merged.Skip.Files)
	merged.Skip.Directories = utils.DeduplicatePatterns(merged.Skip.Directories)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolutePath, absoluteError := filepath.Abs(explicitPath)
			if absoluteError != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, absoluteError)
			}
			return absolutePath, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	pathInformation, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statError)
	}
	if pathInformation.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeError)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	result.Assistant = result.Assistant.merge(override.Assistant)
	result.Finder = result.Finder.merge(override.Finder)
	result.Skip = result.Skip.merge(override.Skip)
	result.Tokens = result.Tokens.merge(override.Tokens)
	return result
}

func (configuration AssistantConfiguration) merge(override AssistantConfiguration) AssistantConfiguration {
	result := configuration
	if override.Executable != "" {
		result.Executable = override.Executable
	}
	return result
}

func (configuration FinderConfiguration) merge(override FinderConfiguration) FinderConfiguration {
	result := configuration
	if override.Executable != "" {
		result.Executable = override.Executable
	}
	if override.Preview != "" {
		result.Preview = override.Preview
	}
	if override.PreviewWindow != "" {
		result.PreviewWindow = override.PreviewWindow
	}
	if override.Height != "" {
		result.Height = override.Height
	}
	if override.Header != "" {
		result.Header = override.Header
	}
	return result
}

func (configuration SkipConfiguration) merge(override SkipConfiguration) SkipConfiguration {
	result := configuration
	if len(override.Files) > 0 {
		result.Files = append([]string{}, utils.DeduplicatePatterns(override.Files)...)
	}
	if len(override.Directories) > 0 {
		result.Directories = append([]string{}, utils.DeduplicatePatterns(override.Directories)...)
	}
	if override.ReplaceDefaults != nil {
		result.ReplaceDefaults = cloneBool(override.ReplaceDefaults)
	}
	return result
}

func (configuration TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := configuration
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
