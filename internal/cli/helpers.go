// Package cli implements the panakit command set.
package cli

import (
	"fmt"

	"github.com/glorpus-work/panakit/internal/logger"
	"github.com/glorpus-work/panakit/pkg/config"
)

// These variables are set by the main package from the global flags.
var (
	ConfigPath   *string
	Verbose      *bool
	OutputFormat *string
)

// loadConfig loads the configuration honoring the global flags.
func loadConfig() (*config.Config, error) {
	configPath := ""
	if ConfigPath != nil {
		configPath = *ConfigPath
	}
	if configPath == "" {
		defaultPath, err := config.GetDefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get default config path: %w", err)
		}
		configPath = defaultPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// CLI flags win over the config file
	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}

	logger.InitLogger(cfg.Settings.LogLevel, logger.OutputFormat(cfg.Settings.OutputFormat))
	return cfg, nil
}

// configFilePath returns the path the config commands read and write.
func configFilePath() (string, error) {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath, nil
	}
	return config.GetDefaultConfigPath()
}
