// Package config loads, validates and persists the application
// configuration: registry endpoint and credentials, per-channel SDK
// locations and the tool-environment pool settings. Configuration lives
// in a YAML file with sensible defaults for everything but SDK roots.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/glorpus-work/panakit/pkg/errors"
	"github.com/glorpus-work/panakit/pkg/fsutil"
	"github.com/glorpus-work/panakit/pkg/sdk"
	"github.com/glorpus-work/panakit/pkg/toolenv"
)

// Config represents the application configuration.
type Config struct {
	// Registry configuration
	Registry RegistryConfig `yaml:"registry"`

	// Per-channel SDK locations
	Channels ChannelsConfig `yaml:"channels"`

	// General settings
	Settings Settings `yaml:"settings"`
}

// RegistryConfig points at the pub registry packages are resolved from.
type RegistryConfig struct {
	URL  string      `yaml:"url,omitempty"`
	Auth *AuthConfig `yaml:"auth,omitempty"`
}

// ChannelsConfig holds the SDK installation roots per channel.
type ChannelsConfig struct {
	Stable  sdk.Setup `yaml:"stable"`
	Preview sdk.Setup `yaml:"preview"`
}

// Settings represents general application settings.
type Settings struct {
	// Tool environment pool settings
	TempRoot      string `yaml:"temp_root,omitempty"`
	MaxEnvUses    int    `yaml:"max_env_uses,omitempty"`
	MaxCacheBytes int64  `yaml:"max_cache_bytes,omitempty"`

	// Workspace settings
	ArchiveDir string `yaml:"archive_dir,omitempty"`
	HooksDir   string `yaml:"hooks_dir,omitempty"`

	// Network settings
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// Output settings
	OutputFormat string `yaml:"output_format"` // text, json
	LogLevel     string `yaml:"log_level"`     // error, warn, info, debug
}

// Default configuration values.
const (
	// DefaultHTTPTimeout is the default timeout for registry and archive requests.
	DefaultHTTPTimeout = 30 * time.Second

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults. SDK
// roots stay empty; they have no sane default and must be configured.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig loads configuration from a file. A missing file yields the
// defaults rather than an error, so first runs work unconfigured.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfig saves configuration to a file via a temp file and rename.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	data, err := c.ToYAML()
	if err != nil {
		return err
	}

	tempPath := absPath + ".tmp"
	if err := os.WriteFile(tempPath, data, fsutil.FileModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}
	if err := fsutil.Move(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}
	return nil
}

// ToYAML renders the configuration as YAML.
func (c *Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(YAMLIndent)
	if err := enc.Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return buf.Bytes(), nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Settings.OutputFormat {
	case "text", "json":
	default:
		return errors.Wrapf(errors.ErrConfigValidation, "invalid output format: %s", c.Settings.OutputFormat)
	}

	switch c.Settings.LogLevel {
	case "error", "warn", "info", "debug":
	default:
		return errors.Wrapf(errors.ErrConfigValidation, "invalid log level: %s", c.Settings.LogLevel)
	}

	if c.Settings.MaxEnvUses < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "max_env_uses cannot be negative")
	}
	if c.Settings.MaxCacheBytes < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "max_cache_bytes cannot be negative")
	}
	if c.Settings.HTTPTimeout < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "http_timeout cannot be negative")
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to determine user config directory")
	}
	return filepath.Join(configDir, fsutil.AppName, "config.yaml"), nil
}

// SetupMap returns the configured SDK setups keyed by channel, for
// building the tool environment factory.
func (c *Config) SetupMap() map[sdk.Channel]sdk.Setup {
	return map[sdk.Channel]sdk.Setup{
		sdk.ChannelStable:  c.Channels.Stable,
		sdk.ChannelPreview: c.Channels.Preview,
	}
}

// SetupFor returns the SDK setup for one channel.
func (c *Config) SetupFor(channel sdk.Channel) (sdk.Setup, error) {
	setup, ok := c.SetupMap()[channel]
	if !ok {
		return sdk.Setup{}, fmt.Errorf("%w: %s", errors.ErrUnknownChannel, channel)
	}
	return setup, nil
}

func (c *Config) applyDefaults() {
	if c.Settings.TempRoot == "" {
		if envRoot, err := fsutil.GetEnvRoot(); err == nil {
			c.Settings.TempRoot = envRoot
		}
	}
	if c.Settings.ArchiveDir == "" {
		if archiveDir, err := fsutil.GetArchiveCacheDir(); err == nil {
			c.Settings.ArchiveDir = archiveDir
		}
	}
	if c.Settings.HooksDir == "" {
		if hooksDir, err := fsutil.GetHooksDir(); err == nil {
			c.Settings.HooksDir = hooksDir
		}
	}
	if c.Settings.MaxEnvUses == 0 {
		c.Settings.MaxEnvUses = toolenv.MaxStartedCount
	}
	if c.Settings.MaxCacheBytes == 0 {
		c.Settings.MaxCacheBytes = toolenv.MaxCacheBytes
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = DefaultHTTPTimeout
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = "text"
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = "info"
	}
}
