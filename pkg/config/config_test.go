package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/panakit/pkg/auth"
	"github.com/glorpus-work/panakit/pkg/errors"
	"github.com/glorpus-work/panakit/pkg/sdk"
	"github.com/glorpus-work/panakit/pkg/toolenv"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, toolenv.MaxStartedCount, cfg.Settings.MaxEnvUses)
	assert.Equal(t, toolenv.MaxCacheBytes, cfg.Settings.MaxCacheBytes)
	assert.Equal(t, DefaultHTTPTimeout, cfg.Settings.HTTPTimeout)
	assert.Equal(t, "text", cfg.Settings.OutputFormat)
	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.NotEmpty(t, cfg.Settings.TempRoot)
	assert.Empty(t, cfg.Channels.Stable.DartRoot, "SDK roots have no default")
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Settings.LogLevel)

	_, err = LoadConfig("")
	assert.ErrorIs(t, err, errors.ErrEmptyConfigPath)
}

func TestLoadConfigFromReader(t *testing.T) {
	yaml := `
registry:
  url: https://pub.example.com
  auth:
    token:
      token: sekrit
channels:
  stable:
    dart_root: /opt/dart-stable
  preview:
    dart_root: /opt/dart-preview
    flutter_root: /opt/flutter-preview
settings:
  max_env_uses: 10
  max_cache_bytes: 1048576
  log_level: debug
`
	cfg, err := LoadConfigFromReader(strings.NewReader(yaml))
	require.NoError(t, err)

	assert.Equal(t, "https://pub.example.com", cfg.Registry.URL)
	assert.Equal(t, "/opt/dart-stable", cfg.Channels.Stable.DartRoot)
	assert.Equal(t, "/opt/flutter-preview", cfg.Channels.Preview.FlutterRoot)
	assert.Equal(t, 10, cfg.Settings.MaxEnvUses)
	assert.Equal(t, int64(1048576), cfg.Settings.MaxCacheBytes)
	assert.Equal(t, DefaultHTTPTimeout, cfg.Settings.HTTPTimeout)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	// Unset fields still get defaults
	assert.Equal(t, "text", cfg.Settings.OutputFormat)

	authenticator := cfg.Authenticator()
	require.NotNil(t, authenticator)
	assert.Equal(t, auth.TokenAuthType, authenticator.Type())
}

func TestLoadConfigFromReaderInvalid(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("{invalid"))
	assert.ErrorIs(t, err, errors.ErrConfigParse)

	_, err = LoadConfigFromReader(strings.NewReader("settings:\n  log_level: shouty\n"))
	assert.ErrorIs(t, err, errors.ErrConfigValidation)

	_, err = LoadConfigFromReader(strings.NewReader("settings:\n  output_format: xml\n"))
	assert.ErrorIs(t, err, errors.ErrConfigValidation)

	_, err = LoadConfigFromReader(strings.NewReader("settings:\n  max_env_uses: -1\n"))
	assert.ErrorIs(t, err, errors.ErrConfigValidation)
}

func TestSaveAndReloadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Registry.URL = "https://pub.example.com"
	cfg.Channels.Stable.DartRoot = "/opt/dart"
	cfg.Settings.MaxEnvUses = 7

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Registry.URL, loaded.Registry.URL)
	assert.Equal(t, cfg.Channels.Stable.DartRoot, loaded.Channels.Stable.DartRoot)
	assert.Equal(t, 7, loaded.Settings.MaxEnvUses)

	// No stray temp file left behind
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSetupFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Channels.Stable.DartRoot = "/opt/dart-stable"
	cfg.Channels.Preview.DartRoot = "/opt/dart-preview"

	setup, err := cfg.SetupFor(sdk.ChannelStable)
	require.NoError(t, err)
	assert.Equal(t, "/opt/dart-stable", setup.DartRoot)

	setup, err = cfg.SetupFor(sdk.ChannelPreview)
	require.NoError(t, err)
	assert.Equal(t, "/opt/dart-preview", setup.DartRoot)
}

func TestAuthenticatorVariants(t *testing.T) {
	cfg := DefaultConfig()
	assert.Nil(t, cfg.Authenticator())

	cfg.Registry.Auth = &AuthConfig{BasicAuth: &BasicAuth{Username: "u", Password: "p"}}
	require.NotNil(t, cfg.Authenticator())
	assert.Equal(t, auth.BasicAuthType, cfg.Authenticator().Type())

	cfg.Registry.Auth = &AuthConfig{HeaderAuth: &HeaderAuth{Headers: map[string]string{"X-Key": "v"}}}
	require.NotNil(t, cfg.Authenticator())
	assert.Equal(t, auth.HeaderAuthType, cfg.Authenticator().Type())

	cfg.Registry.Auth = &AuthConfig{}
	assert.Nil(t, cfg.Authenticator())
}
