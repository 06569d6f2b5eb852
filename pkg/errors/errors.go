package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")

	// Tool environment errors.
	ErrEnvInit       = fmt.Errorf("failed to initialize tool environment")
	ErrEnvClosed     = fmt.Errorf("tool environment pool is closed")
	ErrEnvCleanup    = fmt.Errorf("failed to clean up tool environment")
	ErrTempDirectory = fmt.Errorf("temp directory cannot be empty")

	// SDK errors.
	ErrSDKRootEmpty   = fmt.Errorf("sdk root cannot be empty")
	ErrSDKNotFound    = fmt.Errorf("sdk not found")
	ErrSDKVersion     = fmt.Errorf("failed to determine sdk version")
	ErrUnknownChannel = fmt.Errorf("unknown sdk channel")

	// Registry errors.
	ErrPackageNotFound   = fmt.Errorf("package not found")
	ErrNoMatchingVersion = fmt.Errorf("no version matches the constraint")
	ErrRegistryRequest   = fmt.Errorf("registry request failed")

	// Download errors.
	ErrDownloadFailed   = fmt.Errorf("download failed")
	ErrChecksumMismatch = fmt.Errorf("archive checksum mismatch")
	ErrInvalidPath      = fmt.Errorf("invalid path")

	// Manifest errors.
	ErrManifestRead  = fmt.Errorf("failed to read pubspec")
	ErrManifestParse = fmt.Errorf("failed to parse pubspec")

	// Hook errors.
	ErrHookTypeEmpty = fmt.Errorf("hook type cannot be empty")
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
	ErrHookLoad      = fmt.Errorf("failed to load hook")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
