package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"github.com/glorpus-work/panakit/pkg/platform"
)

const (
	// AppName is the name of the application used in paths
	AppName = "panakit"
)

// GetCacheDir returns the platform-specific cache directory for the application
// On Linux: ~/.cache/panakit/
// On macOS: ~/Library/Caches/panakit/
// On Windows: %LOCALAPPDATA%\panakit\cache\
func GetCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, AppName), nil
}

// getAppDataDir returns the platform-specific base data directory
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func getAppDataDir() (string, error) {
	switch runtime.GOOS {
	case platform.OSWindows:
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			return "", errors.New("LOCALAPPDATA environment variable not set")
		}
		return localAppData, nil

	case platform.OSDarwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil

	default: // Linux, BSD, etc.
		// Use XDG_DATA_HOME with fallback to ~/.local/share
		if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
			return xdgDataHome, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}

// GetDataDir returns the platform-specific data directory for the application
// On Linux: ~/.local/share/panakit/
// On macOS: ~/Library/Application Support/panakit/
// On Windows: %LOCALAPPDATA%\panakit\
func GetDataDir() (string, error) {
	baseDir, err := getAppDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, AppName), nil
}

// GetArchiveCacheDir returns the directory for storing downloaded package archives
// Format: <cache_dir>/archives/
func GetArchiveCacheDir() (string, error) {
	cacheDir, err := GetCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "archives"), nil
}

// GetEnvRoot returns the default root directory for pooled tool environments
// Format: <cache_dir>/envs/
func GetEnvRoot() (string, error) {
	cacheDir, err := GetCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "envs"), nil
}

// GetHooksDir returns the directory holding lifecycle hook scripts
// Format: <data_dir>/hooks/
func GetHooksDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "hooks"), nil
}

// EnsureDirs creates all necessary directories if they don't exist
func EnsureDirs() error {
	dirs := []func() (string, error){
		GetArchiveCacheDir,
		GetEnvRoot,
		GetHooksDir,
	}

	for _, dirFn := range dirs {
		dir, err := dirFn()
		if err != nil {
			return err
		}
		if err := EnsureDir(dir); err != nil {
			return err
		}
	}

	return nil
}
