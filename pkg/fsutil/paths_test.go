package fsutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirs(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG overrides only apply on Linux-like systems")
	}

	// Redirect both trees into the test's temp dir
	t.Setenv("XDG_CACHE_HOME", filepath.Join(t.TempDir(), "cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(t.TempDir(), "data"))

	err := EnsureDirs()
	require.NoError(t, err)

	cacheDir, err := GetCacheDir()
	require.NoError(t, err, "should get cache directory")

	dataDir, err := GetDataDir()
	require.NoError(t, err, "should get data directory")

	assert.DirExists(t, filepath.Join(cacheDir, "archives"))
	assert.DirExists(t, filepath.Join(cacheDir, "envs"))
	assert.DirExists(t, filepath.Join(dataDir, "hooks"))
}

func TestDerivedDirsShareAppRoot(t *testing.T) {
	cacheDir, err := GetCacheDir()
	require.NoError(t, err)
	assert.Equal(t, AppName, filepath.Base(cacheDir))

	archiveDir, err := GetArchiveCacheDir()
	require.NoError(t, err)
	assert.Equal(t, cacheDir, filepath.Dir(archiveDir))

	envRoot, err := GetEnvRoot()
	require.NoError(t, err)
	assert.Equal(t, cacheDir, filepath.Dir(envRoot))
}
