//go:build integration

package main

import (
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/panakit/pkg/config"
	"github.com/glorpus-work/panakit/test/testutil"
)

func buildTestBinary(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	binaryPath := filepath.Join(tmpDir, "panakit")
	if runtime.GOOS == "windows" {
		binaryPath += ".exe"
	}

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cli/panakit")
	cmd.Dir = filepath.Clean(filepath.Join("..", ".."))

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build test binary: %s", string(output))

	return binaryPath
}

// writeTestConfig writes a config pointing at the fake registry and fake
// SDKs, with everything else rooted in the test's temp space.
func writeTestConfig(t *testing.T, registryURL string) string {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Registry.URL = registryURL
	cfg.Channels.Stable.DartRoot = testutil.WriteFakeDartSDK(t, "3.5.0")
	cfg.Channels.Preview.DartRoot = testutil.WriteFakeDartSDK(t, "3.6.0-beta.1")
	cfg.Settings.TempRoot = filepath.Join(t.TempDir(), "envs")
	cfg.Settings.ArchiveDir = filepath.Join(t.TempDir(), "archives")
	cfg.Settings.HooksDir = filepath.Join(t.TempDir(), "hooks")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, cfg.SaveConfig(path))
	return path
}

func runCLI(t *testing.T, binaryPath string, args ...string) (string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}
