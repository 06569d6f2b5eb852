package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

const fakeToolScript = `#!/bin/sh
echo "$0 $@"
exit 0
`

// WriteFakeDartSDK lays out a minimal Dart SDK installation under a fresh
// temp directory and returns its root. The dart binary is a stub shell
// script, good enough for validation and for exercising command plumbing
// on Unix-like systems.
func WriteFakeDartSDK(t *testing.T, sdkVersion string) string {
	t.Helper()

	root := t.TempDir()
	writeExecutable(t, filepath.Join(root, "bin", "dart"))
	if err := os.WriteFile(filepath.Join(root, "version"), []byte(sdkVersion+"\n"), 0o644); err != nil {
		t.Fatalf("Failed to write SDK version file: %v", err)
	}
	return root
}

// WriteFakeFlutterSDK lays out a minimal Flutter SDK installation under a
// fresh temp directory and returns its root.
func WriteFakeFlutterSDK(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeExecutable(t, filepath.Join(root, "bin", "flutter"))
	return root
}

func writeExecutable(t *testing.T, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create tool directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(fakeToolScript), 0o755); err != nil {
		t.Fatalf("Failed to write tool stub %s: %v", path, err)
	}
}
