// Package platform provides constants and helpers for platform-specific
// information such as operating systems, architectures and executable names.
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform represents a host platform with OS and Architecture.
type Platform struct {
	OS   string `yaml:"os" json:"os"`
	Arch string `yaml:"arch" json:"arch"`
}

// Current returns the current platform (OS and architecture).
func Current() Platform {
	goos := runtime.GOOS
	if goos == "" {
		goos = "unknown"
	}

	goarch := runtime.GOARCH
	if goarch == "" {
		goarch = "unknown"
	}

	return Platform{
		OS:   NormalizeOS(goos),
		Arch: NormalizeArch(goarch),
	}
}

// String returns a string representation of the platform
func (p Platform) String() string {
	return fmt.Sprintf("%s/%s", p.OS, p.Arch)
}

// NormalizeOS normalizes OS names to a common format
func NormalizeOS(os string) string {
	os = strings.ToLower(strings.TrimSpace(os))
	switch os {
	case "darwin":
		return "macos"
	case "win", "windows":
		return "windows"
	case "linux":
		return "linux"
	default:
		return os
	}
}

// NormalizeArch normalizes architecture names to a common format
func NormalizeArch(arch string) string {
	arch = strings.ToLower(strings.TrimSpace(arch))
	switch arch {
	case "x86_64", "x64":
		return "amd64"
	case "x86", "i386", "i686":
		return "386"
	case "arm64", "aarch64":
		return "arm64"
	default:
		return arch
	}
}

// ExecutableName returns the platform-specific file name of a native executable.
func ExecutableName(base string) string {
	if runtime.GOOS == OSWindows {
		return base + ".exe"
	}
	return base
}

// ScriptName returns the platform-specific file name of a launcher script.
func ScriptName(base string) string {
	if runtime.GOOS == OSWindows {
		return base + ".bat"
	}
	return base
}
