package sdk

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/panakit/pkg/errors"
	"github.com/glorpus-work/panakit/pkg/platform"
	"github.com/hashicorp/go-version"
)

// Setup points at an installed SDK for one channel. DartRoot is required;
// FlutterRoot is optional and only set when Flutter tooling should be on
// the path as well.
type Setup struct {
	DartRoot    string `yaml:"dart_root" json:"dart_root"`
	FlutterRoot string `yaml:"flutter_root,omitempty" json:"flutter_root,omitempty"`
}

// DartBin returns the path of the dart executable for this setup.
func (s Setup) DartBin() string {
	return filepath.Join(s.DartRoot, "bin", platform.ExecutableName("dart"))
}

// FlutterBin returns the path of the flutter launcher for this setup.
// The result is only meaningful when FlutterRoot is set.
func (s Setup) FlutterBin() string {
	return filepath.Join(s.FlutterRoot, "bin", platform.ScriptName("flutter"))
}

// BinDirs returns the directories that must be prepended to PATH so the
// SDK tools resolve ahead of anything else on the host.
func (s Setup) BinDirs() []string {
	dirs := []string{filepath.Join(s.DartRoot, "bin")}
	if s.FlutterRoot != "" {
		dirs = append(dirs, filepath.Join(s.FlutterRoot, "bin"))
	}
	return dirs
}

// Validate checks that the configured roots exist and contain the
// expected executables.
func (s Setup) Validate() error {
	if s.DartRoot == "" {
		return errors.ErrSDKRootEmpty
	}
	if _, err := os.Stat(s.DartBin()); err != nil {
		return errors.Wrapf(errors.ErrSDKNotFound, "dart executable missing at %s", s.DartBin())
	}
	if s.FlutterRoot != "" {
		if _, err := os.Stat(s.FlutterBin()); err != nil {
			return errors.Wrapf(errors.ErrSDKNotFound, "flutter launcher missing at %s", s.FlutterBin())
		}
	}
	return nil
}

// Version reads and parses the SDK's version file. Dart SDK installations
// carry a single-line "version" file at the root.
func (s Setup) Version() (*version.Version, error) {
	raw, err := os.ReadFile(filepath.Join(s.DartRoot, "version"))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrSDKVersion, "read version file: %v", err)
	}
	v, err := version.NewVersion(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrSDKVersion, "parse %q", strings.TrimSpace(string(raw)))
	}
	return v, nil
}
