// Package pubspec reads the manifest of an unpacked Dart package.
package pubspec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"

	"github.com/glorpus-work/panakit/pkg/errors"
)

// Filename is the canonical manifest file name at a package root.
const Filename = "pubspec.yaml"

// Pubspec is the subset of a package manifest the analyzer cares about.
type Pubspec struct {
	Name        string                 `yaml:"name"`
	Version     string                 `yaml:"version,omitempty"`
	Description string                 `yaml:"description,omitempty"`
	Environment Environment            `yaml:"environment,omitempty"`
	Deps        map[string]interface{} `yaml:"dependencies,omitempty"`
	DevDeps     map[string]interface{} `yaml:"dev_dependencies,omitempty"`
}

// Environment carries the manifest's SDK constraints.
type Environment struct {
	SDK     string `yaml:"sdk,omitempty"`
	Flutter string `yaml:"flutter,omitempty"`
}

// Load reads the pubspec.yaml at the root of an unpacked package directory.
func Load(packageDir string) (*Pubspec, error) {
	data, err := os.ReadFile(filepath.Join(packageDir, Filename))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrManifestRead, "%s: %v", packageDir, err)
	}
	return Parse(data)
}

// Parse decodes manifest bytes.
func Parse(data []byte) (*Pubspec, error) {
	var spec Pubspec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrap(errors.ErrManifestParse, err.Error())
	}
	if spec.Name == "" {
		return nil, errors.Wrap(errors.ErrManifestParse, "missing package name")
	}
	return &spec, nil
}

// UsesFlutter reports whether the package depends on the Flutter SDK and
// therefore needs flutter tooling rather than plain dart.
func (p *Pubspec) UsesFlutter() bool {
	if p.Environment.Flutter != "" {
		return true
	}
	_, ok := p.Deps["flutter"]
	return ok
}

// SupportsSDK checks the manifest's SDK constraint against an installed
// SDK version. A manifest without a constraint supports everything.
func (p *Pubspec) SupportsSDK(sdkVersion *version.Version) bool {
	if p.Environment.SDK == "" || sdkVersion == nil {
		return true
	}
	constraint, err := version.NewConstraint(normalizeConstraint(p.Environment.SDK))
	if err != nil {
		// An unparseable constraint never blocks analysis; the SDK
		// tooling gives the authoritative answer
		return true
	}
	return constraint.Check(sdkVersion.Core())
}

// normalizeConstraint rewrites pub constraint syntax into the form
// go-version understands: caret ranges become explicit bounds and
// space-separated comparators become comma-separated ones.
func normalizeConstraint(constraint string) string {
	trimmed := strings.TrimSpace(constraint)
	if len(trimmed) < 2 || trimmed[0] != '^' {
		// Pub writes ">=2.12.0 <4.0.0", go-version wants a comma between
		// the comparators
		fields := strings.Fields(trimmed)
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			if len(parts) > 0 && isComparator(parts[len(parts)-1]) {
				// Operator separated from its version by a space
				parts[len(parts)-1] += f
				continue
			}
			parts = append(parts, f)
		}
		return strings.Join(parts, ", ")
	}
	v, err := version.NewVersion(trimmed[1:])
	if err != nil {
		return constraint
	}
	segments := v.Segments()
	var upper string
	if segments[0] == 0 {
		// ^0.x.y only allows patch-level drift
		upper = fmt.Sprintf("0.%d.0", segments[1]+1)
	} else {
		upper = fmt.Sprintf("%d.0.0", segments[0]+1)
	}
	return fmt.Sprintf(">= %s, < %s", v.String(), upper)
}

func isComparator(s string) bool {
	switch s {
	case "<", "<=", ">", ">=", "=", "!=":
		return true
	}
	return false
}
