// Package model provides the data structures shared between the registry
// client, the analysis runner and the CLI: package references, version
// metadata and analysis reports.
package model

import (
	"net/url"

	"github.com/hashicorp/go-version"
)

// PackageRef names one pub package, optionally pinned by a version
// constraint. An empty constraint means "latest".
type PackageRef struct {
	Name              string `json:"name"`
	VersionConstraint string `json:"version_constraint,omitempty"`
}

// String renders the ref the way pub tooling prints it.
func (r PackageRef) String() string {
	if r.VersionConstraint == "" {
		return r.Name
	}
	return r.Name + " " + r.VersionConstraint
}

// PackageVersion is one published version of a package as the registry
// describes it.
type PackageVersion struct {
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	ArchiveURL *url.URL `json:"-"`
	// ArchiveSHA256 is the hex checksum the registry publishes for the
	// archive; empty when the registry predates checksum support.
	ArchiveSHA256 string `json:"archive_sha256,omitempty"`
	Retracted     bool   `json:"retracted,omitempty"`
}

// GetVersion parses the version string, returning nil when it is not a
// valid version.
func (pv *PackageVersion) GetVersion() *version.Version {
	v, err := version.NewVersion(pv.Version)
	if err != nil {
		return nil
	}
	return v
}

// IsPrerelease reports whether this version carries a prerelease tag.
func (pv *PackageVersion) IsPrerelease() bool {
	v := pv.GetVersion()
	return v != nil && v.Prerelease() != ""
}

// MatchVersion checks whether this version satisfies the given constraint.
func (pv *PackageVersion) MatchVersion(versionConstraint string) bool {
	constraint, err := version.NewConstraint(versionConstraint)
	if err != nil {
		return false
	}
	v := pv.GetVersion()
	if v == nil {
		return false
	}
	return constraint.Check(v)
}
