//go:generate mockgen -destination=./mocks/registry.go . Client
package registry

import (
	"context"

	"github.com/glorpus-work/panakit/pkg/model"
)

// Client answers version queries against a pub registry.
type Client interface {
	// ListVersions returns every published version of a package, newest
	// last, as the registry reports them.
	ListVersions(ctx context.Context, name string) ([]*model.PackageVersion, error)

	// Resolve picks the version of a package that a ref should analyze:
	// the highest version matching the ref's constraint. Prerelease
	// versions are only considered when the constraint itself names a
	// prerelease or includePrereleases is set.
	Resolve(ctx context.Context, ref model.PackageRef, includePrereleases bool) (*model.PackageVersion, error)
}
