//go:generate mockgen -destination=./mocks/toolenv.go . Factory
package toolenv

import (
	"context"

	"github.com/glorpus-work/panakit/pkg/sdk"
)

// Factory builds channel environments bound to a shared cache directory.
// Building may be expensive (validating SDK roots, priming caches), which
// is why environments are pooled rather than built per job.
type Factory interface {
	New(ctx context.Context, channel sdk.Channel, cacheDir string) (*Environment, error)
}
