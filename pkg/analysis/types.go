//go:generate mockgen -destination=./mocks/analysis.go . Resolver,Downloader,Extractor,EnvProvider

package analysis

import (
	"context"

	"github.com/glorpus-work/panakit/pkg/dirsize"
	"github.com/glorpus-work/panakit/pkg/download"
	"github.com/glorpus-work/panakit/pkg/hooks"
	"github.com/glorpus-work/panakit/pkg/model"
	"github.com/glorpus-work/panakit/pkg/sdk"
	"github.com/glorpus-work/panakit/pkg/toolenv"
)

// Resolver is the subset of the registry client used by the runner.
type Resolver interface {
	Resolve(ctx context.Context, ref model.PackageRef, includePrereleases bool) (*model.PackageVersion, error)
}

// Downloader fetches package archives.
type Downloader interface {
	Fetch(ctx context.Context, item download.Item, opts download.Options) (string, error)
}

// Extractor unpacks archives into job workspaces.
type Extractor interface {
	ExtractAll(ctx context.Context, archivePath, destDir string) error
}

// EnvProvider grants scoped access to a pooled tool environment.
type EnvProvider interface {
	WithEnv(ctx context.Context, channel sdk.Channel, fn func(ctx context.Context, env *toolenv.Environment) error) error
}

// Event represents a simple progress notification.
type Event struct {
	Phase string // resolving|downloading|extracting|analyzing|done|error
	ID    string // job ID
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// Options control a single analysis run.
type Options struct {
	// ArchiveDir is where downloaded archives are cached. Required.
	ArchiveDir string
	// WorkRoot is where per-job workspaces are created. Defaults to the
	// system temp directory.
	WorkRoot string
	// KeepWorkDir leaves the job workspace on disk for inspection.
	KeepWorkDir bool
}

// Runner ties registry, download, archive and the tool environment pool
// together into one analysis job pipeline.
type Runner struct {
	Registry  Resolver
	DL        Downloader
	Archive   Extractor
	Pool      EnvProvider
	Lifecycle hooks.HookManager // optional operator hook scripts
	Hooks     Hooks             // progress events, optional
	Sizes     dirsize.Scanner   // optional; fills the report's cache size
}

// New constructs a Runner from existing collaborators. Helper for wiring.
func New(registry Resolver, dl Downloader, archive Extractor, pool EnvProvider, lifecycle hooks.HookManager, h Hooks) *Runner {
	return &Runner{
		Registry:  registry,
		DL:        dl,
		Archive:   archive,
		Pool:      pool,
		Lifecycle: lifecycle,
		Hooks:     h,
	}
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}
