package toolenv

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/glorpus-work/panakit/internal/logger"
	"github.com/glorpus-work/panakit/pkg/dirsize"
	"github.com/glorpus-work/panakit/pkg/errors"
	"github.com/glorpus-work/panakit/pkg/sdk"
)

// PoolOptions configures a Pool.
type PoolOptions struct {
	// Factory builds channel environments. Required.
	Factory Factory
	// Scanner measures cache directories. Defaults to the filesystem scanner.
	Scanner dirsize.Scanner
	// Tracker receives per-directory size observations. Optional.
	Tracker *dirsize.Tracker
	// TempRoot is the directory environment caches are created under. Required.
	TempRoot string
	// MaxUses overrides MaxStartedCount when positive.
	MaxUses int
	// MaxBytes overrides MaxCacheBytes when positive.
	MaxBytes int64
}

// Pool hands out tool environments one caller at a time, reusing a warm
// environment generation until it has served its quota of accesses or its
// cache outgrew the byte ceiling. An ineligible generation keeps serving
// its in-flight caller and is only retired when the next caller is
// admitted.
type Pool struct {
	factory  Factory
	scanner  dirsize.Scanner
	tracker  *dirsize.Tracker
	tempRoot string
	maxUses  int
	maxBytes int64

	// gate admits exactly one caller's full cycle at a time. current and
	// closed are only touched while holding it.
	gate    *semaphore.Weighted
	current *EnvRef
	closed  bool
}

// NewPool creates a pool from the given options.
func NewPool(opts PoolOptions) (*Pool, error) {
	if opts.Factory == nil {
		return nil, errors.Wrap(errors.ErrEnvInit, "factory is required")
	}
	if opts.TempRoot == "" {
		return nil, errors.ErrTempDirectory
	}
	if opts.Scanner == nil {
		opts.Scanner = dirsize.NewScanner()
	}
	if opts.MaxUses <= 0 {
		opts.MaxUses = MaxStartedCount
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = MaxCacheBytes
	}

	return &Pool{
		factory:  opts.Factory,
		scanner:  opts.Scanner,
		tracker:  opts.Tracker,
		tempRoot: opts.TempRoot,
		maxUses:  opts.MaxUses,
		maxBytes: opts.MaxBytes,
		gate:     semaphore.NewWeighted(1),
	}, nil
}

// WithEnv admits the caller, hands fn the environment for the requested
// channel and re-measures the cache before the next caller is admitted.
// The environment must not be retained beyond fn's return.
//
// fn's error is returned verbatim; a failed callback does not evict the
// environment.
func (p *Pool) WithEnv(ctx context.Context, channel sdk.Channel, fn func(ctx context.Context, env *Environment) error) error {
	if err := p.gate.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.gate.Release(1)

	if p.closed {
		return errors.ErrEnvClosed
	}

	// A generation that became ineligible during its previous run is
	// retired here, never mid-flight
	if p.current != nil && !p.current.IsAvailable() {
		p.retireCurrent()
	}

	if p.current == nil {
		ref, err := newEnvRef(ctx, p.factory, p.tempRoot, p.scanner, p.maxUses, p.maxBytes)
		if err != nil {
			return err
		}
		p.current = ref
	}

	ref := p.current
	env := ref.Env(channel)
	if env == nil {
		return errors.Wrapf(errors.ErrUnknownChannel, "%s", channel)
	}

	ref.RecordUse()
	logger.Debug("Granted tool environment", logger.Fields{
		"id":      ref.ID(),
		"channel": channel.String(),
		"uses":    ref.UseCount(),
	})

	// Measure after the callback no matter how it went
	defer p.observeSizes(ref)

	return fn(ctx, env)
}

// Close retires the live environment generation and rejects future
// callers. It blocks until any in-flight callback finishes.
func (p *Pool) Close(ctx context.Context) error {
	if err := p.gate.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.gate.Release(1)

	if p.closed {
		return nil
	}
	p.closed = true
	p.retireCurrent()
	return nil
}

// retireCurrent clears the slot and retires the generation it held.
func (p *Pool) retireCurrent() {
	ref := p.current
	p.current = nil
	if ref == nil {
		return
	}

	logger.Info("Retiring tool environment", logger.Fields{
		"id":        ref.ID(),
		"uses":      ref.UseCount(),
		"size":      dirsize.FormatBytes(ref.LastSize()),
		"overLimit": ref.OverLimit(),
	})
	ref.Retire()
}

// observeSizes refreshes the generation's size accounting and feeds the
// per-directory breakdown to the tracker. Measurement problems only cost
// accuracy, they never fail the caller's run.
func (p *Pool) observeSizes(ref *EnvRef) {
	wasOver := ref.OverLimit()
	ref.RefreshSize()

	if p.tracker != nil && !wasOver {
		p.tracker.Observe(p.scanner.ScanTree(ref.CacheDir()))
	}
}
