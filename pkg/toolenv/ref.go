package toolenv

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/glorpus-work/panakit/internal/logger"
	"github.com/glorpus-work/panakit/pkg/dirsize"
	"github.com/glorpus-work/panakit/pkg/errors"
	"github.com/glorpus-work/panakit/pkg/fsutil"
	"github.com/glorpus-work/panakit/pkg/sdk"
)

// refSequence numbers environment generations for the lifetime of the
// process so log lines stay attributable after retirement.
var refSequence atomic.Int64

// EnvRef is one environment generation: a uniquely named cache directory
// plus an eagerly built environment per channel, with the counters that
// decide when the generation must stop being handed out.
//
// EnvRef methods are not safe for concurrent use; the pool's admission
// gate serializes all access.
type EnvRef struct {
	id       int64
	cacheDir string
	envs     map[sdk.Channel]*Environment

	startedCount int
	lastSize     int64
	overLimit    bool
	retired      bool

	scanner  dirsize.Scanner
	maxUses  int
	maxBytes int64
}

// newEnvRef creates the cache directory and builds an environment for
// every channel. On any construction failure the directory is removed
// again and the error carries the environment-init class.
func newEnvRef(ctx context.Context, factory Factory, tempRoot string, scanner dirsize.Scanner, maxUses int, maxBytes int64) (*EnvRef, error) {
	if err := fsutil.EnsureDir(tempRoot); err != nil {
		return nil, errors.Wrapf(errors.ErrEnvInit, "create temp root %s: %v", tempRoot, err)
	}

	dir, err := os.MkdirTemp(tempRoot, "env-*")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrEnvInit, "create cache directory: %v", err)
	}

	// Tools see the canonical path, not whatever symlink the temp root
	// happens to live behind
	cacheDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, errors.Wrapf(errors.ErrEnvInit, "resolve cache directory: %v", err)
	}

	envs := make(map[sdk.Channel]*Environment, len(sdk.Channels()))
	for _, channel := range sdk.Channels() {
		env, err := factory.New(ctx, channel, cacheDir)
		if err != nil {
			_ = os.RemoveAll(cacheDir)
			return nil, errors.Wrapf(errors.ErrEnvInit, "build %s environment: %v", channel, err)
		}
		envs[channel] = env
	}

	ref := &EnvRef{
		id:       refSequence.Add(1),
		cacheDir: cacheDir,
		envs:     envs,
		scanner:  scanner,
		maxUses:  maxUses,
		maxBytes: maxBytes,
	}

	logger.Debug("Created tool environment", logger.Fields{
		"id":  ref.id,
		"dir": cacheDir,
	})
	return ref, nil
}

// ID returns the generation number of this ref.
func (r *EnvRef) ID() int64 {
	return r.id
}

// CacheDir returns the symlink-resolved cache directory path.
func (r *EnvRef) CacheDir() string {
	return r.cacheDir
}

// Env returns the environment for a channel, or nil for unknown channels.
func (r *EnvRef) Env(channel sdk.Channel) *Environment {
	return r.envs[channel]
}

// RecordUse counts one granted access.
func (r *EnvRef) RecordUse() {
	r.startedCount++
}

// UseCount returns how many accesses have been granted so far.
func (r *EnvRef) UseCount() int {
	return r.startedCount
}

// OverLimit reports whether the cache has ever been measured above the
// byte ceiling.
func (r *EnvRef) OverLimit() bool {
	return r.overLimit
}

// LastSize returns the most recently measured cache size.
func (r *EnvRef) LastSize() int64 {
	return r.lastSize
}

// IsAvailable reports whether this generation may serve another access.
func (r *EnvRef) IsAvailable() bool {
	return !r.retired && r.startedCount < r.maxUses && !r.overLimit
}

// RefreshSize re-measures the cache directory and latches the over-limit
// flag if the ceiling is crossed. Once latched the directory is never
// measured again; a generation that proved unbounded stays condemned even
// if something shrank it in the meantime.
func (r *EnvRef) RefreshSize() int64 {
	if r.overLimit {
		return r.lastSize
	}

	r.lastSize = r.scanner.Scan(r.cacheDir)
	if r.lastSize > r.maxBytes {
		r.overLimit = true
		logger.Warn("Tool environment cache over size limit", logger.Fields{
			"id":    r.id,
			"size":  dirsize.FormatBytes(r.lastSize),
			"limit": dirsize.FormatBytes(r.maxBytes),
		})
	}
	return r.lastSize
}

// Retire deletes the cache directory. Retirement is idempotent and a
// deletion failure is logged and swallowed, never propagated.
func (r *EnvRef) Retire() {
	if r.retired {
		return
	}
	r.retired = true

	if err := os.RemoveAll(r.cacheDir); err != nil {
		logger.ErrorfWithFields(logger.Fields{
			"id":  r.id,
			"dir": r.cacheDir,
		}, "Failed to remove environment cache: %v", err)
		return
	}

	logger.Debug("Retired tool environment", logger.Fields{
		"id":   r.id,
		"uses": r.startedCount,
	})
}
