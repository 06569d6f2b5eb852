// Package toolenv pools disk-backed SDK tool environments so consecutive
// analysis jobs reuse a warm package cache instead of paying cold-start
// cost on every run.
package toolenv

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/glorpus-work/panakit/pkg/errors"
	"github.com/glorpus-work/panakit/pkg/sdk"
)

// Environment is a ready-to-use toolchain for one channel. All channels
// of a generation share the same cache directory, so packages fetched by
// one channel's tooling are visible to the other.
type Environment struct {
	channel  sdk.Channel
	setup    sdk.Setup
	cacheDir string
	environ  []string
}

// NewEnvironment binds an SDK setup to a cache directory.
func NewEnvironment(channel sdk.Channel, setup sdk.Setup, cacheDir string) *Environment {
	return &Environment{
		channel:  channel,
		setup:    setup,
		cacheDir: cacheDir,
		environ:  buildEnviron(setup, cacheDir),
	}
}

// Channel returns the SDK channel this environment runs.
func (e *Environment) Channel() sdk.Channel {
	return e.channel
}

// Setup returns the SDK roots backing this environment.
func (e *Environment) Setup() sdk.Setup {
	return e.setup
}

// CacheDir returns the shared package cache directory.
func (e *Environment) CacheDir() string {
	return e.cacheDir
}

// Environ returns the process environment for tool invocations: the host
// environment with PUB_CACHE pointed at the cache directory, the SDK bin
// directories prepended to PATH, and FLUTTER_ROOT set when applicable.
func (e *Environment) Environ() []string {
	environ := make([]string, len(e.environ))
	copy(environ, e.environ)
	return environ
}

// Command prepares a command that runs with this environment applied.
func (e *Environment) Command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = e.Environ()
	return cmd
}

// Dart prepares an invocation of the channel's dart executable.
func (e *Environment) Dart(ctx context.Context, args ...string) *exec.Cmd {
	return e.Command(ctx, e.setup.DartBin(), args...)
}

// Flutter prepares an invocation of the channel's flutter launcher.
func (e *Environment) Flutter(ctx context.Context, args ...string) *exec.Cmd {
	return e.Command(ctx, e.setup.FlutterBin(), args...)
}

func buildEnviron(setup sdk.Setup, cacheDir string) []string {
	path := strings.Join(append(setup.BinDirs(), os.Getenv("PATH")), string(os.PathListSeparator))

	environ := make([]string, 0, len(os.Environ())+3)
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "PUB_CACHE=") ||
			strings.HasPrefix(kv, "FLUTTER_ROOT=") ||
			strings.HasPrefix(kv, "PATH=") {
			continue
		}
		environ = append(environ, kv)
	}

	environ = append(environ, "PUB_CACHE="+cacheDir, "PATH="+path)
	if setup.FlutterRoot != "" {
		environ = append(environ, "FLUTTER_ROOT="+setup.FlutterRoot)
	}
	return environ
}

// DefaultFactory builds environments from configured channel setups.
type DefaultFactory struct {
	setups map[sdk.Channel]sdk.Setup
}

// NewFactory creates a factory over the given channel setups.
func NewFactory(setups map[sdk.Channel]sdk.Setup) *DefaultFactory {
	return &DefaultFactory{setups: setups}
}

// New validates the channel's SDK setup and binds it to the cache directory.
func (f *DefaultFactory) New(_ context.Context, channel sdk.Channel, cacheDir string) (*Environment, error) {
	setup, ok := f.setups[channel]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownChannel, "no sdk setup for channel %s", channel)
	}
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	return NewEnvironment(channel, setup, cacheDir), nil
}
