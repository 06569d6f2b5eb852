// Package hooks runs operator-supplied tengo scripts around analysis
// jobs, so deployments can bolt on bookkeeping (notifications, result
// uploads, workspace tweaks) without changing the runner.
package hooks

// HookType represents the lifecycle point a script is attached to.
type HookType string

// Supported hook types.
const (
	// PreAnalysis runs after the package is unpacked, before any tool step.
	PreAnalysis HookType = "pre-analysis"
	// PostAnalysis runs after all tool steps, whether they succeeded or not.
	PostAnalysis HookType = "post-analysis"
)

// Hook is one script with its lifecycle point.
type Hook struct {
	Type    HookType
	Content string
}

// HookContext carries the job facts exposed to scripts as variables.
type HookContext struct {
	PackageName    string
	PackageVersion string
	Channel        string
	WorkDir        string
	CacheDir       string
	Vars           map[string]interface{}
}

// HookManager manages lifecycle hook scripts.
type HookManager interface {
	// Execute runs the script for the given hook type, if one is loaded.
	Execute(hookType HookType, ctx HookContext) error

	// AddHook registers or replaces the script for a hook type.
	AddHook(hook Hook) error

	// RemoveHook drops the script for a hook type.
	RemoveHook(hookType HookType) error

	// HasHook reports whether a script is loaded for a hook type.
	HasHook(hookType HookType) bool
}
