package hooks

import (
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/glorpus-work/panakit/pkg/errors"
)

// TengoExecutor executes hook scripts with the tengo interpreter.
type TengoExecutor struct {
	scripts map[HookType]string
	mutex   sync.RWMutex
}

// NewTengoExecutor creates an executor with no scripts loaded.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{
		scripts: make(map[HookType]string),
	}
}

// Execute runs the script for the given hook type with the job context
// bound as script variables. A missing script is not an error.
func (e *TengoExecutor) Execute(hookType HookType, ctx HookContext) error {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	script, exists := e.scripts[hookType]
	if !exists {
		return nil
	}

	instance := tengo.NewScript([]byte(script))
	instance.SetImports(stdlib.GetModuleMap("fmt", "os", "text", "times", "json"))

	vars := map[string]interface{}{
		"packageName":    ctx.PackageName,
		"packageVersion": ctx.PackageVersion,
		"channel":        ctx.Channel,
		"workDir":        ctx.WorkDir,
		"cacheDir":       ctx.CacheDir,
	}
	for k, v := range ctx.Vars {
		vars[k] = v
	}
	for k, v := range vars {
		if err := instance.Add(k, v); err != nil {
			return fmt.Errorf("failed to add variable %q to script: %w", k, err)
		}
	}

	compiled, err := instance.Run()
	if err != nil {
		return fmt.Errorf("%s: %w: %w", hookType, errors.ErrHookExecution, err)
	}

	// Scripts signal failure by assigning to `err`
	errVar := compiled.Get("err")
	if errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return fmt.Errorf("%w: %w", errors.ErrHookScript, v)
		case string:
			if v != "" {
				return fmt.Errorf("%w: %s", errors.ErrHookScript, v)
			}
		}
	}
	return nil
}

// AddHook registers or replaces the script for a hook type.
func (e *TengoExecutor) AddHook(hook Hook) error {
	if hook.Type == "" {
		return errors.ErrHookTypeEmpty
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hook.Type] = hook.Content
	return nil
}

// RemoveHook drops the script for a hook type.
func (e *TengoExecutor) RemoveHook(hookType HookType) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	delete(e.scripts, hookType)
	return nil
}

// HasHook reports whether a script is loaded for a hook type.
func (e *TengoExecutor) HasHook(hookType HookType) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}
