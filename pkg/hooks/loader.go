package hooks

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/panakit/pkg/errors"
)

// ScriptExtension is the file extension hook scripts must carry.
const ScriptExtension = ".tengo"

// LoadFromDir loads every recognized hook script from dir into the
// manager. Scripts are named after their hook type (pre-analysis.tengo,
// post-analysis.tengo); other files are ignored. A missing directory
// loads nothing.
func LoadFromDir(manager HookManager, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(errors.ErrHookLoad, "read hooks directory %s: %v", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ScriptExtension {
			continue
		}

		hookType := HookType(strings.TrimSuffix(entry.Name(), ScriptExtension))
		switch hookType {
		case PreAnalysis, PostAnalysis:
		default:
			continue
		}

		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(errors.ErrHookLoad, "read hook script %s: %v", path, err)
		}
		if err := manager.AddHook(Hook{Type: hookType, Content: string(content)}); err != nil {
			return errors.Wrapf(errors.ErrHookLoad, "add hook %s: %v", hookType, err)
		}
	}
	return nil
}

// List returns the hook types that have a script present in dir, in
// directory order.
func List(dir string) ([]HookType, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(errors.ErrHookLoad, "read hooks directory %s: %v", dir, err)
	}

	var found []HookType
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ScriptExtension {
			continue
		}
		hookType := HookType(strings.TrimSuffix(entry.Name(), ScriptExtension))
		switch hookType {
		case PreAnalysis, PostAnalysis:
			found = append(found, hookType)
		}
	}
	return found, nil
}
