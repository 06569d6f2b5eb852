package hooks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/panakit/pkg/errors"
	"github.com/glorpus-work/panakit/pkg/hooks"
)

func TestExecuteNoScript(t *testing.T) {
	e := hooks.NewTengoExecutor()
	assert.NoError(t, e.Execute(hooks.PreAnalysis, hooks.HookContext{}))
}

func TestExecuteSeesContextVariables(t *testing.T) {
	e := hooks.NewTengoExecutor()
	require.NoError(t, e.AddHook(hooks.Hook{
		Type: hooks.PreAnalysis,
		Content: `
err := ""
if packageName != "http" {
	err = "unexpected package: " + packageName
}
if channel != "stable" {
	err = "unexpected channel: " + channel
}
if workDir == "" {
	err = "workDir not set"
}
`,
	}))

	err := e.Execute(hooks.PreAnalysis, hooks.HookContext{
		PackageName:    "http",
		PackageVersion: "1.2.0",
		Channel:        "stable",
		WorkDir:        "/tmp/job",
		CacheDir:       "/tmp/cache",
	})
	assert.NoError(t, err)
}

func TestExecuteScriptError(t *testing.T) {
	e := hooks.NewTengoExecutor()
	require.NoError(t, e.AddHook(hooks.Hook{
		Type:    hooks.PostAnalysis,
		Content: `err := "refusing to continue"`,
	}))

	err := e.Execute(hooks.PostAnalysis, hooks.HookContext{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHookScript)
	assert.Contains(t, err.Error(), "refusing to continue")
}

func TestExecuteCompileFailure(t *testing.T) {
	e := hooks.NewTengoExecutor()
	require.NoError(t, e.AddHook(hooks.Hook{
		Type:    hooks.PreAnalysis,
		Content: `if {`,
	}))

	err := e.Execute(hooks.PreAnalysis, hooks.HookContext{})
	assert.ErrorIs(t, err, errors.ErrHookExecution)
}

func TestExecuteCustomVars(t *testing.T) {
	e := hooks.NewTengoExecutor()
	require.NoError(t, e.AddHook(hooks.Hook{
		Type: hooks.PreAnalysis,
		Content: `
err := ""
if jobId != "job-1" {
	err = "jobId not passed through"
}
`,
	}))

	err := e.Execute(hooks.PreAnalysis, hooks.HookContext{
		Vars: map[string]interface{}{"jobId": "job-1"},
	})
	assert.NoError(t, err)
}

func TestAddRemoveHasHook(t *testing.T) {
	e := hooks.NewTengoExecutor()

	assert.ErrorIs(t, e.AddHook(hooks.Hook{Content: "x := 1"}), errors.ErrHookTypeEmpty)
	assert.False(t, e.HasHook(hooks.PreAnalysis))

	require.NoError(t, e.AddHook(hooks.Hook{Type: hooks.PreAnalysis, Content: "x := 1"}))
	assert.True(t, e.HasHook(hooks.PreAnalysis))

	require.NoError(t, e.RemoveHook(hooks.PreAnalysis))
	assert.False(t, e.HasHook(hooks.PreAnalysis))
}
