// Package analysis runs package-analysis jobs: resolve a package against
// the registry, download and unpack its archive, then execute SDK tooling
// against it inside a pooled tool environment.
package analysis

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glorpus-work/panakit/internal/logger"
	"github.com/glorpus-work/panakit/pkg/download"
	"github.com/glorpus-work/panakit/pkg/errors"
	"github.com/glorpus-work/panakit/pkg/hooks"
	"github.com/glorpus-work/panakit/pkg/model"
	"github.com/glorpus-work/panakit/pkg/pubspec"
	"github.com/glorpus-work/panakit/pkg/sdk"
	"github.com/glorpus-work/panakit/pkg/toolenv"
)

// Analyze runs one analysis job and returns its report. Tool steps that
// exit nonzero are recorded in the report, not returned as errors; an
// error means the job itself could not run (resolution, download,
// environment construction).
func (r *Runner) Analyze(ctx context.Context, req model.AnalysisRequest, opts Options) (*model.Report, error) {
	channel, err := sdk.ParseChannel(req.Channel)
	if err != nil {
		return nil, err
	}

	jobID := uuid.NewString()
	report := &model.Report{
		JobID:     jobID,
		Package:   req.Package.Name,
		Channel:   channel.String(),
		StartedAt: time.Now(),
	}

	emit(r.Hooks, Event{Phase: "resolving", ID: jobID, Msg: req.Package.String()})
	pv, err := r.Registry.Resolve(ctx, req.Package, channel == sdk.ChannelPreview)
	if err != nil {
		emit(r.Hooks, Event{Phase: "error", ID: jobID, Msg: err.Error()})
		return nil, err
	}
	report.Version = pv.Version

	emit(r.Hooks, Event{Phase: "downloading", ID: jobID, Msg: pv.Version})
	archivePath, err := r.DL.Fetch(ctx, download.Item{
		ID:       pv.Name + "-" + pv.Version,
		URL:      pv.ArchiveURL,
		Checksum: pv.ArchiveSHA256,
		Filename: pv.Name + "-" + pv.Version + ".tar.gz",
	}, download.Options{Dir: opts.ArchiveDir})
	if err != nil {
		emit(r.Hooks, Event{Phase: "error", ID: jobID, Msg: err.Error()})
		return nil, err
	}

	workDir, err := os.MkdirTemp(opts.WorkRoot, "panakit-job-*")
	if err != nil {
		return nil, errors.Wrap(err, "could not create job workspace")
	}
	if !opts.KeepWorkDir {
		defer func() {
			if err := os.RemoveAll(workDir); err != nil {
				logger.Warnf("Failed to remove job workspace %s: %v", workDir, err)
			}
		}()
	}

	emit(r.Hooks, Event{Phase: "extracting", ID: jobID, Msg: archivePath})
	if err := r.Archive.ExtractAll(ctx, archivePath, workDir); err != nil {
		emit(r.Hooks, Event{Phase: "error", ID: jobID, Msg: err.Error()})
		return nil, err
	}

	spec, err := pubspec.Load(workDir)
	if err != nil {
		emit(r.Hooks, Event{Phase: "error", ID: jobID, Msg: err.Error()})
		return nil, err
	}

	emit(r.Hooks, Event{Phase: "analyzing", ID: jobID, Msg: pv.Name + " " + pv.Version})
	err = r.Pool.WithEnv(ctx, channel, func(ctx context.Context, env *toolenv.Environment) error {
		return r.runTools(ctx, env, spec, workDir, report)
	})
	if err != nil {
		emit(r.Hooks, Event{Phase: "error", ID: jobID, Msg: err.Error()})
		return nil, err
	}

	report.Duration = time.Since(report.StartedAt)
	emit(r.Hooks, Event{Phase: "done", ID: jobID, Msg: report.Package + " " + report.Version})
	return report, nil
}

// runTools executes the tool steps for one job inside a granted
// environment. The environment must not be retained beyond this call.
func (r *Runner) runTools(ctx context.Context, env *toolenv.Environment, spec *pubspec.Pubspec, workDir string, report *model.Report) error {
	if v, err := env.Setup().Version(); err == nil {
		report.SDKVersion = v.String()
		if !spec.SupportsSDK(v) {
			logger.Warn("Package SDK constraint does not match installed SDK", logger.Fields{
				"package":    spec.Name,
				"constraint": spec.Environment.SDK,
				"sdk":        v.String(),
			})
		}
	} else {
		logger.Debugf("Could not determine SDK version: %v", err)
	}

	hookCtx := hooks.HookContext{
		PackageName:    report.Package,
		PackageVersion: report.Version,
		Channel:        report.Channel,
		WorkDir:        workDir,
		CacheDir:       env.CacheDir(),
		Vars:           map[string]interface{}{"jobId": report.JobID},
	}
	if r.Lifecycle != nil {
		if err := r.Lifecycle.Execute(hooks.PreAnalysis, hookCtx); err != nil {
			return err
		}
	}

	steps := toolSteps(spec)
	for _, step := range steps {
		result, err := runStep(ctx, env, workDir, step)
		if err != nil {
			return err
		}
		report.Steps = append(report.Steps, result)
		if !result.Succeeded() && step.required {
			// Later steps depend on a populated workspace; stop here and
			// let the report carry the failure
			break
		}
	}

	if r.Lifecycle != nil {
		if err := r.Lifecycle.Execute(hooks.PostAnalysis, hookCtx); err != nil {
			return err
		}
	}

	if r.Sizes != nil {
		report.CacheSizeBytes = r.Sizes.Scan(env.CacheDir())
	}
	return nil
}

type toolStep struct {
	name     string
	args     []string
	flutter  bool
	required bool // later steps are skipped when a required step fails
}

func toolSteps(spec *pubspec.Pubspec) []toolStep {
	if spec.UsesFlutter() {
		return []toolStep{
			{name: "pub get", args: []string{"pub", "get"}, flutter: true, required: true},
			{name: "analyze", args: []string{"analyze", "--no-pub", "."}, flutter: true},
		}
	}
	return []toolStep{
		{name: "pub get", args: []string{"pub", "get"}, required: true},
		{name: "analyze", args: []string{"analyze", "."}},
	}
}

func runStep(ctx context.Context, env *toolenv.Environment, workDir string, step toolStep) (model.StepResult, error) {
	var cmd *exec.Cmd
	if step.flutter {
		cmd = env.Flutter(ctx, step.args...)
	} else {
		cmd = env.Dart(ctx, step.args...)
	}
	cmd.Dir = workDir

	started := time.Now()
	out, err := cmd.CombinedOutput()
	result := model.StepResult{
		Name:     step.name,
		Command:  strings.Join(cmd.Args, " "),
		Duration: time.Since(started),
		Output:   string(out),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			// The tool could not be started at all; that is a job
			// failure, not an analysis finding
			return model.StepResult{}, fmt.Errorf("failed to run %s: %w", result.Command, err)
		}
	}

	logger.Debug("Tool step finished", logger.Fields{
		"step": step.name,
		"exit": result.ExitCode,
		"took": result.Duration.String(),
	})
	return result, nil
}
