package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/panakit/pkg/analysis"
	"github.com/glorpus-work/panakit/pkg/archive"
	"github.com/glorpus-work/panakit/pkg/config"
	"github.com/glorpus-work/panakit/pkg/dirsize"
	"github.com/glorpus-work/panakit/pkg/download"
	"github.com/glorpus-work/panakit/pkg/hooks"
	"github.com/glorpus-work/panakit/pkg/model"
	"github.com/glorpus-work/panakit/pkg/registry"
	"github.com/glorpus-work/panakit/pkg/toolenv"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	var (
		channel    string
		constraint string
		bundlePath string
		keepWork   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze PACKAGE",
		Short: "Analyze a pub package",
		Long: `Resolve a package against the registry, download and unpack it, and run
SDK tooling (pub get, analyze) against it in a pooled tool environment.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args[0], channel, constraint, bundlePath, keepWork)
		},
	}

	cmd.Flags().StringVarP(&channel, "channel", "c", "stable", "SDK channel to analyze on (stable, preview)")
	cmd.Flags().StringVar(&constraint, "constraint", "", "version constraint (default: latest)")
	cmd.Flags().StringVar(&bundlePath, "bundle", "", "write a tar.gz report bundle to this path")
	cmd.Flags().BoolVar(&keepWork, "keep-work", false, "keep the job workspace for inspection")

	return cmd
}

func runAnalyze(ctx context.Context, pkgName, channel, constraint, bundlePath string, keepWork bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runner, pool, err := buildRunner(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = pool.Close(context.WithoutCancel(ctx)) }()

	report, err := runner.Analyze(ctx, model.AnalysisRequest{
		Package: model.PackageRef{Name: pkgName, VersionConstraint: constraint},
		Channel: channel,
	}, analysis.Options{
		ArchiveDir:  cfg.Settings.ArchiveDir,
		KeepWorkDir: keepWork,
	})
	if err != nil {
		return err
	}

	if err := printReport(cfg, report); err != nil {
		return err
	}
	if bundlePath != "" {
		if err := writeBundle(ctx, report, bundlePath); err != nil {
			return err
		}
	}
	if !report.Succeeded() {
		return fmt.Errorf("analysis of %s %s reported failures", report.Package, report.Version)
	}
	return nil
}

// buildRunner wires the analysis pipeline from the configuration.
func buildRunner(cfg *config.Config) (*analysis.Runner, *toolenv.Pool, error) {
	client, err := registry.New(cfg.Registry.URL, registry.Options{
		Timeout: cfg.Settings.HTTPTimeout,
		Auth:    cfg.Authenticator(),
	})
	if err != nil {
		return nil, nil, err
	}

	scanner := dirsize.NewScanner()
	pool, err := toolenv.NewPool(toolenv.PoolOptions{
		Factory:  toolenv.NewFactory(cfg.SetupMap()),
		Scanner:  scanner,
		Tracker:  dirsize.NewTracker(),
		TempRoot: cfg.Settings.TempRoot,
		MaxUses:  cfg.Settings.MaxEnvUses,
		MaxBytes: cfg.Settings.MaxCacheBytes,
	})
	if err != nil {
		return nil, nil, err
	}

	lifecycle := hooks.NewTengoExecutor()
	if err := hooks.LoadFromDir(lifecycle, cfg.Settings.HooksDir); err != nil {
		_ = pool.Close(context.Background())
		return nil, nil, err
	}

	runner := analysis.New(
		client,
		download.NewManager(cfg.Settings.HTTPTimeout, "", cfg.Authenticator()),
		archive.NewManager(),
		pool,
		lifecycle,
		analysis.Hooks{OnEvent: printEvent},
	)
	runner.Sizes = scanner
	return runner, pool, nil
}

func printEvent(e analysis.Event) {
	fmt.Printf("%-12s %s\n", e.Phase, e.Msg)
}

func printReport(cfg *config.Config, report *model.Report) error {
	if cfg.Settings.OutputFormat == "json" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("\n%s %s (%s channel", report.Package, report.Version, report.Channel)
	if report.SDKVersion != "" {
		fmt.Printf(", SDK %s", report.SDKVersion)
	}
	fmt.Printf(")\n")
	for _, step := range report.Steps {
		status := "ok"
		if !step.Succeeded() {
			status = fmt.Sprintf("exit %d", step.ExitCode)
		}
		fmt.Printf("  %-10s %-8s %s\n", step.Name, status, step.Duration.Round(timePrecision))
	}
	if report.CacheSizeBytes > 0 {
		fmt.Printf("  cache size %s\n", dirsize.FormatBytes(report.CacheSizeBytes))
	}
	return nil
}

// writeBundle packs the report into a tar.gz bundle for archival.
func writeBundle(ctx context.Context, report *model.Report, bundlePath string) error {
	stagingDir, err := os.MkdirTemp("", "panakit-report-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(stagingDir) }()

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(stagingDir, "report.json"), data, 0o644); err != nil {
		return err
	}
	return archive.NewManager().Create(ctx, stagingDir, bundlePath)
}
