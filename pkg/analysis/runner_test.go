package analysis_test

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/glorpus-work/panakit/pkg/analysis"
	mock_analysis "github.com/glorpus-work/panakit/pkg/analysis/mocks"
	"github.com/glorpus-work/panakit/pkg/dirsize"
	"github.com/glorpus-work/panakit/pkg/download"
	"github.com/glorpus-work/panakit/pkg/errors"
	"github.com/glorpus-work/panakit/pkg/hooks"
	"github.com/glorpus-work/panakit/pkg/model"
	"github.com/glorpus-work/panakit/pkg/sdk"
	"github.com/glorpus-work/panakit/pkg/toolenv"
	"github.com/glorpus-work/panakit/test/testutil"
)

const testManifest = "name: http\nversion: 1.2.0\nenvironment:\n  sdk: ^3.0.0\n"

func newTestPool(t *testing.T) *toolenv.Pool {
	t.Helper()
	factory := toolenv.NewFactory(map[sdk.Channel]sdk.Setup{
		sdk.ChannelStable:  {DartRoot: testutil.WriteFakeDartSDK(t, "3.5.0")},
		sdk.ChannelPreview: {DartRoot: testutil.WriteFakeDartSDK(t, "3.6.0-beta.1")},
	})
	pool, err := toolenv.NewPool(toolenv.PoolOptions{Factory: factory, TempRoot: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close(context.Background()) })
	return pool
}

func newTestRunner(t *testing.T, ctrl *gomock.Controller) (*analysis.Runner, *mock_analysis.MockResolver, *mock_analysis.MockDownloader, *mock_analysis.MockExtractor) {
	t.Helper()

	resolver := mock_analysis.NewMockResolver(ctrl)
	dl := mock_analysis.NewMockDownloader(ctrl)
	extractor := mock_analysis.NewMockExtractor(ctrl)

	runner := analysis.New(resolver, dl, extractor, newTestPool(t), nil, analysis.Hooks{})
	runner.Sizes = dirsize.NewScanner()
	return runner, resolver, dl, extractor
}

func archiveURL(t *testing.T) *url.URL {
	t.Helper()
	u, err := url.Parse("https://pub.example.com/archives/http-1.2.0.tar.gz")
	require.NoError(t, err)
	return u
}

func expectHappyPath(t *testing.T, resolver *mock_analysis.MockResolver, dl *mock_analysis.MockDownloader, extractor *mock_analysis.MockExtractor, prereleases bool) {
	t.Helper()

	resolver.EXPECT().
		Resolve(gomock.Any(), model.PackageRef{Name: "http"}, prereleases).
		Return(&model.PackageVersion{
			Name:          "http",
			Version:       "1.2.0",
			ArchiveURL:    archiveURL(t),
			ArchiveSHA256: "cccc",
		}, nil)

	dl.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item download.Item, opts download.Options) (string, error) {
			assert.Equal(t, "http-1.2.0", item.ID)
			assert.Equal(t, "http-1.2.0.tar.gz", item.Filename)
			assert.Equal(t, "cccc", item.Checksum)
			return filepath.Join(opts.Dir, item.Filename), nil
		})

	extractor.EXPECT().
		ExtractAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, destDir string) error {
			return os.WriteFile(filepath.Join(destDir, "pubspec.yaml"), []byte(testManifest), 0o644)
		})
}

func TestAnalyzeHappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner, resolver, dl, extractor := newTestRunner(t, ctrl)
	expectHappyPath(t, resolver, dl, extractor, false)

	var phases []string
	runner.Hooks = analysis.Hooks{OnEvent: func(e analysis.Event) {
		phases = append(phases, e.Phase)
	}}

	report, err := runner.Analyze(context.Background(), model.AnalysisRequest{
		Package: model.PackageRef{Name: "http"},
		Channel: "stable",
	}, analysis.Options{ArchiveDir: t.TempDir(), WorkRoot: t.TempDir()})
	require.NoError(t, err)

	assert.NotEmpty(t, report.JobID)
	assert.Equal(t, "http", report.Package)
	assert.Equal(t, "1.2.0", report.Version)
	assert.Equal(t, "stable", report.Channel)
	assert.Equal(t, "3.5.0", report.SDKVersion)
	assert.True(t, report.Succeeded())

	require.Len(t, report.Steps, 2)
	assert.Equal(t, "pub get", report.Steps[0].Name)
	assert.Contains(t, report.Steps[0].Command, "pub get")
	assert.Equal(t, "analyze", report.Steps[1].Name)

	assert.Equal(t, []string{"resolving", "downloading", "extracting", "analyzing", "done"}, phases)
}

func TestAnalyzePreviewChannelIncludesPrereleases(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner, resolver, dl, extractor := newTestRunner(t, ctrl)
	expectHappyPath(t, resolver, dl, extractor, true)

	report, err := runner.Analyze(context.Background(), model.AnalysisRequest{
		Package: model.PackageRef{Name: "http"},
		Channel: "preview",
	}, analysis.Options{ArchiveDir: t.TempDir(), WorkRoot: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "preview", report.Channel)
	assert.Equal(t, "3.6.0-beta.1", report.SDKVersion)
}

func TestAnalyzeUnknownChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner, _, _, _ := newTestRunner(t, ctrl)

	_, err := runner.Analyze(context.Background(), model.AnalysisRequest{
		Package: model.PackageRef{Name: "http"},
		Channel: "nightly",
	}, analysis.Options{ArchiveDir: t.TempDir()})
	assert.ErrorIs(t, err, errors.ErrUnknownChannel)
}

func TestAnalyzeResolveFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner, resolver, _, _ := newTestRunner(t, ctrl)

	resolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.ErrPackageNotFound)

	_, err := runner.Analyze(context.Background(), model.AnalysisRequest{
		Package: model.PackageRef{Name: "gone"},
		Channel: "stable",
	}, analysis.Options{ArchiveDir: t.TempDir()})
	assert.ErrorIs(t, err, errors.ErrPackageNotFound)
}

func TestAnalyzeRunsLifecycleHooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner, resolver, dl, extractor := newTestRunner(t, ctrl)
	expectHappyPath(t, resolver, dl, extractor, false)

	lifecycle := hooks.NewTengoExecutor()
	require.NoError(t, lifecycle.AddHook(hooks.Hook{
		Type: hooks.PreAnalysis,
		Content: `
err := ""
if packageName != "http" || packageVersion != "1.2.0" {
	err = "wrong package context"
}
if cacheDir == "" || workDir == "" {
	err = "missing directories"
}
`,
	}))
	runner.Lifecycle = lifecycle

	_, err := runner.Analyze(context.Background(), model.AnalysisRequest{
		Package: model.PackageRef{Name: "http"},
		Channel: "stable",
	}, analysis.Options{ArchiveDir: t.TempDir(), WorkRoot: t.TempDir()})
	require.NoError(t, err)
}

func TestAnalyzeHookFailureFailsJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner, resolver, dl, extractor := newTestRunner(t, ctrl)
	expectHappyPath(t, resolver, dl, extractor, false)

	lifecycle := hooks.NewTengoExecutor()
	require.NoError(t, lifecycle.AddHook(hooks.Hook{
		Type:    hooks.PreAnalysis,
		Content: `err := "operator veto"`,
	}))
	runner.Lifecycle = lifecycle

	_, err := runner.Analyze(context.Background(), model.AnalysisRequest{
		Package: model.PackageRef{Name: "http"},
		Channel: "stable",
	}, analysis.Options{ArchiveDir: t.TempDir(), WorkRoot: t.TempDir()})
	assert.ErrorIs(t, err, errors.ErrHookScript)
}

func TestAnalyzeRemovesWorkspace(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner, resolver, dl, extractor := newTestRunner(t, ctrl)
	expectHappyPath(t, resolver, dl, extractor, false)

	workRoot := t.TempDir()
	_, err := runner.Analyze(context.Background(), model.AnalysisRequest{
		Package: model.PackageRef{Name: "http"},
		Channel: "stable",
	}, analysis.Options{ArchiveDir: t.TempDir(), WorkRoot: workRoot})
	require.NoError(t, err)

	entries, err := os.ReadDir(workRoot)
	require.NoError(t, err)
	assert.Empty(t, entries, "job workspace must be removed after the run")
}
