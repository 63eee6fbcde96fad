package scan_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillguard/skillguard/internal/domain"
	"github.com/skillguard/skillguard/internal/rules"
	"github.com/skillguard/skillguard/internal/usecase/scan"
)

type fakeSource struct {
	root  string
	files []scan.SourceFile
	err   error
}

func (f *fakeSource) Files(context.Context) ([]scan.SourceFile, error) { return f.files, f.err }
func (f *fakeSource) Root() string                                     { return f.root }

type captureWriter struct {
	artifact domain.ReportArtifact
	path     string
	err      error
}

func (w *captureWriter) Write(_ context.Context, artifact domain.ReportArtifact) (string, error) {
	w.artifact = artifact
	return w.path, w.err
}

type recordingStore struct {
	runs     []scan.StoreRun
	findings []scan.StoreFinding
	runErr   error
}

func (s *recordingStore) CreateRun(_ context.Context, run scan.StoreRun) error {
	if s.runErr != nil {
		return s.runErr
	}
	s.runs = append(s.runs, run)
	return nil
}

func (s *recordingStore) SaveFindings(_ context.Context, findings []scan.StoreFinding) error {
	s.findings = append(s.findings, findings...)
	return nil
}

func (s *recordingStore) Close() error { return nil }

func fixtureTree(t *testing.T) *fakeSource {
	t.Helper()
	dir := t.TempDir()
	files := []scan.SourceFile{
		writeFile(t, dir, "b.py", "os.system('id')\n"),
		writeFile(t, dir, "a.py", "import os\nos.getenv('TOKEN')\neval(code)\n"),
	}
	return &fakeSource{root: dir, files: files}
}

func newOrchestrator(t *testing.T, source scan.FileSource, writer scan.ReportWriter, store scan.Store) *scan.Orchestrator {
	t.Helper()
	registry, err := rules.NewRegistry(rules.Builtin())
	require.NoError(t, err)
	return scan.NewOrchestrator(scan.OrchestratorDeps{
		Source:  source,
		Matcher: scan.NewMatcher(registry, nil, 0),
		Writers: map[string]scan.ReportWriter{"json": writer},
		Store:   store,
		Version: "test",
		Clock:   func() time.Time { return time.Unix(1700000000, 0) },
	})
}

func TestOrchestrator_Scan(t *testing.T) {
	ctx := context.Background()

	t.Run("findings are ordered by file then line then rule", func(t *testing.T) {
		writer := &captureWriter{path: "out/report.json"}
		orch := newOrchestrator(t, fixtureTree(t), writer, nil)

		result, err := orch.Scan(ctx, scan.Request{Formats: []string{"json"}})
		require.NoError(t, err)

		findings := result.Report.Findings
		require.Len(t, findings, 3)
		assert.Equal(t, "a.py", findings[0].File)
		assert.Equal(t, 2, findings[0].Line)
		assert.Equal(t, "python/env-secret-access", findings[0].RuleID)
		assert.Equal(t, "a.py", findings[1].File)
		assert.Equal(t, 3, findings[1].Line)
		assert.Equal(t, "b.py", findings[2].File)
	})

	t.Run("writer receives the report artifact", func(t *testing.T) {
		writer := &captureWriter{path: "out/report.json"}
		source := fixtureTree(t)
		orch := newOrchestrator(t, source, writer, nil)

		result, err := orch.Scan(ctx, scan.Request{OutputDir: "out", Formats: []string{"json"}})
		require.NoError(t, err)
		assert.Equal(t, "out", writer.artifact.OutputDir)
		assert.Equal(t, source.root, writer.artifact.Report.Root)
		assert.Equal(t, "out/report.json", result.OutputPaths["json"])
	})

	t.Run("severity threshold drops lesser findings", func(t *testing.T) {
		writer := &captureWriter{}
		orch := newOrchestrator(t, fixtureTree(t), writer, nil)

		result, err := orch.Scan(ctx, scan.Request{
			Formats:     []string{"json"},
			MinSeverity: domain.SeverityCritical,
		})
		require.NoError(t, err)
		for _, finding := range result.Report.Findings {
			assert.Equal(t, domain.SeverityCritical, finding.Severity)
		}
		require.Len(t, result.Report.Findings, 2)
	})

	t.Run("baseline suppresses known findings", func(t *testing.T) {
		writer := &captureWriter{}
		source := fixtureTree(t)
		orch := newOrchestrator(t, source, writer, nil)

		first, err := orch.Scan(ctx, scan.Request{Formats: []string{"json"}})
		require.NoError(t, err)

		ids := make([]string, len(first.Report.Findings))
		for i, f := range first.Report.Findings {
			ids[i] = f.ID
		}

		second, err := orch.Scan(ctx, scan.Request{
			Formats:  []string{"json"},
			Baseline: scan.NewBaseline(ids),
		})
		require.NoError(t, err)
		assert.Empty(t, second.Report.Findings)
		assert.Equal(t, len(ids), second.Report.Stats.Suppressed)
	})

	t.Run("persists run and findings when store present", func(t *testing.T) {
		writer := &captureWriter{}
		store := &recordingStore{}
		orch := newOrchestrator(t, fixtureTree(t), writer, store)

		result, err := orch.Scan(ctx, scan.Request{Formats: []string{"json"}})
		require.NoError(t, err)

		require.Len(t, store.runs, 1)
		assert.Equal(t, result.RunID, store.runs[0].RunID)
		assert.Equal(t, 3, store.runs[0].FindingsTotal)
		assert.Len(t, store.findings, 3)
	})

	t.Run("store failure does not fail the scan", func(t *testing.T) {
		writer := &captureWriter{}
		store := &recordingStore{runErr: assert.AnError}
		orch := newOrchestrator(t, fixtureTree(t), writer, store)

		_, err := orch.Scan(ctx, scan.Request{Formats: []string{"json"}})
		assert.NoError(t, err)
	})

	t.Run("unknown format is rejected", func(t *testing.T) {
		writer := &captureWriter{}
		orch := newOrchestrator(t, fixtureTree(t), writer, nil)

		_, err := orch.Scan(ctx, scan.Request{Formats: []string{"xml"}})
		assert.ErrorContains(t, err, "no writer registered")
	})

	t.Run("source error propagates", func(t *testing.T) {
		writer := &captureWriter{}
		orch := newOrchestrator(t, &fakeSource{err: assert.AnError}, writer, nil)

		_, err := orch.Scan(ctx, scan.Request{Formats: []string{"json"}})
		assert.ErrorContains(t, err, "enumerating files")
	})

	t.Run("missing dependencies are rejected", func(t *testing.T) {
		orch := scan.NewOrchestrator(scan.OrchestratorDeps{})
		_, err := orch.Scan(ctx, scan.Request{})
		assert.ErrorContains(t, err, "file source is required")
	})
}
