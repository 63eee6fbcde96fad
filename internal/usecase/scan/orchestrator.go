// Package scan implements the core scanning flow: enumerate files, match
// them against the rule registry, and emit a report through the configured
// writers and store.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/skillguard/skillguard/internal/domain"
)

// SourceFile identifies one file the scanner should examine.
type SourceFile struct {
	// Path is relative to the scan root and is what appears in findings.
	Path string
	// AbsPath locates the file on disk for reading.
	AbsPath string
	// Size in bytes, used for the size cap without a second stat.
	Size int64
}

// FileSource defines the outbound port for enumerating files to scan.
type FileSource interface {
	// Files returns the candidate files in deterministic order.
	Files(ctx context.Context) ([]SourceFile, error)

	// Root returns the directory the paths are relative to.
	Root() string
}

// GitInfo carries repository metadata recorded with a run.
type GitInfo struct {
	Branch string
	Commit string
}

// GitInspector resolves repository metadata for the scan root.
// Implementations return an error when the root is not a git repository;
// the orchestrator treats that as "no git metadata", not a failure.
type GitInspector interface {
	Head(ctx context.Context, dir string) (GitInfo, error)
}

// ReportWriter persists or prints a finished report. Writers that render to
// a stream rather than a file return an empty path.
type ReportWriter interface {
	Write(ctx context.Context, artifact domain.ReportArtifact) (string, error)
}

// Redactor defines the outbound port for secret redaction of snippets.
type Redactor interface {
	Redact(input string) string
}

// Store defines the outbound port for persisting scan history.
type Store interface {
	CreateRun(ctx context.Context, run StoreRun) error
	SaveFindings(ctx context.Context, findings []StoreFinding) error
	Close() error
}

// StoreRun represents a scan run for persistence.
type StoreRun struct {
	RunID         string
	Timestamp     time.Time
	Root          string
	GitBranch     string
	GitCommit     string
	RulesVersion  string
	FilesScanned  int
	FindingsTotal int
	Suppressed    int
	DurationMS    int64
}

// StoreFinding represents a finding record for persistence.
type StoreFinding struct {
	FindingID   string
	RunID       string
	RuleID      string
	File        string
	Line        int
	Column      int
	Severity    string
	Category    string
	Language    string
	Description string
	Snippet     string
}

// OrchestratorDeps captures the inbound dependencies for the orchestrator.
type OrchestratorDeps struct {
	Source  FileSource
	Matcher *Matcher
	Writers map[string]ReportWriter
	Git     GitInspector // Optional: records branch/commit with the run
	Store   Store        // Optional: persistence layer for scan history
	Logger  Logger       // Optional: structured logging for warnings and info
	Version string       // Tool version stamped into reports and run records
	Clock   func() time.Time
}

// Request represents an inbound CLI scan request.
type Request struct {
	OutputDir   string
	Formats     []string
	MinSeverity domain.Severity // findings below this are dropped from the report
	Baseline    *Baseline       // Optional: known finding IDs to suppress
}

// Result captures the orchestrator outcome.
type Result struct {
	Report      domain.Report
	OutputPaths map[string]string
	RunID       string
}

// Orchestrator implements the scan flow.
type Orchestrator struct {
	deps OrchestratorDeps
}

// NewOrchestrator wires the orchestrator dependencies.
func NewOrchestrator(deps OrchestratorDeps) *Orchestrator {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &Orchestrator{deps: deps}
}

// validateDependencies checks that all required dependencies are present.
func (o *Orchestrator) validateDependencies() error {
	if o.deps.Source == nil {
		return errors.New("file source is required")
	}
	if o.deps.Matcher == nil {
		return errors.New("matcher is required")
	}
	if len(o.deps.Writers) == 0 {
		return errors.New("at least one report writer is required")
	}
	// Git is optional
	// Store is optional
	// Logger is optional
	return nil
}

// Scan runs the full flow: enumerate, match, filter, report, persist.
func (o *Orchestrator) Scan(ctx context.Context, req Request) (Result, error) {
	if err := o.validateDependencies(); err != nil {
		return Result{}, err
	}
	for _, format := range req.Formats {
		if _, ok := o.deps.Writers[format]; !ok {
			return Result{}, fmt.Errorf("no writer registered for format %q", format)
		}
	}

	started := o.deps.Clock()

	files, err := o.deps.Source.Files(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("enumerating files: %w", err)
	}

	o.logInfo(ctx, "scan started", map[string]interface{}{
		"root":  o.deps.Source.Root(),
		"files": len(files),
	})

	findings, skipped, err := o.scanFiles(ctx, files)
	if err != nil {
		return Result{}, err
	}

	// Stable output order regardless of goroutine completion order.
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.RuleID < b.RuleID
	})

	suppressed := 0
	if req.Baseline != nil {
		kept := findings[:0]
		for _, finding := range findings {
			if req.Baseline.Suppressed(finding.ID) {
				suppressed++
				continue
			}
			kept = append(kept, finding)
		}
		findings = kept
	}

	if req.MinSeverity != "" {
		kept := findings[:0]
		for _, finding := range findings {
			if finding.Severity.AtLeast(req.MinSeverity) {
				kept = append(kept, finding)
			}
		}
		findings = kept
	}

	bySeverity := make(map[string]int)
	for _, finding := range findings {
		bySeverity[string(finding.Severity)]++
	}

	report := domain.Report{
		Tool:       "sg",
		Version:    o.deps.Version,
		Root:       o.deps.Source.Root(),
		Findings:   findings,
		DurationMS: o.deps.Clock().Sub(started).Milliseconds(),
		Stats: domain.Stats{
			FilesScanned: len(files) - skipped,
			FilesSkipped: skipped,
			Suppressed:   suppressed,
			BySeverity:   bySeverity,
		},
	}

	if o.deps.Git != nil {
		if info, err := o.deps.Git.Head(ctx, o.deps.Source.Root()); err == nil {
			report.GitBranch = info.Branch
			report.GitCommit = info.Commit
		}
	}

	runID := ""
	if o.deps.Store != nil {
		runID = uuid.NewString()
		o.persist(ctx, runID, started, report)
	}

	artifact := domain.ReportArtifact{
		OutputDir: req.OutputDir,
		Target:    o.deps.Source.Root(),
		Report:    report,
	}

	paths := make(map[string]string)
	for _, format := range req.Formats {
		path, err := o.deps.Writers[format].Write(ctx, artifact)
		if err != nil {
			return Result{}, fmt.Errorf("writing %s report: %w", format, err)
		}
		if path != "" {
			paths[format] = path
		}
	}

	o.logInfo(ctx, "scan finished", map[string]interface{}{
		"findings":   len(report.Findings),
		"suppressed": suppressed,
		"durationMs": report.DurationMS,
	})

	return Result{Report: report, OutputPaths: paths, RunID: runID}, nil
}

// scanFiles fans the match work out across the CPUs. A file that cannot be
// read is logged and skipped rather than failing the run.
func (o *Orchestrator) scanFiles(ctx context.Context, files []SourceFile) ([]domain.Finding, int, error) {
	var mu sync.Mutex
	findings := make([]domain.Finding, 0)
	skipped := 0

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for _, file := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			result, err := o.deps.Matcher.ScanFile(groupCtx, file)
			if err != nil {
				o.logWarning(groupCtx, "failed to scan file", map[string]interface{}{
					"file":  file.Path,
					"error": err.Error(),
				})
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			if result.Skipped {
				skipped++
				return nil
			}
			findings = append(findings, result.Findings...)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, 0, err
	}
	return findings, skipped, nil
}

// persist records the run and its findings. Store failures are warnings,
// not scan failures.
func (o *Orchestrator) persist(ctx context.Context, runID string, started time.Time, report domain.Report) {
	run := StoreRun{
		RunID:         runID,
		Timestamp:     started,
		Root:          report.Root,
		GitBranch:     report.GitBranch,
		GitCommit:     report.GitCommit,
		RulesVersion:  report.Version,
		FilesScanned:  report.Stats.FilesScanned,
		FindingsTotal: len(report.Findings),
		Suppressed:    report.Stats.Suppressed,
		DurationMS:    report.DurationMS,
	}
	if err := o.deps.Store.CreateRun(ctx, run); err != nil {
		o.logWarning(ctx, "failed to create run record", map[string]interface{}{
			"runID": runID,
			"error": err.Error(),
		})
		return
	}

	records := make([]StoreFinding, len(report.Findings))
	for i, f := range report.Findings {
		records[i] = StoreFinding{
			FindingID:   f.ID,
			RunID:       runID,
			RuleID:      f.RuleID,
			File:        f.File,
			Line:        f.Line,
			Column:      f.Column,
			Severity:    string(f.Severity),
			Category:    f.Category,
			Language:    f.Language,
			Description: f.Description,
			Snippet:     f.Snippet,
		}
	}
	if err := o.deps.Store.SaveFindings(ctx, records); err != nil {
		o.logWarning(ctx, "failed to save findings", map[string]interface{}{
			"runID": runID,
			"error": err.Error(),
		})
	}
}

func (o *Orchestrator) logInfo(ctx context.Context, message string, fields map[string]interface{}) {
	if o.deps.Logger != nil {
		o.deps.Logger.LogInfo(ctx, message, fields)
	}
}

func (o *Orchestrator) logWarning(ctx context.Context, message string, fields map[string]interface{}) {
	if o.deps.Logger != nil {
		o.deps.Logger.LogWarning(ctx, message, fields)
		return
	}
	log.Printf("warning: %s: %v\n", message, fields)
}
