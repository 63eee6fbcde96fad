package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-colorable"

	"github.com/skillguard/skillguard/internal/adapter/cli"
	"github.com/skillguard/skillguard/internal/adapter/observability"
	jsonwriter "github.com/skillguard/skillguard/internal/adapter/output/json"
	"github.com/skillguard/skillguard/internal/adapter/output/markdown"
	"github.com/skillguard/skillguard/internal/adapter/output/sarif"
	"github.com/skillguard/skillguard/internal/adapter/output/text"
	"github.com/skillguard/skillguard/internal/adapter/repository"
	storeAdapter "github.com/skillguard/skillguard/internal/adapter/store"
	"github.com/skillguard/skillguard/internal/adapter/store/sqlite"
	"github.com/skillguard/skillguard/internal/config"
	"github.com/skillguard/skillguard/internal/domain"
	"github.com/skillguard/skillguard/internal/redaction"
	"github.com/skillguard/skillguard/internal/rules"
	"github.com/skillguard/skillguard/internal/store"
	"github.com/skillguard/skillguard/internal/usecase/scan"
	"github.com/skillguard/skillguard/internal/version"
)

const (
	exitFindings = 1
	exitError    = 2
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, cli.ErrFindingsAtThreshold) {
			os.Exit(exitFindings)
		}
		log.Println(err)
		os.Exit(exitError)
	}
}

func run() error {
	// Cancellable context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "sg",
		EnvPrefix:   "SG",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	// Timestamp function for deterministic output file naming
	nowFunc := func() string {
		return time.Now().UTC().Format("20060102T150405Z")
	}

	scanLogger := buildScanLogger(cfg.Observability)

	// Initialize store if enabled
	var historyStore store.Store
	if cfg.Store.Enabled {
		storeDir := filepath.Dir(cfg.Store.Path)
		if err := os.MkdirAll(storeDir, 0o755); err != nil {
			log.Printf("warning: failed to create store directory: %v", err)
		} else {
			sqliteStore, err := sqlite.NewStore(cfg.Store.Path)
			if err != nil {
				log.Printf("warning: failed to initialize store: %v", err)
			} else {
				historyStore = sqliteStore
				defer historyStore.Close()
			}
		}
	}

	runner := &scanRunner{
		cfg:     cfg,
		logger:  scanLogger,
		store:   historyStore,
		now:     nowFunc,
		version: version.Value(),
	}

	var runLister cli.RunLister
	if historyStore != nil {
		runLister = &runListerAdapter{store: historyStore}
	}

	root := cli.NewRootCommand(cli.Dependencies{
		Scanner: runner,
		Rules:   runner,
		Runs:    runLister,
		Defaults: cli.Defaults{
			Output:        cfg.Output.Directory,
			Format:        cfg.Output.Format,
			Severity:      cfg.Scan.Severity,
			FailOn:        cfg.Scan.FailOn,
			Baseline:      cfg.Scan.Baseline,
			RulePacks:     cfg.Rules.Packs,
			Include:       cfg.Scan.Include,
			Exclude:       cfg.Scan.Exclude,
			MaxFileSizeKB: cfg.Scan.MaxFileSizeKB,
			GitEnabled:    cfg.Git.Enabled,
		},
		Version: version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		if errors.Is(err, cli.ErrFindingsAtThreshold) {
			return err
		}
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

// scanRunner assembles the per-request scanning pipeline: rule registry,
// file source, matcher, writers, orchestrator.
type scanRunner struct {
	cfg     config.Config
	logger  scan.Logger
	store   store.Store
	now     func() string
	version string
}

// Compile-time interface checks.
var (
	_ cli.Scanner    = (*scanRunner)(nil)
	_ cli.RuleLister = (*scanRunner)(nil)
	_ cli.RunLister  = (*runListerAdapter)(nil)
)

// Scan implements cli.Scanner.
func (r *scanRunner) Scan(ctx context.Context, req cli.ScanRequest) (domain.Report, error) {
	registry, err := r.buildRegistry(req.RulePacks)
	if err != nil {
		return domain.Report{}, err
	}

	var redactor scan.Redactor
	if r.cfg.Redaction.Enabled {
		redactor = redaction.NewEngine()
	}
	matcher := scan.NewMatcher(registry, redactor, int64(req.MaxFileSizeKB)*1024)

	var source scan.FileSource
	if req.UseGit && req.GitRef != "" {
		source, err = repository.NewGitSource(req.Path, req.GitRef, req.Include, req.Exclude)
	} else {
		source, err = repository.NewWalker(req.Path, req.Include, req.Exclude)
	}
	if err != nil {
		return domain.Report{}, err
	}

	var inspector scan.GitInspector
	if req.UseGit {
		inspector = repository.Inspector{}
	}

	writer, err := r.buildWriter(req)
	if err != nil {
		return domain.Report{}, err
	}

	var scanStore scan.Store
	if r.store != nil {
		scanStore = storeAdapter.NewBridge(r.store)
	}

	var baseline *scan.Baseline
	if req.BaselinePath != "" {
		baseline, err = scan.LoadBaseline(req.BaselinePath)
		if err != nil {
			return domain.Report{}, err
		}
	}

	orchestrator := scan.NewOrchestrator(scan.OrchestratorDeps{
		Source:  source,
		Matcher: matcher,
		Writers: map[string]scan.ReportWriter{req.Format: writer},
		Git:     inspector,
		Store:   scanStore,
		Logger:  r.logger,
		Version: r.version,
	})

	result, err := orchestrator.Scan(ctx, scan.Request{
		OutputDir:   req.OutputDir,
		Formats:     []string{req.Format},
		MinSeverity: domain.Severity(req.Severity),
		Baseline:    baseline,
	})
	if err != nil {
		return domain.Report{}, err
	}

	if req.WriteBaseline != "" {
		if err := scan.WriteBaseline(req.WriteBaseline, result.Report); err != nil {
			return domain.Report{}, err
		}
	}

	for _, path := range result.OutputPaths {
		fmt.Fprintf(os.Stderr, "report written to %s\n", path)
	}

	return result.Report, nil
}

// Rules implements cli.RuleLister.
func (r *scanRunner) Rules(ctx context.Context, packs []string) ([]rules.Rule, error) {
	registry, err := r.buildRegistry(packs)
	if err != nil {
		return nil, err
	}
	return registry.All(), nil
}

func (r *scanRunner) buildRegistry(packs []string) (*rules.Registry, error) {
	loaded, err := rules.LoadPacks(packs)
	if err != nil {
		return nil, err
	}
	combined := append(rules.Builtin(), loaded...)
	return rules.NewRegistry(rules.Without(combined, r.cfg.Rules.Disabled))
}

// buildWriter picks the writer for the requested format. The text writer
// streams to stdout; the others write files under the output directory.
func (r *scanRunner) buildWriter(req cli.ScanRequest) (scan.ReportWriter, error) {
	switch strings.ToLower(req.Format) {
	case "text":
		return text.NewWriter(colorable.NewColorableStdout(), r.colorEnabled(req.NoColor)), nil
	case "json":
		return jsonwriter.NewWriter(r.now), nil
	case "markdown":
		return markdown.NewWriter(r.now), nil
	case "sarif":
		return sarif.NewWriter(r.now), nil
	}
	return nil, fmt.Errorf("unknown format %q (expected text, json, markdown, or sarif)", req.Format)
}

func (r *scanRunner) colorEnabled(noColor bool) bool {
	if noColor {
		return false
	}
	switch strings.ToLower(r.cfg.Output.Color) {
	case "always":
		return true
	case "never":
		return false
	default:
		return scan.IsOutputTerminal()
	}
}

// runListerAdapter exposes the history store to the runs command.
type runListerAdapter struct {
	store store.Store
}

func (a *runListerAdapter) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	return a.store.ListRuns(ctx, limit)
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "sg"))
	}
	return paths
}

func buildScanLogger(cfg config.ObservabilityConfig) scan.Logger {
	if !cfg.Logging.Enabled {
		return nil
	}
	return observability.NewScanLogger(
		observability.ParseLevel(cfg.Logging.Level),
		observability.ParseFormat(cfg.Logging.Format),
	)
}
