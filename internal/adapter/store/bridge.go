package store

import (
	"context"

	"github.com/skillguard/skillguard/internal/store"
	"github.com/skillguard/skillguard/internal/usecase/scan"
)

// Bridge adapts store.Store to scan.Store interface.
// This avoids circular dependencies between packages.
type Bridge struct {
	store store.Store
}

// NewBridge creates a new store adapter.
func NewBridge(s store.Store) *Bridge {
	return &Bridge{store: s}
}

// CreateRun converts and saves a run record.
func (b *Bridge) CreateRun(ctx context.Context, run scan.StoreRun) error {
	storeRun := store.Run{
		RunID:         run.RunID,
		Timestamp:     run.Timestamp,
		Root:          run.Root,
		GitBranch:     run.GitBranch,
		GitCommit:     run.GitCommit,
		RulesVersion:  run.RulesVersion,
		FilesScanned:  run.FilesScanned,
		FindingsTotal: run.FindingsTotal,
		Suppressed:    run.Suppressed,
		DurationMS:    run.DurationMS,
	}
	return b.store.CreateRun(ctx, storeRun)
}

// SaveFindings converts and saves finding records.
func (b *Bridge) SaveFindings(ctx context.Context, findings []scan.StoreFinding) error {
	storeFindings := make([]store.FindingRecord, len(findings))
	for i, f := range findings {
		storeFindings[i] = store.FindingRecord{
			FindingID:   f.FindingID,
			RunID:       f.RunID,
			RuleID:      f.RuleID,
			File:        f.File,
			Line:        f.Line,
			Column:      f.Column,
			Severity:    f.Severity,
			Category:    f.Category,
			Language:    f.Language,
			Description: f.Description,
			Snippet:     f.Snippet,
		}
	}
	return b.store.SaveFindings(ctx, storeFindings)
}

// Close closes the underlying store.
func (b *Bridge) Close() error {
	return b.store.Close()
}
