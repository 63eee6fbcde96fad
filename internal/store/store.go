// Package store defines the persistence layer interface for scan history.
package store

import (
	"context"
	"time"
)

// Store defines the persistence layer interface for scan runs and findings.
type Store interface {
	// Run management
	CreateRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, runID string) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// Finding persistence
	SaveFindings(ctx context.Context, findings []FindingRecord) error
	GetFindingsByRun(ctx context.Context, runID string) ([]FindingRecord, error)

	// Utility
	Close() error
}

// Run represents a single scan execution.
type Run struct {
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

// FindingRecord represents a single persisted finding.
type FindingRecord struct {
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
