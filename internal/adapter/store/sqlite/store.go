package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/skillguard/skillguard/internal/store"
)

// Store implements the store.Store interface using SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite store at the given path.
// Use ":memory:" for an in-memory database (useful for testing).
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{db: db}

	if err := s.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return s, nil
}

// createSchema creates all tables and indexes if they don't exist.
func (s *Store) createSchema() error {
	schema := `
	-- Stores metadata about each scan run
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		root TEXT NOT NULL,
		git_branch TEXT,
		git_commit TEXT,
		rules_version TEXT,
		files_scanned INTEGER NOT NULL DEFAULT 0,
		findings_total INTEGER NOT NULL DEFAULT 0,
		suppressed INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0
	);

	-- Individual findings from scans
	CREATE TABLE IF NOT EXISTS findings (
		finding_id TEXT NOT NULL,
		run_id TEXT NOT NULL,
		rule_id TEXT NOT NULL,
		file TEXT NOT NULL,
		line INTEGER NOT NULL,
		col INTEGER NOT NULL,
		severity TEXT NOT NULL,
		category TEXT NOT NULL,
		language TEXT NOT NULL,
		description TEXT NOT NULL,
		snippet TEXT,
		PRIMARY KEY (finding_id, run_id),
		FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
	);

	-- Indexes for performance
	CREATE INDEX IF NOT EXISTS idx_findings_run ON findings(run_id);
	CREATE INDEX IF NOT EXISTS idx_findings_severity ON findings(severity);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// CreateRun stores a new scan run.
func (s *Store) CreateRun(ctx context.Context, run store.Run) error {
	query := `
		INSERT INTO runs (run_id, timestamp, root, git_branch, git_commit, rules_version, files_scanned, findings_total, suppressed, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		run.RunID,
		run.Timestamp.Unix(),
		run.Root,
		run.GitBranch,
		run.GitCommit,
		run.RulesVersion,
		run.FilesScanned,
		run.FindingsTotal,
		run.Suppressed,
		run.DurationMS,
	)

	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(ctx context.Context, runID string) (store.Run, error) {
	query := `
		SELECT run_id, timestamp, root, git_branch, git_commit, rules_version, files_scanned, findings_total, suppressed, duration_ms
		FROM runs
		WHERE run_id = ?
	`

	var run store.Run
	var timestamp int64

	err := s.db.QueryRowContext(ctx, query, runID).Scan(
		&run.RunID,
		&timestamp,
		&run.Root,
		&run.GitBranch,
		&run.GitCommit,
		&run.RulesVersion,
		&run.FilesScanned,
		&run.FindingsTotal,
		&run.Suppressed,
		&run.DurationMS,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return store.Run{}, fmt.Errorf("run not found: %s", runID)
		}
		return store.Run{}, fmt.Errorf("failed to get run: %w", err)
	}

	run.Timestamp = time.Unix(timestamp, 0)
	return run, nil
}

// ListRuns retrieves the most recent runs, limited by the given count.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	query := `
		SELECT run_id, timestamp, root, git_branch, git_commit, rules_version, files_scanned, findings_total, suppressed, duration_ms
		FROM runs
		ORDER BY timestamp DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		var run store.Run
		var timestamp int64

		if err := rows.Scan(
			&run.RunID,
			&timestamp,
			&run.Root,
			&run.GitBranch,
			&run.GitCommit,
			&run.RulesVersion,
			&run.FilesScanned,
			&run.FindingsTotal,
			&run.Suppressed,
			&run.DurationMS,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.Timestamp = time.Unix(timestamp, 0)
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// SaveFindings stores multiple findings in a single transaction.
func (s *Store) SaveFindings(ctx context.Context, findings []store.FindingRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO findings (finding_id, run_id, rule_id, file, line, col, severity, category, language, description, snippet)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, finding := range findings {
		if _, err := stmt.ExecContext(ctx,
			finding.FindingID,
			finding.RunID,
			finding.RuleID,
			finding.File,
			finding.Line,
			finding.Column,
			finding.Severity,
			finding.Category,
			finding.Language,
			finding.Description,
			finding.Snippet,
		); err != nil {
			return fmt.Errorf("failed to insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetFindingsByRun retrieves all findings for a given run.
func (s *Store) GetFindingsByRun(ctx context.Context, runID string) ([]store.FindingRecord, error) {
	query := `
		SELECT finding_id, run_id, rule_id, file, line, col, severity, category, language, description, snippet
		FROM findings
		WHERE run_id = ?
		ORDER BY file ASC, line ASC
	`

	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get findings by run: %w", err)
	}
	defer rows.Close()

	var findings []store.FindingRecord
	for rows.Next() {
		var finding store.FindingRecord

		if err := rows.Scan(
			&finding.FindingID,
			&finding.RunID,
			&finding.RuleID,
			&finding.File,
			&finding.Line,
			&finding.Column,
			&finding.Severity,
			&finding.Category,
			&finding.Language,
			&finding.Description,
			&finding.Snippet,
		); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}

		findings = append(findings, finding)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating findings: %w", err)
	}

	return findings, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
