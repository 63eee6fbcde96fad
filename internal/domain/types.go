package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Severity classifies how dangerous a matched pattern is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// severityRank orders severities from least to most dangerous.
var severityRank = map[Severity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// ParseSeverity normalizes a severity label. Unknown labels return an error
// rather than silently downgrading a finding.
func ParseSeverity(value string) (Severity, error) {
	switch Severity(value) {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return Severity(value), nil
	}
	return "", fmt.Errorf("unknown severity %q", value)
}

// Rank returns the numeric ordering of the severity. Unknown severities
// rank below low so they never satisfy a threshold.
func (s Severity) Rank() int {
	return severityRank[s]
}

// AtLeast reports whether s is as severe or more severe than other.
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// Valid reports whether the severity is one of the known labels.
func (s Severity) Valid() bool {
	return s.Rank() > 0
}

// Finding represents a single dangerous pattern detected in a scanned file.
type Finding struct {
	ID          string   `json:"id"`
	RuleID      string   `json:"ruleId"`
	File        string   `json:"file"`
	Line        int      `json:"line"`
	Column      int      `json:"column"`
	Severity    Severity `json:"severity"`
	Category    string   `json:"category"`
	Language    string   `json:"language"`
	Description string   `json:"description"`
	Suggestion  string   `json:"suggestion"`
	Snippet     string   `json:"snippet"`
}

// FindingInput captures the information required to create a Finding.
type FindingInput struct {
	RuleID      string
	File        string
	Line        int
	Column      int
	Severity    Severity
	Category    string
	Language    string
	Description string
	Suggestion  string
	Snippet     string
}

// NewFinding constructs a Finding with a deterministic ID. The ID is stable
// across runs for the same file, position, and rule, which lets baselines
// suppress known findings.
func NewFinding(input FindingInput) Finding {
	id := hashFinding(input)
	return Finding{
		ID:          id,
		RuleID:      input.RuleID,
		File:        input.File,
		Line:        input.Line,
		Column:      input.Column,
		Severity:    input.Severity,
		Category:    input.Category,
		Language:    input.Language,
		Description: input.Description,
		Suggestion:  input.Suggestion,
		Snippet:     input.Snippet,
	}
}

func hashFinding(input FindingInput) string {
	payload := fmt.Sprintf("%s|%s|%d|%d|%s|%s",
		input.RuleID,
		input.File,
		input.Line,
		input.Column,
		input.Severity,
		input.Category,
	)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// Stats summarizes a scan run.
type Stats struct {
	FilesScanned int            `json:"filesScanned"`
	FilesSkipped int            `json:"filesSkipped"`
	Suppressed   int            `json:"suppressed"`
	BySeverity   map[string]int `json:"bySeverity"`
}

// Report is the outcome of scanning a target tree.
type Report struct {
	Tool       string    `json:"tool"`
	Version    string    `json:"version"`
	Root       string    `json:"root"`
	GitBranch  string    `json:"gitBranch,omitempty"`
	GitCommit  string    `json:"gitCommit,omitempty"`
	Findings   []Finding `json:"findings"`
	Stats      Stats     `json:"stats"`
	DurationMS int64     `json:"durationMs"`
}

// HighestSeverity returns the most severe finding in the report, or the
// empty severity when the report is clean.
func (r Report) HighestSeverity() Severity {
	var highest Severity
	for _, finding := range r.Findings {
		if finding.Severity.Rank() > highest.Rank() {
			highest = finding.Severity
		}
	}
	return highest
}

// ReportArtifact encapsulates the inputs writers need to persist a report.
type ReportArtifact struct {
	OutputDir string
	Target    string
	Report    Report
}
