package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/skillguard/skillguard/internal/domain"
)

type clock func() string

// Writer renders scan reports into Markdown files.
type Writer struct {
	now clock
}

// NewWriter constructs a Markdown writer with a timestamp supplier.
func NewWriter(now clock) *Writer {
	return &Writer{now: now}
}

// Write persists a Markdown artifact to disk.
func (w *Writer) Write(ctx context.Context, artifact domain.ReportArtifact) (string, error) {
	if err := os.MkdirAll(artifact.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	filename := fmt.Sprintf("scan_%s_%s.md",
		sanitise(filepath.Base(artifact.Target)),
		w.now(),
	)
	path := filepath.Join(artifact.OutputDir, filename)

	content := buildContent(artifact)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write markdown: %w", err)
	}

	return path, nil
}

func buildContent(artifact domain.ReportArtifact) string {
	var builder strings.Builder
	caser := cases.Title(language.English)
	report := artifact.Report

	builder.WriteString("# Scan Report\n\n")
	builder.WriteString(fmt.Sprintf("- Tool: %s %s\n", report.Tool, report.Version))
	builder.WriteString(fmt.Sprintf("- Target: %s\n", report.Root))
	if report.GitBranch != "" {
		builder.WriteString(fmt.Sprintf("- Branch: %s\n", report.GitBranch))
	}
	if report.GitCommit != "" {
		builder.WriteString(fmt.Sprintf("- Commit: %s\n", report.GitCommit))
	}
	builder.WriteString(fmt.Sprintf("- Files scanned: %d (%d skipped)\n", report.Stats.FilesScanned, report.Stats.FilesSkipped))
	if report.Stats.Suppressed > 0 {
		builder.WriteString(fmt.Sprintf("- Suppressed by baseline: %d\n", report.Stats.Suppressed))
	}
	builder.WriteString(fmt.Sprintf("- Duration: %dms\n\n", report.DurationMS))

	if len(report.Findings) == 0 {
		builder.WriteString("No dangerous patterns found.\n")
		return builder.String()
	}

	builder.WriteString("## Findings\n\n")
	for _, finding := range report.Findings {
		builder.WriteString(fmt.Sprintf("### %s (%s)\n", finding.Description, caser.String(string(finding.Severity))))
		builder.WriteString(fmt.Sprintf("- File: %s:%d:%d\n", finding.File, finding.Line, finding.Column))
		builder.WriteString(fmt.Sprintf("- Rule: %s\n", finding.RuleID))
		builder.WriteString(fmt.Sprintf("- Category: %s\n", finding.Category))
		if finding.Snippet != "" {
			builder.WriteString(fmt.Sprintf("- Snippet: `%s`\n", finding.Snippet))
		}
		if finding.Suggestion != "" {
			builder.WriteString(fmt.Sprintf("- Suggestion: %s\n", finding.Suggestion))
		}
		builder.WriteString("\n")
	}

	return builder.String()
}

func sanitise(value string) string {
	if value == "" {
		return "unknown"
	}
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, string(filepath.Separator), "-")
	value = strings.ReplaceAll(value, " ", "-")
	return value
}
