package text

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/skillguard/skillguard/internal/domain"
)

// Writer renders scan reports as colored text on a stream, most commonly
// stdout. It implements the scan.ReportWriter interface and returns an
// empty path because nothing is written to disk.
type Writer struct {
	out      io.Writer
	severity map[domain.Severity]*color.Color
	location *color.Color
	dim      *color.Color
}

// NewWriter constructs a text writer. When enableColor is false all output
// is plain, regardless of terminal support.
func NewWriter(out io.Writer, enableColor bool) *Writer {
	w := &Writer{
		out: out,
		severity: map[domain.Severity]*color.Color{
			domain.SeverityCritical: color.New(color.FgRed, color.Bold),
			domain.SeverityHigh:     color.New(color.FgRed),
			domain.SeverityMedium:   color.New(color.FgYellow),
			domain.SeverityLow:      color.New(color.FgCyan),
		},
		location: color.New(color.FgHiWhite, color.Bold),
		dim:      color.New(color.Faint),
	}
	if !enableColor {
		for _, c := range w.severity {
			c.DisableColor()
		}
		w.location.DisableColor()
		w.dim.DisableColor()
	}
	return w
}

// Write renders the report to the configured stream.
func (w *Writer) Write(ctx context.Context, artifact domain.ReportArtifact) (string, error) {
	report := artifact.Report

	for _, finding := range report.Findings {
		severityColor, ok := w.severity[finding.Severity]
		if !ok {
			severityColor = w.dim
		}
		if _, err := fmt.Fprintf(w.out, "%s %s %s %s\n",
			w.location.Sprintf("%s:%d:%d", finding.File, finding.Line, finding.Column),
			severityColor.Sprint(string(finding.Severity)),
			w.dim.Sprint(finding.RuleID),
			finding.Description,
		); err != nil {
			return "", fmt.Errorf("write finding: %w", err)
		}
		if finding.Snippet != "" {
			if _, err := fmt.Fprintf(w.out, "    %s\n", finding.Snippet); err != nil {
				return "", fmt.Errorf("write snippet: %w", err)
			}
		}
		if finding.Suggestion != "" {
			if _, err := fmt.Fprintf(w.out, "    %s\n", w.dim.Sprintf("suggestion: %s", finding.Suggestion)); err != nil {
				return "", fmt.Errorf("write suggestion: %w", err)
			}
		}
	}

	if len(report.Findings) > 0 {
		if _, err := fmt.Fprintln(w.out); err != nil {
			return "", err
		}
	}

	if _, err := fmt.Fprintf(w.out, "%s\n", summaryLine(report)); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}

	return "", nil
}

func summaryLine(report domain.Report) string {
	if len(report.Findings) == 0 {
		summary := fmt.Sprintf("No dangerous patterns found in %d files (%dms)",
			report.Stats.FilesScanned, report.DurationMS)
		if report.Stats.Suppressed > 0 {
			summary += fmt.Sprintf(", %d suppressed by baseline", report.Stats.Suppressed)
		}
		return summary
	}

	counts := ""
	for _, severity := range []domain.Severity{domain.SeverityCritical, domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow} {
		if n := report.Stats.BySeverity[string(severity)]; n > 0 {
			if counts != "" {
				counts += ", "
			}
			counts += fmt.Sprintf("%d %s", n, severity)
		}
	}

	summary := fmt.Sprintf("%d findings (%s) in %d files (%dms)",
		len(report.Findings), counts, report.Stats.FilesScanned, report.DurationMS)
	if report.Stats.Suppressed > 0 {
		summary += fmt.Sprintf(", %d suppressed by baseline", report.Stats.Suppressed)
	}
	return summary
}
