package text_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillguard/skillguard/internal/adapter/output/text"
	"github.com/skillguard/skillguard/internal/domain"
)

func sampleReport() domain.Report {
	return domain.Report{
		Tool:    "sg",
		Version: "test",
		Root:    "/skills/demo",
		Findings: []domain.Finding{
			{
				ID:          "f1",
				RuleID:      "python/shell-exec",
				File:        "install.py",
				Line:        12,
				Column:      5,
				Severity:    domain.SeverityCritical,
				Category:    "shell-execution",
				Description: "Shell command execution",
				Suggestion:  "Use subprocess with an argument list",
				Snippet:     "os.system(cmd)",
			},
		},
		Stats:      domain.Stats{FilesScanned: 4, BySeverity: map[string]int{"critical": 1}},
		DurationMS: 9,
	}
}

func TestWriter_Write(t *testing.T) {
	t.Run("renders findings and summary without color", func(t *testing.T) {
		var buf bytes.Buffer
		writer := text.NewWriter(&buf, false)

		path, err := writer.Write(context.Background(), domain.ReportArtifact{Report: sampleReport()})
		require.NoError(t, err)
		assert.Empty(t, path, "text writer streams, it does not create files")

		out := buf.String()
		assert.Contains(t, out, "install.py:12:5 critical python/shell-exec Shell command execution")
		assert.Contains(t, out, "    os.system(cmd)")
		assert.Contains(t, out, "suggestion: Use subprocess with an argument list")
		assert.Contains(t, out, "1 findings (1 critical) in 4 files (9ms)")
	})

	t.Run("clean report prints summary only", func(t *testing.T) {
		var buf bytes.Buffer
		writer := text.NewWriter(&buf, false)

		report := domain.Report{Stats: domain.Stats{FilesScanned: 2}, DurationMS: 3}
		_, err := writer.Write(context.Background(), domain.ReportArtifact{Report: report})
		require.NoError(t, err)

		assert.Equal(t, "No dangerous patterns found in 2 files (3ms)\n", buf.String())
	})

	t.Run("suppressed count shows in summary", func(t *testing.T) {
		var buf bytes.Buffer
		writer := text.NewWriter(&buf, false)

		report := domain.Report{Stats: domain.Stats{FilesScanned: 2, Suppressed: 5}}
		_, err := writer.Write(context.Background(), domain.ReportArtifact{Report: report})
		require.NoError(t, err)

		assert.Contains(t, buf.String(), "5 suppressed by baseline")
	})
}
