package markdown_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillguard/skillguard/internal/adapter/output/markdown"
	"github.com/skillguard/skillguard/internal/domain"
)

func TestWriter_Write(t *testing.T) {
	tempDir := t.TempDir()
	writer := markdown.NewWriter(func() string { return "20260826T120000Z" })

	artifact := domain.ReportArtifact{
		OutputDir: tempDir,
		Target:    "/skills/demo",
		Report: domain.Report{
			Tool:      "sg",
			Version:   "test",
			Root:      "/skills/demo",
			GitBranch: "main",
			GitCommit: "abc123",
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
			Stats:      domain.Stats{FilesScanned: 3, FilesSkipped: 1, Suppressed: 2},
			DurationMS: 17,
		},
	}

	path, err := writer.Write(context.Background(), artifact)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "scan_demo_20260826T120000Z.md"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "# Scan Report")
	assert.Contains(t, text, "- Branch: main")
	assert.Contains(t, text, "### Shell command execution (Critical)")
	assert.Contains(t, text, "- File: install.py:12:5")
	assert.Contains(t, text, "- Snippet: `os.system(cmd)`")
	assert.Contains(t, text, "- Suppressed by baseline: 2")
}

func TestWriter_Write_CleanReport(t *testing.T) {
	tempDir := t.TempDir()
	writer := markdown.NewWriter(func() string { return "ts" })

	artifact := domain.ReportArtifact{
		OutputDir: tempDir,
		Target:    "demo",
		Report:    domain.Report{Tool: "sg", Root: "demo"},
	}

	path, err := writer.Write(context.Background(), artifact)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "No dangerous patterns found.")
}
