package sarif_test

import (
	"context"
	stdjson "encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillguard/skillguard/internal/adapter/output/sarif"
	"github.com/skillguard/skillguard/internal/domain"
)

func writeReport(t *testing.T, report domain.Report) map[string]interface{} {
	t.Helper()
	writer := sarif.NewWriter(func() string { return "ts" })

	path, err := writer.Write(context.Background(), domain.ReportArtifact{
		OutputDir: t.TempDir(),
		Target:    "demo",
		Report:    report,
	})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, stdjson.Unmarshal(content, &doc))
	return doc
}

func findings(doc map[string]interface{}) []interface{} {
	runs := doc["runs"].([]interface{})
	run := runs[0].(map[string]interface{})
	return run["results"].([]interface{})
}

func TestWriter_Write(t *testing.T) {
	report := domain.Report{
		Tool:    "sg",
		Version: "test",
		Root:    "demo",
		Findings: []domain.Finding{
			{ID: "f1", RuleID: "c/buffer-overflow", File: "vuln.c", Line: 7, Column: 5, Severity: domain.SeverityCritical, Category: "buffer-overflow", Description: "Unbounded string copy"},
			{ID: "f2", RuleID: "c/raw-socket", File: "vuln.c", Line: 20, Column: 5, Severity: domain.SeverityMedium, Category: "network-access", Description: "Raw socket connection"},
			{ID: "f3", RuleID: "c/env-secret-access", File: "vuln.c", Line: 30, Column: 5, Severity: domain.SeverityLow, Category: "secret-access", Description: "Environment variable access"},
		},
	}

	doc := writeReport(t, report)

	t.Run("document shape", func(t *testing.T) {
		assert.Equal(t, "2.1.0", doc["version"])
		results := findings(doc)
		require.Len(t, results, 3)
	})

	t.Run("severity mapping", func(t *testing.T) {
		results := findings(doc)
		levels := make([]string, 0, len(results))
		for _, r := range results {
			levels = append(levels, r.(map[string]interface{})["level"].(string))
		}
		assert.Equal(t, []string{"error", "warning", "note"}, levels)
	})

	t.Run("location carries line and column", func(t *testing.T) {
		first := findings(doc)[0].(map[string]interface{})
		locations := first["locations"].([]interface{})
		physical := locations[0].(map[string]interface{})["physicalLocation"].(map[string]interface{})
		region := physical["region"].(map[string]interface{})
		assert.Equal(t, float64(7), region["startLine"])
		assert.Equal(t, float64(5), region["startColumn"])
		artifact := physical["artifactLocation"].(map[string]interface{})
		assert.Equal(t, "vuln.c", artifact["uri"])
	})

	t.Run("rules are declared once per rule id", func(t *testing.T) {
		runs := doc["runs"].([]interface{})
		run := runs[0].(map[string]interface{})
		tool := run["tool"].(map[string]interface{})
		driver := tool["driver"].(map[string]interface{})
		rules := driver["rules"].([]interface{})
		assert.Len(t, rules, 3)
	})
}

func TestWriter_Write_HighMapsToError(t *testing.T) {
	report := domain.Report{
		Tool: "sg",
		Findings: []domain.Finding{
			{ID: "f1", RuleID: "r", File: "a", Line: 1, Column: 1, Severity: domain.SeverityHigh, Category: "c", Description: "d"},
		},
	}

	doc := writeReport(t, report)
	first := findings(doc)[0].(map[string]interface{})
	assert.Equal(t, "error", first["level"])
}
