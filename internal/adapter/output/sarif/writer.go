package sarif

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skillguard/skillguard/internal/domain"
)

// Writer implements the scan.ReportWriter interface for SARIF 2.1.0 output.
type Writer struct {
	now func() string
}

// NewWriter creates a new SARIF writer with a timestamp supplier.
func NewWriter(now func() string) *Writer {
	return &Writer{now: now}
}

// Write persists a scan report to disk as a SARIF file.
func (w *Writer) Write(ctx context.Context, artifact domain.ReportArtifact) (string, error) {
	if err := os.MkdirAll(artifact.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	filename := fmt.Sprintf("scan_%s_%s.sarif", sanitise(filepath.Base(artifact.Target)), w.now())
	path := filepath.Join(artifact.OutputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create sarif file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(convertToSARIF(artifact.Report)); err != nil {
		return "", fmt.Errorf("encode report to sarif: %w", err)
	}

	return path, nil
}

// convertToSARIF converts a domain.Report to SARIF format.
func convertToSARIF(report domain.Report) map[string]interface{} {
	results := make([]map[string]interface{}, 0, len(report.Findings))
	seenRules := make(map[string]bool)
	ruleDescriptors := make([]map[string]interface{}, 0)

	for _, finding := range report.Findings {
		// SARIF requires non-empty message text
		messageText := finding.Description
		if messageText == "" {
			messageText = "Dangerous pattern detected"
		}

		result := map[string]interface{}{
			"ruleId": finding.RuleID,
			"level":  convertSeverity(finding.Severity),
			"message": map[string]interface{}{
				"text": messageText,
			},
			"locations": []map[string]interface{}{
				{
					"physicalLocation": map[string]interface{}{
						"artifactLocation": map[string]interface{}{
							"uri": finding.File,
						},
						"region": map[string]interface{}{
							"startLine":   finding.Line,
							"startColumn": finding.Column,
						},
					},
				},
			},
			"partialFingerprints": map[string]interface{}{
				"findingId": finding.ID,
			},
		}

		properties := map[string]interface{}{
			"category": finding.Category,
			"language": finding.Language,
		}
		if finding.Suggestion != "" {
			properties["suggestion"] = finding.Suggestion
		}
		result["properties"] = properties

		results = append(results, result)

		if !seenRules[finding.RuleID] {
			seenRules[finding.RuleID] = true
			ruleDescriptors = append(ruleDescriptors, map[string]interface{}{
				"id":               finding.RuleID,
				"shortDescription": map[string]interface{}{"text": messageText},
				"properties": map[string]interface{}{
					"category": finding.Category,
					"severity": string(finding.Severity),
				},
			})
		}
	}

	return map[string]interface{}{
		"version": "2.1.0",
		"$schema": "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		"runs": []map[string]interface{}{
			{
				"tool": map[string]interface{}{
					"driver": map[string]interface{}{
						"name":           report.Tool,
						"informationUri": "https://github.com/skillguard/skillguard",
						"version":        report.Version,
						"rules":          ruleDescriptors,
					},
				},
				"results": results,
				"properties": map[string]interface{}{
					"filesScanned": report.Stats.FilesScanned,
					"filesSkipped": report.Stats.FilesSkipped,
					"suppressed":   report.Stats.Suppressed,
					"durationMs":   report.DurationMS,
				},
			},
		},
	}
}

// convertSeverity maps scan severities to SARIF levels.
func convertSeverity(severity domain.Severity) string {
	switch severity {
	case domain.SeverityCritical, domain.SeverityHigh:
		return "error"
	case domain.SeverityMedium:
		return "warning"
	case domain.SeverityLow:
		return "note"
	default:
		return "warning"
	}
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
