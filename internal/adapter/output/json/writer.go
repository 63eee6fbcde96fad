package json

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skillguard/skillguard/internal/domain"
)

// Writer implements the scan.ReportWriter interface for JSON reports.
type Writer struct {
	now func() string
}

// NewWriter creates a new JSON writer with a timestamp supplier.
func NewWriter(now func() string) *Writer {
	return &Writer{now: now}
}

// Write persists a scan report to disk as a JSON file.
func (w *Writer) Write(ctx context.Context, artifact domain.ReportArtifact) (string, error) {
	if err := os.MkdirAll(artifact.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	filename := fmt.Sprintf("scan_%s_%s.json", sanitise(filepath.Base(artifact.Target)), w.now())
	path := filepath.Join(artifact.OutputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create json file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(artifact.Report); err != nil {
		return "", fmt.Errorf("encode report to json: %w", err)
	}

	return path, nil
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
