package scan

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/skillguard/skillguard/internal/domain"
	"github.com/skillguard/skillguard/internal/rules"
)

const (
	// binaryProbeSize bounds how much of a file is inspected for NUL bytes.
	binaryProbeSize = 8192

	// maxSnippetLength keeps report snippets readable; matched lines longer
	// than this are truncated.
	maxSnippetLength = 200

	// maxLineLength is the scanner buffer cap. Lines beyond this (minified
	// bundles, generated code) skip the file rather than erroring the run.
	maxLineLength = 1024 * 1024
)

// FileResult is the outcome of matching a single file.
type FileResult struct {
	Findings []domain.Finding
	Skipped  bool
}

// Matcher applies the rule registry to individual files, line by line.
type Matcher struct {
	registry    *rules.Registry
	redactor    Redactor
	maxFileSize int64
}

// NewMatcher builds a matcher. A nil redactor leaves snippets unredacted;
// maxFileSize <= 0 disables the size cap.
func NewMatcher(registry *rules.Registry, redactor Redactor, maxFileSize int64) *Matcher {
	return &Matcher{
		registry:    registry,
		redactor:    redactor,
		maxFileSize: maxFileSize,
	}
}

// ScanFile matches one file against the applicable rules. Binary files and
// files over the size cap are skipped, not errors.
func (m *Matcher) ScanFile(ctx context.Context, file SourceFile) (FileResult, error) {
	if m.maxFileSize > 0 && file.Size > m.maxFileSize {
		return FileResult{Skipped: true}, nil
	}

	data, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return FileResult{}, fmt.Errorf("reading %s: %w", file.Path, err)
	}

	if isBinary(data) {
		return FileResult{Skipped: true}, nil
	}

	firstLine := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		firstLine = data[:idx]
	}
	language := rules.DetectLanguage(file.Path, string(firstLine))
	applicable := m.registry.ForLanguage(language)
	if len(applicable) == 0 {
		return FileResult{}, nil
	}

	findings := make([]domain.Finding, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	lineNumber := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return FileResult{}, err
		}
		lineNumber++
		line := scanner.Text()
		for _, rule := range applicable {
			column, ok := rule.Match(line)
			if !ok {
				continue
			}
			findings = append(findings, domain.NewFinding(domain.FindingInput{
				RuleID:      rule.ID,
				File:        file.Path,
				Line:        lineNumber,
				Column:      column,
				Severity:    rule.Severity,
				Category:    rule.Category,
				Language:    language,
				Description: rule.Description,
				Suggestion:  rule.Suggestion,
				Snippet:     m.snippet(line),
			}))
		}
	}
	if err := scanner.Err(); err != nil {
		if err == bufio.ErrTooLong {
			return FileResult{Skipped: true}, nil
		}
		return FileResult{}, fmt.Errorf("scanning %s: %w", file.Path, err)
	}

	return FileResult{Findings: findings}, nil
}

// snippet trims, truncates, and redacts a matched line for reporting.
// Truncation backs up to a rune boundary so snippets stay valid UTF-8.
func (m *Matcher) snippet(line string) string {
	snippet := strings.TrimSpace(line)
	if len(snippet) > maxSnippetLength {
		cut := maxSnippetLength
		for cut > 0 && !utf8.RuneStart(snippet[cut]) {
			cut--
		}
		snippet = snippet[:cut] + "..."
	}
	if m.redactor != nil {
		snippet = m.redactor.Redact(snippet)
	}
	return snippet
}

// isBinary reports whether the data looks like a binary file. A NUL byte in
// the probe window is treated as binary.
func isBinary(data []byte) bool {
	probe := data
	if len(probe) > binaryProbeSize {
		probe = probe[:binaryProbeSize]
	}
	return bytes.IndexByte(probe, 0) >= 0
}
