// Package redaction scrubs secret values from finding snippets so reports
// and the history store never carry live credentials out of scanned sources.
package redaction

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// Engine performs regex-based secret detection and redaction.
type Engine struct {
	patterns []*regexp.Regexp
}

// NewEngine creates a redaction engine with the default secret patterns.
func NewEngine() *Engine {
	return &Engine{patterns: defaultPatterns()}
}

// Redact replaces secrets in the input with stable placeholders. The
// placeholder is derived from a hash of the secret, so the same secret
// redacts identically across findings and runs.
func (e *Engine) Redact(input string) string {
	result := input
	seen := make(map[string]string) // secret -> placeholder

	for _, pattern := range e.patterns {
		for _, match := range pattern.FindAllString(result, -1) {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = placeholder(match)
		}
	}

	for secret, repl := range seen {
		result = strings.ReplaceAll(result, secret, repl)
	}
	return result
}

// IsRedacted reports whether the content contains redaction placeholders.
func (e *Engine) IsRedacted(content string) bool {
	return strings.Contains(content, "<REDACTED:")
}

// placeholder creates a stable marker for a secret.
func placeholder(secret string) string {
	hash := sha256.Sum256([]byte(secret))
	return fmt.Sprintf("<REDACTED:%s>", hex.EncodeToString(hash[:])[:8])
}

// defaultPatterns returns the secret signatures the engine scrubs. These
// mirror the generic/hardcoded-credential rule so a flagged token never
// appears verbatim in the finding that reports it.
func defaultPatterns() []*regexp.Regexp {
	patterns := []string{
		// OpenAI / Anthropic style API keys
		`sk-[a-zA-Z0-9]{20,}`,
		`sk-ant-[a-zA-Z0-9\-]{20,}`,
		// AWS access key IDs
		`AKIA[0-9A-Z]{16}`,
		// GitHub tokens
		`gh[posr]_[a-zA-Z0-9]{20,}`,
		// Google API keys
		`AIza[0-9A-Za-z\-_]{35}`,
		// JWTs
		`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`,
		// PEM private key blocks
		`-----BEGIN\s+(?:RSA|EC|OPENSSH|DSA|ENCRYPTED)\s+PRIVATE\s+KEY-----[\s\S]*?-----END\s+(?:RSA|EC|OPENSSH|DSA|ENCRYPTED)\s+PRIVATE\s+KEY-----`,
		// Slack tokens
		`xox[baprs]-[a-zA-Z0-9\-]{10,}`,
		// Bearer tokens
		`Bearer\s+[a-zA-Z0-9_\-\.]{16,}`,
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		compiled = append(compiled, regexp.MustCompile(pattern))
	}
	return compiled
}
