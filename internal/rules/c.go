package rules

import "github.com/skillguard/skillguard/internal/domain"

// cRules covers the dangerous patterns sg flags in C sources and headers.
var cRules = []Rule{
	{
		ID:          "c/shell-exec",
		Language:    LanguageC,
		Category:    "shell-execution",
		Severity:    domain.SeverityCritical,
		Description: "Shell command execution",
		Suggestion:  "Never pass strings to system(); use execve with a fixed path and argument vector",
		Patterns: []string{
			`\bsystem\s*\(`,
			`\bpopen\s*\(`,
			`\bexecl?p?\s*\(\s*"/bin/sh`,
		},
	},
	{
		ID:          "c/buffer-overflow",
		Language:    LanguageC,
		Category:    "buffer-overflow",
		Severity:    domain.SeverityCritical,
		Description: "Unbounded buffer write",
		Suggestion:  "Use the bounded variants: fgets, strncpy, strncat, snprintf",
		Patterns: []string{
			`\bgets\s*\(`,
			`\bstrcpy\s*\(`,
			`\bstrcat\s*\(`,
			`\bsprintf\s*\(`,
		},
	},
	{
		ID:          "c/unchecked-memcpy",
		Language:    LanguageC,
		Category:    "unsafe-memory",
		Severity:    domain.SeverityHigh,
		Description: "Memory copy without destination bounds check",
		Suggestion:  "Verify the destination buffer size before memcpy",
		Patterns: []string{
			`\bmemcpy\s*\(`,
			`\bmemmove\s*\(`,
			`\balloca\s*\(`,
		},
	},
	{
		ID:          "c/system-path-write",
		Language:    LanguageC,
		Category:    "file-tampering",
		Severity:    domain.SeverityHigh,
		Description: "Write or delete outside the workspace",
		Suggestion:  "Operate only on files under the skill workspace",
		Patterns: []string{
			`\bfopen\s*\(\s*"/(etc|usr|bin|sbin|boot|var|root)/[^"]*"\s*,\s*"[wa]`,
			`\bremove\s*\(\s*"/`,
			`\bunlink\s*\(\s*"/`,
		},
	},
	{
		ID:          "c/format-string",
		Language:    LanguageC,
		Category:    "format-string",
		Severity:    domain.SeverityMedium,
		Description: "Format string taken from a variable",
		Suggestion:  `Always pass a literal format: printf("%s", value)`,
		Patterns: []string{
			`\bprintf\s*\(\s*[a-zA-Z_][a-zA-Z0-9_]*\s*\)`,
			`\bfprintf\s*\(\s*\w+\s*,\s*[a-zA-Z_][a-zA-Z0-9_]*\s*\)`,
			`\bsyslog\s*\(\s*\w+\s*,\s*[a-zA-Z_][a-zA-Z0-9_]*\s*\)`,
		},
	},
	{
		ID:          "c/raw-socket",
		Language:    LanguageC,
		Category:    "network-access",
		Severity:    domain.SeverityMedium,
		Description: "Raw socket connection",
		Suggestion:  "Review the destination; skills should not open network connections",
		Patterns: []string{
			`\bsocket\s*\(\s*AF_INET`,
			`\bconnect\s*\(`,
		},
	},
	{
		ID:          "c/env-secret-access",
		Language:    LanguageC,
		Category:    "secret-access",
		Severity:    domain.SeverityLow,
		Description: "Environment variable access",
		Suggestion:  "Confirm the variable is required; avoid reading credentials the skill does not need",
		Patterns: []string{
			`\bgetenv\s*\(`,
			`\bsecure_getenv\s*\(`,
		},
	},
}
