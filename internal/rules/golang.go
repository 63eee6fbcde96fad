package rules

import "github.com/skillguard/skillguard/internal/domain"

// goRules covers the dangerous patterns sg flags in Go sources.
var goRules = []Rule{
	{
		ID:          "go/shell-exec",
		Language:    LanguageGo,
		Category:    "shell-execution",
		Severity:    domain.SeverityCritical,
		Description: "Subprocess execution",
		Suggestion:  "Skills should not spawn processes; if unavoidable, hard-code the binary and arguments",
		Patterns: []string{
			`\bexec\.Command(Context)?\s*\(`,
			`\bsyscall\.Exec\s*\(`,
		},
	},
	{
		ID:          "go/system-path-write",
		Language:    LanguageGo,
		Category:    "file-tampering",
		Severity:    domain.SeverityHigh,
		Description: "Write or delete outside the workspace",
		Suggestion:  "Operate only on files under the skill workspace",
		Patterns: []string{
			`\bos\.WriteFile\s*\(\s*"/(etc|usr|bin|sbin|boot|var|root)/`,
			`\bioutil\.WriteFile\s*\(\s*"/(etc|usr|bin|sbin|boot|var|root)/`,
			`\bos\.Remove(All)?\s*\(\s*"/`,
		},
	},
	{
		ID:          "go/unsafe-pointer",
		Language:    LanguageGo,
		Category:    "unsafe-memory",
		Severity:    domain.SeverityHigh,
		Description: "Unsafe pointer arithmetic",
		Suggestion:  "Avoid the unsafe package; it bypasses Go's memory safety",
		Patterns: []string{
			`\bunsafe\.Pointer\b`,
			`\bunsafe\.Slice\s*\(`,
			`\breflect\.SliceHeader\b`,
		},
	},
	{
		ID:          "go/network-exfiltration",
		Language:    LanguageGo,
		Category:    "network-access",
		Severity:    domain.SeverityMedium,
		Description: "Outbound network request",
		Suggestion:  "Review the destination; skills should not post local data to external hosts",
		Patterns: []string{
			`\bhttp\.(Get|Post|PostForm|Head)\s*\(`,
			`\bnet\.Dial(Timeout)?\s*\(`,
			`\btls\.Dial\s*\(`,
		},
	},
	{
		ID:          "go/env-secret-access",
		Language:    LanguageGo,
		Category:    "secret-access",
		Severity:    domain.SeverityLow,
		Description: "Environment variable access",
		Suggestion:  "Confirm the variable is required; avoid reading credentials the skill does not need",
		Patterns: []string{
			`\bos\.Getenv\s*\(`,
			`\bos\.LookupEnv\s*\(`,
			`\bos\.Environ\s*\(\s*\)`,
		},
	},
}
