package rules

import "github.com/skillguard/skillguard/internal/domain"

// rustRules covers the dangerous patterns sg flags in Rust sources.
var rustRules = []Rule{
	{
		ID:          "rust/shell-exec",
		Language:    LanguageRust,
		Category:    "shell-execution",
		Severity:    domain.SeverityCritical,
		Description: "Subprocess execution",
		Suggestion:  "Skills should not spawn processes; if unavoidable, hard-code the binary and arguments",
		Patterns: []string{
			`\bCommand::new\s*\(`,
			`\bprocess::Command\b`,
		},
	},
	{
		ID:          "rust/unsafe-block",
		Language:    LanguageRust,
		Category:    "unsafe-memory",
		Severity:    domain.SeverityCritical,
		Description: "Unsafe block",
		Suggestion:  "Unsafe code bypasses the borrow checker; keep skills in safe Rust",
		Patterns: []string{
			`\bunsafe\s*\{`,
			`\bunsafe\s+fn\b`,
		},
	},
	{
		ID:          "rust/transmute",
		Language:    LanguageRust,
		Category:    "unsafe-memory",
		Severity:    domain.SeverityHigh,
		Description: "Type transmutation",
		Suggestion:  "Use safe conversions (From/TryFrom) instead of mem::transmute",
		Patterns: []string{
			`\bmem::transmute\s*`,
			`\btransmute::<`,
		},
	},
	{
		ID:          "rust/system-path-write",
		Language:    LanguageRust,
		Category:    "file-tampering",
		Severity:    domain.SeverityHigh,
		Description: "Write or delete outside the workspace",
		Suggestion:  "Operate only on files under the skill workspace",
		Patterns: []string{
			`\bfs::write\s*\(\s*"/(etc|usr|bin|sbin|boot|var|root)/`,
			`\bfs::remove_file\s*\(`,
			`\bfs::remove_dir_all\s*\(`,
		},
	},
	{
		ID:          "rust/network-exfiltration",
		Language:    LanguageRust,
		Category:    "network-access",
		Severity:    domain.SeverityMedium,
		Description: "Outbound network connection",
		Suggestion:  "Review the destination; skills should not open network connections",
		Patterns: []string{
			`\bTcpStream::connect\s*\(`,
			`\breqwest::(get|Client)\b`,
			`\bUdpSocket::bind\s*\(`,
		},
	},
	{
		ID:          "rust/env-secret-access",
		Language:    LanguageRust,
		Category:    "secret-access",
		Severity:    domain.SeverityLow,
		Description: "Environment variable access",
		Suggestion:  "Confirm the variable is required; avoid reading credentials the skill does not need",
		Patterns: []string{
			`\benv::var(_os)?\s*\(`,
			`\bstd::env::vars\s*\(`,
		},
	},
}
