package rules

import "github.com/skillguard/skillguard/internal/domain"

// pythonRules covers the dangerous patterns sg flags in Python sources.
var pythonRules = []Rule{
	{
		ID:          "python/shell-exec",
		Language:    LanguagePython,
		Category:    "shell-execution",
		Severity:    domain.SeverityCritical,
		Description: "Shell command execution",
		Suggestion:  "Avoid os.system and shell=True; use subprocess with an argument list and validated inputs",
		Patterns: []string{
			`\bos\.system\s*\(`,
			`\bos\.popen\s*\(`,
			`\bsubprocess\.(run|call|check_call|check_output|Popen)\s*\([^)]*shell\s*=\s*True`,
			`\bcommands\.getoutput\s*\(`,
		},
	},
	{
		ID:          "python/code-injection",
		Language:    LanguagePython,
		Category:    "code-injection",
		Severity:    domain.SeverityCritical,
		Description: "Dynamic code evaluation",
		Suggestion:  "Never evaluate strings as code; use ast.literal_eval or explicit dispatch",
		Patterns: []string{
			`\beval\s*\(`,
			`\bexec\s*\(`,
			`__import__\s*\(`,
			`\bcompile\s*\([^)]*,\s*['"]exec['"]`,
		},
	},
	{
		ID:          "python/system-path-write",
		Language:    LanguagePython,
		Category:    "file-tampering",
		Severity:    domain.SeverityHigh,
		Description: "Write to a system path",
		Suggestion:  "Skills must not modify system files; write only inside the skill workspace",
		Patterns: []string{
			`\bopen\s*\(\s*['"]/(etc|usr|bin|sbin|boot|var|root)/[^'"]*['"]\s*,\s*['"][wax]`,
			`\bshutil\.rmtree\s*\(\s*['"]/`,
			`\bos\.remove\s*\(\s*['"]/`,
		},
	},
	{
		ID:          "python/unsafe-deserialization",
		Language:    LanguagePython,
		Category:    "deserialization",
		Severity:    domain.SeverityHigh,
		Description: "Unsafe deserialization of untrusted data",
		Suggestion:  "Use json for data interchange; pickle and yaml.load execute arbitrary code",
		Patterns: []string{
			`\bpickle\.loads?\s*\(`,
			`\bcPickle\.loads?\s*\(`,
			`\bmarshal\.loads\s*\(`,
			`\byaml\.load\s*\(`,
		},
	},
	{
		ID:          "python/network-exfiltration",
		Language:    LanguagePython,
		Category:    "network-access",
		Severity:    domain.SeverityMedium,
		Description: "Outbound network request",
		Suggestion:  "Review the destination; skills should not post local data to external hosts",
		Patterns: []string{
			`\brequests\.(get|post|put|patch|delete)\s*\(`,
			`\burllib\.request\.urlopen\s*\(`,
			`\bhttp\.client\.HTTPS?Connection\s*\(`,
			`\bsocket\.create_connection\s*\(`,
		},
	},
	{
		ID:          "python/env-secret-access",
		Language:    LanguagePython,
		Category:    "secret-access",
		Severity:    domain.SeverityLow,
		Description: "Environment variable access",
		Suggestion:  "Confirm the variable is required; avoid reading credentials the skill does not need",
		Patterns: []string{
			`\bos\.getenv\s*\(`,
			`\bos\.environ\.get\s*\(`,
			`\bos\.environ\s*\[`,
		},
	},
}
