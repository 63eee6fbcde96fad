package rules

import "github.com/skillguard/skillguard/internal/domain"

// javaRules covers the dangerous patterns sg flags in Java sources.
var javaRules = []Rule{
	{
		ID:          "java/shell-exec",
		Language:    LanguageJava,
		Category:    "shell-execution",
		Severity:    domain.SeverityCritical,
		Description: "Subprocess execution",
		Suggestion:  "Skills should not spawn processes; if unavoidable, hard-code the command and arguments",
		Patterns: []string{
			`Runtime\.getRuntime\s*\(\s*\)\s*\.exec`,
			`new\s+ProcessBuilder\s*\(`,
		},
	},
	{
		ID:          "java/reflection-invoke",
		Language:    LanguageJava,
		Category:    "code-injection",
		Severity:    domain.SeverityCritical,
		Description: "Reflective class loading and invocation",
		Suggestion:  "Avoid Class.forName with invoke; reflection defeats static review of skill behavior",
		Patterns: []string{
			`Class\.forName\s*\(`,
			`\.getMethod\s*\([^)]*\)\s*\.invoke`,
			`\.invoke\s*\(\s*Runtime\.getRuntime\s*\(`,
		},
	},
	{
		ID:          "java/system-path-write",
		Language:    LanguageJava,
		Category:    "file-tampering",
		Severity:    domain.SeverityHigh,
		Description: "Write to a system path",
		Suggestion:  "Operate only on files under the skill workspace",
		Patterns: []string{
			`new\s+FileWriter\s*\(\s*"/(etc|usr|bin|sbin|boot|var|root)/`,
			`new\s+FileOutputStream\s*\(\s*"/(etc|usr|bin|sbin|boot|var|root)/`,
			`Files\.write\s*\(\s*Paths?\.get\s*\(\s*"/(etc|usr|bin|sbin|boot|var|root)/`,
		},
	},
	{
		ID:          "java/jndi-lookup",
		Language:    LanguageJava,
		Category:    "code-injection",
		Severity:    domain.SeverityHigh,
		Description: "JNDI lookup of a remote name",
		Suggestion:  "Never look up remote JNDI names; this is the Log4Shell injection vector",
		Patterns: []string{
			`\.lookup\s*\(\s*"(ldap|ldaps|rmi|dns|iiop)://`,
			`new\s+InitialContext\s*\(\s*\)\s*\.lookup`,
		},
	},
	{
		ID:          "java/network-exfiltration",
		Language:    LanguageJava,
		Category:    "network-access",
		Severity:    domain.SeverityMedium,
		Description: "Outbound network request",
		Suggestion:  "Review the destination; skills should not post local data to external hosts",
		Patterns: []string{
			`\.openConnection\s*\(`,
			`new\s+URL\s*\(\s*"https?://`,
			`new\s+Socket\s*\(`,
			`HttpClient\.newHttpClient\s*\(`,
		},
	},
	{
		ID:          "java/env-secret-access",
		Language:    LanguageJava,
		Category:    "secret-access",
		Severity:    domain.SeverityLow,
		Description: "System property or environment access",
		Suggestion:  "Confirm the property is required; avoid reading credentials the skill does not need",
		Patterns: []string{
			`System\.getProperty\s*\(`,
			`System\.getenv\s*\(`,
		},
	},
}
