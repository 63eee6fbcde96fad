package rules

import "github.com/skillguard/skillguard/internal/domain"

// genericRules apply to every scanned file regardless of language. The
// credential patterns mirror the redaction engine so a skill that embeds a
// live token is flagged with the same signatures used to scrub snippets.
var genericRules = []Rule{
	{
		ID:          "generic/hardcoded-credential",
		Language:    LanguageAny,
		Category:    "hardcoded-credential",
		Severity:    domain.SeverityHigh,
		Description: "Hardcoded credential",
		Suggestion:  "Remove the credential and rotate it; load secrets from the environment at runtime",
		Patterns: []string{
			`sk-[a-zA-Z0-9]{20,}`,
			`sk-ant-[a-zA-Z0-9\-]{20,}`,
			`AKIA[0-9A-Z]{16}`,
			`gh[posr]_[a-zA-Z0-9]{20,}`,
			`AIza[0-9A-Za-z\-_]{35}`,
			`xox[baprs]-[a-zA-Z0-9\-]{10,}`,
			`-----BEGIN\s+(RSA|EC|OPENSSH|DSA|ENCRYPTED)\s+PRIVATE\s+KEY-----`,
		},
	},
	{
		ID:          "generic/destructive-command",
		Language:    LanguageAny,
		Category:    "destructive-command",
		Severity:    domain.SeverityCritical,
		Description: "Destructive filesystem command",
		Suggestion:  "Remove the destructive command; skills must never delete outside their workspace",
		Patterns: []string{
			`rm\s+-rf\s+/(\s|['"]|$)`,
			`mkfs(\.\w+)?\s+/dev/`,
			`dd\s+if=.*of=/dev/`,
		},
	},
}

// Builtin returns every builtin ruleset in registration order.
func Builtin() []Rule {
	all := make([]Rule, 0,
		len(pythonRules)+len(goRules)+len(cRules)+len(javaRules)+len(rustRules)+len(genericRules))
	all = append(all, pythonRules...)
	all = append(all, goRules...)
	all = append(all, cRules...)
	all = append(all, javaRules...)
	all = append(all, rustRules...)
	all = append(all, genericRules...)
	return all
}
