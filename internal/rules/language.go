package rules

import (
	"path/filepath"
	"strings"
)

// Language identifiers used by the builtin rulesets.
const (
	LanguagePython = "python"
	LanguageGo     = "go"
	LanguageC      = "c"
	LanguageJava   = "java"
	LanguageRust   = "rust"
)

var extensionLanguages = map[string]string{
	".py":   LanguagePython,
	".pyw":  LanguagePython,
	".go":   LanguageGo,
	".c":    LanguageC,
	".h":    LanguageC,
	".java": LanguageJava,
	".rs":   LanguageRust,
}

// DetectLanguage identifies the language of a file from its extension,
// falling back to the shebang line for extensionless scripts. Returns the
// empty string when the language is not one sg scans.
func DetectLanguage(path string, firstLine string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if language, ok := extensionLanguages[ext]; ok {
		return language
	}
	if strings.HasPrefix(firstLine, "#!") {
		if strings.Contains(firstLine, "python") {
			return LanguagePython
		}
	}
	return ""
}
