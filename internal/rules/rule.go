// Package rules defines the dangerous-pattern rule model and the builtin
// rulesets for the languages sg understands.
package rules

import (
	"fmt"
	"sort"

	regexp "github.com/wasilibs/go-re2"

	"github.com/skillguard/skillguard/internal/domain"
)

// LanguageAny marks rules that apply to every scanned file regardless of
// detected language.
const LanguageAny = "any"

// Rule describes a single dangerous pattern to look for.
type Rule struct {
	ID          string          `yaml:"id"`
	Language    string          `yaml:"language"`
	Category    string          `yaml:"category"`
	Severity    domain.Severity `yaml:"severity"`
	Description string          `yaml:"description"`
	Suggestion  string          `yaml:"suggestion"`
	Patterns    []string        `yaml:"patterns"`
}

// CompiledRule is a Rule with its patterns compiled for matching.
type CompiledRule struct {
	Rule
	patterns []*regexp.Regexp
}

// Match returns the 1-based column of the first pattern hit on the line,
// or ok=false when no pattern matches.
func (r *CompiledRule) Match(line string) (column int, ok bool) {
	for _, pattern := range r.patterns {
		if loc := pattern.FindStringIndex(line); loc != nil {
			return loc[0] + 1, true
		}
	}
	return 0, false
}

// Registry holds compiled rules grouped by language.
type Registry struct {
	byLanguage map[string][]*CompiledRule
}

// NewRegistry compiles the given rules into a registry. Rules with the same
// ID override earlier ones, so custom packs can replace builtins.
func NewRegistry(ruleSets ...[]Rule) (*Registry, error) {
	merged := make(map[string]Rule)
	order := make([]string, 0)
	for _, set := range ruleSets {
		for _, rule := range set {
			if err := validate(rule); err != nil {
				return nil, err
			}
			if _, seen := merged[rule.ID]; !seen {
				order = append(order, rule.ID)
			}
			merged[rule.ID] = rule
		}
	}

	registry := &Registry{byLanguage: make(map[string][]*CompiledRule)}
	for _, id := range order {
		rule := merged[id]
		compiled, err := compile(rule)
		if err != nil {
			return nil, err
		}
		registry.byLanguage[rule.Language] = append(registry.byLanguage[rule.Language], compiled)
	}
	return registry, nil
}

// ForLanguage returns the rules that apply to a file of the given language:
// the language-specific rules plus the language-agnostic ones.
func (r *Registry) ForLanguage(language string) []*CompiledRule {
	applicable := make([]*CompiledRule, 0, len(r.byLanguage[language])+len(r.byLanguage[LanguageAny]))
	applicable = append(applicable, r.byLanguage[language]...)
	if language != LanguageAny {
		applicable = append(applicable, r.byLanguage[LanguageAny]...)
	}
	return applicable
}

// All returns every registered rule sorted by ID.
func (r *Registry) All() []Rule {
	all := make([]Rule, 0)
	for _, compiled := range r.byLanguage {
		for _, rule := range compiled {
			all = append(all, rule.Rule)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	total := 0
	for _, compiled := range r.byLanguage {
		total += len(compiled)
	}
	return total
}

func validate(rule Rule) error {
	if rule.ID == "" {
		return fmt.Errorf("rule missing id")
	}
	if rule.Language == "" {
		return fmt.Errorf("rule %s: missing language", rule.ID)
	}
	if !rule.Severity.Valid() {
		return fmt.Errorf("rule %s: invalid severity %q", rule.ID, rule.Severity)
	}
	if len(rule.Patterns) == 0 {
		return fmt.Errorf("rule %s: no patterns", rule.ID)
	}
	return nil
}

func compile(rule Rule) (*CompiledRule, error) {
	compiled := &CompiledRule{Rule: rule}
	for _, pattern := range rule.Patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %s: compile pattern %q: %w", rule.ID, pattern, err)
		}
		compiled.patterns = append(compiled.patterns, re)
	}
	return compiled, nil
}
