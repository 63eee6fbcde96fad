package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Pack is the on-disk format of a custom rule pack.
type Pack struct {
	Rules []Rule `yaml:"rules"`
}

// LoadPack reads a YAML rule pack from disk. Rules in a pack may introduce
// new IDs or override builtin rules by reusing an ID.
func LoadPack(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule pack %s: %w", path, err)
	}

	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parse rule pack %s: %w", path, err)
	}
	if len(pack.Rules) == 0 {
		return nil, fmt.Errorf("rule pack %s contains no rules", path)
	}

	for _, rule := range pack.Rules {
		if err := validate(rule); err != nil {
			return nil, fmt.Errorf("rule pack %s: %w", path, err)
		}
	}
	return pack.Rules, nil
}

// LoadPacks reads multiple rule packs in order. Later packs override earlier
// ones when IDs collide, matching NewRegistry's merge semantics.
func LoadPacks(paths []string) ([]Rule, error) {
	var all []Rule
	for _, path := range paths {
		pack, err := LoadPack(path)
		if err != nil {
			return nil, err
		}
		all = append(all, pack...)
	}
	return all, nil
}

// Without returns the rules with the given IDs removed.
func Without(ruleSet []Rule, disabled []string) []Rule {
	if len(disabled) == 0 {
		return ruleSet
	}
	drop := make(map[string]struct{}, len(disabled))
	for _, id := range disabled {
		drop[id] = struct{}{}
	}
	kept := make([]Rule, 0, len(ruleSet))
	for _, rule := range ruleSet {
		if _, ok := drop[rule.ID]; ok {
			continue
		}
		kept = append(kept, rule)
	}
	return kept
}
