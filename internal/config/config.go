package config

// Config represents the full application configuration.
type Config struct {
	Scan          ScanConfig          `yaml:"scan"`
	Rules         RulesConfig         `yaml:"rules"`
	Output        OutputConfig        `yaml:"output"`
	Redaction     RedactionConfig     `yaml:"redaction"`
	Store         StoreConfig         `yaml:"store"`
	Observability ObservabilityConfig `yaml:"observability"`
	Git           GitConfig           `yaml:"git"`
}

// ScanConfig controls file discovery and matching limits.
type ScanConfig struct {
	// Include restricts the scan to paths matching these globs. Empty means
	// every file with a recognized language.
	Include []string `yaml:"include"`

	// Exclude drops paths matching these globs (e.g. vendor/**, node_modules/**).
	Exclude []string `yaml:"exclude"`

	// MaxFileSizeKB skips files larger than this many kilobytes.
	MaxFileSizeKB int `yaml:"maxFileSizeKB"`

	// Severity drops findings below this level from reports.
	Severity string `yaml:"severity"`

	// FailOn makes sg exit non-zero when a finding at or above this level
	// survives filtering.
	FailOn string `yaml:"failOn"`

	// Baseline is a JSON file of known finding IDs to suppress.
	Baseline string `yaml:"baseline"`
}

// RulesConfig controls which rules run.
type RulesConfig struct {
	// Packs lists YAML rule pack paths loaded on top of the builtins.
	Packs []string `yaml:"packs"`

	// Disabled lists rule IDs to skip entirely.
	Disabled []string `yaml:"disabled"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	// Directory receives json/markdown/sarif report files.
	Directory string `yaml:"directory"`

	// Format selects the report renderer: text, json, markdown, or sarif.
	Format string `yaml:"format"`

	// Color controls text output coloring: auto, always, or never.
	Color string `yaml:"color"`
}

// RedactionConfig controls snippet scrubbing.
type RedactionConfig struct {
	Enabled bool `yaml:"enabled"`
}

// StoreConfig configures the scan history database.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ObservabilityConfig configures logging.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures scan event logging.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`  // debug, info, error
	Format  string `yaml:"format"` // json, human
}

// GitConfig controls git-aware scanning.
type GitConfig struct {
	// Enabled records branch/commit metadata and honors --git-ref.
	Enabled bool `yaml:"enabled"`
}

// Merge combines multiple configuration instances, prioritising the latter ones.
func Merge(configs ...Config) Config {
	result := Config{}
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}

func merge(base, overlay Config) Config {
	result := base

	result.Scan = chooseScan(base.Scan, overlay.Scan)
	result.Rules = chooseRules(base.Rules, overlay.Rules)
	result.Output = chooseOutput(base.Output, overlay.Output)
	result.Redaction = chooseRedaction(base.Redaction, overlay.Redaction)
	result.Store = chooseStore(base.Store, overlay.Store)
	result.Observability = chooseObservability(base.Observability, overlay.Observability)
	result.Git = chooseGit(base.Git, overlay.Git)

	return result
}

func chooseScan(base, overlay ScanConfig) ScanConfig {
	result := base
	if len(overlay.Include) > 0 {
		result.Include = overlay.Include
	}
	if len(overlay.Exclude) > 0 {
		result.Exclude = overlay.Exclude
	}
	if overlay.MaxFileSizeKB != 0 {
		result.MaxFileSizeKB = overlay.MaxFileSizeKB
	}
	if overlay.Severity != "" {
		result.Severity = overlay.Severity
	}
	if overlay.FailOn != "" {
		result.FailOn = overlay.FailOn
	}
	if overlay.Baseline != "" {
		result.Baseline = overlay.Baseline
	}
	return result
}

func chooseRules(base, overlay RulesConfig) RulesConfig {
	result := base
	if len(overlay.Packs) > 0 {
		result.Packs = overlay.Packs
	}
	if len(overlay.Disabled) > 0 {
		result.Disabled = overlay.Disabled
	}
	return result
}

func chooseOutput(base, overlay OutputConfig) OutputConfig {
	result := base
	if overlay.Directory != "" {
		result.Directory = overlay.Directory
	}
	if overlay.Format != "" {
		result.Format = overlay.Format
	}
	if overlay.Color != "" {
		result.Color = overlay.Color
	}
	return result
}

func chooseRedaction(base, overlay RedactionConfig) RedactionConfig {
	if overlay.Enabled {
		return overlay
	}
	return base
}

func chooseStore(base, overlay StoreConfig) StoreConfig {
	if overlay.Enabled || overlay.Path != "" {
		return overlay
	}
	return base
}

func chooseObservability(base, overlay ObservabilityConfig) ObservabilityConfig {
	result := base
	if overlay.Logging.Enabled || overlay.Logging.Level != "" || overlay.Logging.Format != "" {
		result.Logging = overlay.Logging
	}
	return result
}

func chooseGit(base, overlay GitConfig) GitConfig {
	if overlay.Enabled {
		return overlay
	}
	return base
}
