package scan

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/skillguard/skillguard/internal/domain"
)

// Baseline is a set of known finding IDs to suppress. The on-disk format is
// a JSON array of IDs, which keeps baselines diff-friendly in review.
type Baseline struct {
	ids map[string]struct{}
}

// NewBaseline builds a baseline from a list of finding IDs.
func NewBaseline(ids []string) *Baseline {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &Baseline{ids: set}
}

// LoadBaseline reads a baseline file.
func LoadBaseline(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading baseline %s: %w", path, err)
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("parsing baseline %s: %w", path, err)
	}
	return NewBaseline(ids), nil
}

// Suppressed reports whether the finding ID is in the baseline.
func (b *Baseline) Suppressed(id string) bool {
	_, ok := b.ids[id]
	return ok
}

// Len returns the number of IDs in the baseline.
func (b *Baseline) Len() int {
	return len(b.ids)
}

// WriteBaseline writes the report's finding IDs as a baseline file, sorted
// by the report's finding order so repeated writes stay stable.
func WriteBaseline(path string, report domain.Report) error {
	ids := make([]string, len(report.Findings))
	for i, finding := range report.Findings {
		ids[i] = finding.ID
	}
	data, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding baseline: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing baseline %s: %w", path, err)
	}
	return nil
}
