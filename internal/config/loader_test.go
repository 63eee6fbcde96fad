package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillguard/skillguard/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("defaults apply without a config file", func(t *testing.T) {
		cfg, err := config.Load(config.LoaderOptions{ConfigPaths: []string{t.TempDir()}})
		require.NoError(t, err)

		assert.Equal(t, "text", cfg.Output.Format)
		assert.Equal(t, "low", cfg.Scan.Severity)
		assert.Equal(t, "critical", cfg.Scan.FailOn)
		assert.Equal(t, 1024, cfg.Scan.MaxFileSizeKB)
		assert.True(t, cfg.Redaction.Enabled)
		assert.True(t, cfg.Store.Enabled)
		assert.Contains(t, cfg.Scan.Exclude, "vendor")
	})

	t.Run("reads values from sg.yaml", func(t *testing.T) {
		dir := t.TempDir()
		content := `
scan:
  severity: medium
  failOn: high
  maxFileSizeKB: 256
output:
  format: sarif
  directory: reports
store:
  enabled: true
  path: /tmp/sg-test.db
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "sg.yaml"), []byte(content), 0o644))

		cfg, err := config.Load(config.LoaderOptions{ConfigPaths: []string{dir}})
		require.NoError(t, err)

		assert.Equal(t, "medium", cfg.Scan.Severity)
		assert.Equal(t, "high", cfg.Scan.FailOn)
		assert.Equal(t, 256, cfg.Scan.MaxFileSizeKB)
		assert.Equal(t, "sarif", cfg.Output.Format)
		assert.Equal(t, "reports", cfg.Output.Directory)
		assert.Equal(t, "/tmp/sg-test.db", cfg.Store.Path)
	})

	t.Run("expands environment variables", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("SG_TEST_STORE_DIR", dir)
		content := `
store:
  path: ${SG_TEST_STORE_DIR}/scans.db
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "sg.yaml"), []byte(content), 0o644))

		cfg, err := config.Load(config.LoaderOptions{ConfigPaths: []string{dir}})
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, "scans.db"), cfg.Store.Path)
	})

	t.Run("unset variables stay literal", func(t *testing.T) {
		dir := t.TempDir()
		content := `
store:
  path: ${SG_DOES_NOT_EXIST}/scans.db
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "sg.yaml"), []byte(content), 0o644))

		cfg, err := config.Load(config.LoaderOptions{ConfigPaths: []string{dir}})
		require.NoError(t, err)

		assert.Equal(t, "${SG_DOES_NOT_EXIST}/scans.db", cfg.Store.Path)
	})

	t.Run("malformed config file errors", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "sg.yaml"), []byte("scan: ["), 0o644))

		_, err := config.Load(config.LoaderOptions{ConfigPaths: []string{dir}})
		assert.Error(t, err)
	})
}

func TestMerge(t *testing.T) {
	t.Run("overlay wins for set fields", func(t *testing.T) {
		base := config.Config{
			Scan:   config.ScanConfig{Severity: "low", FailOn: "critical"},
			Output: config.OutputConfig{Format: "text"},
		}
		overlay := config.Config{
			Scan: config.ScanConfig{Severity: "high"},
		}

		merged := config.Merge(base, overlay)

		assert.Equal(t, "high", merged.Scan.Severity)
		assert.Equal(t, "critical", merged.Scan.FailOn)
		assert.Equal(t, "text", merged.Output.Format)
	})

	t.Run("store overlay replaces base", func(t *testing.T) {
		base := config.Config{Store: config.StoreConfig{Enabled: true, Path: "a.db"}}
		overlay := config.Config{Store: config.StoreConfig{Path: "b.db"}}

		merged := config.Merge(base, overlay)
		assert.Equal(t, "b.db", merged.Store.Path)
	})
}
