package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
storage:
  type: local
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "1.0.0", cfg.Analysis.Version)
	assert.Equal(t, "./data", cfg.Analysis.DataDir)
	assert.InDelta(t, 0.005, cfg.Analysis.RelevanceThreshold, 1e-9)
	assert.Equal(t, 10, cfg.Analysis.TopKinds)
	assert.Equal(t, 25, cfg.Analysis.TopRetainers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.PersistenceEnabled())
}

func TestLoad_CustomValues(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
analysis:
  version: "2.0.0"
  data_dir: "/tmp/data"
  relevance_threshold: 0.01
  top_kinds: 5
  top_retainers: 50
database:
  type: postgres
  host: db.example.com
  port: 5432
  database: heap_analysis
  user: admin
  password: secret
storage:
  type: local
  local_path: /tmp/storage
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, "2.0.0", cfg.Analysis.Version)
	assert.Equal(t, "/tmp/data", cfg.Analysis.DataDir)
	assert.InDelta(t, 0.01, cfg.Analysis.RelevanceThreshold, 1e-9)
	assert.Equal(t, 5, cfg.Analysis.TopKinds)
	assert.Equal(t, 50, cfg.Analysis.TopRetainers)
	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, "heap_analysis", cfg.Database.Database)
	assert.True(t, cfg.PersistenceEnabled())
}

func TestLoad_InvalidDatabaseType(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
database:
  type: mongodb
  host: localhost
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	_, err = Load(configFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-config.yaml"))
	require.NoError(t, err)
	assert.InDelta(t, DefaultRelevanceThreshold, cfg.Analysis.RelevanceThreshold, 1e-9)
}

func TestLoadFromReader(t *testing.T) {
	content := []byte(`
analysis:
  relevance_threshold: 0.02
`)
	cfg, err := LoadFromReader("yaml", content)
	require.NoError(t, err)
	assert.InDelta(t, 0.02, cfg.Analysis.RelevanceThreshold, 1e-9)
}

func TestValidate(t *testing.T) {
	t.Run("negative threshold rejected", func(t *testing.T) {
		cfg := &Config{
			Analysis: AnalysisConfig{RelevanceThreshold: -0.1, TopKinds: 10, TopRetainers: 25},
		}
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero report size rejected", func(t *testing.T) {
		cfg := &Config{
			Analysis: AnalysisConfig{TopKinds: 0, TopRetainers: 25},
		}
		assert.Error(t, cfg.Validate())
	})

	t.Run("database requires host when enabled", func(t *testing.T) {
		cfg := &Config{
			Analysis: AnalysisConfig{TopKinds: 10, TopRetainers: 25},
			Database: DatabaseConfig{Type: "mysql"},
		}
		assert.Error(t, cfg.Validate())
	})
}

func TestGetRunDir(t *testing.T) {
	cfg := &Config{Analysis: AnalysisConfig{DataDir: "/data"}}
	assert.Equal(t, filepath.Join("/data", "uuid-1"), cfg.GetRunDir("uuid-1"))
}
