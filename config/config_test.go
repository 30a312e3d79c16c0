package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 800, cfg.ChunkSize)
	assert.Equal(t, 100, cfg.ChunkOverlap)
	assert.Equal(t, 0.3, cfg.RelevanceThreshold)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, 6, cfg.MaxRounds)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
corpus_dir: /srv/docs
chunk_size: 400
chunk_overlap: 50
relevance_threshold: 0.5
team: creative_writer
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/docs", cfg.CorpusDir)
	assert.Equal(t, 400, cfg.ChunkSize)
	assert.Equal(t, 50, cfg.ChunkOverlap)
	assert.Equal(t, 0.5, cfg.RelevanceThreshold)
	assert.Equal(t, "creative_writer", cfg.Team)
	// Untouched values keep their defaults.
	assert.Equal(t, 5, cfg.TopK)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunk_size: 400\n"), 0o644))

	t.Setenv("DOCUFLOW_CHUNK_SIZE", "200")
	t.Setenv("DOCUFLOW_MODEL", "llama3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.ChunkSize)
	assert.Equal(t, "llama3", cfg.Model)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadNoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().ChunkSize, cfg.ChunkSize)
}

func TestValidation(t *testing.T) {
	t.Setenv("DOCUFLOW_CHUNK_SIZE", "0")
	_, err := Load("")
	assert.Error(t, err)
}

func TestOverlapValidation(t *testing.T) {
	t.Setenv("DOCUFLOW_CHUNK_SIZE", "100")
	t.Setenv("DOCUFLOW_CHUNK_OVERLAP", "100")
	_, err := Load("")
	assert.Error(t, err)
}
