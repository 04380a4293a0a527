package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 60*time.Second, cfg.Engine.NodeTimeout)
	assert.Equal(t, "flowforge", cfg.Engine.MetricsNamespace)
	assert.Equal(t, 1000, cfg.Retrieval.ChunkSize)
	assert.Equal(t, "gpt-3.5-turbo", cfg.LLM.DefaultModel)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
engine:
  node_timeout: 30s
retrieval:
  chunk_size: 2000
  chunk_overlap: 100
log:
  level: debug
`), 0o600))

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Engine.NodeTimeout)
	assert.Equal(t, 2000, cfg.Retrieval.ChunkSize)
	assert.Equal(t, 100, cfg.Retrieval.ChunkOverlap)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, 0.7, cfg.Retrieval.SimilarityThreshold)
}

func TestLoad_MissingYAMLFileUsesDefaults(t *testing.T) {
	cfg, err := NewLoader().WithConfigPath("/nonexistent/config.yaml").Load()
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Retrieval.ChunkSize)
}

func TestLoad_MalformedYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine: [not a map"), 0o600))

	_, err := NewLoader().WithConfigPath(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config from file")
}

func TestLoad_EnvOverridesEverything(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	t.Setenv("FLOWFORGE_LOG_LEVEL", "warn")
	t.Setenv("FLOWFORGE_ENGINE_NODE_TIMEOUT", "5s")
	t.Setenv("FLOWFORGE_ENGINE_ALLOWED_MODELS", "gpt-4, gemini-pro")
	t.Setenv("FLOWFORGE_RETRIEVAL_SIMILARITY_THRESHOLD", "0.9")

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 5*time.Second, cfg.Engine.NodeTimeout)
	assert.Equal(t, []string{"gpt-4", "gemini-pro"}, cfg.Engine.AllowedModels)
	assert.Equal(t, 0.9, cfg.Retrieval.SimilarityThreshold)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FLOWFORGE_LLM_API_KEY=sk-test\n"), 0o600))

	cfg, err := NewLoader().WithEnvFile(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)

	os.Unsetenv("FLOWFORGE_LLM_API_KEY")
}

func TestLoad_CustomEnvPrefix(t *testing.T) {
	t.Setenv("MYAPP_LOG_LEVEL", "error")

	cfg, err := NewLoader().WithEnvPrefix("MYAPP").Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_ValidatorRuns(t *testing.T) {
	t.Setenv("FLOWFORGE_RETRIEVAL_CHUNK_OVERLAP", "5000")

	_, err := NewLoader().WithValidator((*Config).Validate).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunk_overlap")
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Retrieval.SimilarityThreshold = 1.5
	cfg.LLM.Timeout = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "similarity_threshold")
	assert.Contains(t, err.Error(), "llm timeout")
}
