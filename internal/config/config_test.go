package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"api_key": "test-key",
		"database_url": "postgres://localhost/extractor",
		"debug_dir": "/tmp/debug",
		"concurrency": 4,
		"fallback_only": true,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "postgres://localhost/extractor", cfg.DatabaseURL)
	assert.Equal(t, "/tmp/debug", cfg.DebugDir)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.True(t, cfg.FallbackOnly)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate_NegativeConcurrency(t *testing.T) {
	cfg := &Config{Concurrency: -1}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "concurrency")
}

func TestValidate_MissingVocabularyFile(t *testing.T) {
	cfg := &Config{VocabularyPath: "/nonexistent/vocab.json"}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "vocabulary file not found")
}

func TestValidate_ZeroValueIsValid(t *testing.T) {
	cfg := &Config{}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{
		APIKey:      "from-flags",
		Concurrency: 0,
	}
	defaults := Config{
		APIKey:      "from-file",
		DatabaseURL: "postgres://localhost/extractor",
		Concurrency: 2,
		ListenAddr:  ":8080",
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "from-flags", merged.APIKey, "explicit values must win")
	assert.Equal(t, "postgres://localhost/extractor", merged.DatabaseURL)
	assert.Equal(t, 2, merged.Concurrency)
	assert.Equal(t, ":8080", merged.ListenAddr)
}
