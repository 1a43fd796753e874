package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-extractor/internal/config"
)

func TestBuildProcessor_FallbackOnly(t *testing.T) {
	cfg := &config.Config{FallbackOnly: true, Concurrency: 3}

	processor, cleanup, err := buildProcessor(context.Background(), cfg)
	defer cleanup()
	require.NoError(t, err)
	require.NotNil(t, processor)

	assert.Nil(t, processor.Client)
	assert.Nil(t, processor.Store)
	assert.True(t, processor.FallbackOnly)
	assert.Equal(t, 3, processor.Concurrency)
	assert.NotNil(t, processor.Fallback)
}

func TestBuildProcessor_VocabularyOverride(t *testing.T) {
	vocabPath := filepath.Join(t.TempDir(), "vocab.json")
	err := os.WriteFile(vocabPath, []byte(`{"skills":["Cobol"],"title_keywords":["operator"]}`), 0644)
	require.NoError(t, err)

	cfg := &config.Config{FallbackOnly: true, VocabularyPath: vocabPath}
	processor, cleanup, err := buildProcessor(context.Background(), cfg)
	defer cleanup()
	require.NoError(t, err)

	profile := processor.Fallback.Extract("Pat Doe\nSenior Operator\nWrites Cobol.", nil)
	assert.Contains(t, profile.Skills, "Cobol")
}

func TestBuildProcessor_BadVocabularyFails(t *testing.T) {
	cfg := &config.Config{FallbackOnly: true, VocabularyPath: "/nonexistent/vocab.json"}
	_, cleanup, err := buildProcessor(context.Background(), cfg)
	defer cleanup()
	assert.Error(t, err)
}

func TestBuildProcessor_DebugDirCreatesSink(t *testing.T) {
	debugDir := filepath.Join(t.TempDir(), "debug")
	cfg := &config.Config{FallbackOnly: true, DebugDir: debugDir}

	processor, cleanup, err := buildProcessor(context.Background(), cfg)
	defer cleanup()
	require.NoError(t, err)
	require.NotNil(t, processor.Sink)

	// The sink directory must exist after construction.
	info, err := os.Stat(debugDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
