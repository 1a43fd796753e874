package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetModel_FallbackChain(t *testing.T) {
	t.Run("exact tier wins", func(t *testing.T) {
		cfg := DefaultGeminiConfig()
		assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierStandard))
		assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierAdvanced))
	})

	t.Run("missing tier falls back to standard", func(t *testing.T) {
		cfg := &Config{
			Provider: ProviderGemini,
			Models:   map[ModelTier]string{TierStandard: "model-std"},
		}
		assert.Equal(t, "model-std", cfg.GetModel(TierAdvanced))
	})

	t.Run("then falls back to lite", func(t *testing.T) {
		cfg := &Config{
			Provider: ProviderGemini,
			Models:   map[ModelTier]string{TierLite: "model-lite"},
		}
		assert.Equal(t, "model-lite", cfg.GetModel(TierAdvanced))
	})

	t.Run("no models configured", func(t *testing.T) {
		cfg := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
		assert.Equal(t, "", cfg.GetModel(TierStandard))
	})
}

func TestWithModel_DoesNotMutateOriginal(t *testing.T) {
	original := DefaultGeminiConfig()
	derived := original.WithModel(TierStandard, "custom-model")

	assert.Equal(t, "custom-model", derived.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash", original.GetModel(TierStandard))
	assert.Equal(t, original.Provider, derived.Provider)
}

func TestDefaultConfig_IsGemini(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.NotEmpty(t, cfg.GetModel(TierLite))
}
