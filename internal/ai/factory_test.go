package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmate/internal/config"
)

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		Temperature:   0.2,
		OllamaBaseURL: "http://localhost:11434",
		GroqBaseURL:   "https://api.groq.com/openai/v1",
	}
}

func TestNewProviderNone(t *testing.T) {
	for _, name := range []string{"none", "", "  NONE "} {
		p, err := NewProvider(context.Background(), testLLMConfig(), name, "")
		assert.ErrorIs(t, err, ErrNoProvider)
		assert.Nil(t, p)
	}
}

func TestNewProviderLangchainBackends(t *testing.T) {
	cfg := testLLMConfig()
	cfg.GroqAPIKey = "gsk-test"
	cfg.OpenAIAPIKey = "sk-test"

	for _, name := range []string{config.ProviderOllama, config.ProviderGroq, config.ProviderOpenAI} {
		t.Run(name, func(t *testing.T) {
			p, err := NewProvider(context.Background(), cfg, name, "")
			require.NoError(t, err)
			assert.Equal(t, name, p.Name())
			assert.IsType(t, &LangchainProvider{}, p)
		})
	}
}

func TestNewProviderMissingKeys(t *testing.T) {
	_, err := NewProvider(context.Background(), testLLMConfig(), config.ProviderGroq, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GROQ_API_KEY")

	_, err = NewProvider(context.Background(), testLLMConfig(), config.ProviderGemini, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_API_KEY")
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider(context.Background(), testLLMConfig(), "bard", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoProvider)
}
