package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.HTTP.Addr)
	assert.Equal(t, ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, ProviderGemini, cfg.LLM.ChatProvider)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 20*time.Second, cfg.Search.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Geo.Timeout)
	assert.Equal(t, 6, cfg.Search.MaxResults)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.HTTP.CORSOrigins)
}

func TestFromViperOverrides(t *testing.T) {
	v := newViper()
	v.Set("LLM_PROVIDER", " OpenAI ")
	v.Set("LLM_MODEL", "gpt-4o-mini")
	v.Set("CORS_ORIGIN", "https://stay.example.com")
	v.Set("TAVILY_BASE_URL", "http://127.0.0.1:9999/")
	v.Set("GEMINI_API_KEY", "g-key")

	cfg, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.Search.BaseURL)
	assert.Equal(t, "g-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, []string{"https://stay.example.com", "http://localhost:5173", "http://127.0.0.1:5173"}, cfg.HTTP.CORSOrigins)
}

func TestFromViperKeepsUnknownProvider(t *testing.T) {
	v := newViper()
	v.Set("LLM_PROVIDER", "Anthropic")
	v.Set("CHAT_PROVIDER", "bard")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "bard", cfg.LLM.ChatProvider)
}

func TestFromViperRejectsNonPositiveTimeout(t *testing.T) {
	v := newViper()
	v.Set("LLM_TIMEOUT", "0s")

	_, err := FromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_TIMEOUT")
}
