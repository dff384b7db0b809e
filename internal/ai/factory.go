package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"tripmate/internal/config"
)

// Default model per backend when LLM_MODEL / CHAT_MODEL is blank.
var defaultModels = map[string]string{
	config.ProviderOllama: "llama3.1:8b",
	config.ProviderGroq:   "llama-3.3-70b-versatile",
	config.ProviderOpenAI: "gpt-4o-mini",
	config.ProviderGemini: "gemini-2.5-flash",
}

// NewProvider builds the backend named by provider. It returns ErrNoProvider for "none";
// any other error means the backend is misconfigured and callers should degrade.
func NewProvider(ctx context.Context, cfg config.LLMConfig, provider, model string) (LLMProvider, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModels[provider]
	}

	switch provider {
	case config.ProviderNone, "":
		return nil, ErrNoProvider

	case config.ProviderOllama:
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.OllamaBaseURL),
			ollama.WithModel(model),
		)
		if err != nil {
			return nil, fmt.Errorf("ai: init ollama: %w", err)
		}
		return newLangchainProvider(provider, llm, cfg.Temperature), nil

	case config.ProviderGroq:
		if strings.TrimSpace(cfg.GroqAPIKey) == "" {
			return nil, fmt.Errorf("ai: init groq: missing GROQ_API_KEY")
		}
		llm, err := openai.New(
			openai.WithToken(cfg.GroqAPIKey),
			openai.WithBaseURL(cfg.GroqBaseURL),
			openai.WithModel(model),
		)
		if err != nil {
			return nil, fmt.Errorf("ai: init groq: %w", err)
		}
		return newLangchainProvider(provider, llm, cfg.Temperature), nil

	case config.ProviderOpenAI:
		opts := []openai.Option{openai.WithModel(model)}
		if cfg.OpenAIAPIKey != "" {
			opts = append(opts, openai.WithToken(cfg.OpenAIAPIKey))
		}
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("ai: init openai: %w", err)
		}
		return newLangchainProvider(provider, llm, cfg.Temperature), nil

	case config.ProviderGemini:
		p, err := NewGeminiProvider(ctx, cfg.GeminiAPIKey, model, cfg.Temperature)
		if err != nil {
			return nil, fmt.Errorf("ai: init gemini: %w", err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("ai: unknown provider %q", provider)
}
