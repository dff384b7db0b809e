package ai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// contentGenerator is the slice of llms.Model the provider needs; ollama.LLM and openai.LLM
// both satisfy it.
type contentGenerator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// LangchainProvider implements LLMProvider on top of a langchaingo chat model
// (Ollama, OpenAI, or Groq through its OpenAI-compatible endpoint).
type LangchainProvider struct {
	name        string
	llm         contentGenerator
	temperature float64
}

func newLangchainProvider(name string, llm contentGenerator, temperature float64) *LangchainProvider {
	return &LangchainProvider{name: name, llm: llm, temperature: temperature}
}

func (p *LangchainProvider) Name() string { return p.name }

func (p *LangchainProvider) Generate(ctx context.Context, prompt Prompt) (string, error) {
	messages := make([]llms.MessageContent, 0, 2)
	if prompt.System != "" {
		messages = append(messages, llms.TextParts(schema.ChatMessageTypeSystem, prompt.System))
	}
	messages = append(messages, llms.TextParts(schema.ChatMessageTypeHuman, prompt.User))

	opts := []llms.CallOption{llms.WithTemperature(p.temperature)}
	if prompt.JSONMode {
		opts = append(opts, llms.WithJSONMode())
	}

	resp, err := p.llm.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("%s generation error: %w", p.name, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Content, nil
}
