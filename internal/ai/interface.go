package ai

import (
	"context"
)

// LLMProvider defines the contract for interacting with AI models.
// Implementations are selected once at startup and shared by concurrent requests.
type LLMProvider interface {
	// Name is the backend identifier ("ollama", "groq", "openai", "gemini").
	Name() string

	// Generate sends one system+user exchange and returns the raw text reply.
	// With prompt.JSONMode set, the backend is asked to emit a JSON object; callers still
	// decode leniently since not every backend honours it.
	Generate(ctx context.Context, prompt Prompt) (string, error)
}
