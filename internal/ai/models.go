package ai

import "errors"

var (
	// ErrNoProvider is returned by NewProvider when LLM_PROVIDER is "none".
	ErrNoProvider = errors.New("ai: no LLM provider configured")
	// ErrEmptyResponse means the backend answered without any text.
	ErrEmptyResponse = errors.New("ai: empty response")
)

// Prompt is a single-turn request.
type Prompt struct {
	// System carries the persona and output contract. May be empty.
	System string
	// User is the request body (serialised booking, enrichment, free text...).
	User string
	// JSONMode asks the backend for a JSON object reply.
	JSONMode bool
}
