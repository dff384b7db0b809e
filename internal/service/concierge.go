package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripmate/internal/ai"
	"tripmate/internal/metrics"
)

// EmptyReply is returned when the chat backend answers with no text.
const EmptyReply = "I'm sorry, I couldn't generate a response."

// ErrEmptyQuery is returned for a blank conversational query.
var ErrEmptyQuery = errors.New("service: empty query")

// Concierge answers free-form travel questions in Markdown through the chat backend.
// It keeps no state between calls.
type Concierge struct {
	llm          ai.LLMProvider
	systemPrompt string
	timeout      time.Duration
	log          *zap.Logger
}

// NewConcierge creates a Concierge. A blank systemPrompt selects DefaultTravelAgentPrompt;
// a nil llm makes every Reply fail with ai.ErrNoProvider.
func NewConcierge(llm ai.LLMProvider, systemPrompt string, timeout time.Duration, log *zap.Logger) *Concierge {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultTravelAgentPrompt
	}
	return &Concierge{
		llm:          llm,
		systemPrompt: systemPrompt,
		timeout:      timeout,
		log:          log.With(zap.String("component", "concierge")),
	}
}

// Reply sends query (and optional preference hints) to the chat backend once.
func (c *Concierge) Reply(ctx context.Context, query string, prefs map[string]any) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}
	if c.llm == nil {
		return "", ai.ErrNoProvider
	}

	lctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.llm.Generate(lctx, ai.Prompt{User: c.composePrompt(query, prefs)})
	if errors.Is(err, ai.ErrEmptyResponse) {
		metrics.LLMCalls.WithLabelValues(c.llm.Name(), "empty").Inc()
		c.log.Warn("chat backend returned no content", zap.String("provider", c.llm.Name()))
		return EmptyReply, nil
	}
	if err != nil {
		metrics.LLMCalls.WithLabelValues(c.llm.Name(), "error").Inc()
		c.log.Warn("chat generation failed", zap.String("provider", c.llm.Name()), zap.Error(err))
		return "", fmt.Errorf("concierge: %w", err)
	}
	metrics.LLMCalls.WithLabelValues(c.llm.Name(), "ok").Inc()

	if strings.TrimSpace(text) == "" {
		return EmptyReply, nil
	}
	return text, nil
}

// composePrompt joins persona, preferences, query and the format instruction with blank lines.
func (c *Concierge) composePrompt(query string, prefs map[string]any) string {
	sections := []string{c.systemPrompt}
	if len(prefs) > 0 {
		if block, err := prettyJSON(prefs); err == nil {
			sections = append(sections, "User preferences/context:\n"+block)
		} else {
			c.log.Debug("skipping unencodable preferences", zap.Error(err))
		}
	}
	sections = append(sections, "User query:\n"+query, "Return the final answer in Markdown.")
	return strings.Join(sections, "\n\n")
}

// prettyJSON indents by two spaces and leaves non-ASCII and HTML characters unescaped.
func prettyJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
