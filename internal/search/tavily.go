// README: Tavily web search client for POI / event / restaurant enrichment.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Result is one search hit as handed to the LLM prompt.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Tavily calls the Tavily /search endpoint. A zero-value API key disables it.
type Tavily struct {
	apiKey     string
	baseURL    string
	maxResults int
	httpClient *http.Client
}

func NewTavily(apiKey, baseURL string, maxResults int, timeout time.Duration) *Tavily {
	return &Tavily{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether an API key is configured.
func (t *Tavily) Enabled() bool { return t != nil && t.apiKey != "" }

type searchRequest struct {
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth"`
	MaxResults        int    `json:"max_results"`
	IncludeAnswer     bool   `json:"include_answer"`
	IncludeImages     bool   `json:"include_images"`
	IncludeRawContent bool   `json:"include_raw_content"`
	APIKey            string `json:"api_key,omitempty"`
}

type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Query formats a search phrase scoped to a place and date range.
func Query(topic, location, start, end string) string {
	return fmt.Sprintf("%s in %s between %s and %s", topic, location, start, end)
}

// Search returns at most maxResults hits for query. Without an API key it returns no
// results and no error. Header auth is tried first; a 401 is retried once with the key in
// the request body.
func (t *Tavily) Search(ctx context.Context, query string) ([]Result, error) {
	if !t.Enabled() {
		return []Result{}, nil
	}

	payload := searchRequest{
		Query:       query,
		SearchDepth: "basic",
		MaxResults:  t.maxResults,
	}

	status, body, err := t.post(ctx, payload, true)
	if err == nil && status == http.StatusUnauthorized {
		payload.APIKey = t.apiKey
		status, body, err = t.post(ctx, payload, false)
	}
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("search: tavily error (%d): %s", status, string(body))
	}

	var data searchResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("search: parse tavily response: %w", err)
	}

	out := make([]Result, 0, len(data.Results))
	for _, r := range data.Results {
		if len(out) >= t.maxResults {
			break
		}
		out = append(out, Result{Title: r.Title, URL: r.URL, Snippet: r.Content})
	}
	return out, nil
}

func (t *Tavily) post(ctx context.Context, payload searchRequest, headerAuth bool) (int, []byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("search: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/search", bytes.NewReader(buf))
	if err != nil {
		return 0, nil, fmt.Errorf("search: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if headerAuth {
		req.Header.Set("X-API-KEY", t.apiKey)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("search: tavily request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("search: read tavily response: %w", err)
	}
	return resp.StatusCode, body, nil
}
