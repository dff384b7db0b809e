package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"tripmate/internal/ai"
	"tripmate/internal/maps"
	"tripmate/internal/modules/booking"
	"tripmate/internal/search"
	"tripmate/internal/weather"
)

type llmReply struct {
	text string
	err  error
}

// fakeLLM replays scripted replies in order and records every prompt.
type fakeLLM struct {
	mu      sync.Mutex
	replies []llmReply
	prompts []ai.Prompt
}

func (f *fakeLLM) Name() string { return "fake" }

func (f *fakeLLM) Generate(_ context.Context, p ai.Prompt) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, p)
	if len(f.replies) == 0 {
		return "", ai.ErrEmptyResponse
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r.text, r.err
}

type fakeResolver struct {
	bc    booking.Context
	found bool
	calls []string
}

func (f *fakeResolver) LatestForUser(_ context.Context, userID string) (booking.Context, bool) {
	f.calls = append(f.calls, userID)
	return f.bc, f.found
}

type fakeGeocoder struct {
	loc maps.Location
	err error
}

func (f fakeGeocoder) Geocode(_ context.Context, place string) (maps.Location, error) {
	if f.err != nil {
		return maps.Unresolved(place), f.err
	}
	return f.loc, nil
}

type fakeForecaster struct {
	days  []weather.Day
	err   error
	calls int
}

func (f *fakeForecaster) Daily(_ context.Context, _, _ float64, _, _ string) ([]weather.Day, error) {
	f.calls++
	return f.days, f.err
}

type fakeSearcher struct {
	results []search.Result
	err     error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, q string) ([]search.Result, error) {
	f.queries = append(f.queries, q)
	return f.results, f.err
}

func lisbon(t *testing.T) booking.Context {
	t.Helper()
	bc, err := booking.Input{Location: "Lisbon", StartDate: "2025-09-10", EndDate: "2025-09-12"}.Context()
	require.NoError(t, err)
	return bc
}

func coords(lat, lon float64) (*float64, *float64) { return &lat, &lon }
