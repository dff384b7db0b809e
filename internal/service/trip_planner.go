package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripmate/internal/ai"
	"tripmate/internal/maps"
	"tripmate/internal/metrics"
	"tripmate/internal/modules/booking"
	"tripmate/internal/modules/itinerary"
	"tripmate/internal/search"
	"tripmate/internal/weather"
)

// ErrNoBookingContext is returned when neither a stored nor an explicit booking is available.
var ErrNoBookingContext = errors.New("service: no booking context provided or found")

// BookingResolver looks up a user's latest booking; false means none.
type BookingResolver interface {
	LatestForUser(ctx context.Context, userID string) (booking.Context, bool)
}

// Forecaster returns a daily forecast for a coordinate and date range.
type Forecaster interface {
	Daily(ctx context.Context, lat, lon float64, start, end string) ([]weather.Day, error)
}

// WebSearcher runs a web search.
type WebSearcher interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// Timeouts bound each outbound call made while planning.
type Timeouts struct {
	LLM    time.Duration
	Geo    time.Duration
	Search time.Duration
}

// PlannerDeps wires a TripPlanner. Any dependency may be nil: a nil LLM serves the stub
// plan, and nil enrichment sources are skipped.
type PlannerDeps struct {
	LLM ai.LLMProvider
	// Provider is the configured LLM_PROVIDER value, reported as meta.source.
	Provider string
	Bookings BookingResolver
	Geocoder maps.Geocoder
	Weather  Forecaster
	Search   WebSearcher
	Timeouts Timeouts
}

// PlanRequest is a resolved structured-plan request.
type PlanRequest struct {
	FreeText    string
	UserID      string
	Booking     *booking.Context
	Preferences booking.Preferences
}

// TripPlanner orchestrates booking resolution, enrichment, the LLM and the plan normalizer.
type TripPlanner struct {
	deps PlannerDeps
	log  *zap.Logger
}

// NewTripPlanner creates a TripPlanner with initialized dependencies.
func NewTripPlanner(deps PlannerDeps, log *zap.Logger) *TripPlanner {
	return &TripPlanner{deps: deps, log: log.With(zap.String("component", "planner"))}
}

// enrichment is everything gathered for the prompt besides the request itself.
type enrichment struct {
	location maps.Location
	weather  []weather.Day
	poi      []search.Result
	events   []search.Result
	food     []search.Result
}

// Plan produces a structured itinerary. The only error is ErrNoBookingContext; every
// downstream failure degrades the plan instead.
func (p *TripPlanner) Plan(ctx context.Context, req PlanRequest) (itinerary.AgentOutput, error) {
	bc, ok := p.resolveBooking(ctx, req)
	if !ok {
		return itinerary.AgentOutput{}, ErrNoBookingContext
	}

	enr := p.enrich(ctx, bc, req.Preferences)

	var out itinerary.AgentOutput
	if p.deps.LLM == nil {
		metrics.PlanFallbacks.WithLabelValues(metrics.FallbackStub).Inc()
		out = itinerary.StubPlan(bc)
	} else {
		raw := p.generate(ctx, p.buildPrompt(bc, req, enr))
		var injected bool
		out, injected = itinerary.EnsureItinerary(itinerary.Normalize(raw, bc), bc)
		if injected {
			metrics.PlanFallbacks.WithLabelValues(metrics.FallbackSyntheticDay).Inc()
		}
	}

	out.Meta["canonical_location"] = enr.location.Label
	out.Meta["geo"] = map[string]any{"lat": enr.location.Lat, "lon": enr.location.Lon}
	out.Meta["source"] = "agent-" + p.deps.Provider

	if err := itinerary.ValidateOutput(out); err != nil {
		metrics.SchemaViolations.Inc()
		p.log.Warn("plan failed output schema", zap.Error(err))
	}
	return out, nil
}

// resolveBooking prefers the user's stored booking over the explicit one.
func (p *TripPlanner) resolveBooking(ctx context.Context, req PlanRequest) (booking.Context, bool) {
	if strings.TrimSpace(req.UserID) != "" && p.deps.Bookings != nil {
		if bc, ok := p.deps.Bookings.LatestForUser(ctx, req.UserID); ok {
			return bc, true
		}
	}
	if req.Booking != nil {
		return *req.Booking, true
	}
	return booking.Context{}, false
}

func (p *TripPlanner) enrich(ctx context.Context, bc booking.Context, prefs booking.Preferences) enrichment {
	enr := enrichment{
		location: maps.Unresolved(bc.Location),
		weather:  []weather.Day{},
		poi:      []search.Result{},
		events:   []search.Result{},
		food:     []search.Result{},
	}

	if p.deps.Geocoder != nil {
		gctx, cancel := withTimeout(ctx, p.deps.Timeouts.Geo)
		loc, err := p.deps.Geocoder.Geocode(gctx, bc.Location)
		cancel()
		if err != nil {
			p.enrichmentFailed("geocode", err)
			loc = maps.Unresolved(bc.Location)
		}
		enr.location = loc
	}

	if p.deps.Weather != nil && enr.location.HasCoordinates() {
		wctx, cancel := withTimeout(ctx, p.deps.Timeouts.Geo)
		days, err := p.deps.Weather.Daily(wctx, *enr.location.Lat, *enr.location.Lon, bc.Start(), bc.End())
		cancel()
		if err != nil {
			p.enrichmentFailed("weather", err)
		} else if days != nil {
			enr.weather = days
		}
	}

	if p.deps.Search != nil {
		poiTopic := "top attractions"
		if len(prefs.Interests) > 0 {
			poiTopic = strings.Join(prefs.Interests, ", ")
		}
		foodTopic := "restaurant"
		if len(prefs.Dietary) > 0 {
			foodTopic = strings.Join(prefs.Dietary, ",")
		}
		enr.poi = p.search(ctx, poiTopic+" points of interest", bc)
		enr.events = p.search(ctx, "family friendly events", bc)
		enr.food = p.search(ctx, foodTopic+" restaurants", bc)
	}
	return enr
}

func (p *TripPlanner) search(ctx context.Context, topic string, bc booking.Context) []search.Result {
	sctx, cancel := withTimeout(ctx, p.deps.Timeouts.Search)
	defer cancel()
	res, err := p.deps.Search.Search(sctx, search.Query(topic, bc.Location, bc.Start(), bc.End()))
	if err != nil {
		p.enrichmentFailed("search", err)
		return []search.Result{}
	}
	if res == nil {
		return []search.Result{}
	}
	return res
}

func (p *TripPlanner) enrichmentFailed(source string, err error) {
	metrics.EnrichmentFailures.WithLabelValues(source).Inc()
	p.log.Warn("enrichment failed", zap.String("source", source), zap.Error(err))
}

func (p *TripPlanner) buildPrompt(bc booking.Context, req PlanRequest, enr enrichment) ai.Prompt {
	user := planUserPrompt(
		mustJSON(bc),
		mustJSON(req.Preferences),
		mustJSON(map[string]any{"poi": enr.poi, "events": enr.events, "food": enr.food}),
		mustJSON(enr.weather),
		mustJSON(map[string]any{"lat": enr.location.Lat, "lon": enr.location.Lon, "canonical_location": enr.location.Label}),
		req.FreeText,
	)
	return ai.Prompt{System: planSystemPrompt, User: user, JSONMode: true}
}

// generate asks the LLM for a plan object. The first attempt runs in JSON mode with lenient
// decoding; a failure earns exactly one plain retry decoded strictly. Two failures yield {}.
func (p *TripPlanner) generate(ctx context.Context, prompt ai.Prompt) map[string]any {
	provider := p.deps.LLM.Name()

	raw, firstErr := p.attempt(ctx, prompt, ai.DecodeObject)
	if firstErr == nil {
		return raw
	}
	metrics.PlanFallbacks.WithLabelValues(metrics.FallbackRetry).Inc()
	p.log.Warn("plan generation failed, retrying without JSON mode",
		zap.String("provider", provider), zap.Error(firstErr))

	prompt.JSONMode = false
	raw, retryErr := p.attempt(ctx, prompt, ai.DecodeStrict)
	if retryErr == nil {
		return raw
	}
	metrics.PlanFallbacks.WithLabelValues(metrics.FallbackEmpty).Inc()
	p.log.Warn("plan generation retry failed, using empty plan",
		zap.String("provider", provider), zap.NamedError("first_error", firstErr), zap.Error(retryErr))
	return map[string]any{}
}

func (p *TripPlanner) attempt(ctx context.Context, prompt ai.Prompt, decode func(string) (map[string]any, error)) (map[string]any, error) {
	provider := p.deps.LLM.Name()

	lctx, cancel := withTimeout(ctx, p.deps.Timeouts.LLM)
	defer cancel()
	text, err := p.deps.LLM.Generate(lctx, prompt)
	if err != nil {
		metrics.LLMCalls.WithLabelValues(provider, "error").Inc()
		return nil, err
	}

	raw, err := decode(text)
	if err != nil {
		metrics.LLMCalls.WithLabelValues(provider, "parse_error").Inc()
		return nil, err
	}
	metrics.LLMCalls.WithLabelValues(provider, "ok").Inc()
	return raw, nil
}

// withTimeout applies d when positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%q", fmt.Sprint(v))
	}
	return string(b)
}
