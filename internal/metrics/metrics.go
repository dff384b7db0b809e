// README: Prometheus collectors for request, LLM and degradation accounting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fallback kinds recorded by PlanFallbacks.
const (
	FallbackRetry        = "retry"
	FallbackEmpty        = "empty"
	FallbackStub         = "stub"
	FallbackSyntheticDay = "synthetic_day"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripmate_http_requests_total",
			Help: "HTTP requests served, by route and status code",
		},
		[]string{"route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripmate_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{0.05, 0.25, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"route"},
	)

	LLMCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripmate_llm_calls_total",
			Help: "LLM invocations by provider and outcome (ok, empty, error, parse_error)",
		},
		[]string{"provider", "outcome"},
	)

	PlanFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripmate_plan_fallbacks_total",
			Help: "Degraded plan generations by kind",
		},
		[]string{"kind"},
	)

	EnrichmentFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripmate_enrichment_failures_total",
			Help: "Failed enrichment lookups by source (booking, geocode, weather, search)",
		},
		[]string{"source"},
	)

	SchemaViolations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tripmate_schema_violations_total",
			Help: "Normalized plans that failed the output JSON schema",
		},
	)
)
