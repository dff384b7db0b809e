// README: API gateway; builds the gin engine, wraps it in CORS and delegates to services.
package http

import (
	"net/http"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"tripmate/internal/http/handlers"
)

type ServerDeps struct {
	Planner     handlers.Planner
	Concierge   handlers.ChatResponder
	CORSOrigins []string
	Log         *zap.Logger
}

type Server struct {
	plan        *handlers.PlanHandler
	corsOrigins []string
	log         *zap.Logger
}

func NewServer(deps ServerDeps) *Server {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		plan:        handlers.NewPlanHandler(deps.Planner, deps.Concierge),
		corsOrigins: deps.CORSOrigins,
		log:         log.With(zap.String("component", "http")),
	}
}

// Routes returns the full handler chain: CORS in front of the gin router.
func (s *Server) Routes() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	}).Handler(s.router())
}
