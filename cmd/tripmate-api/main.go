// README: Entry point; loads config, wires enrichment clients, LLM backends and services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripmate/internal/ai"
	"tripmate/internal/config"
	httptransport "tripmate/internal/http"
	"tripmate/internal/infra"
	"tripmate/internal/logger"
	"tripmate/internal/maps"
	"tripmate/internal/modules/booking"
	"tripmate/internal/search"
	"tripmate/internal/service"
	"tripmate/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = lg.Sync() }()
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := service.PlannerDeps{
		Provider: cfg.LLM.Provider,
		Weather:  weather.NewClient(cfg.Geo.ForecastBaseURL, cfg.Geo.Timeout),
		Search:   search.NewTavily(cfg.Search.TavilyAPIKey, cfg.Search.BaseURL, cfg.Search.MaxResults, cfg.Search.Timeout),
		Geocoder: newGeocoder(cfg.Geo, lg),
		Timeouts: service.Timeouts{
			LLM:    cfg.LLM.Timeout,
			Geo:    cfg.Geo.Timeout,
			Search: cfg.Search.Timeout,
		},
	}

	db, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		lg.Warn("bookings database unavailable; stored bookings disabled", zap.Error(err))
	} else {
		defer db.Close()
		deps.Bookings = booking.NewService(booking.NewStore(db), lg)
	}

	planLLM := newLLM(ctx, cfg.LLM, cfg.LLM.Provider, cfg.LLM.Model, lg)
	defer closeLLM(planLLM)
	deps.LLM = planLLM

	chatLLM := newLLM(ctx, cfg.LLM, cfg.LLM.ChatProvider, cfg.LLM.ChatModel, lg)
	defer closeLLM(chatLLM)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Planner:     service.NewTripPlanner(deps, lg),
		Concierge:   service.NewConcierge(chatLLM, cfg.LLM.SystemPrompt, cfg.LLM.Timeout, lg),
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Log:         lg,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("shutdown", zap.Error(err))
		}
	}()

	lg.Info("listening",
		zap.String("addr", cfg.HTTP.Addr),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("chat_provider", cfg.LLM.ChatProvider),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Fatal("server", zap.Error(err))
	}
}

// newGeocoder uses Google when a Maps key is configured and Open-Meteo otherwise.
func newGeocoder(cfg config.GeoConfig, lg *zap.Logger) maps.Geocoder {
	if cfg.GoogleMapsAPIKey != "" {
		g, err := maps.NewGoogleGeocoder(cfg.GoogleMapsAPIKey)
		if err == nil {
			return g
		}
		lg.Warn("google geocoder init failed; using open-meteo", zap.Error(err))
	}
	return maps.NewOpenMeteoGeocoder(cfg.GeocodingBaseURL, cfg.Timeout)
}

// newLLM returns nil when the backend is disabled or cannot be built.
func newLLM(ctx context.Context, cfg config.LLMConfig, provider, model string, lg *zap.Logger) ai.LLMProvider {
	p, err := ai.NewProvider(ctx, cfg, provider, model)
	if err != nil {
		if !errors.Is(err, ai.ErrNoProvider) {
			lg.Warn("llm init failed", zap.String("provider", provider), zap.Error(err))
		}
		return nil
	}
	return p
}

func closeLLM(p ai.LLMProvider) {
	if c, ok := p.(io.Closer); ok {
		_ = c.Close()
	}
}
