package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"tripmate/internal/ai"
	"tripmate/internal/config"
	"tripmate/internal/logger"
	"tripmate/internal/maps"
	"tripmate/internal/modules/booking"
	"tripmate/internal/search"
	"tripmate/internal/service"
	"tripmate/internal/weather"
)

func main() {
	location := flag.String("location", "Lisbon, Portugal", "trip destination")
	start := flag.String("start", "2025-09-10", "check-in date (YYYY-MM-DD)")
	end := flag.String("end", "2025-09-12", "check-out date (YYYY-MM-DD)")
	freeText := flag.String("text", "", "free-text wishes")
	chat := flag.String("chat", "", "ask the concierge instead of building a structured plan")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg := logger.New(cfg.Log.Level, "console")
	defer func() { _ = lg.Sync() }()

	ctx := context.Background()

	if *chat != "" {
		llm, err := ai.NewProvider(ctx, cfg.LLM, cfg.LLM.ChatProvider, cfg.LLM.ChatModel)
		if err != nil {
			log.Fatalf("chat backend: %v", err)
		}
		reply, err := service.NewConcierge(llm, cfg.LLM.SystemPrompt, cfg.LLM.Timeout, lg).Reply(ctx, *chat, nil)
		if err != nil {
			log.Fatalf("concierge: %v", err)
		}
		fmt.Println(reply)
		return
	}

	bc, err := booking.Input{Location: *location, StartDate: *start, EndDate: *end}.Context()
	if err != nil {
		log.Fatalf("booking: %v", err)
	}

	deps := service.PlannerDeps{
		Provider: cfg.LLM.Provider,
		Geocoder: maps.NewOpenMeteoGeocoder(cfg.Geo.GeocodingBaseURL, cfg.Geo.Timeout),
		Weather:  weather.NewClient(cfg.Geo.ForecastBaseURL, cfg.Geo.Timeout),
		Search:   search.NewTavily(cfg.Search.TavilyAPIKey, cfg.Search.BaseURL, cfg.Search.MaxResults, cfg.Search.Timeout),
		Timeouts: service.Timeouts{LLM: cfg.LLM.Timeout, Geo: cfg.Geo.Timeout, Search: cfg.Search.Timeout},
	}
	if llm, err := ai.NewProvider(ctx, cfg.LLM, cfg.LLM.Provider, cfg.LLM.Model); err == nil {
		deps.LLM = llm
	} else {
		lg.Warn("no planning backend; serving stub plan", zap.Error(err))
	}

	out, err := service.NewTripPlanner(deps, lg).Plan(ctx, service.PlanRequest{
		FreeText:    *freeText,
		Booking:     &bc,
		Preferences: booking.DefaultPreferences(),
	})
	if err != nil {
		log.Fatalf("plan: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
}
