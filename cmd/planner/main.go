package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/sar-mission-planner/internal/adapter/httpapi"
	kafkaadapter "github.com/couchcryptid/sar-mission-planner/internal/adapter/kafka"
	"github.com/couchcryptid/sar-mission-planner/internal/adapter/mapbox"
	openaiadapter "github.com/couchcryptid/sar-mission-planner/internal/adapter/openai"
	"github.com/couchcryptid/sar-mission-planner/internal/adapter/openweather"
	"github.com/couchcryptid/sar-mission-planner/internal/config"
	"github.com/couchcryptid/sar-mission-planner/internal/observability"
	"github.com/couchcryptid/sar-mission-planner/internal/planner"
)

func main() {
	_ = godotenv.Load() // loads .env if present; real env always wins

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Weather collaborator (feature-flagged via WEATHER_ENABLED / OWM_API_KEY).
	var provider planner.WeatherProvider
	if cfg.WeatherEnabled {
		provider = openweather.NewClient(cfg.WeatherAPIKey, cfg.WeatherTimeout, logger)
		logger.Info("weather lookups enabled", "timeout", cfg.WeatherTimeout)
	} else {
		logger.Info("weather lookups disabled, plans will use neutral weather")
	}
	gateway := planner.NewWeatherGateway(provider, cfg.WeatherTimeout, logger, metrics)

	opts := planner.Options{MaxVariants: cfg.MaxLocationVariants}

	if cfg.OpenAIEnabled {
		llm := openaiadapter.NewClient(
			cfg.OpenAIAPIKey, cfg.OpenAIModel,
			float32(cfg.OpenAITemperature), cfg.OpenAIMaxTokens, cfg.OpenAITimeout,
			logger, metrics,
		)
		opts.Variants = llm
		opts.Summarizer = llm
		logger.Info("openai collaborator enabled", "model", cfg.OpenAIModel)
	} else {
		logger.Info("openai collaborator disabled, using fallback typonyms, no summaries")
	}

	if cfg.MapboxEnabled {
		opts.Maps = mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, cfg.MapboxCacheSize, logger, metrics.GeocodeCache)
		logger.Info("mapbox map references enabled", "cache_size", cfg.MapboxCacheSize)
	} else {
		logger.Info("mapbox map references disabled")
	}

	var auditWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		auditWriter = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaPlansTopic, logger)
		opts.Publisher = auditWriter
		logger.Info("plan audit publishing enabled", "topic", cfg.KafkaPlansTopic)
	}

	orch := planner.New(gateway, opts, logger, metrics)
	srv := httpapi.NewServer(cfg.HTTPAddr, orch, orch, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	metrics.PlannerReady.Set(1)

	<-ctx.Done()
	logger.Info("shutting down")
	metrics.PlannerReady.Set(0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if auditWriter != nil {
		if err := auditWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
