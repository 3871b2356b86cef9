package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
// Core planning components never read these directly; adapters are
// constructed from them at startup.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// OpenWeatherMap weather collaborator.
	WeatherAPIKey  string
	WeatherEnabled bool
	WeatherTimeout time.Duration

	// OpenAI typonym/summarization collaborator.
	OpenAIAPIKey      string
	OpenAIEnabled     bool
	OpenAIModel       string
	OpenAITemperature float64
	OpenAIMaxTokens   int
	OpenAITimeout     time.Duration

	// Mapbox static-map collaborator.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int

	// Kafka plan-audit publisher.
	KafkaBrokers    []string
	KafkaPlansTopic string
	KafkaEnabled    bool

	// Planner tunables.
	MaxLocationVariants int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	weatherTimeout, err := parseDuration("WEATHER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	mapboxTimeout, err := parseDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	openaiTimeout, err := parseDuration("OPENAI_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	weatherKey := os.Getenv("OWM_API_KEY")
	openaiKey := os.Getenv("OPENAI_API_KEY")
	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		WeatherAPIKey:  weatherKey,
		WeatherEnabled: enabledFlag("WEATHER_ENABLED", weatherKey != ""),
		WeatherTimeout: weatherTimeout,

		OpenAIAPIKey:      openaiKey,
		OpenAIEnabled:     enabledFlag("OPENAI_ENABLED", openaiKey != ""),
		OpenAIModel:       envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAITemperature: parseFloatOrDefault("OPENAI_TEMPERATURE", 0.4),
		OpenAIMaxTokens:   parsePositiveIntOrDefault("OPENAI_MAX_TOKENS", 400),
		OpenAITimeout:     openaiTimeout,

		MapboxToken:     mapboxToken,
		MapboxEnabled:   enabledFlag("MAPBOX_ENABLED", mapboxToken != ""),
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parsePositiveIntOrDefault("MAPBOX_CACHE_SIZE", 1000),

		KafkaBrokers:    brokers,
		KafkaPlansTopic: envOrDefault("KAFKA_PLANS_TOPIC", "mission-plans"),
		KafkaEnabled:    enabledFlag("KAFKA_ENABLED", len(brokers) > 0),

		MaxLocationVariants: parsePositiveIntOrDefault("MAX_LOCATION_VARIANTS", 5),
	}

	if cfg.WeatherEnabled && cfg.WeatherAPIKey == "" {
		return nil, errors.New("WEATHER_ENABLED is true but OWM_API_KEY is not set")
	}
	if cfg.OpenAIEnabled && cfg.OpenAIAPIKey == "" {
		return nil, errors.New("OPENAI_ENABLED is true but OPENAI_API_KEY is not set")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaPlansTopic == "" {
		return nil, errors.New("KAFKA_PLANS_TOPIC is required when Kafka is enabled")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// enabledFlag reads a boolean env var, falling back to whether the feature's
// credential is present.
func enabledFlag(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true"
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %s", key, d)
	}
	return d, nil
}

func parsePositiveIntOrDefault(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func parseFloatOrDefault(key string, fallback float64) float64 {
	if s := os.Getenv(key); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return fallback
}

func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if b := strings.TrimSpace(p); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
