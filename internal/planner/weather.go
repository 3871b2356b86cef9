// Package planner sequences the SAR planning pipeline: location resolution,
// weather lookup, area prioritization, resource allocation, and mission plan
// assembly.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/sar-mission-planner/internal/domain"
	"github.com/couchcryptid/sar-mission-planner/internal/observability"
)

// WeatherProvider is the external weather collaborator. A failed lookup for
// one candidate name is an error; the gateway decides what to do next.
type WeatherProvider interface {
	Lookup(ctx context.Context, name string) (domain.WeatherSnapshot, error)
}

// WeatherGateway tries candidate location names in priority order and returns
// the first successful snapshot along with which candidate produced it. It
// never returns an error: when every candidate fails it degrades to the
// unavailable sentinel so scoring proceeds with neutral weather weighting.
type WeatherGateway struct {
	provider WeatherProvider
	timeout  time.Duration // per-candidate bound; a timed-out call counts as a failure
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewWeatherGateway creates a gateway. A nil provider disables weather
// entirely; Fetch then returns the sentinel immediately.
func NewWeatherGateway(provider WeatherProvider, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *WeatherGateway {
	return &WeatherGateway{
		provider: provider,
		timeout:  timeout,
		logger:   logger,
		metrics:  metrics,
	}
}

// Fetch resolves current conditions for the first candidate that succeeds.
func (g *WeatherGateway) Fetch(ctx context.Context, candidates []string) domain.WeatherReport {
	if g.provider == nil || len(candidates) == 0 {
		return domain.UnavailableWeatherReport()
	}

	for i, name := range candidates {
		snapshot, err := g.lookupOne(ctx, name)
		if err != nil {
			g.metrics.WeatherLookups.WithLabelValues("failure").Inc()
			g.logger.Warn("weather lookup failed, trying next candidate",
				"candidate", name,
				"candidate_index", i,
				"error", err,
			)
			continue
		}

		g.metrics.WeatherLookups.WithLabelValues("success").Inc()
		report := domain.WeatherReport{
			Snapshot:       snapshot,
			UsedName:       name,
			CandidateIndex: i,
		}
		if i > 0 {
			report.Note = fmt.Sprintf("original name %q was not found; conditions are for variant %q", candidates[0], name)
		}
		return report
	}

	g.metrics.WeatherLookups.WithLabelValues("unavailable").Inc()
	g.logger.Warn("all weather candidates failed, proceeding with neutral weather",
		"candidates", len(candidates),
	)
	return domain.UnavailableWeatherReport()
}

func (g *WeatherGateway) lookupOne(ctx context.Context, name string) (domain.WeatherSnapshot, error) {
	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	return g.provider.Lookup(callCtx, name)
}
