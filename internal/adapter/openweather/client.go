// Package openweather adapts the OpenWeatherMap current-conditions API to the
// planner's WeatherProvider interface. Pure adapter: no planning logic.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/sar-mission-planner/internal/domain"
)

// Client implements planner.WeatherProvider using the OpenWeatherMap
// /data/2.5/weather endpoint.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an OpenWeatherMap client.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		logger:  logger,
	}
}

// Lookup fetches current conditions for a place name. A 404 means the
// provider does not recognize the name; the gateway moves to the next
// candidate.
func (c *Client) Lookup(ctx context.Context, name string) (domain.WeatherSnapshot, error) {
	params := url.Values{
		"q":     {name},
		"appid": {c.apiKey},
		"units": {"metric"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.WeatherSnapshot{}, fmt.Errorf("location %q not found", name)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.WeatherSnapshot{}, fmt.Errorf("openweathermap API error: status %d: %s", resp.StatusCode, body)
	}

	var owm response
	if err := json.NewDecoder(resp.Body).Decode(&owm); err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("decode response: %w", err)
	}

	return mapResponse(owm), nil
}

// mapResponse converts provider units to the domain snapshot: wind m/s → km/h,
// visibility meters → km. Severity derives from the documented thresholds.
func mapResponse(owm response) domain.WeatherSnapshot {
	snapshot := domain.WeatherSnapshot{
		TempC:        owm.Main.Temp,
		WindKph:      owm.Wind.Speed * 3.6,
		WindDegrees:  owm.Wind.Deg,
		PrecipMMHr:   owm.Rain.OneHour + owm.Snow.OneHour,
		VisibilityKm: owm.Visibility / 1000,
		Available:    true,
	}
	if len(owm.Weather) > 0 {
		snapshot.Conditions = owm.Weather[0].Main
	}
	snapshot.Severe = domain.SevereConditions(snapshot.WindKph, snapshot.PrecipMMHr, snapshot.TempC, snapshot.VisibilityKm)
	return snapshot
}

// OpenWeatherMap API response types.

type response struct {
	Weather    []condition `json:"weather"`
	Main       mainBlock   `json:"main"`
	Wind       windBlock   `json:"wind"`
	Rain       precipBlock `json:"rain"`
	Snow       precipBlock `json:"snow"`
	Visibility float64     `json:"visibility"` // meters
}

type condition struct {
	Main string `json:"main"`
}

type mainBlock struct {
	Temp float64 `json:"temp"`
}

type windBlock struct {
	Speed float64 `json:"speed"` // m/s in metric mode
	Deg   float64 `json:"deg"`
}

type precipBlock struct {
	OneHour float64 `json:"1h"`
}
