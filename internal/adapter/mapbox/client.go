// Package mapbox builds static-map references for search areas using the
// Mapbox Geocoding and Static Images APIs.
package mapbox

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

// Static image rendering parameters.
const (
	staticStyle  = "mapbox/outdoors-v12"
	staticWidth  = 600
	staticHeight = 400
	staticZoom   = 12
)

// geocodeResult is the subset of geocoding data map composition needs.
type geocodeResult struct {
	Lat   float64
	Lon   float64
	Found bool
}

// geocoder resolves a place name to coordinates. Satisfied by Client itself
// and by the LRU cache decorator wrapped around it.
type geocoder interface {
	forwardGeocode(ctx context.Context, name string) (geocodeResult, error)
}

// Client implements planner.MapReferenceBuilder. It centers the image on the
// area bounds when given, falling back to forward-geocoding the location name.
type Client struct {
	token      string
	httpClient *http.Client
	geocodeURL string
	staticURL  string
	geocoder   geocoder
	logger     *slog.Logger
}

// NewClient creates a Mapbox map-reference client with an LRU geocode cache
// of the given size.
func NewClient(token string, timeout time.Duration, cacheSize int, logger *slog.Logger, cacheMetrics CacheMetrics) *Client {
	c := &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		geocodeURL: "https://api.mapbox.com/geocoding/v5/mapbox.places",
		staticURL:  "https://api.mapbox.com/styles/v1",
		logger:     logger,
	}
	c.geocoder = newCachedGeocoder(c, cacheSize, cacheMetrics)
	return c
}

// BuildURL produces a static-map URL for a search area. The bounds center is
// preferred; zero bounds fall back to geocoding the location name. Failures
// surface as errors for the orchestrator to degrade on.
func (c *Client) BuildURL(ctx context.Context, location string, bounds domain.Bounds) (string, error) {
	center, err := c.resolveCenter(ctx, location, bounds)
	if err != nil {
		return "", err
	}
	return c.composeStaticURL(center), nil
}

func (c *Client) resolveCenter(ctx context.Context, location string, bounds domain.Bounds) (domain.Geo, error) {
	if !bounds.IsZero() {
		return bounds.Center(), nil
	}

	result, err := c.geocoder.forwardGeocode(ctx, location)
	if err != nil {
		return domain.Geo{}, err
	}
	if !result.Found {
		return domain.Geo{}, fmt.Errorf("location %q could not be geocoded", location)
	}
	return domain.Geo{Lat: result.Lat, Lon: result.Lon}, nil
}

// composeStaticURL renders a Static Images API URL with a pin on the center.
func (c *Client) composeStaticURL(center domain.Geo) string {
	pin := fmt.Sprintf("pin-l+f44(%.6f,%.6f)", center.Lon, center.Lat)
	path := fmt.Sprintf("%s/%s/static/%s/%.6f,%.6f,%d/%dx%d",
		c.staticURL, staticStyle, url.PathEscape(pin),
		center.Lon, center.Lat, staticZoom,
		staticWidth, staticHeight,
	)
	params := url.Values{"access_token": {c.token}}
	return path + "?" + params.Encode()
}

// forwardGeocode resolves a place name via the Mapbox Geocoding API.
func (c *Client) forwardGeocode(ctx context.Context, name string) (geocodeResult, error) {
	u := fmt.Sprintf("%s/%s.json", c.geocodeURL, url.PathEscape(name))
	params := url.Values{
		"access_token": {c.token},
		"limit":        {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u+"?"+params.Encode(), nil)
	if err != nil {
		return geocodeResult{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geocodeResult{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return geocodeResult{}, fmt.Errorf("mapbox API error: status %d: %s", resp.StatusCode, body)
	}

	var mapboxResp response
	if err := json.NewDecoder(resp.Body).Decode(&mapboxResp); err != nil {
		return geocodeResult{}, fmt.Errorf("decode response: %w", err)
	}

	if len(mapboxResp.Features) == 0 {
		return geocodeResult{}, nil
	}

	f := mapboxResp.Features[0]
	result := geocodeResult{}
	if len(f.Center) == 2 {
		result.Lon = f.Center[0]
		result.Lat = f.Center[1]
		result.Found = true
	}
	return result, nil
}

// Mapbox API response types.

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	Center []float64 `json:"center"` // [lon, lat]
}
