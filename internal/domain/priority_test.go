package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIncident(severity float64) IncidentRecord {
	return IncidentRecord{
		ID:       "inc-1",
		Type:     "missing person",
		Location: "Crystal Cove State Park, CA",
		Severity: severity,
	}
}

func availableWeather(severe bool) WeatherSnapshot {
	return WeatherSnapshot{TempC: 12, WindKph: 20, Available: true, Severe: severe}
}

func TestPrioritizeAreas(t *testing.T) {
	weights := DefaultWeights()

	t.Run("empty input yields single default area", func(t *testing.T) {
		got := PrioritizeAreas(testIncident(3), EnvironmentalSnapshot{}, availableWeather(false), nil, weights)

		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].Rank)
		assert.Contains(t, got[0].Name, "Crystal Cove State Park, CA")
		assert.Greater(t, got[0].SizeKm2, 0.0)
		assert.NotEmpty(t, got[0].Factors)
	})

	t.Run("output is a permutation of input", func(t *testing.T) {
		areas := []SearchArea{
			{ID: "a", Shelter: 0.2},
			{ID: "b", Shelter: 0.9},
			{ID: "c", Shelter: 0.5},
		}
		got := PrioritizeAreas(testIncident(4), EnvironmentalSnapshot{}, availableWeather(true), areas, weights)

		require.Len(t, got, 3)
		ids := map[string]bool{}
		for _, a := range got {
			ids[a.ID] = true
		}
		assert.True(t, ids["a"] && ids["b"] && ids["c"])
	})

	t.Run("stable sort preserves input order on ties", func(t *testing.T) {
		areas := []SearchArea{
			{ID: "A", Shelter: 0.5},
			{ID: "B", Shelter: 0.5},
		}
		got := PrioritizeAreas(testIncident(2), EnvironmentalSnapshot{}, availableWeather(true), areas, weights)

		require.Len(t, got, 2)
		assert.Equal(t, got[0].Score, got[1].Score)
		assert.Equal(t, "A", got[0].ID)
		assert.Equal(t, "B", got[1].ID)
	})

	t.Run("severe weather raises exposed areas above sheltered ones", func(t *testing.T) {
		areas := []SearchArea{
			{ID: "sheltered", Shelter: 1.0},
			{ID: "exposed", Shelter: 0.0},
		}
		got := PrioritizeAreas(testIncident(3), EnvironmentalSnapshot{}, availableWeather(true), areas, weights)

		assert.Equal(t, "exposed", got[0].ID)
		assert.Greater(t, got[0].Score, got[1].Score)
	})

	t.Run("unavailable weather contributes zero", func(t *testing.T) {
		areas := []SearchArea{
			{ID: "sheltered", Shelter: 1.0},
			{ID: "exposed", Shelter: 0.0},
		}
		got := PrioritizeAreas(testIncident(3), EnvironmentalSnapshot{}, UnavailableWeather(), areas, weights)

		// No weather term: both areas score identically and keep input order.
		assert.Equal(t, got[0].Score, got[1].Score)
		assert.Equal(t, "sheltered", got[0].ID)
	})

	t.Run("hazard flags add documented deltas", func(t *testing.T) {
		env := EnvironmentalSnapshot{Hazards: []Hazard{HazardWater, HazardWildlife}}
		base := PrioritizeAreas(testIncident(3), EnvironmentalSnapshot{}, UnavailableWeather(), []SearchArea{{ID: "a"}}, weights)
		withHazards := PrioritizeAreas(testIncident(3), env, UnavailableWeather(), []SearchArea{{ID: "a"}}, weights)

		expected := base[0].Score + weights.HazardDelta[HazardWater] + weights.HazardDelta[HazardWildlife]
		assert.InDelta(t, expected, withHazards[0].Score, 1e-9)
	})

	t.Run("ranks assigned in order", func(t *testing.T) {
		areas := []SearchArea{
			{ID: "low", Shelter: 0.9},
			{ID: "high", Shelter: 0.1},
		}
		got := PrioritizeAreas(testIncident(5), EnvironmentalSnapshot{}, availableWeather(true), areas, weights)

		assert.Equal(t, 1, got[0].Rank)
		assert.Equal(t, 2, got[1].Rank)
	})
}

func TestPrioritizeAreas_MonotonicInSeverity(t *testing.T) {
	weights := DefaultWeights()
	areas := []SearchArea{{ID: "a", Shelter: 0.3}}

	prev := -1.0
	for severity := 0.0; severity <= 5.0; severity += 0.5 {
		got := PrioritizeAreas(testIncident(severity), EnvironmentalSnapshot{}, availableWeather(false), areas, weights)
		require.Len(t, got, 1)
		assert.GreaterOrEqual(t, got[0].Score, prev,
			fmt.Sprintf("score must not decrease as severity rises (severity=%.1f)", severity))
		prev = got[0].Score
	}
}

func TestClampSeverity(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"in range", 3.5, 3.5},
		{"negative", -2, 0},
		{"above max", 99, 5},
		{"zero", 0, 0},
		{"max", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampSeverity(tt.input))
		})
	}
}

func TestDefaultSearchArea(t *testing.T) {
	t.Run("with coordinates", func(t *testing.T) {
		inc := testIncident(3)
		inc.Geo = &Geo{Lat: 33.57, Lon: -117.84}
		area := DefaultSearchArea(inc)

		assert.False(t, area.Bounds.IsZero())
		assert.InDelta(t, 33.57, area.Bounds.Center().Lat, 1e-9)
		assert.InDelta(t, -117.84, area.Bounds.Center().Lon, 1e-9)
	})

	t.Run("without coordinates", func(t *testing.T) {
		area := DefaultSearchArea(testIncident(3))

		assert.True(t, area.Bounds.IsZero())
		assert.NotEmpty(t, area.ID)
	})

	t.Run("deterministic ID", func(t *testing.T) {
		a1 := DefaultSearchArea(testIncident(3))
		a2 := DefaultSearchArea(testIncident(3))
		assert.Equal(t, a1.ID, a2.ID)
	})
}
