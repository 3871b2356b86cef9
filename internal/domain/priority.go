package domain

import (
	"fmt"
	"math"
	"sort"
)

// Severity bounds for the documented 0–5 scale.
const (
	MinSeverity = 0.0
	MaxSeverity = 5.0
)

// DefaultSearchRadiusKm sizes the generated default area when the caller
// supplies no candidates, mirroring standard initial containment radius for a
// missing-person incident.
const DefaultSearchRadiusKm = 3.0

// Weights holds the documented scoring coefficients. They are injected at
// construction rather than hard-coded at call sites so deployments can tune
// them without touching scoring logic.
type Weights struct {
	// Severity is the score contribution per severity level (0–5 scale).
	Severity float64

	// SevereWeatherExposure scales the urgency bonus applied to an area
	// during severe weather, weighted by how exposed the area is (1 − shelter).
	// Severe weather also reduces feasible search speed, which the allocation
	// timeline reflects; here it only raises urgency.
	SevereWeatherExposure float64

	// HazardDelta is the fixed urgency delta contributed by each active
	// environmental hazard flag.
	HazardDelta map[Hazard]float64
}

// DefaultWeights returns the standard scoring table.
func DefaultWeights() Weights {
	return Weights{
		Severity:              10,
		SevereWeatherExposure: 15,
		HazardDelta: map[Hazard]float64{
			HazardWildlife:        3,
			HazardDenseVegetation: 4,
			HazardSteepTerrain:    5,
			HazardWater:           6,
			HazardExtremeCold:     6,
			HazardAvalanche:       8,
		},
	}
}

// ClampSeverity forces a severity value into the documented 0–5 range.
func ClampSeverity(s float64) float64 {
	if math.IsNaN(s) || s < MinSeverity {
		return MinSeverity
	}
	if s > MaxSeverity {
		return MaxSeverity
	}
	return s
}

// PrioritizeAreas scores the candidate areas and returns them sorted by
// descending score. The sort is stable: areas with equal scores keep their
// input order. The result is always a permutation of the input (or the single
// default area when the input is empty); no area is added or dropped.
func PrioritizeAreas(inc IncidentRecord, env EnvironmentalSnapshot, weather WeatherSnapshot, areas []SearchArea, w Weights) []SearchArea {
	if len(areas) == 0 {
		areas = []SearchArea{DefaultSearchArea(inc)}
	}

	scored := make([]SearchArea, len(areas))
	copy(scored, areas)

	severity := ClampSeverity(inc.Severity)
	for i := range scored {
		scored[i].Score, scored[i].Factors = scoreArea(scored[i], severity, env, weather, w)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored
}

// scoreArea computes one area's priority score with its contributing factors.
func scoreArea(area SearchArea, severity float64, env EnvironmentalSnapshot, weather WeatherSnapshot, w Weights) (float64, []string) {
	factors := make([]string, 0, 2+len(env.Hazards))

	score := w.Severity * severity
	factors = append(factors, fmt.Sprintf("incident severity %.1f contributes %.1f", severity, w.Severity*severity))

	if weather.Available && weather.Severe {
		exposure := 1 - clamp01(area.Shelter)
		bonus := w.SevereWeatherExposure * exposure
		score += bonus
		factors = append(factors, fmt.Sprintf("severe weather with exposure %.2f contributes %.1f; expect reduced search speed", exposure, bonus))
	}
	if !weather.Available {
		factors = append(factors, "weather unavailable, contributes 0")
	}

	for _, hazard := range env.Hazards {
		delta, ok := w.HazardDelta[hazard]
		if !ok {
			continue
		}
		score += delta
		factors = append(factors, fmt.Sprintf("hazard %s contributes %.1f", hazard, delta))
	}

	return score, factors
}

// DefaultSearchArea generates the single fallback area centered on the
// incident location when the caller supplies no candidates.
func DefaultSearchArea(inc IncidentRecord) SearchArea {
	area := SearchArea{
		ID:      generateID("area", inc.ID, inc.Location),
		Name:    fmt.Sprintf("%.0fkm radius around %s", DefaultSearchRadiusKm, inc.Location),
		SizeKm2: math.Pi * DefaultSearchRadiusKm * DefaultSearchRadiusKm,
		Shelter: 0, // unknown terrain, assume exposed
	}
	if inc.Geo != nil {
		// ~1 degree latitude ≈ 111 km; good enough for a reference box.
		d := DefaultSearchRadiusKm / 111.0
		area.Bounds = Bounds{
			MinLat: inc.Geo.Lat - d,
			MinLon: inc.Geo.Lon - d,
			MaxLat: inc.Geo.Lat + d,
			MaxLon: inc.Geo.Lon + d,
		}
	}
	return area
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
