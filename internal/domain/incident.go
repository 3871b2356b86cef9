package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds is an axis-aligned geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// IsZero reports whether the box is unset.
func (b Bounds) IsZero() bool {
	return b.MinLat == 0 && b.MinLon == 0 && b.MaxLat == 0 && b.MaxLon == 0
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Geo {
	return Geo{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lon: (b.MinLon + b.MaxLon) / 2,
	}
}

// IncidentRecord is the Incident Commander's report that seeds a planning
// run. Immutable once ingested for a request.
type IncidentRecord struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`     // e.g. "missing person"
	Location   string    `json:"location"` // free-text place name
	Geo        *Geo      `json:"geo,omitempty"`
	ReportedAt time.Time `json:"reported_at"`
	Severity   float64   `json:"severity"` // 0–5 scale, clamped before scoring
	Objective  string    `json:"objective,omitempty"`
}

// Hazard is an environmental hazard flag. Each active flag contributes a
// fixed urgency delta during scoring (see Weights.HazardDelta) and may add a
// safety protocol to the mission plan.
type Hazard string

const (
	HazardWildlife        Hazard = "wildlife"
	HazardSteepTerrain    Hazard = "steep_terrain"
	HazardWater           Hazard = "water"
	HazardAvalanche       Hazard = "avalanche"
	HazardExtremeCold     Hazard = "extreme_cold"
	HazardDenseVegetation Hazard = "dense_vegetation"
)

// EnvironmentalSnapshot describes field conditions around the incident.
// Supplied by the caller; the planner never fetches it.
type EnvironmentalSnapshot struct {
	Terrain      string   `json:"terrain"`
	VisibilityKm float64  `json:"visibility_km"`
	Hazards      []Hazard `json:"hazards,omitempty"`
}

// Resource describes one resource type in the logistics inventory.
type Resource struct {
	Available   int     `json:"available"`
	CoverageKm2 float64 `json:"coverage_km2"` // searchable area per unit per operational period
}

// CommsChannels lists the communication channels the Logistics Section has
// provisioned. Empty fields fall back to documented defaults during plan
// assembly.
type CommsChannels struct {
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
	Digital   string `json:"digital,omitempty"`
	Backup    string `json:"backup,omitempty"`
}

// LogisticsInventory maps resource-type names to availability and capability.
type LogisticsInventory struct {
	Resources map[string]Resource `json:"resources"`
	Channels  CommsChannels       `json:"channels"`
}

// SearchArea is a bounded region considered for search effort. Score, Rank,
// and Factors are assigned by PrioritizeAreas.
type SearchArea struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Bounds  Bounds   `json:"bounds"`
	SizeKm2 float64  `json:"size_km2"`
	Shelter float64  `json:"shelter"` // 0 (fully exposed) to 1 (fully sheltered)
	Score   float64  `json:"score"`
	Rank    int      `json:"rank"`
	Factors []string `json:"factors"`
}

// ValidateIncident checks the fields every planning run depends on.
func ValidateIncident(inc IncidentRecord) error {
	if inc.ID == "" {
		return &ValidationError{Field: "incident.id", Reason: "required"}
	}
	if inc.Type == "" {
		return &ValidationError{Field: "incident.type", Reason: "required"}
	}
	if inc.Location == "" {
		return &ValidationError{Field: "incident.location", Reason: "required"}
	}
	return nil
}

// ValidateInventory rejects negative counts and coverage before any
// allocation happens.
func ValidateInventory(inv LogisticsInventory) error {
	for name, res := range inv.Resources {
		if res.Available < 0 {
			return &ValidationError{
				Field:  fmt.Sprintf("logistics.resources[%s].available", name),
				Reason: "must not be negative",
			}
		}
		if res.CoverageKm2 < 0 {
			return &ValidationError{
				Field:  fmt.Sprintf("logistics.resources[%s].coverage_km2", name),
				Reason: "must not be negative",
			}
		}
	}
	return nil
}

// generateID produces a deterministic ID from the given key fields.
// Deterministic IDs keep plan documents byte-identical across reruns of the
// same request.
func generateID(kind string, parts ...string) string {
	input := kind
	for _, p := range parts {
		input += "|" + p
	}
	hash := sha256.Sum256([]byte(input))
	return kind + "-" + hex.EncodeToString(hash[:8])
}
