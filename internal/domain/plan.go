package domain

import (
	"fmt"
	"time"
)

// Default communication channels, used when logistics leaves a slot empty.
const (
	DefaultPrimaryChannel   = "VHF Channel 16"
	DefaultSecondaryChannel = "Satellite phone"
	DefaultDigitalChannel   = "SARNet App"
	DefaultBackupChannel    = "Runner if digital fails"
)

// Timeline sizing constants. Search-phase estimates scale with area size;
// real sweep rates vary with terrain, so these are planning-grade figures.
const (
	BriefingMinutes    = 30
	DebriefMinutes     = 60
	MinutesPerKm2      = 20
	MinSearchPhaseMins = 60
)

// baselineSafetyProtocols apply to every mission.
var baselineSafetyProtocols = []string{
	"Team check-in every hour",
	"Emergency contact protocols in place",
	"First aid kits with each team",
}

// hazardProtocols adds one protocol per active environmental hazard flag.
var hazardProtocols = map[Hazard]string{
	HazardWildlife:        "Wildlife awareness briefings",
	HazardWater:           "Personal flotation devices near water bodies",
	HazardSteepTerrain:    "Rope and anchor teams for steep sections",
	HazardAvalanche:       "Avalanche transceivers mandatory",
	HazardExtremeCold:     "Cold exposure rotation schedule",
	HazardDenseVegetation: "Close-interval line search spacing",
}

// TimelinePhase is one ordered phase of the operational period.
type TimelinePhase struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// MissionPlan is the structured planning document returned to the caller.
// Every section is always present (possibly empty) so the output schema is
// stable across versions.
type MissionPlan struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Objectives      []string        `json:"objectives"`
	Areas           []SearchArea    `json:"areas"`
	Allocation      AllocationPlan  `json:"allocation"`
	Communications  CommsChannels   `json:"communications"`
	SafetyProtocols []string        `json:"safety_protocols"`
	Timeline        []TimelinePhase `json:"timeline"`
	MapReferences   []string        `json:"map_references"`
	Summary         string          `json:"summary,omitempty"` // advisory text, never affects structured fields
	PreparedAt      time.Time       `json:"prepared_at"`
}

// AssembleMissionPlan composes the plan document from the ranked areas and
// their allocation. Deterministic given identical inputs aside from the
// advisory summary, which the orchestrator attaches separately.
func AssembleMissionPlan(inc IncidentRecord, env EnvironmentalSnapshot, channels CommsChannels, ranked []SearchArea, alloc AllocationPlan, mapRefs []string) MissionPlan {
	plan := MissionPlan{
		ID:              generateID("plan", inc.ID, inc.Type, inc.Location),
		Name:            fmt.Sprintf("SAR Mission - %s - %s", inc.Type, inc.Location),
		Objectives:      buildObjectives(inc),
		Areas:           ranked,
		Allocation:      alloc,
		Communications:  resolveChannels(channels),
		SafetyProtocols: buildSafetyProtocols(env),
		Timeline:        buildTimeline(ranked),
		MapReferences:   []string{},
		PreparedAt:      clock.Now().UTC(),
	}
	if len(mapRefs) > 0 {
		plan.MapReferences = mapRefs
	}
	if plan.Areas == nil {
		plan.Areas = []SearchArea{}
	}
	if plan.Allocation.Assignments == nil {
		plan.Allocation.Assignments = []AreaAllocation{}
	}
	return plan
}

func buildObjectives(inc IncidentRecord) []string {
	objectives := make([]string, 0, 3)
	if inc.Objective != "" {
		objectives = append(objectives, inc.Objective)
	}
	objectives = append(objectives,
		"Search ranked areas in priority order",
		"Document coverage and adjust each operational period",
	)
	return objectives
}

func buildSafetyProtocols(env EnvironmentalSnapshot) []string {
	protocols := make([]string, 0, len(baselineSafetyProtocols)+len(env.Hazards))
	protocols = append(protocols, baselineSafetyProtocols...)
	for _, hazard := range env.Hazards {
		if p, ok := hazardProtocols[hazard]; ok {
			protocols = append(protocols, p)
		}
	}
	return protocols
}

// buildTimeline produces briefing, one search phase per ranked area, and
// debrief. Phase durations scale with area size.
func buildTimeline(ranked []SearchArea) []TimelinePhase {
	timeline := make([]TimelinePhase, 0, len(ranked)+2)
	timeline = append(timeline, TimelinePhase{Name: "Briefing", DurationMinutes: BriefingMinutes})
	for _, area := range ranked {
		mins := int(area.SizeKm2 * MinutesPerKm2)
		if mins < MinSearchPhaseMins {
			mins = MinSearchPhaseMins
		}
		timeline = append(timeline, TimelinePhase{
			Name:            fmt.Sprintf("Search %s", area.Name),
			DurationMinutes: mins,
		})
	}
	timeline = append(timeline, TimelinePhase{Name: "Debrief", DurationMinutes: DebriefMinutes})
	return timeline
}

func resolveChannels(ch CommsChannels) CommsChannels {
	if ch.Primary == "" {
		ch.Primary = DefaultPrimaryChannel
	}
	if ch.Secondary == "" {
		ch.Secondary = DefaultSecondaryChannel
	}
	if ch.Digital == "" {
		ch.Digital = DefaultDigitalChannel
	}
	if ch.Backup == "" {
		ch.Backup = DefaultBackupChannel
	}
	return ch
}
