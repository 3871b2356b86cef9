package domain

import (
	"fmt"
	"sort"
)

// AreaAllocation holds the units assigned to one search area, keyed by
// resource-type name. Exhausted types carry an explicit zero entry so the
// output schema stays stable for downstream consumers.
type AreaAllocation struct {
	AreaID string         `json:"area_id"`
	Units  map[string]int `json:"units"`
}

// AllocationPlan assigns inventory to ranked areas, ordered by rank.
type AllocationPlan struct {
	Assignments []AreaAllocation `json:"assignments"`
}

// AllocateResources distributes the inventory across areas in rank order.
// Each area requests its ideal coverage per resource type and receives
// min(ideal, remaining). Every ranked area appears in the output even when
// nothing is left to assign. Returns ErrInvariantViolation if the plan would
// exceed inventory for any type; that is a planner bug, not an input error.
func AllocateResources(ranked []SearchArea, inv LogisticsInventory) (AllocationPlan, error) {
	types := sortedResourceTypes(inv)

	remaining := make(map[string]int, len(types))
	for _, name := range types {
		remaining[name] = inv.Resources[name].Available
	}

	plan := AllocationPlan{Assignments: make([]AreaAllocation, 0, len(ranked))}
	for _, area := range ranked {
		units := make(map[string]int, len(types))
		for _, name := range types {
			ideal := IdealUnits(area.SizeKm2, inv.Resources[name].CoverageKm2)
			assigned := min(ideal, remaining[name])
			units[name] = assigned
			remaining[name] -= assigned
		}
		plan.Assignments = append(plan.Assignments, AreaAllocation{AreaID: area.ID, Units: units})
	}

	if err := checkAllocationInvariant(plan, inv); err != nil {
		return AllocationPlan{}, err
	}
	return plan, nil
}

// IdealUnits is the per-area demand for a resource type: whole units covering
// the area, rounded down to the type's granularity, with a one-unit floor for
// any non-empty area so small areas are not starved by large coverage values.
func IdealUnits(sizeKm2, coverageKm2 float64) int {
	if sizeKm2 <= 0 || coverageKm2 <= 0 {
		return 0
	}
	n := int(sizeKm2 / coverageKm2)
	if n < 1 {
		return 1
	}
	return n
}

// checkAllocationInvariant verifies that no resource type was over-assigned.
func checkAllocationInvariant(plan AllocationPlan, inv LogisticsInventory) error {
	totals := make(map[string]int)
	for _, a := range plan.Assignments {
		for name, n := range a.Units {
			if n < 0 {
				return fmt.Errorf("%w: negative assignment of %s to %s", ErrInvariantViolation, name, a.AreaID)
			}
			totals[name] += n
		}
	}
	for name, total := range totals {
		if total > inv.Resources[name].Available {
			return fmt.Errorf("%w: %d %s allocated, %d available",
				ErrInvariantViolation, total, name, inv.Resources[name].Available)
		}
	}
	return nil
}

// sortedResourceTypes fixes the iteration order so allocation is deterministic.
func sortedResourceTypes(inv LogisticsInventory) []string {
	types := make([]string, 0, len(inv.Resources))
	for name := range inv.Resources {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
