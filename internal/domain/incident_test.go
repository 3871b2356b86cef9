package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIncident(t *testing.T) {
	valid := IncidentRecord{ID: "inc-1", Type: "missing person", Location: "Crystal Cove, CA"}

	t.Run("valid incident passes", func(t *testing.T) {
		assert.NoError(t, ValidateIncident(valid))
	})

	t.Run("missing fields are named", func(t *testing.T) {
		tests := []struct {
			mutate func(*IncidentRecord)
			field  string
		}{
			{func(i *IncidentRecord) { i.ID = "" }, "incident.id"},
			{func(i *IncidentRecord) { i.Type = "" }, "incident.type"},
			{func(i *IncidentRecord) { i.Location = "" }, "incident.location"},
		}
		for _, tt := range tests {
			inc := valid
			tt.mutate(&inc)

			err := ValidateIncident(inc)
			require.Error(t, err)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		}
	})
}

func TestValidateInventory(t *testing.T) {
	t.Run("valid inventory passes", func(t *testing.T) {
		inv := LogisticsInventory{Resources: map[string]Resource{
			"ground_teams": {Available: 5, CoverageKm2: 2},
		}}
		assert.NoError(t, ValidateInventory(inv))
	})

	t.Run("empty inventory passes", func(t *testing.T) {
		assert.NoError(t, ValidateInventory(LogisticsInventory{}))
	})

	t.Run("negative count names the field", func(t *testing.T) {
		inv := LogisticsInventory{Resources: map[string]Resource{
			"search_dogs": {Available: -1, CoverageKm2: 2},
		}}
		err := ValidateInventory(inv)
		require.Error(t, err)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "logistics.resources[search_dogs].available", vErr.Field)
	})

	t.Run("negative coverage names the field", func(t *testing.T) {
		inv := LogisticsInventory{Resources: map[string]Resource{
			"drones": {Available: 1, CoverageKm2: -0.5},
		}}
		err := ValidateInventory(inv)
		require.Error(t, err)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "logistics.resources[drones].coverage_km2", vErr.Field)
	})
}

func TestBounds(t *testing.T) {
	t.Run("zero value", func(t *testing.T) {
		assert.True(t, Bounds{}.IsZero())
	})

	t.Run("center", func(t *testing.T) {
		b := Bounds{MinLat: 30, MinLon: -98, MaxLat: 32, MaxLon: -96}
		assert.False(t, b.IsZero())
		assert.Equal(t, Geo{Lat: 31, Lon: -97}, b.Center())
	})
}
