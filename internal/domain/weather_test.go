package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSevereConditions(t *testing.T) {
	tests := []struct {
		name         string
		windKph      float64
		precipMMHr   float64
		tempC        float64
		visibilityKm float64
		expected     bool
	}{
		{"calm", 15, 0, 18, 10, false},
		{"high wind", 65, 0, 18, 10, true},
		{"heavy precipitation", 10, 8, 15, 10, true},
		{"extreme cold", 5, 0, -15, 10, true},
		{"near-zero visibility", 10, 0, 12, 0.5, true},
		{"unknown visibility is not severe", 10, 0, 12, 0, false},
		{"at wind threshold", SevereWindKph, 0, 15, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SevereConditions(tt.windKph, tt.precipMMHr, tt.tempC, tt.visibilityKm))
		})
	}
}

func TestUnavailableWeather(t *testing.T) {
	snapshot := UnavailableWeather()
	assert.False(t, snapshot.Available)
	assert.False(t, snapshot.Severe)

	report := UnavailableWeatherReport()
	assert.Equal(t, -1, report.CandidateIndex)
	assert.Empty(t, report.UsedName)
	assert.False(t, report.Snapshot.Available)
}
