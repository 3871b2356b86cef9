package domain

// Severe-weather thresholds, informed by NWS small-craft and winter advisory
// criteria. A snapshot crossing any one of them is flagged severe.
const (
	SevereWindKph      = 60.0
	SeverePrecipMMHr   = 7.5
	SevereLowTempC     = -12.0
	SevereVisibilityKm = 0.8
)

// WeatherSnapshot holds current conditions for a resolved location.
// Available is false on the unavailable sentinel, in which case weather
// contributes zero to every score.
type WeatherSnapshot struct {
	TempC        float64 `json:"temp_c"`
	WindKph      float64 `json:"wind_kph"`
	WindDegrees  float64 `json:"wind_degrees"`
	PrecipMMHr   float64 `json:"precip_mm_hr"`
	VisibilityKm float64 `json:"visibility_km"`
	Conditions   string  `json:"conditions,omitempty"`
	Severe       bool    `json:"severe"`
	Available    bool    `json:"available"`
}

// UnavailableWeather returns the sentinel snapshot used when every candidate
// lookup failed. Downstream scoring treats it as neutral, never as an error.
func UnavailableWeather() WeatherSnapshot {
	return WeatherSnapshot{}
}

// SevereConditions applies the documented thresholds to raw measurements.
// Weather providers call it when building a snapshot.
func SevereConditions(windKph, precipMMHr, tempC, visibilityKm float64) bool {
	if windKph >= SevereWindKph {
		return true
	}
	if precipMMHr >= SeverePrecipMMHr {
		return true
	}
	if tempC <= SevereLowTempC {
		return true
	}
	if visibilityKm > 0 && visibilityKm <= SevereVisibilityKm {
		return true
	}
	return false
}

// WeatherReport pairs a snapshot with the provenance of the lookup: which
// typonym candidate satisfied it. CandidateIndex is -1 and UsedName empty
// when the snapshot is the unavailable sentinel.
type WeatherReport struct {
	Snapshot       WeatherSnapshot `json:"snapshot"`
	UsedName       string          `json:"used_name,omitempty"`
	CandidateIndex int             `json:"candidate_index"`
	Note           string          `json:"note,omitempty"` // set when a variant name was used
}

// UnavailableWeatherReport is the report-level sentinel.
func UnavailableWeatherReport() WeatherReport {
	return WeatherReport{Snapshot: UnavailableWeather(), CandidateIndex: -1}
}
