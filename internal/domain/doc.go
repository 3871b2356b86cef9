// Package domain models search-and-rescue (SAR) mission planning data.
//
// # Planning Inputs
//
// A planning request carries four caller-supplied inputs:
//
//	IncidentRecord        — what happened, where, how urgent (Incident Commander)
//	EnvironmentalSnapshot — terrain, visibility, hazard flags (Operations)
//	LogisticsInventory    — available resources and comms channels (Logistics)
//	[]SearchArea          — optional candidate areas; a default area around the
//	                        incident location is generated when none are given.
//
// Weather is not a caller input. It is fetched during planning via the
// location typonym list and degrades to an unavailable sentinel when every
// lookup fails, so a plan is always produced.
//
// # Severity Scale
//
// Incident severity is a 0–5 scale (0 = informational, 5 = life-threatening
// with a closing survivability window). Out-of-range values are clamped
// before scoring, never rejected.
//
// # Area Scoring
//
// Priority scores are a weighted sum of documented contributions:
//
//	base    = Severity weight × clamped severity
//	weather = SevereWeatherExposure × (1 − shelter), when weather is severe
//	hazards = Σ HazardDelta[flag] per active hazard flag
//
// Unavailable weather contributes exactly zero; it is never treated as the
// best or the worst case. Weights are named constants on [Weights]; see
// [DefaultWeights].
//
// # Allocation Policy
//
// Resources are allocated greedily in rank order. An area's ideal demand per
// resource type is floor(area size / per-unit coverage), minimum one unit for
// a non-empty area. The area receives min(ideal, remaining inventory);
// exhausted types appear as explicit zero entries. Total allocated per type
// never exceeds the declared inventory — an overrun is an internal defect
// ([ErrInvariantViolation]), not a recoverable input error.
//
// # ID Generation
//
// Area and plan IDs are deterministic SHA-256 short hashes of their key
// fields, so two runs over identical inputs produce byte-identical structured
// output. See [generateID].
package domain
