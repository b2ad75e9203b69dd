package types

import "github.com/paulmach/orb/geojson"

// UnnamedLocation is the canonical sentinel for features without a name tag.
// The source data carried both "Unnamed Location" and "N/A"; this codebase
// uses exactly one sentinel everywhere, and the recommendation ranker depends
// on matching it exactly.
const UnnamedLocation = "Unnamed Location"

// POI is the canonical record derived from one OSM element. ID is
// "<kind>/<osmId>" and is stable across repeated queries against the same
// data epoch. Coordinates and Geometry are nil until resolved; a POI whose
// geometry cannot be resolved is dropped before ranking.
type POI struct {
	ID          string            `json:"poi_id"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Coordinates *LatLon           `json:"coordinates,omitempty"`
	Geometry    *geojson.Geometry `json:"geometry,omitempty"`
	Tags        map[string]string `json:"tags"`
}

// Anonymous reports whether the POI carries no usable display name.
func (p POI) Anonymous() bool {
	return p.Name == UnnamedLocation
}

// Recommendation is a ranked shortlist entry derived from the validated POI
// set. Created per request, never persisted.
type Recommendation struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}
