package search

import (
	"maps"

	"github.com/FACorreiaa/go-travel-poi-engine/internal/types"
)

// displayName returns the name tag or the canonical anonymous sentinel.
func displayName(tags map[string]string) string {
	if name, ok := tags["name"]; ok && name != "" {
		return name
	}
	return types.UnnamedLocation
}

// normalizeNode converts a node into a POI. Nodes always carry exact
// coordinates.
func normalizeNode(n types.Node, category string) types.POI {
	return types.POI{
		ID:          types.ElementID(types.KindNode, n.ID),
		Name:        displayName(n.Tags),
		Category:    category,
		Coordinates: &types.LatLon{Lat: n.Lat, Lon: n.Lon},
		Tags:        maps.Clone(n.Tags),
	}
}

// normalizeWay converts a way into a POI. Coordinates come from the query's
// center when present; otherwise they stay unset pending the geometry
// resolver's fallback.
func normalizeWay(w types.Way, category string) types.POI {
	poi := types.POI{
		ID:       types.ElementID(types.KindWay, w.ID),
		Name:     displayName(w.Tags),
		Category: category,
		Tags:     maps.Clone(w.Tags),
	}
	if w.Center != nil {
		center := *w.Center
		poi.Coordinates = &center
	}
	return poi
}

// normalizeRelation converts a relation into a POI. Relations only ever
// carry a center in this design.
func normalizeRelation(r types.Relation, category string) types.POI {
	poi := types.POI{
		ID:       types.ElementID(types.KindRelation, r.ID),
		Name:     displayName(r.Tags),
		Category: category,
		Tags:     maps.Clone(r.Tags),
	}
	if r.Center != nil {
		center := *r.Center
		poi.Coordinates = &center
	}
	return poi
}
