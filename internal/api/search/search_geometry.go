package search

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/FACorreiaa/go-travel-poi-engine/internal/types"
)

// Geometry derivation policy, in priority order:
//
//  1. Node: always a Point at the node's exact coordinates.
//  2. Way with >= 3 constituent nodes: attempt a Polygon; a degenerate ring
//     falls back to a Point at the center when one exists.
//  3. Way with < 3 nodes: Point at the center when one exists.
//  4. Relation: always a Point at the center when one exists.
//
// Anything else stays without geometry and is dropped before ranking.
// Relations are point-anchored on purpose: their member geometry is not
// fetched, so no polygon is attempted for them.

func resolveNodeGeometry(poi types.POI, n types.Node) types.POI {
	poi.Geometry = geojson.NewGeometry(orb.Point{n.Lon, n.Lat})
	return poi
}

func resolveWayGeometry(poi types.POI, w types.Way) types.POI {
	if len(w.Nodes) >= 3 {
		if poly, ok := wayPolygon(w.Nodes); ok {
			poi.Geometry = geojson.NewGeometry(poly)
			return poi
		}
	}
	return resolveCenterGeometry(poi, w.Center)
}

func resolveRelationGeometry(poi types.POI, r types.Relation) types.POI {
	return resolveCenterGeometry(poi, r.Center)
}

func resolveCenterGeometry(poi types.POI, center *types.LatLon) types.POI {
	if center != nil {
		poi.Geometry = geojson.NewGeometry(orb.Point{center.Lon, center.Lat})
	}
	return poi
}

// wayPolygon builds a closed ring from the way's node coordinates. Rings
// with fewer than 3 distinct vertices or zero area are rejected so the
// caller can fall back to the center point.
func wayPolygon(coords []types.LatLon) (orb.Polygon, bool) {
	ring := make(orb.Ring, 0, len(coords)+1)
	for _, c := range coords {
		ring = append(ring, orb.Point{c.Lon, c.Lat})
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}

	distinct := make(map[orb.Point]struct{}, len(ring))
	for _, pt := range ring[:len(ring)-1] {
		distinct[pt] = struct{}{}
	}
	if len(distinct) < 3 {
		return nil, false
	}

	poly := orb.Polygon{ring}
	if planar.Area(poly) == 0 {
		return nil, false
	}
	return poly, true
}

// normalizeAndResolve runs the normalizer and geometry resolver over a raw
// element set, preserving kind order (nodes, ways, relations) so repeated
// batches produce identical output.
func normalizeAndResolve(set *types.ElementSet, category string) []types.POI {
	pois := make([]types.POI, 0, set.Len())
	for _, n := range set.Nodes {
		pois = append(pois, resolveNodeGeometry(normalizeNode(n, category), n))
	}
	for _, w := range set.Ways {
		pois = append(pois, resolveWayGeometry(normalizeWay(w, category), w))
	}
	for _, r := range set.Relations {
		pois = append(pois, resolveRelationGeometry(normalizeRelation(r, category), r))
	}
	return pois
}
