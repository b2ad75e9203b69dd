package types

import "fmt"

// TagFilter is a single Overpass QL tag filter expression,
// e.g. `["amenity"="hospital"]` or `["tourism"~"^(attraction|museum)$"]`.
type TagFilter string

// ElementKind represents the three OSM element kinds.
type ElementKind string

const (
	KindNode     ElementKind = "node"
	KindWay      ElementKind = "way"
	KindRelation ElementKind = "relation"
)

// Node is an OSM node: a single point with exact coordinates.
type Node struct {
	ID   int64
	Lat  float64
	Lon  float64
	Tags map[string]string
}

// Way is an OSM way. Nodes holds the constituent node coordinates in ring
// order when the skeleton nodes were returned; Center is the centroid
// Overpass attaches under `out center;` and may be missing.
type Way struct {
	ID     int64
	Center *LatLon
	Nodes  []LatLon
	Tags   map[string]string
}

// Relation is an OSM relation. Only the center is fetched in this design;
// member geometry is not requested.
type Relation struct {
	ID     int64
	Center *LatLon
	Tags   map[string]string
}

// ElementSet aggregates the raw elements of one query batch.
type ElementSet struct {
	Nodes     []Node
	Ways      []Way
	Relations []Relation
}

// MergeDistinct appends the elements of other that seen does not already
// contain, keyed by "<kind>/<osmId>". Overlapping tag filters in one bundle
// can return the same element from several sub-queries; the first occurrence
// wins and the batch stays a union set.
func (s *ElementSet) MergeDistinct(other *ElementSet, seen map[string]struct{}) {
	if other == nil {
		return
	}
	for _, n := range other.Nodes {
		id := ElementID(KindNode, n.ID)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		s.Nodes = append(s.Nodes, n)
	}
	for _, w := range other.Ways {
		id := ElementID(KindWay, w.ID)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		s.Ways = append(s.Ways, w)
	}
	for _, r := range other.Relations {
		id := ElementID(KindRelation, r.ID)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		s.Relations = append(s.Relations, r)
	}
}

// Len reports the total number of elements across all kinds.
func (s *ElementSet) Len() int {
	return len(s.Nodes) + len(s.Ways) + len(s.Relations)
}

// QueryFailure records one failed Overpass sub-query. The batch keeps going;
// failures are reported alongside the aggregated results.
type QueryFailure struct {
	Query string `json:"query"`
	Error string `json:"error"`
}

// ElementID builds the canonical "<kind>/<osmId>" identity used for POIs.
func ElementID(kind ElementKind, osmID int64) string {
	return fmt.Sprintf("%s/%d", kind, osmID)
}
