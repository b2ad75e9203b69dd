package overpass

import (
	"fmt"
	"strconv"

	"github.com/FACorreiaa/go-travel-poi-engine/internal/types"
)

// DefaultMaxRadiusMeters bounds query cost when no maximum is configured.
const DefaultMaxRadiusMeters = 200_000

// Builder constructs Overpass QL queries for a category's tag filters.
type Builder struct {
	MaxRadiusMeters int
}

func NewBuilder(maxRadiusMeters int) *Builder {
	if maxRadiusMeters <= 0 {
		maxRadiusMeters = DefaultMaxRadiusMeters
	}
	return &Builder{MaxRadiusMeters: maxRadiusMeters}
}

// Build emits one query per tag filter. Each query requests all nodes, ways
// and relations matching the filter within radiusMeters of anchor, with
// `out center;` so ways and relations carry a usable centroid, followed by a
// recursive `out skel qt;` that pulls the constituent nodes needed for
// polygon construction.
//
// An empty filter list yields an empty query list, not an error.
func (b *Builder) Build(anchor types.LatLon, radiusMeters int, filters []types.TagFilter) ([]string, error) {
	if radiusMeters <= 0 || radiusMeters > b.MaxRadiusMeters {
		return nil, fmt.Errorf("%w: %d not in (0, %d]", types.ErrInvalidRadius, radiusMeters, b.MaxRadiusMeters)
	}

	queries := make([]string, 0, len(filters))
	for _, filter := range filters {
		queries = append(queries, b.buildOne(anchor, radiusMeters, filter))
	}
	return queries, nil
}

func (b *Builder) buildOne(anchor types.LatLon, radiusMeters int, filter types.TagFilter) string {
	lat := strconv.FormatFloat(anchor.Lat, 'f', -1, 64)
	lon := strconv.FormatFloat(anchor.Lon, 'f', -1, 64)
	around := fmt.Sprintf("(around:%d,%s,%s)", radiusMeters, lat, lon)

	return fmt.Sprintf(`[out:json];
(
  node%[1]s%[2]s;
  way%[1]s%[2]s;
  relation%[1]s%[2]s;
);
out center;
>;
out skel qt;`, filter, around)
}
