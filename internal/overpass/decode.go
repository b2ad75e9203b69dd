package overpass

import (
	"encoding/json"
	"fmt"

	"github.com/FACorreiaa/go-travel-poi-engine/internal/types"
)

// Wire shape of an `[out:json]` Overpass response. The primary set comes
// from `out center;` with tags and optional centers; the trailing
// `out skel qt;` adds bare constituent nodes without a tags object.
type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *types.LatLon     `json:"center,omitempty"`
	Nodes  []int64           `json:"nodes,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// decodeElements parses one response into the raw element set. Tagged
// elements matched the query filter; untagged skeleton nodes only contribute
// coordinates for way polygon construction and are not kept as elements.
// Ways referencing nodes missing from the response keep whatever
// coordinates could be resolved.
func decodeElements(body []byte) (*types.ElementSet, error) {
	var resp overpassResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("malformed overpass response: %w", err)
	}

	nodeCoords := make(map[int64]types.LatLon)
	for _, el := range resp.Elements {
		if el.Type == string(types.KindNode) {
			nodeCoords[el.ID] = types.LatLon{Lat: el.Lat, Lon: el.Lon}
		}
	}

	set := &types.ElementSet{}
	for _, el := range resp.Elements {
		if el.Tags == nil {
			continue
		}
		switch el.Type {
		case string(types.KindNode):
			set.Nodes = append(set.Nodes, types.Node{
				ID:   el.ID,
				Lat:  el.Lat,
				Lon:  el.Lon,
				Tags: el.Tags,
			})
		case string(types.KindWay):
			way := types.Way{ID: el.ID, Center: el.Center, Tags: el.Tags}
			for _, nodeID := range el.Nodes {
				if coord, ok := nodeCoords[nodeID]; ok {
					way.Nodes = append(way.Nodes, coord)
				}
			}
			set.Ways = append(set.Ways, way)
		case string(types.KindRelation):
			set.Relations = append(set.Relations, types.Relation{
				ID:     el.ID,
				Center: el.Center,
				Tags:   el.Tags,
			})
		}
	}
	return set, nil
}
