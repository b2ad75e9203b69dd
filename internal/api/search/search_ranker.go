package search

import (
	"fmt"
	"sort"

	"github.com/FACorreiaa/go-travel-poi-engine/internal/types"
)

// defaultRecommendationLimit matches the observed shortlist size.
const defaultRecommendationLimit = 5

// filterValid drops every POI whose geometry could not be resolved. Such
// records cannot be mapped or usefully recommended.
func filterValid(pois []types.POI) []types.POI {
	valid := make([]types.POI, 0, len(pois))
	for _, poi := range pois {
		if poi.Geometry != nil {
			valid = append(valid, poi)
		}
	}
	return valid
}

// rank selects the recommendation shortlist from the validated POI set.
// Anonymous features are excluded (they remain in the validated set for
// mapping, but are not advertised); the rest sort lexicographically by name,
// case-sensitive ascending. A category with no named POIs yields exactly one
// placeholder recommendation rather than an empty list.
func rank(pois []types.POI, category string, limit int) []types.Recommendation {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	named := make([]types.POI, 0, len(pois))
	for _, poi := range pois {
		if !poi.Anonymous() {
			named = append(named, poi)
		}
	}
	sort.SliceStable(named, func(i, j int) bool {
		return named[i].Name < named[j].Name
	})
	if len(named) > limit {
		named = named[:limit]
	}

	recommendations := make([]types.Recommendation, 0, len(named))
	for _, poi := range named {
		recommendations = append(recommendations, types.Recommendation{
			Name:        poi.Name,
			Category:    poi.Category,
			Description: fmt.Sprintf("Highly recommended %s spot: %s.", poi.Category, poi.Name),
		})
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, types.Recommendation{
			Name:        "No recommendations available",
			Category:    category,
			Description: "Try expanding your search radius or choose a different category.",
		})
	}
	return recommendations
}
