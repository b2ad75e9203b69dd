package registry

import (
	"sort"

	"github.com/FACorreiaa/go-travel-poi-engine/internal/types"
)

// Registry maps category names to their Overpass tag-filter bundles. The
// registry is static data compiled at startup; the same engine serves both
// the combined travel-advisory categories and the entity-typed searches.
type Registry struct {
	categories map[string][]types.TagFilter
}

// Combined travel-advisory categories.
const (
	CategoryMedicalTourism      = "medical_tourism"
	CategoryMICE                = "mice"
	CategoryDestinationWeddings = "destination_weddings"
)

// Entity-typed searches.
const (
	CategoryHotels      = "hotels"
	CategorySightseeing = "sightseeing"
	CategoryAirports    = "airports"
	CategoryAirlines    = "airlines"
	CategoryMedical     = "medical"
	CategoryMICEVenues  = "mice_venues"
)

// New returns the registry with the built-in category bundles.
func New() *Registry {
	return &Registry{categories: map[string][]types.TagFilter{
		CategoryMedicalTourism: {
			`["amenity"="hospital"]`,
			`["amenity"="clinic"]`,
			`["amenity"="pharmacy"]`,
			`["amenity"="doctors"]`,
			`["leisure"="spa"]`,
			`["leisure"="fitness_centre"]`,
			`["emergency"="ambulance_station"]`,
			`["emergency"="fire_station"]`,
		},
		CategoryMICE: {
			`["amenity"="conference_centre"]`,
			`["amenity"="exhibition_centre"]`,
			`["amenity"="events_venue"]`,
			`["amenity"="theatre"]`,
			`["amenity"="parking"]`,
			`["amenity"="wifi"]`,
			`["amenity"="charging_station"]`,
			`["amenity"="atm"]`,
			`["amenity"="bank"]`,
		},
		CategoryDestinationWeddings: {
			`["amenity"="place_of_worship"]`,
			`["amenity"="events_venue"]`,
			`["amenity"="toilets"]`,
			`["amenity"="parking"]`,
			`["leisure"="garden"]`,
			`["shop"="bridal"]`,
			`["shop"="gift"]`,
			`["shop"="florist"]`,
		},
		CategoryHotels: {
			`["tourism"="hotel"]`,
			`["amenity"~"^(hotel|motel|hostel|guest_house)$"]`,
		},
		CategorySightseeing: {
			`["tourism"~"^(attraction|museum|theme_park|zoo)$"]`,
			`["amenity"~"^(arts_centre|gallery|cinema)$"]`,
			`["historic"~"^(monument|archaeological_site)$"]`,
		},
		CategoryAirports: {
			`["aeroway"="airport"]`,
			`["aeroway"="helipad"]`,
			`["aeroway"="aerodrome"]`,
		},
		CategoryAirlines: {
			`["operator"~"Airlines",i]`,
			`["name"~"Airlines",i]`,
		},
		CategoryMedical: {
			`["amenity"="hospital"]`,
			`["amenity"="clinic"]`,
			`["amenity"="doctors"]`,
			`["amenity"="pharmacy"]`,
		},
		CategoryMICEVenues: {
			`["amenity"="conference_centre"]`,
			`["amenity"="exhibition_centre"]`,
			`["amenity"="events_venue"]`,
			`["amenity"="theatre"]`,
			`["amenity"="parking"]`,
			`["amenity"="wifi"]`,
			`["amenity"="charging_station"]`,
			`["amenity"="atm"]`,
			`["amenity"="bank"]`,
		},
	}}
}

// Filters returns the ordered tag-filter bundle for a category, or
// ErrInvalidCategory for unknown names.
func (r *Registry) Filters(category string) ([]types.TagFilter, error) {
	filters, ok := r.categories[category]
	if !ok {
		return nil, types.ErrInvalidCategory
	}
	return filters, nil
}

// Categories lists the known category names, sorted.
func (r *Registry) Categories() []string {
	names := make([]string, 0, len(r.categories))
	for name := range r.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
