package types

import "errors"

// Error taxonomy of the search engine. Only these surface to callers;
// per-query failures and geometry construction failures degrade gracefully
// into partial results instead.
var (
	ErrInvalidRadius      = errors.New("invalid radius")
	ErrMissingPlace       = errors.New("at least one of city or country is required")
	ErrPlaceNotFound      = errors.New("no matching city/country found")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrBackendUnavailable = errors.New("overpass backend unavailable")
	ErrPOINotFound        = errors.New("poi not found")
)
