package types

// LatLon is a WGS84 coordinate pair.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Place matches one row of the city gazetteer. Loaded once at startup,
// read-only for the process lifetime.
type Place struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p Place) Anchor() LatLon {
	return LatLon{Lat: p.Latitude, Lon: p.Longitude}
}
