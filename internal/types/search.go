package types

// SearchRequest is the engine entry point. At least one of City/Country must
// be supplied. RadiusMeters of zero means "use the configured default".
type SearchRequest struct {
	City         string `json:"city,omitempty"`
	Country      string `json:"country,omitempty"`
	Category     string `json:"category"`
	RadiusMeters int    `json:"radius,omitempty"`
}

// SearchResult is the engine output for one category search. Failures lists
// the per-query failures of a degraded (but still successful) batch.
type SearchResult struct {
	Place           *Place           `json:"place"`
	Category        string           `json:"category"`
	POIs            []POI            `json:"pois"`
	Recommendations []Recommendation `json:"recommendations"`
	Failures        []QueryFailure   `json:"failures,omitempty"`
}

// Degraded reports whether some (but not all) sub-queries failed.
func (r *SearchResult) Degraded() bool {
	return len(r.Failures) > 0
}

// ExportArtifacts lists the files the artifact exporter produced for one
// validated POI set.
type ExportArtifacts struct {
	CSVFile     string `json:"csv_file"`
	GeoJSONFile string `json:"geojson_file"`
}

// SearchResponse is the JSON body returned by the search endpoints.
type SearchResponse struct {
	Status          string           `json:"status"`
	Count           int              `json:"count"`
	Data            []POI            `json:"data"`
	Recommendations []Recommendation `json:"recommendations"`
	Warnings        []QueryFailure   `json:"warnings,omitempty"`
	Artifacts       *ExportArtifacts `json:"artifacts,omitempty"`
}
