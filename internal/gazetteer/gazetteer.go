package gazetteer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/FACorreiaa/go-travel-poi-engine/internal/types"
)

var _ Gazetteer = (*CSVGazetteer)(nil)

// Gazetteer resolves a (city, country) pair to an anchor point from a
// preloaded place table.
type Gazetteer interface {
	Lookup(city, country string) (*types.Place, error)
	Countries() []string
	Cities(country string) []string
}

// CSVGazetteer is an in-memory gazetteer loaded once from a cities CSV with
// City, Country, Latitude and Longitude columns. It is read-only after Load
// and safe for concurrent use.
type CSVGazetteer struct {
	logger    *slog.Logger
	places    []types.Place
	byCity    map[string][]int
	byCountry map[string][]int
}

// Load reads the cities file and builds the lookup indexes. Files that are
// not valid UTF-8 are reinterpreted as Latin-1, matching the source data
// which ships in both encodings.
func Load(path string, logger *slog.Logger) (*CSVGazetteer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cities file: %w", err)
	}
	if !utf8.Valid(raw) {
		raw = latin1ToUTF8(raw)
		logger.Warn("cities file is not valid UTF-8, decoded as Latin-1", slog.String("path", path))
	}

	g := &CSVGazetteer{
		logger:    logger,
		byCity:    make(map[string][]int),
		byCountry: make(map[string][]int),
	}
	if err := g.parse(strings.NewReader(string(raw))); err != nil {
		return nil, err
	}

	logger.Info("gazetteer loaded",
		slog.String("path", path),
		slog.Int("places", len(g.places)),
		slog.Int("countries", len(g.byCountry)),
	)
	return g, nil
}

func (g *CSVGazetteer) parse(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read cities header: %w", err)
	}

	col := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}
	cityIdx, countryIdx := col("City"), col("Country")
	latIdx, lonIdx := col("Latitude"), col("Longitude")
	if cityIdx < 0 || countryIdx < 0 || latIdx < 0 || lonIdx < 0 {
		return fmt.Errorf("cities file missing required columns, got header %v", header)
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			g.logger.Warn("skipping malformed cities row", slog.Int("line", line), slog.Any("error", err))
			continue
		}
		maxIdx := max(max(cityIdx, countryIdx), max(latIdx, lonIdx))
		if len(record) <= maxIdx {
			continue
		}

		lat, latErr := strconv.ParseFloat(strings.TrimSpace(record[latIdx]), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(record[lonIdx]), 64)
		if latErr != nil || lonErr != nil {
			g.logger.Warn("skipping cities row with bad coordinates", slog.Int("line", line))
			continue
		}

		place := types.Place{
			Name:      strings.TrimSpace(record[cityIdx]),
			Country:   strings.TrimSpace(record[countryIdx]),
			Latitude:  lat,
			Longitude: lon,
		}
		if place.Name == "" {
			continue
		}

		idx := len(g.places)
		g.places = append(g.places, place)
		g.byCity[place.Name] = append(g.byCity[place.Name], idx)
		if place.Country != "" {
			g.byCountry[place.Country] = append(g.byCountry[place.Country], idx)
		}
	}

	if len(g.places) == 0 {
		return fmt.Errorf("cities file contains no usable rows")
	}
	return nil
}

// Lookup matches by exact city and/or country equality and returns the first
// matching row in file order. Either argument may be empty, but not both.
func (g *CSVGazetteer) Lookup(city, country string) (*types.Place, error) {
	if city == "" && country == "" {
		return nil, types.ErrMissingPlace
	}

	var candidates []int
	switch {
	case city != "":
		candidates = g.byCity[city]
	default:
		candidates = g.byCountry[country]
	}

	for _, idx := range candidates {
		place := g.places[idx]
		if country != "" && place.Country != country {
			continue
		}
		return &place, nil
	}
	return nil, types.ErrPlaceNotFound
}

// Countries returns the sorted list of distinct countries.
func (g *CSVGazetteer) Countries() []string {
	countries := make([]string, 0, len(g.byCountry))
	for country := range g.byCountry {
		countries = append(countries, country)
	}
	sort.Strings(countries)
	return countries
}

// Cities returns the sorted, distinct city names of one country.
func (g *CSVGazetteer) Cities(country string) []string {
	seen := make(map[string]struct{})
	cities := make([]string, 0, len(g.byCountry[country]))
	for _, idx := range g.byCountry[country] {
		name := g.places[idx].Name
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		cities = append(cities, name)
	}
	sort.Strings(cities)
	return cities
}

// latin1ToUTF8 reinterprets each byte as its Latin-1 code point.
func latin1ToUTF8(raw []byte) []byte {
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		b.WriteRune(rune(c))
	}
	return []byte(b.String())
}
