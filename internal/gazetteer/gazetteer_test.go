package gazetteer

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-poi-engine/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeCitiesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cities.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleCities = `City,Country,Latitude,Longitude
Paris,France,48.8566,2.3522
Paris,United States,33.6609,-95.5555
Lyon,France,45.7640,4.8357
Lisbon,Portugal,38.7223,-9.1393
Porto,Portugal,41.1579,-8.6291
`

func loadSample(t *testing.T) *CSVGazetteer {
	t.Helper()
	g, err := Load(writeCitiesFile(t, sampleCities), testLogger())
	require.NoError(t, err)
	return g
}

func TestLookupByCity(t *testing.T) {
	g := loadSample(t)

	place, err := g.Lookup("Lisbon", "")
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", place.Name)
	assert.Equal(t, "Portugal", place.Country)
	assert.Equal(t, 38.7223, place.Latitude)
	assert.Equal(t, -9.1393, place.Longitude)
}

func TestLookupAmbiguousCityPicksFirstRow(t *testing.T) {
	g := loadSample(t)

	place, err := g.Lookup("Paris", "")
	require.NoError(t, err)
	assert.Equal(t, "France", place.Country, "first matching file row wins")
}

func TestLookupCityDisambiguatedByCountry(t *testing.T) {
	g := loadSample(t)

	place, err := g.Lookup("Paris", "United States")
	require.NoError(t, err)
	assert.Equal(t, "United States", place.Country)
	assert.Equal(t, 33.6609, place.Latitude)
}

func TestLookupByCountryOnly(t *testing.T) {
	g := loadSample(t)

	place, err := g.Lookup("", "Portugal")
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", place.Name, "country-only lookup anchors on its first city")
}

func TestLookupMissingPlace(t *testing.T) {
	g := loadSample(t)

	_, err := g.Lookup("", "")
	assert.True(t, errors.Is(err, types.ErrMissingPlace))
}

func TestLookupUnknownPlace(t *testing.T) {
	g := loadSample(t)

	_, err := g.Lookup("Atlantis", "")
	assert.True(t, errors.Is(err, types.ErrPlaceNotFound))

	_, err = g.Lookup("Lisbon", "Spain")
	assert.True(t, errors.Is(err, types.ErrPlaceNotFound), "city exists but not in that country")
}

func TestCountriesSortedDistinct(t *testing.T) {
	g := loadSample(t)

	assert.Equal(t, []string{"France", "Portugal", "United States"}, g.Countries())
}

func TestCitiesSortedDistinctPerCountry(t *testing.T) {
	g := loadSample(t)

	assert.Equal(t, []string{"Lisbon", "Porto"}, g.Cities("Portugal"))
	assert.Empty(t, g.Cities("Spain"))
}

func TestLoadSkipsBadRows(t *testing.T) {
	content := `City,Country,Latitude,Longitude
Lisbon,Portugal,38.7223,-9.1393
BadCoords,Portugal,not-a-number,-9.1
,Portugal,41.0,-8.0
Porto,Portugal,41.1579,-8.6291
`
	g, err := Load(writeCitiesFile(t, content), testLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"Lisbon", "Porto"}, g.Cities("Portugal"))
}

func TestLoadLatin1Fallback(t *testing.T) {
	// "Málaga" with the Latin-1 single-byte 0xE1 for á.
	content := []byte("City,Country,Latitude,Longitude\nM\xe1laga,Spain,36.7213,-4.4214\n")
	path := filepath.Join(t.TempDir(), "cities.csv")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	g, err := Load(path, testLogger())
	require.NoError(t, err)

	place, err := g.Lookup("Málaga", "")
	require.NoError(t, err)
	assert.Equal(t, "Spain", place.Country)
}

func TestLoadRejectsMissingColumns(t *testing.T) {
	_, err := Load(writeCitiesFile(t, "City,Latitude,Longitude\nLisbon,38.7,-9.1\n"), testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	_, err := Load(writeCitiesFile(t, "City,Country,Latitude,Longitude\n"), testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable rows")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), testLogger())
	require.Error(t, err)
}
