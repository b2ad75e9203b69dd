package container

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-poi-engine/config"
)

func TestNewContainerWithoutMetrics(t *testing.T) {
	citiesFile := filepath.Join(t.TempDir(), "cities.csv")
	require.NoError(t, os.WriteFile(citiesFile, []byte(
		"City,Country,Latitude,Longitude\nLisbon,Portugal,38.7223,-9.1393\n",
	), 0o644))

	var cfg config.Config
	cfg.Gazetteer.CitiesFile = citiesFile
	cfg.Export.OutputDir = t.TempDir()
	cfg.Overpass.Endpoint = "http://localhost:0"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// No metrics initialization anywhere: a nil bundle must be accepted.
	deps, err := NewContainer(&cfg, nil, logger)
	require.NoError(t, err)
	require.NotNil(t, deps.SearchHandler)
	require.NotNil(t, deps.PlaceHandler)
	require.NotNil(t, deps.BookingHandler)
	require.NotNil(t, deps.DownloadHandler)
}

func TestNewContainerMissingCitiesFile(t *testing.T) {
	var cfg config.Config
	cfg.Gazetteer.CitiesFile = filepath.Join(t.TempDir(), "nope.csv")
	cfg.Export.OutputDir = t.TempDir()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewContainer(&cfg, nil, logger)
	require.Error(t, err)
}
