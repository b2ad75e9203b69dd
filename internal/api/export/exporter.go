package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb/geojson"

	"github.com/FACorreiaa/go-travel-poi-engine/internal/types"
)

var _ Exporter = (*FileExporter)(nil)

// Exporter consumes a validated POI set and produces downloadable artifacts.
type Exporter interface {
	Export(ctx context.Context, pois []types.POI, category, placeName string) (*types.ExportArtifacts, error)
}

// FileExporter writes one CSV and one GeoJSON FeatureCollection per search
// into a configured output directory.
type FileExporter struct {
	logger    *slog.Logger
	outputDir string
}

func NewFileExporter(outputDir string, logger *slog.Logger) (*FileExporter, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output dir: %w", err)
	}
	return &FileExporter{logger: logger, outputDir: abs}, nil
}

// OutputDir returns the absolute output directory, used by the download
// handler to fence file access.
func (e *FileExporter) OutputDir() string {
	return e.outputDir
}

func (e *FileExporter) Export(ctx context.Context, pois []types.POI, category, placeName string) (*types.ExportArtifacts, error) {
	base := fmt.Sprintf("%s_%s", sanitizeName(category), sanitizeName(placeName))
	csvFile := filepath.Join(e.outputDir, base+".csv")
	geojsonFile := filepath.Join(e.outputDir, base+".geojson")

	if err := e.writeCSV(csvFile, pois); err != nil {
		return nil, err
	}
	if err := e.writeGeoJSON(geojsonFile, pois); err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "exported search artifacts",
		slog.String("csv", csvFile),
		slog.String("geojson", geojsonFile),
		slog.Int("pois", len(pois)),
	)
	return &types.ExportArtifacts{CSVFile: csvFile, GeoJSONFile: geojsonFile}, nil
}

func (e *FileExporter) writeCSV(path string, pois []types.POI) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"poi_id", "name", "category", "lat", "lon"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, poi := range pois {
		var lat, lon string
		if poi.Coordinates != nil {
			lat = strconv.FormatFloat(poi.Coordinates.Lat, 'f', -1, 64)
			lon = strconv.FormatFloat(poi.Coordinates.Lon, 'f', -1, 64)
		}
		if err := w.Write([]string{poi.ID, poi.Name, poi.Category, lat, lon}); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func (e *FileExporter) writeGeoJSON(path string, pois []types.POI) error {
	fc := geojson.NewFeatureCollection()
	for _, poi := range pois {
		if poi.Geometry == nil {
			continue
		}
		feature := geojson.NewFeature(poi.Geometry.Geometry())
		feature.Properties["poi_id"] = poi.ID
		feature.Properties["name"] = poi.Name
		feature.Properties["category"] = poi.Category
		fc.Append(feature)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal feature collection: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write geojson: %w", err)
	}
	return nil
}

// sanitizeName keeps artifact names filesystem-safe.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", "..", "")
	if name == "" {
		return "unknown"
	}
	return replacer.Replace(name)
}
