package container

import (
	"log/slog"

	"github.com/FACorreiaa/go-travel-poi-engine/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-poi-engine/config"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/api/booking"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/api/export"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/api/place"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/api/search"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/gazetteer"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/overpass"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/registry"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *slog.Logger
	Gazetteer       gazetteer.Gazetteer
	SearchHandler   *search.Handler
	PlaceHandler    *place.Handler
	BookingHandler  *booking.Handler
	DownloadHandler *export.DownloadHandler
}

// NewContainer initializes and returns a new dependency container.
// appMetrics may be nil; instrumentation is then skipped throughout.
func NewContainer(cfg *config.Config, appMetrics *metrics.AppMetrics, logger *slog.Logger) (*Container, error) {
	// The gazetteer and category registry are process-wide, read-only state.
	g, err := gazetteer.Load(cfg.Gazetteer.CitiesFile, logger)
	if err != nil {
		logger.Error("Failed to load gazetteer", slog.Any("error", err))
		return nil, err
	}
	categoryRegistry := registry.New()

	builder := overpass.NewBuilder(cfg.Overpass.MaxRadius)
	client := overpass.NewClient(
		cfg.Overpass.Endpoint,
		cfg.Overpass.Timeout,
		cfg.Overpass.Concurrency,
		cfg.Overpass.CacheTTL,
		appMetrics,
		logger,
	)

	searchService := search.NewServiceImpl(g, categoryRegistry, builder, client, appMetrics, search.Limits{
		DefaultRadiusMeters: cfg.Overpass.DefaultRadius,
		MinRadiusMeters:     cfg.Overpass.MinRadius,
		MaxRadiusMeters:     cfg.Overpass.ClampRadius,
		RecommendationLimit: cfg.Recommendations.Limit,
	}, logger)

	exporter, err := export.NewFileExporter(cfg.Export.OutputDir, logger)
	if err != nil {
		logger.Error("Failed to initialize artifact exporter", slog.Any("error", err))
		return nil, err
	}

	return &Container{
		Config:          cfg,
		Logger:          logger,
		Gazetteer:       g,
		SearchHandler:   search.NewHandler(searchService, exporter, logger),
		PlaceHandler:    place.NewHandler(g, logger),
		BookingHandler:  booking.NewHandler(logger),
		DownloadHandler: export.NewDownloadHandler(exporter.OutputDir(), logger),
	}, nil
}
