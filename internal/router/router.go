package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/FACorreiaa/go-travel-poi-engine/internal/api/booking"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/api/export"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/api/place"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/api/search"
)

// Config contains dependencies needed for the router setup
type Config struct {
	SearchHandler   *search.Handler
	PlaceHandler    *place.Handler
	BookingHandler  *booking.Handler
	DownloadHandler *export.DownloadHandler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (like logger, requestID, recoverer) are expected
// to be applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	// Heartbeat/Health check endpoint
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Gazetteer lists for the front-end dropdowns
		r.Get("/countries", cfg.PlaceHandler.Countries)
		r.Get("/cities", cfg.PlaceHandler.Cities)
		r.Get("/categories", cfg.SearchHandler.Categories)

		// One parametrized engine serves every category: the combined
		// travel-advisory bundles and the entity-typed searches alike.
		r.Get("/{category}/search", cfg.SearchHandler.Search)
		r.Get("/{category}/details/{kind}/{osmID}", cfg.SearchHandler.Details)

		// Mock bookings
		r.Post("/bookings", cfg.BookingHandler.Book)
		r.Post("/bookings/cancel", cfg.BookingHandler.Cancel)

		// Generated artifacts
		r.Get("/download", cfg.DownloadHandler.Download)
	})

	return r
}
