package search

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-poi-engine/internal/api"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/api/export"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/types"
)

type Handler struct {
	searchService Service
	exporter      export.Exporter
	logger        *slog.Logger
}

// NewHandler builds the search handler. exporter may be nil to disable
// artifact generation.
func NewHandler(searchService Service, exporter export.Exporter, logger *slog.Logger) *Handler {
	return &Handler{
		searchService: searchService,
		exporter:      exporter,
		logger:        logger,
	}
}

// Search handles GET /{category}/search?city=&country=&radius=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SearchHandler").Start(r.Context(), "Search", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/{category}/search"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Search"))
	l.DebugContext(ctx, "Category search handler invoked")

	req, ok := h.decodeSearchRequest(w, r)
	if !ok {
		return
	}

	result, err := h.searchService.Search(ctx, req)
	if err != nil {
		h.writeSearchError(w, r, l, err)
		return
	}

	resp := types.SearchResponse{
		Status:          "success",
		Count:           len(result.POIs),
		Data:            result.POIs,
		Recommendations: result.Recommendations,
		Warnings:        result.Failures,
	}
	// Empty result sets marshal as [], never null.
	if resp.Data == nil {
		resp.Data = []types.POI{}
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []types.Recommendation{}
	}

	if h.exporter != nil && len(result.POIs) > 0 {
		artifacts, err := h.exporter.Export(ctx, result.POIs, result.Category, result.Place.Name)
		if err != nil {
			// Artifact generation failing is not a search failure.
			l.WarnContext(ctx, "artifact export failed", slog.Any("error", err))
		} else {
			resp.Artifacts = artifacts
		}
	}

	l.InfoContext(ctx, "Search completed successfully", slog.Int("count", resp.Count))
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// Details handles GET /{category}/details/{kind}/{osmID}.
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SearchHandler").Start(r.Context(), "Details", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/{category}/details/{kind}/{osmID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Details"))

	req, ok := h.decodeSearchRequest(w, r)
	if !ok {
		return
	}
	poiID := fmt.Sprintf("%s/%s", chi.URLParam(r, "kind"), chi.URLParam(r, "osmID"))

	poi, err := h.searchService.Details(ctx, req, poiID)
	if err != nil {
		h.writeSearchError(w, r, l, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   poi,
	})
}

// Categories handles GET /categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"categories": h.searchService.Categories(),
	})
}

func (h *Handler) decodeSearchRequest(w http.ResponseWriter, r *http.Request) (types.SearchRequest, bool) {
	req := types.SearchRequest{
		Category: chi.URLParam(r, "category"),
		City:     strings.TrimSpace(r.URL.Query().Get("city")),
		Country:  strings.TrimSpace(r.URL.Query().Get("country")),
	}

	if radiusStr := r.URL.Query().Get("radius"); radiusStr != "" {
		radius, err := strconv.Atoi(radiusStr)
		if err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid radius value")
			return types.SearchRequest{}, false
		}
		req.RadiusMeters = radius
	}
	return req, true
}

func (h *Handler) writeSearchError(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error) {
	switch {
	case errors.Is(err, types.ErrMissingPlace):
		api.ErrorResponse(w, r, http.StatusBadRequest, "Please provide at least city or country.")
	case errors.Is(err, types.ErrInvalidRadius):
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid radius value")
	case errors.Is(err, types.ErrInvalidCategory):
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid category")
	case errors.Is(err, types.ErrPlaceNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, "No matching city/country found")
	case errors.Is(err, types.ErrPOINotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, "POI not found")
	case errors.Is(err, types.ErrBackendUnavailable):
		l.ErrorContext(r.Context(), "overpass backend unavailable", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadGateway, "Search backend unavailable, please retry later")
	default:
		l.ErrorContext(r.Context(), "search failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
