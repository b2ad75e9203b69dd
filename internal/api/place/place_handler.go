package place

import (
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-poi-engine/internal/api"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/gazetteer"
)

// Handler exposes the gazetteer's country and city lists.
type Handler struct {
	gazetteer gazetteer.Gazetteer
	logger    *slog.Logger
}

func NewHandler(g gazetteer.Gazetteer, logger *slog.Logger) *Handler {
	return &Handler{gazetteer: g, logger: logger}
}

// Countries handles GET /countries.
func (h *Handler) Countries(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("PlaceHandler").Start(r.Context(), "Countries", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/countries"),
	))
	defer span.End()

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"countries": h.gazetteer.Countries(),
	})
}

// Cities handles GET /cities?country=.
func (h *Handler) Cities(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("PlaceHandler").Start(r.Context(), "Cities", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/cities"),
	))
	defer span.End()

	country := strings.TrimSpace(r.URL.Query().Get("country"))
	if country == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "No country provided")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"cities": h.gazetteer.Cities(country),
	})
}
