package booking

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-poi-engine/internal/api"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/api/search"
)

// BookRequest reserves a visit to a previously searched POI.
type BookRequest struct {
	POIID     string `json:"poi_id"`
	Category  string `json:"category,omitempty"`
	VisitDate string `json:"visit_date,omitempty"`
}

// CancelRequest cancels a confirmed booking.
type CancelRequest struct {
	BookingID string `json:"booking_id"`
}

// Booking is a mock confirmation; bookings live in process memory only.
type Booking struct {
	BookingID string    `json:"booking_id"`
	POIID     string    `json:"poi_id"`
	Category  string    `json:"category,omitempty"`
	VisitDate string    `json:"visit_date,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Handler implements the mock booking endpoints carried over from the
// hotel/sightseeing flows.
type Handler struct {
	logger *slog.Logger

	mu       sync.Mutex
	bookings map[string]Booking
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		bookings: make(map[string]Booking),
	}
}

// Book handles POST /bookings.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BookingHandler").Start(r.Context(), "Book", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/bookings"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Book"))

	var req BookRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.POIID == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Missing 'poi_id' in request body.")
		return
	}
	if _, _, err := search.ParsePOIID(req.POIID); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid poi_id format")
		return
	}

	booking := Booking{
		BookingID: "BOOK-" + uuid.NewString(),
		POIID:     req.POIID,
		Category:  req.Category,
		VisitDate: req.VisitDate,
		CreatedAt: time.Now().UTC(),
	}

	h.mu.Lock()
	h.bookings[booking.BookingID] = booking
	h.mu.Unlock()

	l.InfoContext(ctx, "booking confirmed", slog.String("booking_id", booking.BookingID), slog.String("poi_id", booking.POIID))
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Booking confirmed",
		"booking": booking,
	})
}

// Cancel handles POST /bookings/cancel.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("BookingHandler").Start(r.Context(), "Cancel", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/bookings/cancel"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Cancel"))

	var req CancelRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.BookingID == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Missing 'booking_id' in request body.")
		return
	}

	h.mu.Lock()
	_, ok := h.bookings[req.BookingID]
	if ok {
		delete(h.bookings, req.BookingID)
	}
	h.mu.Unlock()

	if !ok {
		api.ErrorResponse(w, r, http.StatusNotFound, "Booking not found")
		return
	}

	l.InfoContext(ctx, "booking cancelled", slog.String("booking_id", req.BookingID))
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"message":    "Booking has been cancelled",
		"booking_id": req.BookingID,
	})
}
