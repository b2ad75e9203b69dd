package booking

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	handler(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func TestBookAndCancel(t *testing.T) {
	h := NewHandler(testLogger())

	rec, body := postJSON(t, h.Book, `{"poi_id": "node/123", "category": "hotels", "visit_date": "2026-10-01"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])

	booking, ok := body["booking"].(map[string]any)
	require.True(t, ok)
	bookingID, _ := booking["booking_id"].(string)
	assert.True(t, strings.HasPrefix(bookingID, "BOOK-"))
	assert.Equal(t, "node/123", booking["poi_id"])

	rec, body = postJSON(t, h.Cancel, `{"booking_id": "`+bookingID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, bookingID, body["booking_id"])

	// Cancelling twice reports not found.
	rec, _ = postJSON(t, h.Cancel, `{"booking_id": "`+bookingID+`"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookRejectsMissingPOIID(t *testing.T) {
	h := NewHandler(testLogger())

	rec, body := postJSON(t, h.Book, `{"category": "hotels"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", body["status"])
}

func TestBookRejectsMalformedPOIID(t *testing.T) {
	h := NewHandler(testLogger())

	for _, id := range []string{"123", "building/5", "node/abc"} {
		rec, _ := postJSON(t, h.Book, `{"poi_id": "`+id+`"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "poi_id %q should be rejected", id)
	}
}

func TestBookRejectsBadJSON(t *testing.T) {
	h := NewHandler(testLogger())

	rec, _ := postJSON(t, h.Book, `{"poi_id": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelUnknownBooking(t *testing.T) {
	h := NewHandler(testLogger())

	rec, _ := postJSON(t, h.Cancel, `{"booking_id": "BOOK-does-not-exist"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelMissingBookingID(t *testing.T) {
	h := NewHandler(testLogger())

	rec, _ := postJSON(t, h.Cancel, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
