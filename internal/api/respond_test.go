package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/alfieprojectsdev/parkboard-sub005/internal/auth"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/db"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/reject"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/service"
)

func TestRespondWithErrorRejection(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, reject.New(reject.SlotAlreadyBooked, "slot A-101 is already booked during the requested time"))

	require.Equal(t, http.StatusConflict, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "slot_already_booked", body["code"])
	require.Contains(t, body["error"], "A-101")
}

func TestRespondWithErrorStorageFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// Storage failures stay generic so clients know to retry, not re-pick.
	require.Equal(t, "Internal server error", body["error"])
	require.Empty(t, body["code"])
}

func TestCreateBookingRejectsUnparseableTimestamps(t *testing.T) {
	handler := NewBookingHandler(&service.BookingService{})
	ident := auth.Identity{UserID: uuid.New(), Role: db.RoleResident}

	body := `{"slot_id":"` + uuid.NewString() + `","start_time":"yesterday","end_time":"2024-01-15T13:00:00Z"}`
	req := httptest.NewRequest("POST", "/api/v1/bookings", strings.NewReader(body))
	req = req.WithContext(auth.WithIdentity(req.Context(), ident))
	rec := httptest.NewRecorder()
	handler.CreateBooking(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "invalid_range", resp["code"])
}

func TestCreateBookingRequiresIdentity(t *testing.T) {
	handler := NewBookingHandler(&service.BookingService{})
	req := httptest.NewRequest("POST", "/api/v1/bookings", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.CreateBooking(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
