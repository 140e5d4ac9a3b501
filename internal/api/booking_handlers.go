package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/alfieprojectsdev/parkboard-sub005/internal/auth"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/reject"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		RespondWithError(w, reject.New(reject.SlotNotFound, "slot id %q is not a valid uuid", req.SlotID))
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		RespondWithError(w, reject.New(reject.InvalidRange, "start_time %q is not a valid RFC3339 timestamp", req.StartTime))
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		RespondWithError(w, reject.New(reject.InvalidRange, "end_time %q is not a valid RFC3339 timestamp", req.EndTime))
		return
	}

	booking, err := h.Service.Create(r.Context(), ident, slotID, start, end, req.Notes)
	if err != nil {
		RespondWithError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, toBookingResponse(*booking))
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	bookings, err := h.Service.ListForUser(r.Context(), ident)
	if err != nil {
		RespondWithError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	booking, err := h.Service.Get(r.Context(), ident, id)
	if err != nil {
		RespondWithError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toBookingResponse(*booking))
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.Cancel(r.Context(), ident, id); err != nil {
		RespondWithError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Booking cancelled"})
}
