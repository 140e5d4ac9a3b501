package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/alfieprojectsdev/parkboard-sub005/internal/auth"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/db"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/reject"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/service"
)

type SlotHandler struct {
	Slots    *service.SlotService
	Bookings *service.BookingService
}

func NewSlotHandler(slots *service.SlotService, bookings *service.BookingService) *SlotHandler {
	return &SlotHandler{Slots: slots, Bookings: bookings}
}

func (h *SlotHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	var status *db.SlotStatus
	var slotType *db.SlotType

	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := db.ParseSlotStatus(raw)
		if err != nil {
			http.Error(w, "Invalid status filter", http.StatusBadRequest)
			return
		}
		status = &parsed
	}
	if raw := r.URL.Query().Get("type"); raw != "" {
		parsed, err := db.ParseSlotType(raw)
		if err != nil {
			http.Error(w, "Invalid type filter", http.StatusBadRequest)
			return
		}
		slotType = &parsed
	}

	slots, err := h.Slots.List(r.Context(), status, slotType)
	if err != nil {
		RespondWithError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toSlotResponses(slots))
}

func (h *SlotHandler) GetSlot(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	slot, err := h.Slots.Get(r.Context(), id)
	if err != nil {
		RespondWithError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toSlotResponse(*slot))
}

// CheckAvailability reports whether a slot is free of confirmed bookings in
// the half-open window [start, end), listing any conflicting intervals.
func (h *SlotHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		RespondWithError(w, reject.New(reject.InvalidRange, "start %q is not a valid RFC3339 timestamp", r.URL.Query().Get("start")))
		return
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		RespondWithError(w, reject.New(reject.InvalidRange, "end %q is not a valid RFC3339 timestamp", r.URL.Query().Get("end")))
		return
	}

	conflicts, err := h.Bookings.Availability(r.Context(), id, start, end)
	if err != nil {
		RespondWithError(w, err)
		return
	}

	resp := AvailabilityResponse{
		SlotID:    id,
		StartTime: start,
		EndTime:   end,
		Available: len(conflicts) == 0,
	}
	for _, b := range conflicts {
		resp.Conflicts = append(resp.Conflicts, BookedInterval{StartTime: b.StartTime, EndTime: b.EndTime})
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

// Me returns the requester's identity as the middleware resolved it.
func Me(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{
		"user_id": ident.UserID.String(),
		"email":   ident.Email,
		"role":    string(ident.Role),
	})
}
