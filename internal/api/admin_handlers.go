package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/alfieprojectsdev/parkboard-sub005/internal/db"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/service"
)

type AdminHandler struct {
	Service *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req SlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	slotType, status, ok := parseSlotEnums(w, req)
	if !ok {
		return
	}
	slot, err := h.Service.CreateSlot(r.Context(), req.Number, slotType, status, req.Description)
	if err != nil {
		RespondWithError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, toSlotResponse(*slot))
}

func (h *AdminHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req SlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	slotType, status, ok := parseSlotEnums(w, req)
	if !ok {
		return
	}
	slot, err := h.Service.UpdateSlot(r.Context(), id, req.Number, slotType, status, req.Description)
	if err != nil {
		RespondWithError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toSlotResponse(*slot))
}

func (h *AdminHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.DeleteSlot(r.Context(), id); err != nil {
		RespondWithError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Slot deleted"})
}

func (h *AdminHandler) SetSlotOwner(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req SetSlotOwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	var ownerID *uuid.UUID
	if req.OwnerID != nil {
		parsed, err := uuid.Parse(*req.OwnerID)
		if err != nil {
			http.Error(w, "Invalid owner ID", http.StatusBadRequest)
			return
		}
		ownerID = &parsed
	}
	if err := h.Service.SetSlotOwner(r.Context(), id, ownerID); err != nil {
		RespondWithError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Slot owner updated"})
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	var slotID *uuid.UUID
	if raw := r.URL.Query().Get("slot_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "Invalid slot_id filter", http.StatusBadRequest)
			return
		}
		slotID = &parsed
	}

	var status *db.BookingStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := db.ParseBookingStatus(raw)
		if err != nil {
			http.Error(w, "Invalid status filter", http.StatusBadRequest)
			return
		}
		status = &parsed
	}

	bookings, err := h.Service.ListBookings(r.Context(), date, slotID, status)
	if err != nil {
		RespondWithError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toBookingResponses(bookings))
}

func (h *AdminHandler) SetBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req SetBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	status, err := db.ParseBookingStatus(req.Status)
	if err != nil {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}
	// Overrides only move bookings out of confirmed; re-confirming a
	// booking would bypass the admission checks entirely.
	if status == db.BookingStatusConfirmed {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}
	if err := h.Service.SetBookingStatus(r.Context(), id, status); err != nil {
		RespondWithError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Booking status updated"})
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.Service.ListProfiles(r.Context())
	if err != nil {
		RespondWithError(w, err)
		return
	}
	out := make([]ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toProfileResponse(p))
	}
	RespondWithJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	role, err := db.ParseRole(req.Role)
	if err != nil {
		http.Error(w, "Invalid role", http.StatusBadRequest)
		return
	}
	if err := h.Service.SetProfileRole(r.Context(), id, role); err != nil {
		RespondWithError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Role updated"})
}

func parseSlotEnums(w http.ResponseWriter, req SlotRequest) (db.SlotType, db.SlotStatus, bool) {
	slotType, err := db.ParseSlotType(req.Type)
	if err != nil {
		http.Error(w, "Invalid slot type", http.StatusBadRequest)
		return "", "", false
	}
	status, err := db.ParseSlotStatus(req.Status)
	if err != nil {
		http.Error(w, "Invalid slot status", http.StatusBadRequest)
		return "", "", false
	}
	return slotType, status, true
}
