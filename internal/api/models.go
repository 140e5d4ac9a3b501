package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/alfieprojectsdev/parkboard-sub005/internal/db"
)

// Requests. Timestamps arrive as RFC3339 strings and are parsed at the
// boundary so an unparseable value becomes an InvalidRange rejection.

type CreateBookingRequest struct {
	SlotID    string  `json:"slot_id"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Notes     *string `json:"notes,omitempty"`
}

type SlotRequest struct {
	Number      string  `json:"number"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	Description *string `json:"description,omitempty"`
}

type SetSlotOwnerRequest struct {
	OwnerID *string `json:"owner_id"` // null clears ownership
}

type SetBookingStatusRequest struct {
	Status string `json:"status"`
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

// Responses.

type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	SlotID     uuid.UUID `json:"slot_id"`
	SlotNumber string    `json:"slot_number,omitempty"`
	SlotType   string    `json:"slot_type,omitempty"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toBookingResponse(b db.BookingWithSlot) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		SlotID:     b.SlotID,
		SlotNumber: b.SlotNumber,
		SlotType:   string(b.SlotType),
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     string(b.Status),
		Notes:      b.Notes,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func toBookingResponses(bookings []db.BookingWithSlot) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}

type SlotResponse struct {
	ID          uuid.UUID  `json:"id"`
	Number      string     `json:"number"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	OwnerID     *uuid.UUID `json:"owner_id,omitempty"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toSlotResponse(s db.Slot) SlotResponse {
	return SlotResponse{
		ID:          s.ID,
		Number:      s.Number,
		Type:        string(s.Type),
		Status:      string(s.Status),
		OwnerID:     s.OwnerID,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toSlotResponses(slots []db.Slot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, toSlotResponse(s))
	}
	return out
}

type BookedInterval struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type AvailabilityResponse struct {
	SlotID    uuid.UUID        `json:"slot_id"`
	StartTime time.Time        `json:"start_time"`
	EndTime   time.Time        `json:"end_time"`
	Available bool             `json:"available"`
	Conflicts []BookedInterval `json:"conflicts,omitempty"`
}

type ProfileResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	UnitNumber string    `json:"unit_number"`
	Role       string    `json:"role"`
}

func toProfileResponse(p db.Profile) ProfileResponse {
	return ProfileResponse{ID: p.ID, Name: p.Name, UnitNumber: p.UnitNumber, Role: string(p.Role)}
}
