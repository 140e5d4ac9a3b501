package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alfieprojectsdev/parkboard-sub005/internal/auth"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/config"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/db"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/reject"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/repository"
)

// SlotStore is the slot lookup the admission decision depends on.
// GetByID returns nil, nil when the slot does not exist.
type SlotStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*db.Slot, error)
}

// BookingStore is the booking persistence the admission decision depends
// on. Create returns repository.ErrBookingConflict when the store's
// exclusion constraint rejects the row.
type BookingStore interface {
	Create(ctx context.Context, booking *db.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*db.BookingWithSlot, error)
	CountOverlapping(ctx context.Context, slotID uuid.UUID, start, end time.Time) (int, error)
	ListOverlapping(ctx context.Context, slotID uuid.UUID, start, end time.Time) ([]db.Booking, error)
	GetConfirmedForUser(ctx context.Context, id, userID uuid.UUID) (*db.Booking, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]db.BookingWithSlot, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status db.BookingStatus) error
}

// BookingService owns the booking admission decision: whether a proposed
// reservation is admissible given the rules, slot state, ownership and the
// existing confirmed bookings on the slot.
type BookingService struct {
	slots    SlotStore
	bookings BookingStore
	rules    config.Rules
	now      func() time.Time
}

func NewBookingService(slots SlotStore, bookings BookingStore, rules config.Rules) *BookingService {
	return &BookingService{
		slots:    slots,
		bookings: bookings,
		rules:    rules,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create runs the admission sequence for a booking request. Each check
// short-circuits with its own rejection; anything that is not a
// *reject.Rejection is a storage failure.
//
// The overlap pre-check and the insert are not atomic: two concurrent
// requests can both pass the pre-check. The exclusion constraint on
// confirmed bookings is the actual correctness guarantee, and a write it
// rejects surfaces as SlotAlreadyBooked just like a failed pre-check.
func (s *BookingService) Create(ctx context.Context, requester auth.Identity, slotID uuid.UUID, start, end time.Time, notes *string) (*db.BookingWithSlot, error) {
	if !end.After(start) {
		return nil, reject.New(reject.InvalidRange, "end time %s must be after start time %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	duration := end.Sub(start)
	if duration < s.rules.MinDuration || duration > s.rules.MaxDuration {
		return nil, reject.New(reject.DurationOutOfBounds, "booking duration %s must be between %s and %s", duration, s.rules.MinDuration, s.rules.MaxDuration)
	}

	if start.Sub(s.now()) > s.rules.MaxAdvance {
		return nil, reject.New(reject.TooFarInAdvance, "start time %s is more than %s ahead", start.Format(time.RFC3339), s.rules.MaxAdvance)
	}

	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("looking up slot: %w", err)
	}
	if slot == nil {
		return nil, reject.New(reject.SlotNotFound, "slot %s not found", slotID)
	}
	if slot.Status != db.SlotStatusAvailable {
		return nil, reject.New(reject.SlotUnavailable, "slot %s is not available (status: %s)", slot.Number, slot.Status)
	}

	if !auth.IsOwnerOrAdmin(requester, slot) {
		return nil, reject.New(reject.SlotReservedForOther, "slot %s is reserved for another resident", slot.Number)
	}

	overlapping, err := s.bookings.CountOverlapping(ctx, slotID, start, end)
	if err != nil {
		return nil, fmt.Errorf("checking overlap: %w", err)
	}
	if overlapping > 0 {
		return nil, reject.New(reject.SlotAlreadyBooked, "slot %s is already booked during the requested time", slot.Number)
	}

	now := s.now()
	booking := &db.Booking{
		ID:        uuid.New(),
		UserID:    requester.UserID,
		SlotID:    slotID,
		StartTime: start,
		EndTime:   end,
		Status:    db.BookingStatusConfirmed,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrBookingConflict) {
			return nil, reject.New(reject.SlotAlreadyBooked, "slot %s is already booked during the requested time", slot.Number)
		}
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	return &db.BookingWithSlot{
		Booking:    *booking,
		SlotNumber: slot.Number,
		SlotType:   slot.Type,
	}, nil
}

// Cancel transitions a requester's confirmed booking to cancelled,
// permitted until one hour past its start time.
func (s *BookingService) Cancel(ctx context.Context, requester auth.Identity, bookingID uuid.UUID) error {
	booking, err := s.bookings.GetConfirmedForUser(ctx, bookingID, requester.UserID)
	if err != nil {
		return fmt.Errorf("looking up booking: %w", err)
	}
	if booking == nil {
		return reject.New(reject.NotFound, "no confirmed booking %s for this resident", bookingID)
	}

	if s.now().After(booking.StartTime.Add(s.rules.CancelGrace)) {
		return reject.New(reject.TooLateToCancel, "booking started at %s and can no longer be cancelled", booking.StartTime.Format(time.RFC3339))
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, db.BookingStatusCancelled); err != nil {
		return fmt.Errorf("cancelling booking: %w", err)
	}
	return nil
}

func (s *BookingService) ListForUser(ctx context.Context, requester auth.Identity) ([]db.BookingWithSlot, error) {
	return s.bookings.ListForUser(ctx, requester.UserID)
}

// Get returns a booking visible to the requester: their own, or any
// booking when the requester is an admin.
func (s *BookingService) Get(ctx context.Context, requester auth.Identity, bookingID uuid.UUID) (*db.BookingWithSlot, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("looking up booking: %w", err)
	}
	if booking == nil || (booking.UserID != requester.UserID && !requester.IsAdmin()) {
		return nil, reject.New(reject.NotFound, "booking %s not found", bookingID)
	}
	return booking, nil
}

// Availability reports the confirmed bookings on a slot intersecting the
// half-open window [start, end).
func (s *BookingService) Availability(ctx context.Context, slotID uuid.UUID, start, end time.Time) ([]db.Booking, error) {
	if !end.After(start) {
		return nil, reject.New(reject.InvalidRange, "end time %s must be after start time %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("looking up slot: %w", err)
	}
	if slot == nil {
		return nil, reject.New(reject.SlotNotFound, "slot %s not found", slotID)
	}
	return s.bookings.ListOverlapping(ctx, slotID, start, end)
}
