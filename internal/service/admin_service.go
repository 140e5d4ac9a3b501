package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alfieprojectsdev/parkboard-sub005/internal/db"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/reject"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/repository"
)

// AdminService covers the administrative mutations: slot inventory,
// ownership assignment, role management and unconditional booking status
// overrides. All callers are behind the admin gate.
type AdminService struct {
	slots    *repository.SlotRepository
	bookings *repository.BookingRepository
	profiles *repository.ProfileRepository
}

func NewAdminService(slots *repository.SlotRepository, bookings *repository.BookingRepository, profiles *repository.ProfileRepository) *AdminService {
	return &AdminService{slots: slots, bookings: bookings, profiles: profiles}
}

func (s *AdminService) CreateSlot(ctx context.Context, number string, slotType db.SlotType, status db.SlotStatus, description *string) (*db.Slot, error) {
	now := time.Now().UTC()
	slot := &db.Slot{
		ID:          uuid.New(),
		Number:      number,
		Type:        slotType,
		Status:      status,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("creating slot: %w", err)
	}
	return slot, nil
}

func (s *AdminService) UpdateSlot(ctx context.Context, id uuid.UUID, number string, slotType db.SlotType, status db.SlotStatus, description *string) (*db.Slot, error) {
	slot := &db.Slot{
		ID:          id,
		Number:      number,
		Type:        slotType,
		Status:      status,
		Description: description,
	}
	if err := s.slots.Update(ctx, slot); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reject.New(reject.SlotNotFound, "slot %s not found", id)
		}
		return nil, fmt.Errorf("updating slot: %w", err)
	}
	updated, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reloading slot: %w", err)
	}
	if updated == nil {
		return nil, reject.New(reject.SlotNotFound, "slot %s not found", id)
	}
	return updated, nil
}

func (s *AdminService) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	if err := s.slots.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reject.New(reject.SlotNotFound, "slot %s not found", id)
		}
		return fmt.Errorf("deleting slot: %w", err)
	}
	return nil
}

// SetSlotOwner assigns a slot to a resident, or clears ownership when
// ownerID is nil. Ownership is an administrative mutation, never derived.
func (s *AdminService) SetSlotOwner(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) error {
	if ownerID != nil {
		profile, err := s.profiles.GetByID(ctx, *ownerID)
		if err != nil {
			return fmt.Errorf("looking up owner profile: %w", err)
		}
		if profile == nil {
			return reject.New(reject.NotFound, "profile %s not found", *ownerID)
		}
	}
	if err := s.slots.SetOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reject.New(reject.SlotNotFound, "slot %s not found", id)
		}
		return fmt.Errorf("setting slot owner: %w", err)
	}
	return nil
}

func (s *AdminService) ListBookings(ctx context.Context, date string, slotID *uuid.UUID, status *db.BookingStatus) ([]db.BookingWithSlot, error) {
	return s.bookings.ListAdmin(ctx, date, slotID, status)
}

// SetBookingStatus is the unconditional admin override
// (confirmed → cancelled/completed/no_show). No grace-period or ownership
// checks apply here.
func (s *AdminService) SetBookingStatus(ctx context.Context, id uuid.UUID, status db.BookingStatus) error {
	if err := s.bookings.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reject.New(reject.NotFound, "booking %s not found", id)
		}
		return fmt.Errorf("updating booking status: %w", err)
	}
	return nil
}

func (s *AdminService) ListProfiles(ctx context.Context) ([]db.Profile, error) {
	return s.profiles.List(ctx)
}

func (s *AdminService) SetProfileRole(ctx context.Context, id uuid.UUID, role db.Role) error {
	if err := s.profiles.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reject.New(reject.NotFound, "profile %s not found", id)
		}
		return fmt.Errorf("updating profile role: %w", err)
	}
	return nil
}
