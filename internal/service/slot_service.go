package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alfieprojectsdev/parkboard-sub005/internal/db"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/reject"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/repository"
)

// SlotService covers the read side of the slot inventory for residents.
// Mutations are admin-only and live in AdminService.
type SlotService struct {
	slots *repository.SlotRepository
}

func NewSlotService(slots *repository.SlotRepository) *SlotService {
	return &SlotService{slots: slots}
}

func (s *SlotService) List(ctx context.Context, status *db.SlotStatus, slotType *db.SlotType) ([]db.Slot, error) {
	return s.slots.List(ctx, status, slotType)
}

func (s *SlotService) Get(ctx context.Context, id uuid.UUID) (*db.Slot, error) {
	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("looking up slot: %w", err)
	}
	if slot == nil {
		return nil, reject.New(reject.SlotNotFound, "slot %s not found", id)
	}
	return slot, nil
}
