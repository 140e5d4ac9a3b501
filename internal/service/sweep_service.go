package service

import (
	"context"
	"fmt"
	"log"

	"github.com/alfieprojectsdev/parkboard-sub005/internal/db"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/repository"
)

type SweepService struct {
	Repo *repository.SweepRepository
}

func NewSweepService(repo *repository.SweepRepository) *SweepService {
	return &SweepService{Repo: repo}
}

// CompleteFinishedBookings finds confirmed bookings whose end time has
// passed and marks them completed. Admin overrides can still rewrite a
// swept booking to no_show afterwards.
func (s *SweepService) CompleteFinishedBookings(ctx context.Context) error {
	log.Println("Cron Job: Checking for bookings to mark as 'completed'...")

	ids, err := s.Repo.ConfirmedBookingIDsPastEndTime(ctx)
	if err != nil {
		return fmt.Errorf("cron job: failed to get confirmed bookings past end time: %w", err)
	}

	if len(ids) == 0 {
		log.Println("Cron Job: No confirmed bookings found past their end time.")
		return nil
	}

	log.Printf("Cron Job: Found %d bookings to mark as 'completed'.", len(ids))

	if err := s.Repo.UpdateBookingStatuses(ctx, ids, db.BookingStatusCompleted); err != nil {
		return fmt.Errorf("cron job: failed to update booking statuses: %w", err)
	}
	return nil
}
