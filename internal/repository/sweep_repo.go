package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/alfieprojectsdev/parkboard-sub005/internal/db"
)

type SweepRepository struct {
	DB *sqlx.DB
}

func NewSweepRepository(database *sqlx.DB) *SweepRepository {
	return &SweepRepository{DB: database}
}

// ConfirmedBookingIDsPastEndTime finds confirmed bookings whose end time has
// already passed.
func (r *SweepRepository) ConfirmedBookingIDsPastEndTime(ctx context.Context) ([]uuid.UUID, error) {
	query := `SELECT id FROM bookings WHERE status = 'confirmed' AND end_time < NOW()`
	var ids []uuid.UUID
	if err := r.DB.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("error querying confirmed bookings past end time: %w", err)
	}
	return ids, nil
}

func (r *SweepRepository) UpdateBookingStatuses(ctx context.Context, ids []uuid.UUID, newStatus db.BookingStatus) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.DB.ExecContext(ctx, query, newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating booking statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d bookings to '%s'", rowsAffected, newStatus)
	}
	return nil
}
