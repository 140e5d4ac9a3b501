package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/alfieprojectsdev/parkboard-sub005/internal/db"
)

// ErrBookingConflict is returned when the insert loses the race the overlap
// pre-check cannot close: the exclusion constraint on confirmed bookings
// rejected the row. Callers treat it exactly like a failed overlap check.
var ErrBookingConflict = errors.New("booking conflicts with an existing reservation")

type BookingRepository struct {
	DB *sqlx.DB
}

func NewBookingRepository(database *sqlx.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

const bookingColumns = `id, user_id, slot_id, start_time, end_time, status, notes, created_at, updated_at`

func (r *BookingRepository) Create(ctx context.Context, booking *db.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, slot_id, start_time, end_time, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query,
		booking.ID, booking.UserID, booking.SlotID, booking.StartTime, booking.EndTime,
		booking.Status, booking.Notes, booking.CreatedAt, booking.UpdatedAt,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			// 23P01 exclusion_violation, 23505 unique_violation
			if pqErr.Code == "23P01" || pqErr.Code == "23505" {
				return ErrBookingConflict
			}
		}
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// CountOverlapping counts confirmed bookings on the slot intersecting the
// half-open interval [start, end). A booking ending exactly at start (or
// starting exactly at end) does not overlap.
func (r *BookingRepository) CountOverlapping(ctx context.Context, slotID uuid.UUID, start, end time.Time) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE slot_id = $1
		  AND status = 'confirmed'
		  AND start_time < $3
		  AND end_time > $2`
	if err := r.DB.GetContext(ctx, &count, query, slotID, start, end); err != nil {
		return 0, fmt.Errorf("error counting overlapping bookings: %w", err)
	}
	return count, nil
}

// ListOverlapping returns the confirmed bookings on the slot intersecting
// [start, end), for the availability view.
func (r *BookingRepository) ListOverlapping(ctx context.Context, slotID uuid.UUID, start, end time.Time) ([]db.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE slot_id = $1
		  AND status = 'confirmed'
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time`
	var bookings []db.Booking
	if err := r.DB.SelectContext(ctx, &bookings, query, slotID, start, end); err != nil {
		return nil, fmt.Errorf("error listing overlapping bookings: %w", err)
	}
	return bookings, nil
}

// GetByID returns nil, nil when the booking does not exist.
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*db.BookingWithSlot, error) {
	var booking db.BookingWithSlot
	query := `
		SELECT b.id, b.user_id, b.slot_id, b.start_time, b.end_time, b.status, b.notes,
		       b.created_at, b.updated_at, s.number AS slot_number, s.slot_type
		FROM bookings b
		JOIN slots s ON s.id = b.slot_id
		WHERE b.id = $1`
	err := r.DB.GetContext(ctx, &booking, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &booking, nil
}

// GetConfirmedForUser looks up a confirmed booking by id belonging to the
// given requester. Returns nil, nil when no such booking exists.
func (r *BookingRepository) GetConfirmedForUser(ctx context.Context, id, userID uuid.UUID) (*db.Booking, error) {
	var booking db.Booking
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1 AND user_id = $2 AND status = 'confirmed'`
	err := r.DB.GetContext(ctx, &booking, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &booking, nil
}

func (r *BookingRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]db.BookingWithSlot, error) {
	query := `
		SELECT b.id, b.user_id, b.slot_id, b.start_time, b.end_time, b.status, b.notes,
		       b.created_at, b.updated_at, s.number AS slot_number, s.slot_type
		FROM bookings b
		JOIN slots s ON s.id = b.slot_id
		WHERE b.user_id = $1
		ORDER BY b.start_time DESC`
	var bookings []db.BookingWithSlot
	if err := r.DB.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	return bookings, nil
}

// ListAdmin returns bookings across all residents, optionally filtered by
// start date, slot and status.
func (r *BookingRepository) ListAdmin(ctx context.Context, date string, slotID *uuid.UUID, status *db.BookingStatus) ([]db.BookingWithSlot, error) {
	query := `
		SELECT b.id, b.user_id, b.slot_id, b.start_time, b.end_time, b.status, b.notes,
		       b.created_at, b.updated_at, s.number AS slot_number, s.slot_type
		FROM bookings b
		JOIN slots s ON s.id = b.slot_id
		WHERE 1=1`
	args := []any{}
	idx := 1

	if date != "" {
		query += " AND DATE(b.start_time) = $" + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}
	if slotID != nil {
		query += " AND b.slot_id = $" + strconv.Itoa(idx)
		args = append(args, *slotID)
		idx++
	}
	if status != nil {
		query += " AND b.status = $" + strconv.Itoa(idx)
		args = append(args, *status)
		idx++
	}
	query += " ORDER BY b.start_time DESC"

	var bookings []db.BookingWithSlot
	if err := r.DB.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	return bookings, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db.BookingStatus) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating booking status: %w", err)
	}
	return requireRow(result)
}
