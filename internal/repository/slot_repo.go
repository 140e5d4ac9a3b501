package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/alfieprojectsdev/parkboard-sub005/internal/db"
)

type SlotRepository struct {
	DB *sqlx.DB
}

func NewSlotRepository(database *sqlx.DB) *SlotRepository {
	return &SlotRepository{DB: database}
}

const slotColumns = `id, number, slot_type, status, owner_id, description, created_at, updated_at`

// GetByID returns nil, nil when the slot does not exist.
func (r *SlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*db.Slot, error) {
	var slot db.Slot
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`
	err := r.DB.GetContext(ctx, &slot, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying slot: %w", err)
	}
	return &slot, nil
}

func (r *SlotRepository) List(ctx context.Context, status *db.SlotStatus, slotType *db.SlotType) ([]db.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE 1=1`
	args := []any{}
	idx := 1

	if status != nil {
		query += " AND status = $" + strconv.Itoa(idx)
		args = append(args, *status)
		idx++
	}
	if slotType != nil {
		query += " AND slot_type = $" + strconv.Itoa(idx)
		args = append(args, *slotType)
		idx++
	}
	query += " ORDER BY number"

	var slots []db.Slot
	if err := r.DB.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("error listing slots: %w", err)
	}
	return slots, nil
}

func (r *SlotRepository) Create(ctx context.Context, slot *db.Slot) error {
	query := `
		INSERT INTO slots (id, number, slot_type, status, owner_id, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`
	return r.DB.QueryRowContext(ctx, query,
		slot.ID, slot.Number, slot.Type, slot.Status, slot.OwnerID, slot.Description, slot.CreatedAt, slot.UpdatedAt,
	).Scan(&slot.CreatedAt, &slot.UpdatedAt)
}

func (r *SlotRepository) Update(ctx context.Context, slot *db.Slot) error {
	query := `
		UPDATE slots
		SET number = $1, slot_type = $2, status = $3, description = $4, updated_at = NOW()
		WHERE id = $5`
	result, err := r.DB.ExecContext(ctx, query, slot.Number, slot.Type, slot.Status, slot.Description, slot.ID)
	if err != nil {
		return fmt.Errorf("error updating slot: %w", err)
	}
	return requireRow(result)
}

func (r *SlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting slot: %w", err)
	}
	return requireRow(result)
}

// SetOwner assigns or clears (ownerID == nil) slot ownership.
func (r *SlotRepository) SetOwner(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE slots SET owner_id = $1, updated_at = NOW() WHERE id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("error setting slot owner: %w", err)
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
