package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/alfieprojectsdev/parkboard-sub005/internal/db"
)

type ProfileRepository struct {
	DB *sqlx.DB
}

func NewProfileRepository(database *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{DB: database}
}

const profileColumns = `id, name, unit_number, role, created_at, updated_at`

// GetByID returns nil, nil when the profile does not exist.
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*db.Profile, error) {
	var profile db.Profile
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	err := r.DB.GetContext(ctx, &profile, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying profile: %w", err)
	}
	return &profile, nil
}

// Role implements auth.RoleSource. Users the auth provider knows but who
// have no profile row yet are treated as residents.
func (r *ProfileRepository) Role(ctx context.Context, userID uuid.UUID) (db.Role, error) {
	var role db.Role
	err := r.DB.GetContext(ctx, &role, `SELECT role FROM profiles WHERE id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return db.RoleResident, nil
		}
		return "", fmt.Errorf("error querying profile role: %w", err)
	}
	return role, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]db.Profile, error) {
	var profiles []db.Profile
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY unit_number, name`
	if err := r.DB.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("error listing profiles: %w", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) UpdateRole(ctx context.Context, id uuid.UUID, role db.Role) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE profiles SET role = $1, updated_at = NOW() WHERE id = $2`, role, id)
	if err != nil {
		return fmt.Errorf("error updating profile role: %w", err)
	}
	return requireRow(result)
}
