package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kosthub/kosthub/internal/domain"
)

// ProfileRepository implements domain.ProfileRepository using SQLite.
type ProfileRepository struct {
	db *sql.DB
}

// Compile-time check: ProfileRepository implements domain.ProfileRepository.
var _ domain.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository wraps an open database connection.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, p domain.Profile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (id, role, full_name, phone, avatar_ref, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, string(p.Role), p.FullName, p.Phone, p.AvatarRef,
		p.CreatedAt.Format(timeFormat),
		p.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (domain.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, role, full_name, phone, avatar_ref, created_at, updated_at
		 FROM profiles WHERE id = ?`, id)

	var p domain.Profile
	var role, createdAt, updatedAt string
	err := row.Scan(&p.ID, &role, &p.FullName, &p.Phone, &p.AvatarRef, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("scanning profile: %w", err)
	}

	p.Role = domain.Role(role)
	p.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	p.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)
	return p, nil
}

// Update rewrites the mutable fields. Role is intentionally not part of the
// update: roles are fixed at sign-up.
func (r *ProfileRepository) Update(ctx context.Context, p domain.Profile) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET full_name = ?, phone = ?, avatar_ref = ?, updated_at = ?
		 WHERE id = ?`,
		p.FullName, p.Phone, p.AvatarRef,
		time.Now().UTC().Format(timeFormat), p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
