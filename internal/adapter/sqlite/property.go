package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kosthub/kosthub/internal/domain"
)

// PropertyRepository implements domain.PropertyRepository using SQLite.
type PropertyRepository struct {
	db *sql.DB
}

// Compile-time check: PropertyRepository implements domain.PropertyRepository.
var _ domain.PropertyRepository = (*PropertyRepository)(nil)

// NewPropertyRepository wraps an open database connection.
func NewPropertyRepository(db *sql.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

const propertyColumns = `id, owner_id, name, address, description, image_ref,
	latitude, longitude, created_at, updated_at`

func (r *PropertyRepository) Create(ctx context.Context, p domain.Property) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO properties (`+propertyColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.OwnerID, p.Name, p.Address, p.Description, p.ImageRef,
		p.Latitude, p.Longitude,
		p.CreatedAt.Format(timeFormat),
		p.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting property: %w", err)
	}
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (domain.Property, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = ?`, id)

	p, err := scanProperty(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Property{}, domain.ErrPropertyNotFound
	}
	if err != nil {
		return domain.Property{}, fmt.Errorf("scanning property: %w", err)
	}
	return p, nil
}

func (r *PropertyRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Property, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+propertyColumns+` FROM properties
		 WHERE owner_id = ? ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	defer rows.Close()
	return collectProperties(rows)
}

// Search lists properties matching the filter, newest first. The query
// matches name and address with a case-insensitive LIKE.
func (r *PropertyRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties`
	var args []any

	if filter.Query != "" {
		query += ` WHERE name LIKE ? OR address LIKE ?`
		pattern := "%" + filter.Query + "%"
		args = append(args, pattern, pattern)
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching properties: %w", err)
	}
	defer rows.Close()
	return collectProperties(rows)
}

func (r *PropertyRepository) Update(ctx context.Context, p domain.Property) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE properties SET name = ?, address = ?, description = ?, image_ref = ?,
		 latitude = ?, longitude = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.Address, p.Description, p.ImageRef, p.Latitude, p.Longitude,
		time.Now().UTC().Format(timeFormat), p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func collectProperties(rows *sql.Rows) ([]domain.Property, error) {
	var properties []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning property row: %w", err)
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func scanProperty(scan func(...any) error) (domain.Property, error) {
	var p domain.Property
	var createdAt, updatedAt string

	err := scan(&p.ID, &p.OwnerID, &p.Name, &p.Address, &p.Description, &p.ImageRef,
		&p.Latitude, &p.Longitude, &createdAt, &updatedAt)
	if err != nil {
		return domain.Property{}, err
	}

	p.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	p.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)
	return p, nil
}
