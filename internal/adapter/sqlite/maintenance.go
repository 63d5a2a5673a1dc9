package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kosthub/kosthub/internal/domain"
)

// MaintenanceRepository implements domain.MaintenanceRepository using SQLite.
type MaintenanceRepository struct {
	db *sql.DB
}

// Compile-time check: MaintenanceRepository implements domain.MaintenanceRepository.
var _ domain.MaintenanceRepository = (*MaintenanceRepository)(nil)

// NewMaintenanceRepository wraps an open database connection.
func NewMaintenanceRepository(db *sql.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

const maintenanceColumns = `id, property_id, room_id, reporter_id, title, description,
	image_ref, status, created_at, updated_at`

func (r *MaintenanceRepository) Create(ctx context.Context, m domain.MaintenanceRequest) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO maintenance_requests (`+maintenanceColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.PropertyID, m.RoomID, m.ReporterID, m.Title, m.Description,
		m.ImageRef, string(m.Status),
		m.CreatedAt.Format(timeFormat),
		m.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting maintenance request: %w", err)
	}
	return nil
}

const maintenanceDetailQuery = `SELECT m.id, m.property_id, m.room_id, m.reporter_id, m.title, m.description,
	m.image_ref, m.status, m.created_at, m.updated_at, p.owner_id
	FROM maintenance_requests m
	JOIN properties p ON p.id = m.property_id`

func (r *MaintenanceRepository) GetDetail(ctx context.Context, id string) (domain.MaintenanceDetail, error) {
	row := r.db.QueryRowContext(ctx, maintenanceDetailQuery+` WHERE m.id = ?`, id)

	d, err := scanMaintenanceDetail(row.Scan)
	if err == sql.ErrNoRows {
		return domain.MaintenanceDetail{}, domain.ErrRequestNotFound
	}
	if err != nil {
		return domain.MaintenanceDetail{}, fmt.Errorf("scanning maintenance detail: %w", err)
	}
	return d, nil
}

func (r *MaintenanceRepository) ListByReporter(ctx context.Context, reporterID string) ([]domain.MaintenanceRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_requests
		 WHERE reporter_id = ? ORDER BY created_at DESC`, reporterID)
	if err != nil {
		return nil, fmt.Errorf("listing maintenance requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.MaintenanceRequest
	for rows.Next() {
		m, err := scanMaintenance(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning maintenance row: %w", err)
		}
		requests = append(requests, m)
	}
	return requests, rows.Err()
}

func (r *MaintenanceRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.MaintenanceDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		maintenanceDetailQuery+` WHERE p.owner_id = ? ORDER BY m.created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing owner maintenance requests: %w", err)
	}
	defer rows.Close()

	var details []domain.MaintenanceDetail
	for rows.Next() {
		d, err := scanMaintenanceDetail(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning maintenance detail row: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *MaintenanceRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE maintenance_requests SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC().Format(timeFormat), id,
	)
	if err != nil {
		return fmt.Errorf("updating maintenance status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func scanMaintenance(scan func(...any) error) (domain.MaintenanceRequest, error) {
	var m domain.MaintenanceRequest
	var status, createdAt, updatedAt string

	err := scan(&m.ID, &m.PropertyID, &m.RoomID, &m.ReporterID, &m.Title, &m.Description,
		&m.ImageRef, &status, &createdAt, &updatedAt)
	if err != nil {
		return domain.MaintenanceRequest{}, err
	}

	m.Status = domain.Status(status)
	m.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	m.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)
	return m, nil
}

func scanMaintenanceDetail(scan func(...any) error) (domain.MaintenanceDetail, error) {
	var d domain.MaintenanceDetail
	var status, createdAt, updatedAt string

	err := scan(&d.ID, &d.PropertyID, &d.RoomID, &d.ReporterID, &d.Title, &d.Description,
		&d.ImageRef, &status, &createdAt, &updatedAt, &d.OwnerID)
	if err != nil {
		return domain.MaintenanceDetail{}, err
	}

	d.Status = domain.Status(status)
	d.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	d.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)
	return d, nil
}
