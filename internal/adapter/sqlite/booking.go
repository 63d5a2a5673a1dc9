package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kosthub/kosthub/internal/domain"
)

// BookingRepository implements domain.BookingRepository using SQLite.
type BookingRepository struct {
	db *sql.DB
}

// Compile-time check: BookingRepository implements domain.BookingRepository.
var _ domain.BookingRepository = (*BookingRepository)(nil)

// NewBookingRepository wraps an open database connection.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, room_id, tenant_id, start_date, end_date, total_price, status,
	occupant_name, occupant_ktp_number, occupant_ktp_ref, rejection_reason, created_at, updated_at`

func (r *BookingRepository) Create(ctx context.Context, b domain.Booking) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (`+bookingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.RoomID, b.TenantID,
		b.StartDate.UTC().Format(timeFormat),
		b.EndDate.UTC().Format(timeFormat),
		b.TotalPrice, string(b.Status),
		b.OccupantName, b.OccupantKTPNumber, b.OccupantKTPRef, b.RejectionReason,
		b.CreatedAt.Format(timeFormat),
		b.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (domain.Booking, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)

	b, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	if err != nil {
		return domain.Booking{}, fmt.Errorf("scanning booking: %w", err)
	}
	return b, nil
}

const bookingDetailQuery = `SELECT b.id, b.room_id, b.tenant_id, b.start_date, b.end_date, b.total_price, b.status,
	b.occupant_name, b.occupant_ktp_number, b.occupant_ktp_ref, b.rejection_reason, b.created_at, b.updated_at,
	r.name, r.price_monthly, p.id, p.name, p.owner_id
	FROM bookings b
	JOIN rooms r ON r.id = b.room_id
	JOIN properties p ON p.id = r.property_id`

func (r *BookingRepository) GetDetail(ctx context.Context, id string) (domain.BookingDetail, error) {
	row := r.db.QueryRowContext(ctx, bookingDetailQuery+` WHERE b.id = ?`, id)

	d, err := scanBookingDetail(row.Scan)
	if err == sql.ErrNoRows {
		return domain.BookingDetail{}, domain.ErrBookingNotFound
	}
	if err != nil {
		return domain.BookingDetail{}, fmt.Errorf("scanning booking detail: %w", err)
	}
	return d, nil
}

func (r *BookingRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE tenant_id = ? ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		bookingDetailQuery+` WHERE p.owner_id = ? ORDER BY b.created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing owner bookings: %w", err)
	}
	defer rows.Close()

	var details []domain.BookingDetail
	for rows.Next() {
		d, err := scanBookingDetail(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning booking detail row: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// ApplyTransition commits the booking status change, the optional room
// occupancy flip, and the tenant notification atomically. A failure in any
// step rolls back the others.
func (r *BookingRepository) ApplyTransition(ctx context.Context, b domain.Booking, occupancy *domain.RoomOccupancy, note domain.Notification) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(timeFormat)

	result, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = ?, rejection_reason = ?, updated_at = ? WHERE id = ?`,
		string(b.Status), b.RejectionReason, now, b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating booking status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrBookingNotFound
	}

	if occupancy != nil {
		if _, err := tx.ExecContext(ctx,
			`UPDATE rooms SET is_occupied = ?, updated_at = ? WHERE id = ?`,
			boolToInt(occupancy.Occupied), now, occupancy.RoomID,
		); err != nil {
			return fmt.Errorf("updating room occupancy: %w", err)
		}
	}

	if err := insertNotificationTx(ctx, tx, note); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing booking transition: %w", err)
	}
	return nil
}

func (r *BookingRepository) SetOccupant(ctx context.Context, id, name, ktpNumber, ktpRef string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET occupant_name = ?, occupant_ktp_number = ?, occupant_ktp_ref = ?, updated_at = ?
		 WHERE id = ?`,
		name, ktpNumber, ktpRef, time.Now().UTC().Format(timeFormat), id,
	)
	if err != nil {
		return fmt.Errorf("updating occupant data: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// scanBooking scans one booking row via the given Scan function, so it works
// for both QueryRow and Rows.
func scanBooking(scan func(...any) error) (domain.Booking, error) {
	var b domain.Booking
	var status, start, end, createdAt, updatedAt string

	err := scan(&b.ID, &b.RoomID, &b.TenantID, &start, &end, &b.TotalPrice, &status,
		&b.OccupantName, &b.OccupantKTPNumber, &b.OccupantKTPRef, &b.RejectionReason,
		&createdAt, &updatedAt)
	if err != nil {
		return domain.Booking{}, err
	}

	b.Status = domain.Status(status)
	b.StartDate, _ = time.Parse(timeFormat, start)
	b.EndDate, _ = time.Parse(timeFormat, end)
	b.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	b.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)
	return b, nil
}

func scanBookingDetail(scan func(...any) error) (domain.BookingDetail, error) {
	var d domain.BookingDetail
	var status, start, end, createdAt, updatedAt string

	err := scan(&d.ID, &d.RoomID, &d.TenantID, &start, &end, &d.TotalPrice, &status,
		&d.OccupantName, &d.OccupantKTPNumber, &d.OccupantKTPRef, &d.RejectionReason,
		&createdAt, &updatedAt,
		&d.RoomName, &d.RoomPrice, &d.PropertyID, &d.PropertyName, &d.OwnerID)
	if err != nil {
		return domain.BookingDetail{}, err
	}

	d.Status = domain.Status(status)
	d.StartDate, _ = time.Parse(timeFormat, start)
	d.EndDate, _ = time.Parse(timeFormat, end)
	d.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	d.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)
	return d, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
