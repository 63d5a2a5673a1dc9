package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kosthub/kosthub/internal/domain"
)

// PaymentRepository implements domain.PaymentRepository using SQLite.
type PaymentRepository struct {
	db *sql.DB
}

// Compile-time check: PaymentRepository implements domain.PaymentRepository.
var _ domain.PaymentRepository = (*PaymentRepository)(nil)

// NewPaymentRepository wraps an open database connection.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, booking_id, amount, period_month, period_year, status,
	proof_ref, notes, rejection_reason, verified_by, created_at, updated_at`

func (r *PaymentRepository) Create(ctx context.Context, p domain.Payment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (`+paymentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.BookingID, p.Amount, p.PeriodMonth, p.PeriodYear, string(p.Status),
		p.ProofRef, p.Notes, p.RejectionReason, p.VerifiedBy,
		p.CreatedAt.Format(timeFormat),
		p.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		if isUniqueViolation(err, "payments") {
			return &domain.DuplicatePeriodError{
				BookingID: p.BookingID,
				Month:     p.PeriodMonth,
				Year:      p.PeriodYear,
			}
		}
		return fmt.Errorf("inserting payment: %w", err)
	}
	return nil
}

const paymentDetailQuery = `SELECT pm.id, pm.booking_id, pm.amount, pm.period_month, pm.period_year, pm.status,
	pm.proof_ref, pm.notes, pm.rejection_reason, pm.verified_by, pm.created_at, pm.updated_at,
	b.tenant_id, r.name, p.id, p.owner_id
	FROM payments pm
	JOIN bookings b ON b.id = pm.booking_id
	JOIN rooms r ON r.id = b.room_id
	JOIN properties p ON p.id = r.property_id`

func (r *PaymentRepository) GetDetail(ctx context.Context, id string) (domain.PaymentDetail, error) {
	row := r.db.QueryRowContext(ctx, paymentDetailQuery+` WHERE pm.id = ?`, id)

	d, err := scanPaymentDetail(row.Scan)
	if err == sql.ErrNoRows {
		return domain.PaymentDetail{}, domain.ErrPaymentNotFound
	}
	if err != nil {
		return domain.PaymentDetail{}, fmt.Errorf("scanning payment detail: %w", err)
	}
	return d, nil
}

func (r *PaymentRepository) ListByBooking(ctx context.Context, bookingID string) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE booking_id = ?
		 ORDER BY period_year DESC, period_month DESC`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning payment row: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.PaymentDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		paymentDetailQuery+` WHERE p.owner_id = ? ORDER BY pm.created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing owner payments: %w", err)
	}
	defer rows.Close()

	var details []domain.PaymentDetail
	for rows.Next() {
		d, err := scanPaymentDetail(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning payment detail row: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// ApplyVerdict commits the payment verdict and the tenant notification
// atomically.
func (r *PaymentRepository) ApplyVerdict(ctx context.Context, p domain.Payment, note domain.Notification) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE payments SET status = ?, rejection_reason = ?, verified_by = ?, updated_at = ?
		 WHERE id = ?`,
		string(p.Status), p.RejectionReason, p.VerifiedBy,
		time.Now().UTC().Format(timeFormat), p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating payment status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrPaymentNotFound
	}

	if err := insertNotificationTx(ctx, tx, note); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing payment verdict: %w", err)
	}
	return nil
}

func scanPayment(scan func(...any) error) (domain.Payment, error) {
	var p domain.Payment
	var status, createdAt, updatedAt string

	err := scan(&p.ID, &p.BookingID, &p.Amount, &p.PeriodMonth, &p.PeriodYear, &status,
		&p.ProofRef, &p.Notes, &p.RejectionReason, &p.VerifiedBy, &createdAt, &updatedAt)
	if err != nil {
		return domain.Payment{}, err
	}

	p.Status = domain.Status(status)
	p.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	p.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)
	return p, nil
}

func scanPaymentDetail(scan func(...any) error) (domain.PaymentDetail, error) {
	var d domain.PaymentDetail
	var status, createdAt, updatedAt string

	err := scan(&d.ID, &d.BookingID, &d.Amount, &d.PeriodMonth, &d.PeriodYear, &status,
		&d.ProofRef, &d.Notes, &d.RejectionReason, &d.VerifiedBy, &createdAt, &updatedAt,
		&d.TenantID, &d.RoomName, &d.PropertyID, &d.OwnerID)
	if err != nil {
		return domain.PaymentDetail{}, err
	}

	d.Status = domain.Status(status)
	d.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	d.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)
	return d, nil
}
