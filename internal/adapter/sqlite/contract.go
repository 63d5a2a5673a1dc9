package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kosthub/kosthub/internal/domain"
)

// ContractRepository implements domain.ContractRepository using SQLite.
type ContractRepository struct {
	db *sql.DB
}

// Compile-time check: ContractRepository implements domain.ContractRepository.
var _ domain.ContractRepository = (*ContractRepository)(nil)

// NewContractRepository wraps an open database connection.
func NewContractRepository(db *sql.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

const contractColumns = `id, booking_id, owner_id, tenant_id, property_name, room_name,
	monthly_rent, start_date, end_date, status, notes, created_at, updated_at`

func (r *ContractRepository) Create(ctx context.Context, c domain.Contract) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contracts (`+contractColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.BookingID, c.OwnerID, c.TenantID, c.PropertyName, c.RoomName,
		c.MonthlyRent,
		c.StartDate.UTC().Format(timeFormat),
		c.EndDate.UTC().Format(timeFormat),
		string(c.Status), c.Notes,
		c.CreatedAt.Format(timeFormat),
		c.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting contract: %w", err)
	}
	return nil
}

func (r *ContractRepository) GetByID(ctx context.Context, id string) (domain.Contract, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE id = ?`, id)

	c, err := scanContract(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Contract{}, domain.ErrContractNotFound
	}
	if err != nil {
		return domain.Contract{}, fmt.Errorf("scanning contract: %w", err)
	}
	return c, nil
}

func (r *ContractRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Contract, error) {
	return r.list(ctx, `owner_id`, ownerID)
}

func (r *ContractRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.Contract, error) {
	return r.list(ctx, `tenant_id`, tenantID)
}

func (r *ContractRepository) list(ctx context.Context, column, value string) ([]domain.Contract, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE `+column+` = ? ORDER BY created_at DESC`, value)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	defer rows.Close()

	var contracts []domain.Contract
	for rows.Next() {
		c, err := scanContract(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning contract row: %w", err)
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

// ExpireDue flips every active contract whose end date has passed. Read
// paths run this first so expiry is observed without a background process.
func (r *ContractRepository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE contracts SET status = ?, updated_at = ?
		 WHERE status = ? AND end_date < ?`,
		string(domain.ContractExpired),
		now.UTC().Format(timeFormat),
		string(domain.ContractActive),
		now.UTC().Format(timeFormat),
	)
	if err != nil {
		return 0, fmt.Errorf("expiring contracts: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return rows, nil
}

// Terminate commits the terminated status and the tenant notification
// atomically. The update is unconditional on the current status, which makes
// repeated termination idempotent.
func (r *ContractRepository) Terminate(ctx context.Context, c domain.Contract, note domain.Notification) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE contracts SET status = ?, updated_at = ? WHERE id = ?`,
		string(c.Status), time.Now().UTC().Format(timeFormat), c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating contract status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrContractNotFound
	}

	if err := insertNotificationTx(ctx, tx, note); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing contract termination: %w", err)
	}
	return nil
}

func scanContract(scan func(...any) error) (domain.Contract, error) {
	var c domain.Contract
	var status, start, end, createdAt, updatedAt string

	err := scan(&c.ID, &c.BookingID, &c.OwnerID, &c.TenantID, &c.PropertyName, &c.RoomName,
		&c.MonthlyRent, &start, &end, &status, &c.Notes, &createdAt, &updatedAt)
	if err != nil {
		return domain.Contract{}, err
	}

	c.Status = domain.Status(status)
	c.StartDate, _ = time.Parse(timeFormat, start)
	c.EndDate, _ = time.Parse(timeFormat, end)
	c.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	c.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)
	return c, nil
}
