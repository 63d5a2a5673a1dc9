package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kosthub/kosthub/internal/domain"
)

// WishlistRepository implements domain.WishlistRepository using SQLite.
type WishlistRepository struct {
	db *sql.DB
}

// Compile-time check: WishlistRepository implements domain.WishlistRepository.
var _ domain.WishlistRepository = (*WishlistRepository)(nil)

// NewWishlistRepository wraps an open database connection.
func NewWishlistRepository(db *sql.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Toggle inserts the item if the property is not yet saved and removes it
// otherwise. The insert is conflict-tolerant on the (tenant, property)
// unique constraint, so two concurrent toggles cannot double-insert: one of
// them observes the conflict and takes the delete path instead.
func (r *WishlistRepository) Toggle(ctx context.Context, item domain.WishlistItem) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO wishlists (id, tenant_id, property_id, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (tenant_id, property_id) DO NOTHING`,
		item.ID, item.TenantID, item.PropertyID,
		item.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return false, fmt.Errorf("inserting wishlist item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking rows affected: %w", err)
	}
	if rows > 0 {
		return true, nil
	}

	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM wishlists WHERE tenant_id = ? AND property_id = ?`,
		item.TenantID, item.PropertyID,
	); err != nil {
		return false, fmt.Errorf("deleting wishlist item: %w", err)
	}
	return false, nil
}

func (r *WishlistRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.WishlistItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, property_id, created_at
		 FROM wishlists WHERE tenant_id = ? ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing wishlist: %w", err)
	}
	defer rows.Close()

	var items []domain.WishlistItem
	for rows.Next() {
		var item domain.WishlistItem
		var createdAt string
		if err := rows.Scan(&item.ID, &item.TenantID, &item.PropertyID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning wishlist row: %w", err)
		}
		item.CreatedAt, _ = time.Parse(timeFormat, createdAt)
		items = append(items, item)
	}
	return items, rows.Err()
}
