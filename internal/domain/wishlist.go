package domain

import "time"

// WishlistItem is a tenant's saved property. Unique per (tenant, property);
// toggling an existing item removes it.
type WishlistItem struct {
	ID         string
	TenantID   string
	PropertyID string
	CreatedAt  time.Time
}

// NewWishlistItem creates a wishlist entry.
func NewWishlistItem(id, tenantID, propertyID string) WishlistItem {
	return WishlistItem{
		ID:         id,
		TenantID:   tenantID,
		PropertyID: propertyID,
		CreatedAt:  time.Now().UTC(),
	}
}
