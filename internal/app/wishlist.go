package app

import (
	"context"
	"fmt"

	"github.com/kosthub/kosthub/internal/domain"
)

// WishlistService lets tenants save and unsave properties. Toggle is
// idempotent under concurrent duplicate clicks: the store's unique constraint
// makes the insert conflict-tolerant.
type WishlistService struct {
	wishlists  domain.WishlistRepository
	properties domain.PropertyRepository
}

// NewWishlistService creates a service with the given adapters.
func NewWishlistService(wishlists domain.WishlistRepository, properties domain.PropertyRepository) *WishlistService {
	return &WishlistService{wishlists: wishlists, properties: properties}
}

// Toggle saves the property if it is not on the actor's wishlist and removes
// it otherwise, reporting whether the property is saved afterwards.
func (s *WishlistService) Toggle(ctx context.Context, actor domain.Actor, propertyID string) (bool, error) {
	if actor.ID == "" {
		return false, domain.ErrUnauthorized
	}
	if actor.Role != domain.RoleTenant {
		return false, domain.ErrForbidden
	}

	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		return false, err
	}

	id, err := generateID()
	if err != nil {
		return false, fmt.Errorf("generating wishlist id: %w", err)
	}

	return s.wishlists.Toggle(ctx, domain.NewWishlistItem(id, actor.ID, propertyID))
}

// List returns the actor's saved properties.
func (s *WishlistService) List(ctx context.Context, actor domain.Actor) ([]domain.WishlistItem, error) {
	if actor.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.wishlists.ListByTenant(ctx, actor.ID)
}
