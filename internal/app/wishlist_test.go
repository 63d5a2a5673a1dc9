package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kosthub/kosthub/internal/app"
	"github.com/kosthub/kosthub/internal/domain"
)

func newWishlistFixture() *app.WishlistService {
	properties := newMemProperties()
	properties.Create(context.Background(), domain.Property{ID: "prop-1", OwnerID: owner.ID, Name: "Kost Melati"})
	return app.NewWishlistService(newMemWishlists(), properties)
}

func TestWishlistService_Toggle(t *testing.T) {
	svc := newWishlistFixture()

	saved, err := svc.Toggle(context.Background(), tenant, "prop-1")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !saved {
		t.Error("first toggle should save")
	}

	saved, err = svc.Toggle(context.Background(), tenant, "prop-1")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if saved {
		t.Error("second toggle should unsave")
	}

	items, err := svc.List(context.Background(), tenant)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items after unsave, want 0", len(items))
	}
}

func TestWishlistService_Toggle_OwnerForbidden(t *testing.T) {
	svc := newWishlistFixture()

	_, err := svc.Toggle(context.Background(), owner, "prop-1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestWishlistService_Toggle_UnknownProperty(t *testing.T) {
	svc := newWishlistFixture()

	_, err := svc.Toggle(context.Background(), tenant, "prop-9")
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Errorf("err = %v, want ErrPropertyNotFound", err)
	}
}

func TestWishlistService_List_Anonymous(t *testing.T) {
	svc := newWishlistFixture()

	_, err := svc.List(context.Background(), domain.Actor{})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}
