package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kosthub/kosthub/internal/app"
)

// --- Toggle ---

type ToggleWishlistInput struct {
	Body struct {
		PropertyID string `json:"property_id" minLength:"1" doc:"Property to save or unsave"`
	}
}

type ToggleWishlistOutput struct {
	Body struct {
		Saved bool `json:"saved" doc:"Whether the property is saved after the toggle"`
	}
}

// --- List ---

type ListWishlistInput struct{}

type ListWishlistOutput struct {
	Body []WishlistResponse
}

// RegisterWishlist adds all wishlist API routes to the Huma API.
func RegisterWishlist(api huma.API, svc *app.WishlistService) {
	huma.Register(api, huma.Operation{
		OperationID: "toggle-wishlist",
		Method:      http.MethodPost,
		Path:        "/api/v1/wishlist",
		Summary:     "Save or unsave a property",
		Tags:        []string{"Wishlist"},
	}, func(ctx context.Context, input *ToggleWishlistInput) (*ToggleWishlistOutput, error) {
		saved, err := svc.Toggle(ctx, actorFrom(ctx), input.Body.PropertyID)
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &ToggleWishlistOutput{}
		out.Body.Saved = saved
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-wishlist",
		Method:      http.MethodGet,
		Path:        "/api/v1/wishlist",
		Summary:     "List the caller's saved properties",
		Tags:        []string{"Wishlist"},
	}, func(ctx context.Context, input *ListWishlistInput) (*ListWishlistOutput, error) {
		items, err := svc.List(ctx, actorFrom(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]WishlistResponse, len(items))
		for i, item := range items {
			resp[i] = toWishlistResponse(item)
		}
		return &ListWishlistOutput{Body: resp}, nil
	})
}
