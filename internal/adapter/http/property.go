package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kosthub/kosthub/internal/app"
	"github.com/kosthub/kosthub/internal/domain"
)

// --- Create / Update Property ---

type CreatePropertyInput struct {
	Body struct {
		Name        string  `json:"name" minLength:"1" maxLength:"255" doc:"Display name"`
		Address     string  `json:"address" minLength:"1" doc:"Street address"`
		Description string  `json:"description,omitempty" doc:"Free-form description"`
		Latitude    float64 `json:"latitude,omitempty" doc:"Location latitude"`
		Longitude   float64 `json:"longitude,omitempty" doc:"Location longitude"`
		Image       []byte  `json:"image,omitempty" doc:"Cover image (base64 JPEG)"`
	}
}

type CreatePropertyOutput struct {
	Body PropertyResponse
}

type UpdatePropertyInput struct {
	ID   string `path:"id" doc:"Property ID"`
	Body struct {
		Name        string  `json:"name,omitempty" doc:"New display name"`
		Address     string  `json:"address,omitempty" doc:"New street address"`
		Description string  `json:"description,omitempty" doc:"New description"`
		Latitude    float64 `json:"latitude,omitempty" doc:"New latitude"`
		Longitude   float64 `json:"longitude,omitempty" doc:"New longitude"`
	}
}

type UpdatePropertyOutput struct {
	Body PropertyResponse
}

// --- Get / Search / List ---

type GetPropertyInput struct {
	ID string `path:"id" doc:"Property ID"`
}

type GetPropertyOutput struct {
	Body PropertyResponse
}

type SearchPropertiesInput struct {
	Query  string `query:"q" required:"false" doc:"Match against name and address"`
	Limit  int    `query:"limit" required:"false" default:"50" doc:"Max results"`
	Offset int    `query:"offset" required:"false" default:"0" doc:"Pagination offset"`
}

type SearchPropertiesOutput struct {
	Body []PropertyResponse
}

type ListOwnedPropertiesInput struct{}

type ListOwnedPropertiesOutput struct {
	Body []PropertyResponse
}

// --- Rooms ---

type CreateRoomInput struct {
	PropertyID string `path:"id" doc:"Property ID"`
	Body       struct {
		Name         string   `json:"name" minLength:"1" maxLength:"255" doc:"Display name"`
		PriceMonthly int64    `json:"price_monthly" minimum:"1" doc:"Monthly rent in rupiah"`
		Facilities   []string `json:"facilities,omitempty" doc:"Facility labels"`
		Images       [][]byte `json:"images,omitempty" doc:"Room photos (base64 JPEG)"`
	}
}

type CreateRoomOutput struct {
	Body RoomResponse
}

type UpdateRoomInput struct {
	ID   string `path:"id" doc:"Room ID"`
	Body struct {
		Name         string   `json:"name,omitempty" doc:"New display name"`
		PriceMonthly int64    `json:"price_monthly,omitempty" doc:"New monthly rent"`
		Facilities   []string `json:"facilities,omitempty" doc:"New facility labels"`
	}
}

type UpdateRoomOutput struct {
	Body RoomResponse
}

type GetRoomInput struct {
	ID string `path:"id" doc:"Room ID"`
}

type GetRoomOutput struct {
	Body RoomResponse
}

type ListRoomsInput struct {
	PropertyID string `path:"id" doc:"Property ID"`
}

type ListRoomsOutput struct {
	Body []RoomResponse
}

// RegisterProperties adds all property and room API routes to the Huma API.
func RegisterProperties(api huma.API, svc *app.PropertyService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-property",
		Method:      http.MethodPost,
		Path:        "/api/v1/properties",
		Summary:     "Register a boarding house",
		Tags:        []string{"Properties"},
	}, func(ctx context.Context, input *CreatePropertyInput) (*CreatePropertyOutput, error) {
		property, err := svc.CreateProperty(ctx, actorFrom(ctx), input.Body.Name,
			input.Body.Address, input.Body.Description,
			input.Body.Latitude, input.Body.Longitude, input.Body.Image)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreatePropertyOutput{Body: toPropertyResponse(property)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-property",
		Method:      http.MethodPatch,
		Path:        "/api/v1/properties/{id}",
		Summary:     "Update a property",
		Tags:        []string{"Properties"},
	}, func(ctx context.Context, input *UpdatePropertyInput) (*UpdatePropertyOutput, error) {
		property, err := svc.UpdateProperty(ctx, actorFrom(ctx), input.ID,
			input.Body.Name, input.Body.Address, input.Body.Description,
			input.Body.Latitude, input.Body.Longitude)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &UpdatePropertyOutput{Body: toPropertyResponse(property)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-property",
		Method:      http.MethodGet,
		Path:        "/api/v1/properties/{id}",
		Summary:     "Get a property by ID",
		Tags:        []string{"Properties"},
	}, func(ctx context.Context, input *GetPropertyInput) (*GetPropertyOutput, error) {
		property, err := svc.GetProperty(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetPropertyOutput{Body: toPropertyResponse(property)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "search-properties",
		Method:      http.MethodGet,
		Path:        "/api/v1/properties",
		Summary:     "Search properties",
		Tags:        []string{"Properties"},
	}, func(ctx context.Context, input *SearchPropertiesInput) (*SearchPropertiesOutput, error) {
		properties, err := svc.Search(ctx, domain.SearchFilter{
			Query:  input.Query,
			Limit:  input.Limit,
			Offset: input.Offset,
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]PropertyResponse, len(properties))
		for i, p := range properties {
			resp[i] = toPropertyResponse(p)
		}
		return &SearchPropertiesOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-owned-properties",
		Method:      http.MethodGet,
		Path:        "/api/v1/properties/mine",
		Summary:     "List the caller's properties",
		Tags:        []string{"Properties"},
	}, func(ctx context.Context, input *ListOwnedPropertiesInput) (*ListOwnedPropertiesOutput, error) {
		properties, err := svc.ListOwned(ctx, actorFrom(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]PropertyResponse, len(properties))
		for i, p := range properties {
			resp[i] = toPropertyResponse(p)
		}
		return &ListOwnedPropertiesOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-room",
		Method:      http.MethodPost,
		Path:        "/api/v1/properties/{id}/rooms",
		Summary:     "Add a room to a property",
		Tags:        []string{"Rooms"},
	}, func(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error) {
		room, err := svc.CreateRoom(ctx, actorFrom(ctx), input.PropertyID,
			input.Body.Name, input.Body.PriceMonthly, input.Body.Facilities, input.Body.Images)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateRoomOutput{Body: toRoomResponse(room)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-room",
		Method:      http.MethodPatch,
		Path:        "/api/v1/rooms/{id}",
		Summary:     "Update a room",
		Tags:        []string{"Rooms"},
	}, func(ctx context.Context, input *UpdateRoomInput) (*UpdateRoomOutput, error) {
		room, err := svc.UpdateRoom(ctx, actorFrom(ctx), input.ID,
			input.Body.Name, input.Body.PriceMonthly, input.Body.Facilities)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &UpdateRoomOutput{Body: toRoomResponse(room)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-room",
		Method:      http.MethodGet,
		Path:        "/api/v1/rooms/{id}",
		Summary:     "Get a room by ID",
		Tags:        []string{"Rooms"},
	}, func(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error) {
		room, err := svc.GetRoom(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetRoomOutput{Body: toRoomResponse(room)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-rooms",
		Method:      http.MethodGet,
		Path:        "/api/v1/properties/{id}/rooms",
		Summary:     "List a property's rooms",
		Tags:        []string{"Rooms"},
	}, func(ctx context.Context, input *ListRoomsInput) (*ListRoomsOutput, error) {
		rooms, err := svc.ListRooms(ctx, input.PropertyID)
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]RoomResponse, len(rooms))
		for i, r := range rooms {
			resp[i] = toRoomResponse(r)
		}
		return &ListRoomsOutput{Body: resp}, nil
	})
}
