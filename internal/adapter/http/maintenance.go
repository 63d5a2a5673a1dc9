package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kosthub/kosthub/internal/app"
	"github.com/kosthub/kosthub/internal/domain"
)

// --- Create Request ---

type CreateMaintenanceInput struct {
	Body struct {
		PropertyID  string `json:"property_id" minLength:"1" doc:"Property the issue is on"`
		RoomID      string `json:"room_id,omitempty" doc:"Affected room, empty for common areas"`
		Title       string `json:"title" minLength:"1" maxLength:"255" doc:"Short summary"`
		Description string `json:"description,omitempty" doc:"Details of the issue"`
		Image       []byte `json:"image,omitempty" doc:"Report image (base64 JPEG)"`
	}
}

type CreateMaintenanceOutput struct {
	Body MaintenanceResponse
}

// --- Advance / List ---

type MaintenanceTransitionInput struct {
	ID   string `path:"id" doc:"Maintenance request ID"`
	Body struct {
		Event string `json:"event" enum:"start_progress,resolve" doc:"Lifecycle event to trigger"`
	}
}

type MaintenanceTransitionOutput struct {
	Body MaintenanceResponse
}

type ListMaintenanceInput struct{}

type ListMaintenanceOutput struct {
	Body []MaintenanceResponse
}

// RegisterMaintenance adds all maintenance API routes to the Huma API.
func RegisterMaintenance(api huma.API, svc *app.MaintenanceService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-maintenance-request",
		Method:      http.MethodPost,
		Path:        "/api/v1/maintenance",
		Summary:     "File a maintenance report",
		Tags:        []string{"Maintenance"},
	}, func(ctx context.Context, input *CreateMaintenanceInput) (*CreateMaintenanceOutput, error) {
		request, err := svc.Create(ctx, actorFrom(ctx), input.Body.PropertyID,
			input.Body.RoomID, input.Body.Title, input.Body.Description, input.Body.Image)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateMaintenanceOutput{Body: toMaintenanceResponse(request)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "transition-maintenance-request",
		Method:      http.MethodPost,
		Path:        "/api/v1/maintenance/{id}/events",
		Summary:     "Advance a maintenance request",
		Tags:        []string{"Maintenance"},
	}, func(ctx context.Context, input *MaintenanceTransitionInput) (*MaintenanceTransitionOutput, error) {
		request, err := svc.Advance(ctx, actorFrom(ctx), input.ID, domain.Event(input.Body.Event))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &MaintenanceTransitionOutput{Body: toMaintenanceResponse(request)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-maintenance-requests",
		Method:      http.MethodGet,
		Path:        "/api/v1/maintenance",
		Summary:     "List the caller's maintenance requests",
		Tags:        []string{"Maintenance"},
	}, func(ctx context.Context, input *ListMaintenanceInput) (*ListMaintenanceOutput, error) {
		details, err := svc.ListMine(ctx, actorFrom(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]MaintenanceResponse, len(details))
		for i, d := range details {
			resp[i] = toMaintenanceResponse(d.MaintenanceRequest)
		}
		return &ListMaintenanceOutput{Body: resp}, nil
	})
}
