package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kosthub/kosthub/internal/app"
	"github.com/kosthub/kosthub/internal/domain"
)

// --- Create Booking ---

type CreateBookingInput struct {
	Body struct {
		RoomID    string `json:"room_id" minLength:"1" doc:"Room to book"`
		StartDate string `json:"start_date" doc:"Lease start date (YYYY-MM-DD)"`
		EndDate   string `json:"end_date" doc:"Lease end date (YYYY-MM-DD)"`
	}
}

type CreateBookingOutput struct {
	Body BookingResponse
}

// --- Get / List ---

type GetBookingInput struct {
	ID string `path:"id" doc:"Booking ID"`
}

type GetBookingOutput struct {
	Body BookingResponse
}

type ListBookingsInput struct{}

type ListBookingsOutput struct {
	Body []BookingResponse
}

// --- Transition ---

type BookingTransitionInput struct {
	ID   string `path:"id" doc:"Booking ID"`
	Body struct {
		Event  string `json:"event" enum:"approve,cancel,complete" doc:"Lifecycle event to trigger"`
		Reason string `json:"reason,omitempty" doc:"Reason, recorded on cancellation"`
	}
}

type BookingTransitionOutput struct {
	Body BookingResponse
}

// --- Biodata ---

type BiodataInput struct {
	ID   string `path:"id" doc:"Booking ID"`
	Body struct {
		OccupantName string `json:"occupant_name" minLength:"1" doc:"Occupant full name"`
		KTPNumber    string `json:"ktp_number" minLength:"1" doc:"Occupant KTP number"`
		KTPImage     []byte `json:"ktp_image" doc:"KTP document image (base64 JPEG)"`
	}
}

type BiodataOutput struct {
	Body BookingResponse
}

// RegisterBookings adds all booking API routes to the Huma API.
func RegisterBookings(api huma.API, svc *app.BookingService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-booking",
		Method:      http.MethodPost,
		Path:        "/api/v1/bookings",
		Summary:     "Submit a booking for a room",
		Tags:        []string{"Bookings"},
	}, func(ctx context.Context, input *CreateBookingInput) (*CreateBookingOutput, error) {
		start, err := parseDate(input.Body.StartDate, "start_date")
		if err != nil {
			return nil, toHumaError(err)
		}
		end, err := parseDate(input.Body.EndDate, "end_date")
		if err != nil {
			return nil, toHumaError(err)
		}

		booking, err := svc.Create(ctx, actorFrom(ctx), input.Body.RoomID, start, end)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateBookingOutput{Body: toBookingResponse(booking)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-booking",
		Method:      http.MethodGet,
		Path:        "/api/v1/bookings/{id}",
		Summary:     "Get a booking by ID",
		Tags:        []string{"Bookings"},
	}, func(ctx context.Context, input *GetBookingInput) (*GetBookingOutput, error) {
		detail, err := svc.Get(ctx, actorFrom(ctx), input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetBookingOutput{Body: toBookingDetailResponse(detail)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-bookings",
		Method:      http.MethodGet,
		Path:        "/api/v1/bookings",
		Summary:     "List the caller's bookings",
		Tags:        []string{"Bookings"},
	}, func(ctx context.Context, input *ListBookingsInput) (*ListBookingsOutput, error) {
		details, err := svc.ListMine(ctx, actorFrom(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]BookingResponse, len(details))
		for i, d := range details {
			resp[i] = toBookingDetailResponse(d)
		}
		return &ListBookingsOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "transition-booking",
		Method:      http.MethodPost,
		Path:        "/api/v1/bookings/{id}/events",
		Summary:     "Trigger a booking lifecycle event",
		Tags:        []string{"Bookings"},
	}, func(ctx context.Context, input *BookingTransitionInput) (*BookingTransitionOutput, error) {
		booking, err := svc.Transition(ctx, actorFrom(ctx), input.ID,
			domain.Event(input.Body.Event), input.Body.Reason)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &BookingTransitionOutput{Body: toBookingResponse(booking)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "complete-biodata",
		Method:      http.MethodPut,
		Path:        "/api/v1/bookings/{id}/biodata",
		Summary:     "Record the occupant's identity on a booking",
		Tags:        []string{"Bookings"},
	}, func(ctx context.Context, input *BiodataInput) (*BiodataOutput, error) {
		booking, err := svc.CompleteBiodata(ctx, actorFrom(ctx), input.ID,
			input.Body.OccupantName, input.Body.KTPNumber, input.Body.KTPImage)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &BiodataOutput{Body: toBookingResponse(booking)}, nil
	})
}
