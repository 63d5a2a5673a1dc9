package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kosthub/kosthub/internal/app"
	"github.com/kosthub/kosthub/internal/domain"
)

// --- Submit Payment ---

type SubmitPaymentInput struct {
	Body struct {
		BookingID   string `json:"booking_id" minLength:"1" doc:"Booking the payment belongs to"`
		Amount      int64  `json:"amount" minimum:"1" doc:"Amount in rupiah"`
		PeriodMonth int    `json:"period_month" minimum:"1" maximum:"12" doc:"Billing month"`
		PeriodYear  int    `json:"period_year" doc:"Billing year"`
		ProofImage  []byte `json:"proof_image" doc:"Transfer proof image (base64 JPEG)"`
		Notes       string `json:"notes,omitempty" doc:"Optional tenant notes"`
	}
}

type SubmitPaymentOutput struct {
	Body PaymentResponse
}

// --- Verify Payment ---

type VerifyPaymentInput struct {
	ID   string `path:"id" doc:"Payment ID"`
	Body struct {
		Event  string `json:"event" enum:"verify,reject" doc:"Verdict to apply"`
		Reason string `json:"reason,omitempty" doc:"Reason, required when rejecting"`
	}
}

type VerifyPaymentOutput struct {
	Body PaymentResponse
}

// --- Lists ---

type ListBookingPaymentsInput struct {
	BookingID string `path:"id" doc:"Booking ID"`
}

type ListBookingPaymentsOutput struct {
	Body []PaymentResponse
}

type ListOwnerPaymentsInput struct{}

type ListOwnerPaymentsOutput struct {
	Body []PaymentResponse
}

// RegisterPayments adds all payment API routes to the Huma API.
func RegisterPayments(api huma.API, svc *app.PaymentService) {
	huma.Register(api, huma.Operation{
		OperationID: "submit-payment",
		Method:      http.MethodPost,
		Path:        "/api/v1/payments",
		Summary:     "Submit a monthly rent payment",
		Tags:        []string{"Payments"},
	}, func(ctx context.Context, input *SubmitPaymentInput) (*SubmitPaymentOutput, error) {
		payment, err := svc.Submit(ctx, actorFrom(ctx), input.Body.BookingID,
			input.Body.Amount, input.Body.PeriodMonth, input.Body.PeriodYear,
			input.Body.ProofImage, input.Body.Notes)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &SubmitPaymentOutput{Body: toPaymentResponse(payment)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "verify-payment",
		Method:      http.MethodPost,
		Path:        "/api/v1/payments/{id}/events",
		Summary:     "Verify or reject a payment",
		Tags:        []string{"Payments"},
	}, func(ctx context.Context, input *VerifyPaymentInput) (*VerifyPaymentOutput, error) {
		payment, err := svc.Verify(ctx, actorFrom(ctx), input.ID,
			domain.Event(input.Body.Event), input.Body.Reason)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &VerifyPaymentOutput{Body: toPaymentResponse(payment)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-booking-payments",
		Method:      http.MethodGet,
		Path:        "/api/v1/bookings/{id}/payments",
		Summary:     "List a booking's payments",
		Tags:        []string{"Payments"},
	}, func(ctx context.Context, input *ListBookingPaymentsInput) (*ListBookingPaymentsOutput, error) {
		payments, err := svc.ListByBooking(ctx, actorFrom(ctx), input.BookingID)
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]PaymentResponse, len(payments))
		for i, p := range payments {
			resp[i] = toPaymentResponse(p)
		}
		return &ListBookingPaymentsOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-owner-payments",
		Method:      http.MethodGet,
		Path:        "/api/v1/payments",
		Summary:     "List payments on the caller's properties",
		Tags:        []string{"Payments"},
	}, func(ctx context.Context, input *ListOwnerPaymentsInput) (*ListOwnerPaymentsOutput, error) {
		details, err := svc.ListForOwner(ctx, actorFrom(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]PaymentResponse, len(details))
		for i, d := range details {
			resp[i] = toPaymentResponse(d.Payment)
		}
		return &ListOwnerPaymentsOutput{Body: resp}, nil
	})
}
