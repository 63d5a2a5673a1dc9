package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kosthub/kosthub/internal/app"
)

// --- Submit Review ---

type SubmitReviewInput struct {
	Body struct {
		BookingID string `json:"booking_id" minLength:"1" doc:"Completed booking to review"`
		Rating    int    `json:"rating" minimum:"1" maximum:"5" doc:"Star rating"`
		Comment   string `json:"comment,omitempty" doc:"Free-form comment"`
	}
}

type SubmitReviewOutput struct {
	Body ReviewResponse
}

// --- List ---

type ListReviewsInput struct {
	PropertyID string `path:"id" doc:"Property ID"`
}

type ListReviewsOutput struct {
	Body []ReviewResponse
}

// RegisterReviews adds all review API routes to the Huma API.
func RegisterReviews(api huma.API, svc *app.ReviewService) {
	huma.Register(api, huma.Operation{
		OperationID: "submit-review",
		Method:      http.MethodPost,
		Path:        "/api/v1/reviews",
		Summary:     "Review a completed booking",
		Tags:        []string{"Reviews"},
	}, func(ctx context.Context, input *SubmitReviewInput) (*SubmitReviewOutput, error) {
		review, err := svc.Submit(ctx, actorFrom(ctx), input.Body.BookingID,
			input.Body.Rating, input.Body.Comment)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &SubmitReviewOutput{Body: toReviewResponse(review)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-property-reviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/properties/{id}/reviews",
		Summary:     "List a property's reviews",
		Tags:        []string{"Reviews"},
	}, func(ctx context.Context, input *ListReviewsInput) (*ListReviewsOutput, error) {
		reviews, err := svc.ListByProperty(ctx, input.PropertyID)
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]ReviewResponse, len(reviews))
		for i, r := range reviews {
			resp[i] = toReviewResponse(r)
		}
		return &ListReviewsOutput{Body: resp}, nil
	})
}
