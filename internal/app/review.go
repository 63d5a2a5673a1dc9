package app

import (
	"context"
	"fmt"

	"github.com/kosthub/kosthub/internal/domain"
)

// ReviewService lets tenants rate completed stays. One review per booking.
type ReviewService struct {
	reviews  domain.ReviewRepository
	bookings domain.BookingRepository
}

// NewReviewService creates a service with the given adapters.
func NewReviewService(reviews domain.ReviewRepository, bookings domain.BookingRepository) *ReviewService {
	return &ReviewService{reviews: reviews, bookings: bookings}
}

// Submit records a review for a completed booking. The rating must be within
// 1–5 and only the booking's tenant may review; a second review for the same
// booking fails with an AlreadyReviewedError.
func (s *ReviewService) Submit(ctx context.Context, actor domain.Actor, bookingID string, rating int, comment string) (domain.Review, error) {
	if actor.ID == "" {
		return domain.Review{}, domain.ErrUnauthorized
	}

	detail, err := s.bookings.GetDetail(ctx, bookingID)
	if err != nil {
		return domain.Review{}, err
	}
	if detail.TenantID != actor.ID {
		return domain.Review{}, domain.ErrForbidden
	}
	if detail.Status != domain.BookingCompleted {
		return domain.Review{}, &domain.ValidationError{Field: "booking", Reason: "only completed bookings can be reviewed"}
	}
	if rating < 1 || rating > 5 {
		return domain.Review{}, &domain.ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}

	id, err := generateID()
	if err != nil {
		return domain.Review{}, fmt.Errorf("generating review id: %w", err)
	}

	review := domain.NewReview(id, bookingID, actor.ID, detail.PropertyID, rating, comment)

	if err := s.reviews.Create(ctx, review); err != nil {
		return domain.Review{}, err
	}
	return review, nil
}

// ListByProperty returns a property's reviews. Reviews are public.
func (s *ReviewService) ListByProperty(ctx context.Context, propertyID string) ([]domain.Review, error) {
	return s.reviews.ListByProperty(ctx, propertyID)
}
