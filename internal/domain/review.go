package domain

import "time"

// Review is a tenant's rating of a completed stay. One review per booking.
type Review struct {
	ID         string
	BookingID  string
	TenantID   string
	PropertyID string
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

// NewReview creates a review. Rating bounds are validated by the service.
func NewReview(id, bookingID, tenantID, propertyID string, rating int, comment string) Review {
	return Review{
		ID:         id,
		BookingID:  bookingID,
		TenantID:   tenantID,
		PropertyID: propertyID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now().UTC(),
	}
}
