package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kosthub/kosthub/internal/domain"
)

// ReviewRepository implements domain.ReviewRepository using SQLite.
type ReviewRepository struct {
	db *sql.DB
}

// Compile-time check: ReviewRepository implements domain.ReviewRepository.
var _ domain.ReviewRepository = (*ReviewRepository)(nil)

// NewReviewRepository wraps an open database connection.
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv domain.Review) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (id, booking_id, tenant_id, property_id, rating, comment, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rv.ID, rv.BookingID, rv.TenantID, rv.PropertyID, rv.Rating, rv.Comment,
		rv.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		if isUniqueViolation(err, "reviews") {
			return &domain.AlreadyReviewedError{BookingID: rv.BookingID}
		}
		return fmt.Errorf("inserting review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) ListByProperty(ctx context.Context, propertyID string) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, booking_id, tenant_id, property_id, rating, comment, created_at
		 FROM reviews WHERE property_id = ? ORDER BY created_at DESC`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		var createdAt string
		if err := rows.Scan(&rv.ID, &rv.BookingID, &rv.TenantID, &rv.PropertyID, &rv.Rating, &rv.Comment, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning review row: %w", err)
		}
		rv.CreatedAt, _ = time.Parse(timeFormat, createdAt)
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
