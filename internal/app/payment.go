package app

import (
	"context"
	"fmt"

	"github.com/kosthub/kosthub/internal/domain"
)

// PaymentService orchestrates monthly rent payments: submission by tenants
// and verification by property owners.
type PaymentService struct {
	payments  domain.PaymentRepository
	bookings  domain.BookingRepository
	validator domain.TransitionValidator
	publisher domain.EventPublisher
	blobs     domain.BlobStore
}

// NewPaymentService creates a service with the given adapters. The validator
// must be built from domain.PaymentTransitions.
func NewPaymentService(payments domain.PaymentRepository, bookings domain.BookingRepository, validator domain.TransitionValidator, publisher domain.EventPublisher, blobs domain.BlobStore) *PaymentService {
	return &PaymentService{
		payments:  payments,
		bookings:  bookings,
		validator: validator,
		publisher: publisher,
		blobs:     blobs,
	}
}

// Submit creates a pending payment for one billing period of a booking. Only
// the booking's tenant may submit, the booking must be approved or active,
// and at most one payment may exist per period.
func (s *PaymentService) Submit(ctx context.Context, actor domain.Actor, bookingID string, amount int64, month, year int, proofImage []byte, notes string) (domain.Payment, error) {
	if actor.ID == "" {
		return domain.Payment{}, domain.ErrUnauthorized
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return domain.Payment{}, err
	}
	if booking.TenantID != actor.ID {
		return domain.Payment{}, domain.ErrForbidden
	}
	if booking.Status != domain.BookingApproved && booking.Status != domain.BookingActive {
		return domain.Payment{}, &domain.ValidationError{Field: "booking", Reason: "must be approved or active to accept payments"}
	}

	if amount <= 0 {
		return domain.Payment{}, &domain.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if month < 1 || month > 12 {
		return domain.Payment{}, &domain.ValidationError{Field: "period_month", Reason: "must be between 1 and 12"}
	}
	if len(proofImage) == 0 {
		return domain.Payment{}, &domain.ValidationError{Field: "proof_image", Reason: "must not be empty"}
	}

	id, err := generateID()
	if err != nil {
		return domain.Payment{}, fmt.Errorf("generating payment id: %w", err)
	}

	path := fmt.Sprintf("proofs/%s/%d-%02d.jpg", bookingID, year, month)
	ref, err := s.blobs.Upload(ctx, domain.BucketPayments, path, proofImage, "image/jpeg")
	if err != nil {
		return domain.Payment{}, fmt.Errorf("uploading payment proof: %w", err)
	}

	payment := domain.NewPayment(id, bookingID, amount, month, year, ref, notes)

	if err := s.payments.Create(ctx, payment); err != nil {
		return domain.Payment{}, err
	}

	if err := s.publisher.Publish(ctx, domain.DomainEvent{
		Event:    EventSubmitted,
		Entity:   "payment",
		EntityID: payment.ID,
		UserID:   booking.TenantID,
		Status:   payment.Status,
	}); err != nil {
		return domain.Payment{}, fmt.Errorf("publishing payment event: %w", err)
	}

	return payment, nil
}

// Verify settles a pending payment as verified or rejected. Only the owner of
// the property chain reachable from the payment's booking may call this;
// rejection requires a reason. The verdict and the tenant notification commit
// in one transaction. Verification never changes the booking's status.
func (s *PaymentService) Verify(ctx context.Context, actor domain.Actor, id string, event domain.Event, reason string) (domain.Payment, error) {
	if actor.ID == "" {
		return domain.Payment{}, domain.ErrUnauthorized
	}

	detail, err := s.payments.GetDetail(ctx, id)
	if err != nil {
		return domain.Payment{}, err
	}
	if detail.OwnerID != actor.ID {
		return domain.Payment{}, domain.ErrForbidden
	}

	if event == domain.EventReject && reason == "" {
		return domain.Payment{}, &domain.ValidationError{Field: "reason", Reason: "required when rejecting a payment"}
	}

	newStatus, err := s.validator.Apply(ctx, detail.Status, event)
	if err != nil {
		return domain.Payment{}, err
	}

	payment := detail.Payment
	payment.Status = newStatus
	payment.VerifiedBy = actor.ID
	if event == domain.EventReject {
		payment.RejectionReason = reason
	}

	noteID, err := generateID()
	if err != nil {
		return domain.Payment{}, fmt.Errorf("generating notification id: %w", err)
	}
	note := paymentNotification(noteID, detail, event, reason)

	if err := s.payments.ApplyVerdict(ctx, payment, note); err != nil {
		return domain.Payment{}, fmt.Errorf("applying payment verdict: %w", err)
	}

	if err := s.publisher.Publish(ctx, domain.DomainEvent{
		Event:    event,
		Entity:   "payment",
		EntityID: payment.ID,
		UserID:   detail.TenantID,
		Status:   payment.Status,
	}); err != nil {
		return domain.Payment{}, fmt.Errorf("publishing event %q: %w", event, err)
	}

	return payment, nil
}

// ListByBooking returns a booking's payments to either participant.
func (s *PaymentService) ListByBooking(ctx context.Context, actor domain.Actor, bookingID string) ([]domain.Payment, error) {
	if actor.ID == "" {
		return nil, domain.ErrUnauthorized
	}

	detail, err := s.bookings.GetDetail(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if detail.TenantID != actor.ID && detail.OwnerID != actor.ID {
		return nil, domain.ErrBookingNotFound
	}

	return s.payments.ListByBooking(ctx, bookingID)
}

// ListForOwner returns all payments on the owner's properties.
func (s *PaymentService) ListForOwner(ctx context.Context, actor domain.Actor) ([]domain.PaymentDetail, error) {
	if actor.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	if actor.Role != domain.RoleOwner {
		return nil, domain.ErrForbidden
	}
	return s.payments.ListByOwner(ctx, actor.ID)
}

// paymentNotification builds the tenant-facing copy for a payment verdict,
// including the formatted amount and billing period.
func paymentNotification(id string, d domain.PaymentDetail, event domain.Event, reason string) domain.Notification {
	amount := domain.FormatRupiah(d.Amount)
	period := d.PeriodLabel()

	if event == domain.EventVerify {
		return domain.NewNotification(id, d.TenantID,
			"Payment verified",
			fmt.Sprintf("Your payment of %s for %s has been verified.", amount, period),
			"/payments",
		)
	}
	return domain.NewNotification(id, d.TenantID,
		"Payment rejected",
		fmt.Sprintf("Your payment of %s for %s was rejected: %s", amount, period, reason),
		"/payments",
	)
}
