package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kosthub/kosthub/internal/domain"
)

// EventSubmitted marks booking creation on the event stream. It is not part
// of the transition table; a new booking is always pending.
const EventSubmitted domain.Event = "submitted"

// BookingService orchestrates the booking lifecycle: creation by tenants and
// guarded status transitions by property owners.
type BookingService struct {
	bookings  domain.BookingRepository
	rooms     domain.RoomRepository
	validator domain.TransitionValidator
	publisher domain.EventPublisher
	blobs     domain.BlobStore
}

// NewBookingService creates a service with the given adapters. The validator
// must be built from domain.BookingTransitions.
func NewBookingService(bookings domain.BookingRepository, rooms domain.RoomRepository, validator domain.TransitionValidator, publisher domain.EventPublisher, blobs domain.BlobStore) *BookingService {
	return &BookingService{
		bookings:  bookings,
		rooms:     rooms,
		validator: validator,
		publisher: publisher,
		blobs:     blobs,
	}
}

// Create submits a pending booking for a room. Only tenants book rooms; the
// total price is derived from the room's monthly price and the lease length.
func (s *BookingService) Create(ctx context.Context, actor domain.Actor, roomID string, start, end time.Time) (domain.Booking, error) {
	if actor.ID == "" {
		return domain.Booking{}, domain.ErrUnauthorized
	}
	if actor.Role != domain.RoleTenant {
		return domain.Booking{}, domain.ErrForbidden
	}
	if !end.After(start) {
		return domain.Booking{}, &domain.ValidationError{Field: "end_date", Reason: "must be after start_date"}
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return domain.Booking{}, err
	}

	id, err := generateID()
	if err != nil {
		return domain.Booking{}, fmt.Errorf("generating booking id: %w", err)
	}

	booking := domain.NewBooking(id, room.ID, actor.ID, start, end, room.PriceMonthly)

	if err := s.bookings.Create(ctx, booking); err != nil {
		return domain.Booking{}, fmt.Errorf("creating booking: %w", err)
	}

	if err := s.publisher.Publish(ctx, domain.DomainEvent{
		Event:    EventSubmitted,
		Entity:   "booking",
		EntityID: booking.ID,
		UserID:   booking.TenantID,
		Status:   booking.Status,
	}); err != nil {
		return domain.Booking{}, fmt.Errorf("publishing booking event: %w", err)
	}

	return booking, nil
}

// Transition applies a lifecycle event to a booking. Only the owner of the
// property that holds the booked room may call this. Approval occupies the
// room, completion frees it, and the tenant is always notified; the status
// change, occupancy flip and notification commit in one transaction.
func (s *BookingService) Transition(ctx context.Context, actor domain.Actor, id string, event domain.Event, reason string) (domain.Booking, error) {
	if actor.ID == "" {
		return domain.Booking{}, domain.ErrUnauthorized
	}

	detail, err := s.bookings.GetDetail(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if detail.OwnerID != actor.ID {
		return domain.Booking{}, domain.ErrForbidden
	}

	newStatus, err := s.validator.Apply(ctx, detail.Status, event)
	if err != nil {
		return domain.Booking{}, err
	}

	booking := detail.Booking
	booking.Status = newStatus
	if event == domain.EventCancel && reason != "" {
		booking.RejectionReason = reason
	}

	noteID, err := generateID()
	if err != nil {
		return domain.Booking{}, fmt.Errorf("generating notification id: %w", err)
	}
	note := bookingNotification(noteID, detail, event, reason)

	occupancy := domain.OccupancyChange(booking.RoomID, event)

	if err := s.bookings.ApplyTransition(ctx, booking, occupancy, note); err != nil {
		return domain.Booking{}, fmt.Errorf("applying booking transition: %w", err)
	}

	if err := s.publisher.Publish(ctx, domain.DomainEvent{
		Event:    event,
		Entity:   "booking",
		EntityID: booking.ID,
		UserID:   booking.TenantID,
		Status:   booking.Status,
	}); err != nil {
		return domain.Booking{}, fmt.Errorf("publishing event %q: %w", event, err)
	}

	return booking, nil
}

// CompleteBiodata records the occupant's identity on a booking and stores the
// KTP document in the private documents bucket. Only the booking's tenant may
// call this; no status transition occurs.
func (s *BookingService) CompleteBiodata(ctx context.Context, actor domain.Actor, id, occupantName, ktpNumber string, ktpImage []byte) (domain.Booking, error) {
	if actor.ID == "" {
		return domain.Booking{}, domain.ErrUnauthorized
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if booking.TenantID != actor.ID {
		return domain.Booking{}, domain.ErrForbidden
	}

	if occupantName == "" {
		return domain.Booking{}, &domain.ValidationError{Field: "occupant_name", Reason: "must not be empty"}
	}
	if ktpNumber == "" {
		return domain.Booking{}, &domain.ValidationError{Field: "ktp_number", Reason: "must not be empty"}
	}
	if len(ktpImage) == 0 {
		return domain.Booking{}, &domain.ValidationError{Field: "ktp_image", Reason: "must not be empty"}
	}

	path := fmt.Sprintf("ktp/%s/%s.jpg", actor.ID, booking.ID)
	ref, err := s.blobs.Upload(ctx, domain.BucketDocuments, path, ktpImage, "image/jpeg")
	if err != nil {
		return domain.Booking{}, fmt.Errorf("uploading ktp image: %w", err)
	}

	if err := s.bookings.SetOccupant(ctx, booking.ID, occupantName, ktpNumber, ref); err != nil {
		return domain.Booking{}, fmt.Errorf("saving occupant data: %w", err)
	}

	booking.OccupantName = occupantName
	booking.OccupantKTPNumber = ktpNumber
	booking.OccupantKTPRef = ref
	return booking, nil
}

// Get returns a booking visible to the actor. Non-participants get a
// not-found, matching row-level filtering semantics.
func (s *BookingService) Get(ctx context.Context, actor domain.Actor, id string) (domain.BookingDetail, error) {
	if actor.ID == "" {
		return domain.BookingDetail{}, domain.ErrUnauthorized
	}

	detail, err := s.bookings.GetDetail(ctx, id)
	if err != nil {
		return domain.BookingDetail{}, err
	}
	if detail.TenantID != actor.ID && detail.OwnerID != actor.ID {
		return domain.BookingDetail{}, domain.ErrBookingNotFound
	}
	return detail, nil
}

// ListMine returns the actor's bookings: as tenant, the bookings they made;
// as owner, the bookings on their properties.
func (s *BookingService) ListMine(ctx context.Context, actor domain.Actor) ([]domain.BookingDetail, error) {
	if actor.ID == "" {
		return nil, domain.ErrUnauthorized
	}

	if actor.Role == domain.RoleOwner {
		return s.bookings.ListByOwner(ctx, actor.ID)
	}

	bookings, err := s.bookings.ListByTenant(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.BookingDetail, len(bookings))
	for i, b := range bookings {
		out[i] = domain.BookingDetail{Booking: b}
	}
	return out, nil
}

// bookingNotification builds the tenant-facing copy for a booking event.
func bookingNotification(id string, d domain.BookingDetail, event domain.Event, reason string) domain.Notification {
	switch event {
	case domain.EventApprove:
		return domain.NewNotification(id, d.TenantID,
			"Booking approved",
			fmt.Sprintf("Your booking for %s at %s has been approved. Please submit your first payment.", d.RoomName, d.PropertyName),
			"/payments",
		)
	case domain.EventComplete:
		return domain.NewNotification(id, d.TenantID,
			"Booking completed",
			fmt.Sprintf("Your lease for %s at %s has ended. You can now leave a review.", d.RoomName, d.PropertyName),
			"/reviews",
		)
	default: // cancel
		msg := fmt.Sprintf("Your booking for %s at %s has been cancelled.", d.RoomName, d.PropertyName)
		if reason != "" {
			msg += " Reason: " + reason
		}
		return domain.NewNotification(id, d.TenantID, "Booking cancelled", msg, "/bookings")
	}
}
