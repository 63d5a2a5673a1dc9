package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kosthub/kosthub/internal/domain"
)

// TracingBookingRepository wraps a domain.BookingRepository with OpenTelemetry
// tracing. Each method creates a span with semantic attributes and records
// errors. Bookings carry the highest-value writes, so they get the decorator;
// the plainer repositories rely on otelsql's statement-level spans.
type TracingBookingRepository struct {
	next   domain.BookingRepository
	tracer trace.Tracer
}

// Compile-time check: TracingBookingRepository implements domain.BookingRepository.
var _ domain.BookingRepository = (*TracingBookingRepository)(nil)

// NewTracingBookingRepository creates a tracing decorator around the given repository.
func NewTracingBookingRepository(next domain.BookingRepository) *TracingBookingRepository {
	return &TracingBookingRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingBookingRepository) Create(ctx context.Context, b domain.Booking) error {
	ctx, span := r.tracer.Start(ctx, "BookingRepository.Create",
		trace.WithAttributes(
			attribute.String("booking.id", b.ID),
			attribute.String("booking.room_id", b.RoomID),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, b)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingBookingRepository) GetByID(ctx context.Context, id string) (domain.Booking, error) {
	ctx, span := r.tracer.Start(ctx, "BookingRepository.GetByID",
		trace.WithAttributes(attribute.String("booking.id", id)),
	)
	defer span.End()

	b, err := r.next.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return b, err
}

func (r *TracingBookingRepository) GetDetail(ctx context.Context, id string) (domain.BookingDetail, error) {
	ctx, span := r.tracer.Start(ctx, "BookingRepository.GetDetail",
		trace.WithAttributes(attribute.String("booking.id", id)),
	)
	defer span.End()

	d, err := r.next.GetDetail(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return d, err
}

func (r *TracingBookingRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.Booking, error) {
	ctx, span := r.tracer.Start(ctx, "BookingRepository.ListByTenant",
		trace.WithAttributes(attribute.String("tenant.id", tenantID)),
	)
	defer span.End()

	bookings, err := r.next.ListByTenant(ctx, tenantID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("result.count", len(bookings)))
	}
	return bookings, err
}

func (r *TracingBookingRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.BookingDetail, error) {
	ctx, span := r.tracer.Start(ctx, "BookingRepository.ListByOwner",
		trace.WithAttributes(attribute.String("owner.id", ownerID)),
	)
	defer span.End()

	details, err := r.next.ListByOwner(ctx, ownerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("result.count", len(details)))
	}
	return details, err
}

func (r *TracingBookingRepository) ApplyTransition(ctx context.Context, b domain.Booking, occupancy *domain.RoomOccupancy, note domain.Notification) error {
	ctx, span := r.tracer.Start(ctx, "BookingRepository.ApplyTransition",
		trace.WithAttributes(
			attribute.String("booking.id", b.ID),
			attribute.String("booking.status", string(b.Status)),
			attribute.Bool("booking.occupancy_change", occupancy != nil),
		),
	)
	defer span.End()

	err := r.next.ApplyTransition(ctx, b, occupancy, note)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingBookingRepository) SetOccupant(ctx context.Context, id, name, ktpNumber, ktpRef string) error {
	ctx, span := r.tracer.Start(ctx, "BookingRepository.SetOccupant",
		trace.WithAttributes(attribute.String("booking.id", id)),
	)
	defer span.End()

	err := r.next.SetOccupant(ctx, id, name, ktpNumber, ktpRef)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
