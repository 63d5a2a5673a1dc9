package app

import (
	"context"
	"fmt"

	"github.com/kosthub/kosthub/internal/domain"
)

// MaintenanceService manages repair reports on properties. Anyone
// authenticated may file a report; only the property owner advances its
// status. Status changes deliberately produce no notifications, unlike
// booking and payment transitions.
type MaintenanceService struct {
	requests   domain.MaintenanceRepository
	properties domain.PropertyRepository
	validator  domain.TransitionValidator
	publisher  domain.EventPublisher
	blobs      domain.BlobStore
}

// NewMaintenanceService creates a service with the given adapters. The
// validator must be built from domain.MaintenanceTransitions.
func NewMaintenanceService(requests domain.MaintenanceRepository, properties domain.PropertyRepository, validator domain.TransitionValidator, publisher domain.EventPublisher, blobs domain.BlobStore) *MaintenanceService {
	return &MaintenanceService{
		requests:   requests,
		properties: properties,
		validator:  validator,
		publisher:  publisher,
		blobs:      blobs,
	}
}

// Create files an open maintenance request against a property. RoomID may be
// empty for common-area issues; the image is optional.
func (s *MaintenanceService) Create(ctx context.Context, actor domain.Actor, propertyID, roomID, title, description string, image []byte) (domain.MaintenanceRequest, error) {
	if actor.ID == "" {
		return domain.MaintenanceRequest{}, domain.ErrUnauthorized
	}
	if title == "" {
		return domain.MaintenanceRequest{}, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}

	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		return domain.MaintenanceRequest{}, err
	}

	id, err := generateID()
	if err != nil {
		return domain.MaintenanceRequest{}, fmt.Errorf("generating request id: %w", err)
	}

	var imageRef string
	if len(image) > 0 {
		path := fmt.Sprintf("maintenance/%s/%s.jpg", propertyID, id)
		imageRef, err = s.blobs.Upload(ctx, domain.BucketProperties, path, image, "image/jpeg")
		if err != nil {
			return domain.MaintenanceRequest{}, fmt.Errorf("uploading report image: %w", err)
		}
	}

	request := domain.NewMaintenanceRequest(id, propertyID, roomID, actor.ID, title, description, imageRef)

	if err := s.requests.Create(ctx, request); err != nil {
		return domain.MaintenanceRequest{}, fmt.Errorf("creating maintenance request: %w", err)
	}

	if err := s.publisher.Publish(ctx, domain.DomainEvent{
		Event:    EventSubmitted,
		Entity:   "maintenance_request",
		EntityID: request.ID,
		UserID:   request.ReporterID,
		Status:   request.Status,
	}); err != nil {
		return domain.MaintenanceRequest{}, fmt.Errorf("publishing maintenance event: %w", err)
	}

	return request, nil
}

// Advance moves a request through its lifecycle. Only the owner of the
// request's property may advance it.
func (s *MaintenanceService) Advance(ctx context.Context, actor domain.Actor, id string, event domain.Event) (domain.MaintenanceRequest, error) {
	if actor.ID == "" {
		return domain.MaintenanceRequest{}, domain.ErrUnauthorized
	}

	detail, err := s.requests.GetDetail(ctx, id)
	if err != nil {
		return domain.MaintenanceRequest{}, err
	}
	if detail.OwnerID != actor.ID {
		return domain.MaintenanceRequest{}, domain.ErrForbidden
	}

	newStatus, err := s.validator.Apply(ctx, detail.Status, event)
	if err != nil {
		return domain.MaintenanceRequest{}, err
	}

	if err := s.requests.UpdateStatus(ctx, id, newStatus); err != nil {
		return domain.MaintenanceRequest{}, fmt.Errorf("updating request status: %w", err)
	}

	request := detail.MaintenanceRequest
	request.Status = newStatus

	if err := s.publisher.Publish(ctx, domain.DomainEvent{
		Event:    event,
		Entity:   "maintenance_request",
		EntityID: request.ID,
		UserID:   request.ReporterID,
		Status:   request.Status,
	}); err != nil {
		return domain.MaintenanceRequest{}, fmt.Errorf("publishing event %q: %w", event, err)
	}

	return request, nil
}

// ListMine returns the actor's maintenance requests: as owner, every request
// on their properties; otherwise the requests they reported.
func (s *MaintenanceService) ListMine(ctx context.Context, actor domain.Actor) ([]domain.MaintenanceDetail, error) {
	if actor.ID == "" {
		return nil, domain.ErrUnauthorized
	}

	if actor.Role == domain.RoleOwner {
		return s.requests.ListByOwner(ctx, actor.ID)
	}

	requests, err := s.requests.ListByReporter(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.MaintenanceDetail, len(requests))
	for i, r := range requests {
		out[i] = domain.MaintenanceDetail{MaintenanceRequest: r}
	}
	return out, nil
}
