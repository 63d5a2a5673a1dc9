package app

import (
	"context"
	"fmt"

	"github.com/kosthub/kosthub/internal/domain"
)

// PropertyService manages the owner-facing catalog: properties and their
// rooms. Listings and search are public; writes are owner-only.
type PropertyService struct {
	properties domain.PropertyRepository
	rooms      domain.RoomRepository
	blobs      domain.BlobStore
}

// NewPropertyService creates a service with the given adapters.
func NewPropertyService(properties domain.PropertyRepository, rooms domain.RoomRepository, blobs domain.BlobStore) *PropertyService {
	return &PropertyService{
		properties: properties,
		rooms:      rooms,
		blobs:      blobs,
	}
}

// CreateProperty registers a boarding house for the owner. The cover image
// is optional and stored in the public properties bucket.
func (s *PropertyService) CreateProperty(ctx context.Context, actor domain.Actor, name, address, description string, lat, lng float64, image []byte) (domain.Property, error) {
	if actor.ID == "" {
		return domain.Property{}, domain.ErrUnauthorized
	}
	if actor.Role != domain.RoleOwner {
		return domain.Property{}, domain.ErrForbidden
	}
	if name == "" {
		return domain.Property{}, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if address == "" {
		return domain.Property{}, &domain.ValidationError{Field: "address", Reason: "must not be empty"}
	}

	id, err := generateID()
	if err != nil {
		return domain.Property{}, fmt.Errorf("generating property id: %w", err)
	}

	property := domain.NewProperty(id, actor.ID, name, address, description, lat, lng)

	if len(image) > 0 {
		path := fmt.Sprintf("property/%s/cover.jpg", id)
		property.ImageRef, err = s.blobs.Upload(ctx, domain.BucketProperties, path, image, "image/jpeg")
		if err != nil {
			return domain.Property{}, fmt.Errorf("uploading property image: %w", err)
		}
	}

	if err := s.properties.Create(ctx, property); err != nil {
		return domain.Property{}, fmt.Errorf("creating property: %w", err)
	}
	return property, nil
}

// UpdateProperty edits a property's descriptive fields. Owner only.
func (s *PropertyService) UpdateProperty(ctx context.Context, actor domain.Actor, id, name, address, description string, lat, lng float64) (domain.Property, error) {
	if actor.ID == "" {
		return domain.Property{}, domain.ErrUnauthorized
	}

	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	if property.OwnerID != actor.ID {
		return domain.Property{}, domain.ErrForbidden
	}

	if name != "" {
		property.Name = name
	}
	if address != "" {
		property.Address = address
	}
	if description != "" {
		property.Description = description
	}
	if lat != 0 || lng != 0 {
		property.Latitude = lat
		property.Longitude = lng
	}

	if err := s.properties.Update(ctx, property); err != nil {
		return domain.Property{}, fmt.Errorf("updating property: %w", err)
	}
	return property, nil
}

// GetProperty returns a property by ID. Listings are public.
func (s *PropertyService) GetProperty(ctx context.Context, id string) (domain.Property, error) {
	return s.properties.GetByID(ctx, id)
}

// Search returns properties matching the filter. Public.
func (s *PropertyService) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Property, error) {
	return s.properties.Search(ctx, filter)
}

// ListOwned returns the owner's properties.
func (s *PropertyService) ListOwned(ctx context.Context, actor domain.Actor) ([]domain.Property, error) {
	if actor.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	if actor.Role != domain.RoleOwner {
		return nil, domain.ErrForbidden
	}
	return s.properties.ListByOwner(ctx, actor.ID)
}

// CreateRoom adds a vacant room to one of the owner's properties. Price must
// be positive; room photos go to the public properties bucket.
func (s *PropertyService) CreateRoom(ctx context.Context, actor domain.Actor, propertyID, name string, priceMonthly int64, facilities []string, images [][]byte) (domain.Room, error) {
	if actor.ID == "" {
		return domain.Room{}, domain.ErrUnauthorized
	}

	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return domain.Room{}, err
	}
	if property.OwnerID != actor.ID {
		return domain.Room{}, domain.ErrForbidden
	}

	if name == "" {
		return domain.Room{}, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if priceMonthly <= 0 {
		return domain.Room{}, &domain.ValidationError{Field: "price_monthly", Reason: "must be positive"}
	}

	id, err := generateID()
	if err != nil {
		return domain.Room{}, fmt.Errorf("generating room id: %w", err)
	}

	room := domain.NewRoom(id, propertyID, name, priceMonthly, facilities)

	for i, img := range images {
		path := fmt.Sprintf("rooms/%s/%d.jpg", id, i)
		ref, err := s.blobs.Upload(ctx, domain.BucketProperties, path, img, "image/jpeg")
		if err != nil {
			return domain.Room{}, fmt.Errorf("uploading room image: %w", err)
		}
		room.Images = append(room.Images, ref)
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		return domain.Room{}, fmt.Errorf("creating room: %w", err)
	}
	return room, nil
}

// UpdateRoom edits a room's name, price or facilities. Owner only. The
// occupancy flag is off-limits: it flips only through booking transitions.
func (s *PropertyService) UpdateRoom(ctx context.Context, actor domain.Actor, roomID, name string, priceMonthly int64, facilities []string) (domain.Room, error) {
	if actor.ID == "" {
		return domain.Room{}, domain.ErrUnauthorized
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return domain.Room{}, err
	}

	property, err := s.properties.GetByID(ctx, room.PropertyID)
	if err != nil {
		return domain.Room{}, err
	}
	if property.OwnerID != actor.ID {
		return domain.Room{}, domain.ErrForbidden
	}

	if name != "" {
		room.Name = name
	}
	if priceMonthly > 0 {
		room.PriceMonthly = priceMonthly
	}
	if facilities != nil {
		room.Facilities = facilities
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return domain.Room{}, fmt.Errorf("updating room: %w", err)
	}
	return room, nil
}

// GetRoom returns a room by ID. Public.
func (s *PropertyService) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

// ListRooms returns a property's rooms. Public.
func (s *PropertyService) ListRooms(ctx context.Context, propertyID string) ([]domain.Room, error) {
	return s.rooms.ListByProperty(ctx, propertyID)
}
