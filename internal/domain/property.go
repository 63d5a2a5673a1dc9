package domain

import "time"

// Property is a boarding house managed by an owner.
type Property struct {
	ID          string
	OwnerID     string
	Name        string
	Address     string
	Description string
	ImageRef    string
	Latitude    float64
	Longitude   float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProperty creates a property owned by the given owner.
func NewProperty(id, ownerID, name, address, description string, lat, lng float64) Property {
	now := time.Now().UTC()
	return Property{
		ID:          id,
		OwnerID:     ownerID,
		Name:        name,
		Address:     address,
		Description: description,
		Latitude:    lat,
		Longitude:   lng,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Room is a rentable unit inside a property. IsOccupied flips only through
// booking transitions, never by direct edits.
type Room struct {
	ID           string
	PropertyID   string
	Name         string
	PriceMonthly int64
	Facilities   []string
	Images       []string
	IsOccupied   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewRoom creates a vacant room under a property.
func NewRoom(id, propertyID, name string, priceMonthly int64, facilities []string) Room {
	now := time.Now().UTC()
	return Room{
		ID:           id,
		PropertyID:   propertyID,
		Name:         name,
		PriceMonthly: priceMonthly,
		Facilities:   facilities,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
