package domain

import "time"

// Contract lifecycle states. Contracts are created active, expire by date,
// or are terminated by the owner.
const (
	ContractActive     Status = "active"
	ContractExpired    Status = "expired"
	ContractTerminated Status = "terminated"
)

// Contract is a signed lease derived from an approved booking. Property name,
// room name and rent are copied at creation time so later edits to the source
// rows never alter a signed contract.
type Contract struct {
	ID           string
	BookingID    string
	OwnerID      string
	TenantID     string
	PropertyName string
	RoomName     string
	MonthlyRent  int64
	StartDate    time.Time
	EndDate      time.Time
	Status       Status
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewContract creates an active contract from a booking detail snapshot.
func NewContract(id string, b BookingDetail, endDate time.Time, notes string) Contract {
	now := time.Now().UTC()
	return Contract{
		ID:           id,
		BookingID:    b.ID,
		OwnerID:      b.OwnerID,
		TenantID:     b.TenantID,
		PropertyName: b.PropertyName,
		RoomName:     b.RoomName,
		MonthlyRent:  b.RoomPrice,
		StartDate:    b.StartDate,
		EndDate:      endDate,
		Status:       ContractActive,
		Notes:        notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ExpiredBy reports whether an active contract has passed its end date.
// Expiry is lazy: callers apply this predicate on read instead of relying
// on a background process.
func (c Contract) ExpiredBy(now time.Time) bool {
	return c.Status == ContractActive && c.EndDate.Before(now)
}
