package domain

import "time"

// Booking lifecycle states. A booking starts pending, is approved or cancelled
// by the property owner, and ends completed or cancelled. The "active" state is
// reachable only through an external settlement process, never by this engine,
// but transitions out of it are still honored.
const (
	BookingPending   Status = "pending"
	BookingApproved  Status = "approved"
	BookingActive    Status = "active"
	BookingCancelled Status = "cancelled"
	BookingCompleted Status = "completed"
)

// Booking lifecycle events, triggered by the property owner.
const (
	EventApprove  Event = "approve"
	EventCancel   Event = "cancel"
	EventComplete Event = "complete"
)

// BookingTransitions defines all valid state changes in the booking lifecycle.
// This is domain knowledge consumed by the FSM adapter.
var BookingTransitions = []Transition{
	{Event: EventApprove, Src: BookingPending, Dst: BookingApproved},
	{Event: EventCancel, Src: BookingPending, Dst: BookingCancelled},
	{Event: EventCancel, Src: BookingApproved, Dst: BookingCancelled},
	{Event: EventCancel, Src: BookingActive, Dst: BookingCancelled},
	{Event: EventComplete, Src: BookingApproved, Dst: BookingCompleted},
	{Event: EventComplete, Src: BookingActive, Dst: BookingCompleted},
}

// Booking is a tenant's request to rent a room for a date range.
type Booking struct {
	ID                string
	RoomID            string
	TenantID          string
	StartDate         time.Time
	EndDate           time.Time
	TotalPrice        int64
	Status            Status
	OccupantName      string
	OccupantKTPNumber string
	OccupantKTPRef    string
	RejectionReason   string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewBooking creates a pending booking. Total price is the room's monthly
// price multiplied by the number of lease months between the dates.
func NewBooking(id, roomID, tenantID string, start, end time.Time, priceMonthly int64) Booking {
	now := time.Now().UTC()
	return Booking{
		ID:         id,
		RoomID:     roomID,
		TenantID:   tenantID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: priceMonthly * int64(LeaseMonths(start, end)),
		Status:     BookingPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// LeaseMonths counts whole months between start and end, rounding any partial
// month up. A range shorter than one month still bills as one.
func LeaseMonths(start, end time.Time) int {
	if !end.After(start) {
		return 1
	}
	months := 0
	for cursor := start.AddDate(0, 1, 0); !cursor.After(end); cursor = cursor.AddDate(0, 1, 0) {
		months++
	}
	if start.AddDate(0, months, 0).Before(end) {
		months++
	}
	if months == 0 {
		months = 1
	}
	return months
}

// BookingDetail is a booking joined with its room and property, used for
// ownership checks and denormalized snapshots.
type BookingDetail struct {
	Booking
	RoomName     string
	RoomPrice    int64
	PropertyID   string
	PropertyName string
	OwnerID      string
}

// RoomOccupancy instructs a transition write to flip a room's occupied flag.
type RoomOccupancy struct {
	RoomID   string
	Occupied bool
}

// OccupancyChange returns the room occupancy side effect of a booking event,
// or nil when the event leaves occupancy untouched. Approval occupies the
// room, completion frees it, cancellation never touches it.
func OccupancyChange(roomID string, event Event) *RoomOccupancy {
	switch event {
	case EventApprove:
		return &RoomOccupancy{RoomID: roomID, Occupied: true}
	case EventComplete:
		return &RoomOccupancy{RoomID: roomID, Occupied: false}
	default:
		return nil
	}
}
