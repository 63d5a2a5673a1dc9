package domain

// Status represents the lifecycle state of an entity with a guarded lifecycle
// (Booking, Payment, Contract, MaintenanceRequest).
type Status string

// Event represents an action that triggers a state transition.
type Event string

// Transition defines a valid state change: an event moves an entity from Src to Dst.
type Transition struct {
	Event Event
	Src   Status
	Dst   Status
}
