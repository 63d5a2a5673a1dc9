package domain

import "time"

// Maintenance request lifecycle states.
const (
	MaintenanceOpen       Status = "open"
	MaintenanceInProgress Status = "in_progress"
	MaintenanceResolved   Status = "resolved"
)

// Maintenance request lifecycle events, triggered by the property owner.
const (
	EventStartProgress Event = "start_progress"
	EventResolve       Event = "resolve"
)

// MaintenanceTransitions defines all valid state changes for maintenance
// requests. An open request may be resolved directly without passing through
// in_progress.
var MaintenanceTransitions = []Transition{
	{Event: EventStartProgress, Src: MaintenanceOpen, Dst: MaintenanceInProgress},
	{Event: EventResolve, Src: MaintenanceOpen, Dst: MaintenanceResolved},
	{Event: EventResolve, Src: MaintenanceInProgress, Dst: MaintenanceResolved},
}

// MaintenanceRequest is a repair report filed against a property. RoomID is
// empty when the report concerns a common area.
type MaintenanceRequest struct {
	ID          string
	PropertyID  string
	RoomID      string
	ReporterID  string
	Title       string
	Description string
	ImageRef    string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewMaintenanceRequest creates an open maintenance request.
func NewMaintenanceRequest(id, propertyID, roomID, reporterID, title, description, imageRef string) MaintenanceRequest {
	now := time.Now().UTC()
	return MaintenanceRequest{
		ID:          id,
		PropertyID:  propertyID,
		RoomID:      roomID,
		ReporterID:  reporterID,
		Title:       title,
		Description: description,
		ImageRef:    imageRef,
		Status:      MaintenanceOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// MaintenanceDetail is a request joined with its property owner, used for
// ownership checks on status advances.
type MaintenanceDetail struct {
	MaintenanceRequest
	OwnerID string
}
