package domain

import (
	"context"
	"time"
)

// BookingRepository defines the persistence contract for bookings.
// ApplyTransition persists the status change, the optional room occupancy
// flip, and the tenant notification in a single transaction.
type BookingRepository interface {
	Create(ctx context.Context, b Booking) error
	GetByID(ctx context.Context, id string) (Booking, error)
	GetDetail(ctx context.Context, id string) (BookingDetail, error)
	ListByTenant(ctx context.Context, tenantID string) ([]Booking, error)
	ListByOwner(ctx context.Context, ownerID string) ([]BookingDetail, error)
	ApplyTransition(ctx context.Context, b Booking, occupancy *RoomOccupancy, note Notification) error
	SetOccupant(ctx context.Context, id, name, ktpNumber, ktpRef string) error
}

// PaymentRepository defines the persistence contract for payments. Create
// returns a DuplicatePeriodError when a payment already exists for the
// booking's billing period. ApplyVerdict persists the verdict and the tenant
// notification in a single transaction.
type PaymentRepository interface {
	Create(ctx context.Context, p Payment) error
	GetDetail(ctx context.Context, id string) (PaymentDetail, error)
	ListByBooking(ctx context.Context, bookingID string) ([]Payment, error)
	ListByOwner(ctx context.Context, ownerID string) ([]PaymentDetail, error)
	ApplyVerdict(ctx context.Context, p Payment, note Notification) error
}

// ContractRepository defines the persistence contract for contracts.
// ExpireDue flips active contracts whose end date has passed; callers run it
// before reads so expiry is observed lazily. Terminate persists the status
// and the tenant notification in a single transaction.
type ContractRepository interface {
	Create(ctx context.Context, c Contract) error
	GetByID(ctx context.Context, id string) (Contract, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Contract, error)
	ListByTenant(ctx context.Context, tenantID string) ([]Contract, error)
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
	Terminate(ctx context.Context, c Contract, note Notification) error
}

// MaintenanceRepository defines the persistence contract for maintenance requests.
type MaintenanceRepository interface {
	Create(ctx context.Context, m MaintenanceRequest) error
	GetDetail(ctx context.Context, id string) (MaintenanceDetail, error)
	ListByReporter(ctx context.Context, reporterID string) ([]MaintenanceRequest, error)
	ListByOwner(ctx context.Context, ownerID string) ([]MaintenanceDetail, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// NotificationRepository defines the persistence contract for notifications.
// MarkRead only touches rows owned by userID; marking someone else's row is
// indistinguishable from the row being absent.
type NotificationRepository interface {
	Insert(ctx context.Context, n Notification) error
	ListByUser(ctx context.Context, userID string, since time.Time, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

// ReviewRepository defines the persistence contract for reviews. Create
// returns an AlreadyReviewedError when the booking already has one.
type ReviewRepository interface {
	Create(ctx context.Context, r Review) error
	ListByProperty(ctx context.Context, propertyID string) ([]Review, error)
}

// WishlistRepository defines the persistence contract for wishlists. Toggle
// inserts the item if absent and removes it if present, reporting whether the
// property is saved afterwards. The insert is conflict-tolerant so concurrent
// duplicate toggles cannot double-insert.
type WishlistRepository interface {
	Toggle(ctx context.Context, item WishlistItem) (saved bool, err error)
	ListByTenant(ctx context.Context, tenantID string) ([]WishlistItem, error)
}

// ProfileRepository defines the persistence contract for profiles.
type ProfileRepository interface {
	Create(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, id string) (Profile, error)
	Update(ctx context.Context, p Profile) error
}

// SearchFilter holds optional criteria for listing properties.
type SearchFilter struct {
	Query  string
	Limit  int
	Offset int
}

// PropertyRepository defines the persistence contract for properties.
type PropertyRepository interface {
	Create(ctx context.Context, p Property) error
	GetByID(ctx context.Context, id string) (Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Property, error)
	Search(ctx context.Context, filter SearchFilter) ([]Property, error)
	Update(ctx context.Context, p Property) error
}

// RoomRepository defines the persistence contract for rooms.
type RoomRepository interface {
	Create(ctx context.Context, r Room) error
	GetByID(ctx context.Context, id string) (Room, error)
	ListByProperty(ctx context.Context, propertyID string) ([]Room, error)
	Update(ctx context.Context, r Room) error
}

// TransitionValidator checks whether an event is valid from the current
// status and returns the destination status.
type TransitionValidator interface {
	Apply(ctx context.Context, current Status, event Event) (Status, error)
}

// DomainEvent is the payload emitted to the async event stream whenever a
// lifecycle transition commits.
type DomainEvent struct {
	Event    Event
	Entity   string
	EntityID string
	UserID   string
	Status   Status
}

// EventPublisher defines the contract for emitting domain events.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}

// Blob storage buckets. Public buckets serve files directly; private buckets
// only through short-lived signed URLs.
const (
	BucketProperties = "properties"     // public: property and room images
	BucketAvatars    = "avatars"        // public: profile avatars
	BucketDocuments  = "documents"      // private: tenant KTP documents
	BucketPayments   = "payment-proofs" // private: payment proof images
)

// BlobStore defines the file storage contract. Upload returns the stored
// path (not a URL); private-bucket paths are exchanged for signed URLs.
type BlobStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error)
	PublicURL(bucket, path string) string
	SignedURL(bucket, path string, ttl time.Duration) (string, error)
}

// User is an identity-provider account.
type User struct {
	ID    string
	Email string
}

// Session is an authenticated identity-provider session.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      User
}

// IdentityProvider defines the authentication contract.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (User, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	Verify(ctx context.Context, token string) (User, error)
	SignOut(ctx context.Context, token string) error
}
