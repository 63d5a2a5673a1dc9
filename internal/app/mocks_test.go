package app_test

import (
	"context"
	"fmt"
	"time"

	"github.com/kosthub/kosthub/internal/domain"
)

// tableValidator applies a transition table directly, standing in for the FSM
// adapter in service tests.
type tableValidator struct {
	transitions []domain.Transition
}

func (v *tableValidator) Apply(_ context.Context, current domain.Status, event domain.Event) (domain.Status, error) {
	for _, t := range v.transitions {
		if t.Event == event && t.Src == current {
			return t.Dst, nil
		}
	}
	return "", &domain.TransitionError{Event: event, Current: current}
}

// capturePublisher records every published event.
type capturePublisher struct {
	events []domain.DomainEvent
}

func (p *capturePublisher) Publish(_ context.Context, event domain.DomainEvent) error {
	p.events = append(p.events, event)
	return nil
}

// memBlobs records uploads and echoes paths back as references.
type memBlobs struct {
	uploads map[string][]byte // bucket/path -> data
}

func newMemBlobs() *memBlobs {
	return &memBlobs{uploads: make(map[string][]byte)}
}

func (b *memBlobs) Upload(_ context.Context, bucket, path string, data []byte, _ string) (string, error) {
	b.uploads[bucket+"/"+path] = data
	return path, nil
}

func (b *memBlobs) PublicURL(bucket, path string) string {
	return "http://blobs.test/" + bucket + "/" + path
}

func (b *memBlobs) SignedURL(bucket, path string, _ time.Duration) (string, error) {
	return "http://blobs.test/" + bucket + "/" + path + "?signed=1", nil
}

// memBookings is a map-backed BookingRepository. It records the side effects
// passed to ApplyTransition so tests can assert the composite write.
type memBookings struct {
	bookings      map[string]domain.Booking
	details       map[string]domain.BookingDetail
	lastNote      domain.Notification
	lastOccupancy *domain.RoomOccupancy
}

func newMemBookings() *memBookings {
	return &memBookings{
		bookings: make(map[string]domain.Booking),
		details:  make(map[string]domain.BookingDetail),
	}
}

// add stores a booking along with its joined detail row.
func (m *memBookings) add(d domain.BookingDetail) {
	m.bookings[d.ID] = d.Booking
	m.details[d.ID] = d
}

func (m *memBookings) Create(_ context.Context, b domain.Booking) error {
	m.bookings[b.ID] = b
	return nil
}

func (m *memBookings) GetByID(_ context.Context, id string) (domain.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return b, nil
}

func (m *memBookings) GetDetail(_ context.Context, id string) (domain.BookingDetail, error) {
	d, ok := m.details[id]
	if !ok {
		return domain.BookingDetail{}, domain.ErrBookingNotFound
	}
	return d, nil
}

func (m *memBookings) ListByTenant(_ context.Context, tenantID string) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.bookings {
		if b.TenantID == tenantID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookings) ListByOwner(_ context.Context, ownerID string) ([]domain.BookingDetail, error) {
	var out []domain.BookingDetail
	for _, d := range m.details {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memBookings) ApplyTransition(_ context.Context, b domain.Booking, occupancy *domain.RoomOccupancy, note domain.Notification) error {
	if _, ok := m.bookings[b.ID]; !ok {
		return domain.ErrBookingNotFound
	}
	m.bookings[b.ID] = b
	if d, ok := m.details[b.ID]; ok {
		d.Booking = b
		m.details[b.ID] = d
	}
	m.lastOccupancy = occupancy
	m.lastNote = note
	return nil
}

func (m *memBookings) SetOccupant(_ context.Context, id, name, ktpNumber, ktpRef string) error {
	b, ok := m.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.OccupantName = name
	b.OccupantKTPNumber = ktpNumber
	b.OccupantKTPRef = ktpRef
	m.bookings[id] = b
	return nil
}

// memRooms is a map-backed RoomRepository.
type memRooms struct {
	rooms map[string]domain.Room
}

func newMemRooms() *memRooms {
	return &memRooms{rooms: make(map[string]domain.Room)}
}

func (m *memRooms) Create(_ context.Context, r domain.Room) error {
	m.rooms[r.ID] = r
	return nil
}

func (m *memRooms) GetByID(_ context.Context, id string) (domain.Room, error) {
	r, ok := m.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return r, nil
}

func (m *memRooms) ListByProperty(_ context.Context, propertyID string) ([]domain.Room, error) {
	var out []domain.Room
	for _, r := range m.rooms {
		if r.PropertyID == propertyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRooms) Update(_ context.Context, r domain.Room) error {
	if _, ok := m.rooms[r.ID]; !ok {
		return domain.ErrRoomNotFound
	}
	m.rooms[r.ID] = r
	return nil
}

// memPayments is a map-backed PaymentRepository enforcing the one-payment-
// per-period rule like the SQL unique constraint does.
type memPayments struct {
	payments map[string]domain.Payment
	details  map[string]domain.PaymentDetail
	lastNote domain.Notification
}

func newMemPayments() *memPayments {
	return &memPayments{
		payments: make(map[string]domain.Payment),
		details:  make(map[string]domain.PaymentDetail),
	}
}

func (m *memPayments) add(d domain.PaymentDetail) {
	m.payments[d.ID] = d.Payment
	m.details[d.ID] = d
}

func (m *memPayments) Create(_ context.Context, p domain.Payment) error {
	for _, existing := range m.payments {
		if existing.BookingID == p.BookingID &&
			existing.PeriodMonth == p.PeriodMonth && existing.PeriodYear == p.PeriodYear {
			return &domain.DuplicatePeriodError{BookingID: p.BookingID, Month: p.PeriodMonth, Year: p.PeriodYear}
		}
	}
	m.payments[p.ID] = p
	return nil
}

func (m *memPayments) GetDetail(_ context.Context, id string) (domain.PaymentDetail, error) {
	d, ok := m.details[id]
	if !ok {
		return domain.PaymentDetail{}, domain.ErrPaymentNotFound
	}
	return d, nil
}

func (m *memPayments) ListByBooking(_ context.Context, bookingID string) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range m.payments {
		if p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPayments) ListByOwner(_ context.Context, ownerID string) ([]domain.PaymentDetail, error) {
	var out []domain.PaymentDetail
	for _, d := range m.details {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memPayments) ApplyVerdict(_ context.Context, p domain.Payment, note domain.Notification) error {
	if _, ok := m.payments[p.ID]; !ok {
		return domain.ErrPaymentNotFound
	}
	m.payments[p.ID] = p
	if d, ok := m.details[p.ID]; ok {
		d.Payment = p
		m.details[p.ID] = d
	}
	m.lastNote = note
	return nil
}

// memContracts is a map-backed ContractRepository.
type memContracts struct {
	contracts map[string]domain.Contract
	lastNote  domain.Notification
	sweeps    int
}

func newMemContracts() *memContracts {
	return &memContracts{contracts: make(map[string]domain.Contract)}
}

func (m *memContracts) Create(_ context.Context, c domain.Contract) error {
	m.contracts[c.ID] = c
	return nil
}

func (m *memContracts) GetByID(_ context.Context, id string) (domain.Contract, error) {
	c, ok := m.contracts[id]
	if !ok {
		return domain.Contract{}, domain.ErrContractNotFound
	}
	return c, nil
}

func (m *memContracts) ListByOwner(_ context.Context, ownerID string) ([]domain.Contract, error) {
	var out []domain.Contract
	for _, c := range m.contracts {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memContracts) ListByTenant(_ context.Context, tenantID string) ([]domain.Contract, error) {
	var out []domain.Contract
	for _, c := range m.contracts {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memContracts) ExpireDue(_ context.Context, now time.Time) (int64, error) {
	m.sweeps++
	var n int64
	for id, c := range m.contracts {
		if c.ExpiredBy(now) {
			c.Status = domain.ContractExpired
			m.contracts[id] = c
			n++
		}
	}
	return n, nil
}

func (m *memContracts) Terminate(_ context.Context, c domain.Contract, note domain.Notification) error {
	if _, ok := m.contracts[c.ID]; !ok {
		return domain.ErrContractNotFound
	}
	m.contracts[c.ID] = c
	m.lastNote = note
	return nil
}

// memMaintenance is a map-backed MaintenanceRepository.
type memMaintenance struct {
	requests map[string]domain.MaintenanceRequest
	owners   map[string]string // property ID -> owner ID
}

func newMemMaintenance() *memMaintenance {
	return &memMaintenance{
		requests: make(map[string]domain.MaintenanceRequest),
		owners:   make(map[string]string),
	}
}

func (m *memMaintenance) Create(_ context.Context, r domain.MaintenanceRequest) error {
	m.requests[r.ID] = r
	return nil
}

func (m *memMaintenance) GetDetail(_ context.Context, id string) (domain.MaintenanceDetail, error) {
	r, ok := m.requests[id]
	if !ok {
		return domain.MaintenanceDetail{}, domain.ErrRequestNotFound
	}
	return domain.MaintenanceDetail{MaintenanceRequest: r, OwnerID: m.owners[r.PropertyID]}, nil
}

func (m *memMaintenance) ListByReporter(_ context.Context, reporterID string) ([]domain.MaintenanceRequest, error) {
	var out []domain.MaintenanceRequest
	for _, r := range m.requests {
		if r.ReporterID == reporterID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memMaintenance) ListByOwner(_ context.Context, ownerID string) ([]domain.MaintenanceDetail, error) {
	var out []domain.MaintenanceDetail
	for _, r := range m.requests {
		if m.owners[r.PropertyID] == ownerID {
			out = append(out, domain.MaintenanceDetail{MaintenanceRequest: r, OwnerID: ownerID})
		}
	}
	return out, nil
}

func (m *memMaintenance) UpdateStatus(_ context.Context, id string, status domain.Status) error {
	r, ok := m.requests[id]
	if !ok {
		return domain.ErrRequestNotFound
	}
	r.Status = status
	m.requests[id] = r
	return nil
}

// memNotifications is a map-backed NotificationRepository.
type memNotifications struct {
	notes []domain.Notification
}

func (m *memNotifications) Insert(_ context.Context, n domain.Notification) error {
	m.notes = append(m.notes, n)
	return nil
}

func (m *memNotifications) ListByUser(_ context.Context, userID string, since time.Time, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range m.notes {
		if n.UserID == userID && n.CreatedAt.After(since) {
			out = append(out, n)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memNotifications) MarkRead(_ context.Context, userID, id string) error {
	for i, n := range m.notes {
		if n.ID == id && n.UserID == userID {
			m.notes[i].IsRead = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

func (m *memNotifications) MarkAllRead(_ context.Context, userID string) (int64, error) {
	var n int64
	for i, note := range m.notes {
		if note.UserID == userID && !note.IsRead {
			m.notes[i].IsRead = true
			n++
		}
	}
	return n, nil
}

// memReviews is a map-backed ReviewRepository enforcing one review per booking.
type memReviews struct {
	reviews []domain.Review
}

func (m *memReviews) Create(_ context.Context, r domain.Review) error {
	for _, existing := range m.reviews {
		if existing.BookingID == r.BookingID {
			return &domain.AlreadyReviewedError{BookingID: r.BookingID}
		}
	}
	m.reviews = append(m.reviews, r)
	return nil
}

func (m *memReviews) ListByProperty(_ context.Context, propertyID string) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range m.reviews {
		if r.PropertyID == propertyID {
			out = append(out, r)
		}
	}
	return out, nil
}

// memWishlists is a map-backed WishlistRepository.
type memWishlists struct {
	items map[string]domain.WishlistItem // tenant|property -> item
}

func newMemWishlists() *memWishlists {
	return &memWishlists{items: make(map[string]domain.WishlistItem)}
}

func (m *memWishlists) Toggle(_ context.Context, item domain.WishlistItem) (bool, error) {
	key := item.TenantID + "|" + item.PropertyID
	if _, ok := m.items[key]; ok {
		delete(m.items, key)
		return false, nil
	}
	m.items[key] = item
	return true, nil
}

func (m *memWishlists) ListByTenant(_ context.Context, tenantID string) ([]domain.WishlistItem, error) {
	var out []domain.WishlistItem
	for _, item := range m.items {
		if item.TenantID == tenantID {
			out = append(out, item)
		}
	}
	return out, nil
}

// memProfiles is a map-backed ProfileRepository.
type memProfiles struct {
	profiles map[string]domain.Profile
}

func newMemProfiles() *memProfiles {
	return &memProfiles{profiles: make(map[string]domain.Profile)}
}

func (m *memProfiles) Create(_ context.Context, p domain.Profile) error {
	m.profiles[p.ID] = p
	return nil
}

func (m *memProfiles) GetByID(_ context.Context, id string) (domain.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	return p, nil
}

func (m *memProfiles) Update(_ context.Context, p domain.Profile) error {
	if _, ok := m.profiles[p.ID]; !ok {
		return domain.ErrProfileNotFound
	}
	m.profiles[p.ID] = p
	return nil
}

// memProperties is a map-backed PropertyRepository.
type memProperties struct {
	properties map[string]domain.Property
}

func newMemProperties() *memProperties {
	return &memProperties{properties: make(map[string]domain.Property)}
}

func (m *memProperties) Create(_ context.Context, p domain.Property) error {
	m.properties[p.ID] = p
	return nil
}

func (m *memProperties) GetByID(_ context.Context, id string) (domain.Property, error) {
	p, ok := m.properties[id]
	if !ok {
		return domain.Property{}, domain.ErrPropertyNotFound
	}
	return p, nil
}

func (m *memProperties) ListByOwner(_ context.Context, ownerID string) ([]domain.Property, error) {
	var out []domain.Property
	for _, p := range m.properties {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProperties) Search(_ context.Context, filter domain.SearchFilter) ([]domain.Property, error) {
	var out []domain.Property
	for _, p := range m.properties {
		out = append(out, p)
	}
	return out, nil
}

func (m *memProperties) Update(_ context.Context, p domain.Property) error {
	if _, ok := m.properties[p.ID]; !ok {
		return domain.ErrPropertyNotFound
	}
	m.properties[p.ID] = p
	return nil
}

// memIdentity is a map-backed IdentityProvider. Tokens are "token-<user ID>".
type memIdentity struct {
	users map[string]string // email -> user ID
	next  int
}

func newMemIdentity() *memIdentity {
	return &memIdentity{users: make(map[string]string)}
}

func (m *memIdentity) SignUp(_ context.Context, email, _ string) (domain.User, error) {
	if _, ok := m.users[email]; ok {
		return domain.User{}, domain.ErrEmailTaken
	}
	m.next++
	id := fmt.Sprintf("user-%d", m.next)
	m.users[email] = id
	return domain.User{ID: id, Email: email}, nil
}

func (m *memIdentity) SignIn(_ context.Context, email, _ string) (domain.Session, error) {
	id, ok := m.users[email]
	if !ok {
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	return domain.Session{
		Token:     "token-" + id,
		ExpiresAt: time.Now().Add(time.Hour),
		User:      domain.User{ID: id, Email: email},
	}, nil
}

func (m *memIdentity) Verify(_ context.Context, token string) (domain.User, error) {
	for email, id := range m.users {
		if token == "token-"+id {
			return domain.User{ID: id, Email: email}, nil
		}
	}
	return domain.User{}, domain.ErrUnauthorized
}

func (m *memIdentity) SignOut(_ context.Context, _ string) error {
	return nil
}
