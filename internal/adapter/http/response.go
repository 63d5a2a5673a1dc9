package http

import (
	"time"

	"github.com/kosthub/kosthub/internal/domain"
)

const timeFmt = "2006-01-02T15:04:05Z"
const dateFmt = "2006-01-02"

func parseDate(s, field string) (time.Time, error) {
	t, err := time.Parse(dateFmt, s)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: field, Reason: "must be a date in YYYY-MM-DD form"}
	}
	return t, nil
}

// ProfileResponse is the API representation of a profile.
type ProfileResponse struct {
	ID        string `json:"id" doc:"Unique identifier"`
	Role      string `json:"role" doc:"Account role"`
	FullName  string `json:"full_name" doc:"Display name"`
	Phone     string `json:"phone,omitempty" doc:"Contact phone"`
	AvatarRef string `json:"avatar_ref,omitempty" doc:"Avatar storage reference"`
	CreatedAt string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt string `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toProfileResponse(p domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		Role:      string(p.Role),
		FullName:  p.FullName,
		Phone:     p.Phone,
		AvatarRef: p.AvatarRef,
		CreatedAt: p.CreatedAt.Format(timeFmt),
		UpdatedAt: p.UpdatedAt.Format(timeFmt),
	}
}

// PropertyResponse is the API representation of a property.
type PropertyResponse struct {
	ID          string  `json:"id" doc:"Unique identifier"`
	OwnerID     string  `json:"owner_id" doc:"Owner profile ID"`
	Name        string  `json:"name" doc:"Display name"`
	Address     string  `json:"address" doc:"Street address"`
	Description string  `json:"description,omitempty" doc:"Free-form description"`
	ImageRef    string  `json:"image_ref,omitempty" doc:"Cover image storage reference"`
	Latitude    float64 `json:"latitude,omitempty" doc:"Location latitude"`
	Longitude   float64 `json:"longitude,omitempty" doc:"Location longitude"`
	CreatedAt   string  `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt   string  `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toPropertyResponse(p domain.Property) PropertyResponse {
	return PropertyResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Address:     p.Address,
		Description: p.Description,
		ImageRef:    p.ImageRef,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		CreatedAt:   p.CreatedAt.Format(timeFmt),
		UpdatedAt:   p.UpdatedAt.Format(timeFmt),
	}
}

// RoomResponse is the API representation of a room.
type RoomResponse struct {
	ID           string   `json:"id" doc:"Unique identifier"`
	PropertyID   string   `json:"property_id" doc:"Parent property ID"`
	Name         string   `json:"name" doc:"Display name"`
	PriceMonthly int64    `json:"price_monthly" doc:"Monthly rent in rupiah"`
	Facilities   []string `json:"facilities,omitempty" doc:"Facility labels"`
	Images       []string `json:"images,omitempty" doc:"Image storage references"`
	IsOccupied   bool     `json:"is_occupied" doc:"Whether the room is occupied"`
	CreatedAt    string   `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt    string   `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toRoomResponse(r domain.Room) RoomResponse {
	return RoomResponse{
		ID:           r.ID,
		PropertyID:   r.PropertyID,
		Name:         r.Name,
		PriceMonthly: r.PriceMonthly,
		Facilities:   r.Facilities,
		Images:       r.Images,
		IsOccupied:   r.IsOccupied,
		CreatedAt:    r.CreatedAt.Format(timeFmt),
		UpdatedAt:    r.UpdatedAt.Format(timeFmt),
	}
}

// BookingResponse is the API representation of a booking. The joined fields
// are filled when the caller has detail visibility.
type BookingResponse struct {
	ID              string `json:"id" doc:"Unique identifier"`
	RoomID          string `json:"room_id" doc:"Booked room ID"`
	TenantID        string `json:"tenant_id" doc:"Tenant profile ID"`
	StartDate       string `json:"start_date" doc:"Lease start date"`
	EndDate         string `json:"end_date" doc:"Lease end date"`
	TotalPrice      int64  `json:"total_price" doc:"Total price in rupiah"`
	Status          string `json:"status" doc:"Lifecycle state"`
	OccupantName    string `json:"occupant_name,omitempty" doc:"Registered occupant name"`
	RejectionReason string `json:"rejection_reason,omitempty" doc:"Reason given on cancellation"`
	RoomName        string `json:"room_name,omitempty" doc:"Room display name"`
	PropertyID      string `json:"property_id,omitempty" doc:"Parent property ID"`
	PropertyName    string `json:"property_name,omitempty" doc:"Property display name"`
	CreatedAt       string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt       string `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toBookingResponse(b domain.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		RoomID:          b.RoomID,
		TenantID:        b.TenantID,
		StartDate:       b.StartDate.Format(dateFmt),
		EndDate:         b.EndDate.Format(dateFmt),
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		OccupantName:    b.OccupantName,
		RejectionReason: b.RejectionReason,
		CreatedAt:       b.CreatedAt.Format(timeFmt),
		UpdatedAt:       b.UpdatedAt.Format(timeFmt),
	}
}

func toBookingDetailResponse(d domain.BookingDetail) BookingResponse {
	resp := toBookingResponse(d.Booking)
	resp.RoomName = d.RoomName
	resp.PropertyID = d.PropertyID
	resp.PropertyName = d.PropertyName
	return resp
}

// PaymentResponse is the API representation of a payment.
type PaymentResponse struct {
	ID              string `json:"id" doc:"Unique identifier"`
	BookingID       string `json:"booking_id" doc:"Parent booking ID"`
	Amount          int64  `json:"amount" doc:"Amount in rupiah"`
	PeriodMonth     int    `json:"period_month" doc:"Billing month (1-12)"`
	PeriodYear      int    `json:"period_year" doc:"Billing year"`
	Status          string `json:"status" doc:"Lifecycle state"`
	Notes           string `json:"notes,omitempty" doc:"Tenant notes"`
	RejectionReason string `json:"rejection_reason,omitempty" doc:"Reason given on rejection"`
	CreatedAt       string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt       string `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toPaymentResponse(p domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		BookingID:       p.BookingID,
		Amount:          p.Amount,
		PeriodMonth:     p.PeriodMonth,
		PeriodYear:      p.PeriodYear,
		Status:          string(p.Status),
		Notes:           p.Notes,
		RejectionReason: p.RejectionReason,
		CreatedAt:       p.CreatedAt.Format(timeFmt),
		UpdatedAt:       p.UpdatedAt.Format(timeFmt),
	}
}

// ContractResponse is the API representation of a contract.
type ContractResponse struct {
	ID           string `json:"id" doc:"Unique identifier"`
	BookingID    string `json:"booking_id" doc:"Source booking ID"`
	OwnerID      string `json:"owner_id" doc:"Owner profile ID"`
	TenantID     string `json:"tenant_id" doc:"Tenant profile ID"`
	PropertyName string `json:"property_name" doc:"Property name at signing time"`
	RoomName     string `json:"room_name" doc:"Room name at signing time"`
	MonthlyRent  int64  `json:"monthly_rent" doc:"Rent at signing time, in rupiah"`
	StartDate    string `json:"start_date" doc:"Lease start date"`
	EndDate      string `json:"end_date" doc:"Lease end date"`
	Status       string `json:"status" doc:"Lifecycle state"`
	Notes        string `json:"notes,omitempty" doc:"Free-form notes"`
	CreatedAt    string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt    string `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toContractResponse(c domain.Contract) ContractResponse {
	return ContractResponse{
		ID:           c.ID,
		BookingID:    c.BookingID,
		OwnerID:      c.OwnerID,
		TenantID:     c.TenantID,
		PropertyName: c.PropertyName,
		RoomName:     c.RoomName,
		MonthlyRent:  c.MonthlyRent,
		StartDate:    c.StartDate.Format(dateFmt),
		EndDate:      c.EndDate.Format(dateFmt),
		Status:       string(c.Status),
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt.Format(timeFmt),
		UpdatedAt:    c.UpdatedAt.Format(timeFmt),
	}
}

// MaintenanceResponse is the API representation of a maintenance request.
type MaintenanceResponse struct {
	ID          string `json:"id" doc:"Unique identifier"`
	PropertyID  string `json:"property_id" doc:"Property the report is filed against"`
	RoomID      string `json:"room_id,omitempty" doc:"Affected room, empty for common areas"`
	ReporterID  string `json:"reporter_id" doc:"Reporter profile ID"`
	Title       string `json:"title" doc:"Short summary"`
	Description string `json:"description,omitempty" doc:"Details of the issue"`
	ImageRef    string `json:"image_ref,omitempty" doc:"Report image storage reference"`
	Status      string `json:"status" doc:"Lifecycle state"`
	CreatedAt   string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt   string `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toMaintenanceResponse(m domain.MaintenanceRequest) MaintenanceResponse {
	return MaintenanceResponse{
		ID:          m.ID,
		PropertyID:  m.PropertyID,
		RoomID:      m.RoomID,
		ReporterID:  m.ReporterID,
		Title:       m.Title,
		Description: m.Description,
		ImageRef:    m.ImageRef,
		Status:      string(m.Status),
		CreatedAt:   m.CreatedAt.Format(timeFmt),
		UpdatedAt:   m.UpdatedAt.Format(timeFmt),
	}
}

// NotificationResponse is the API representation of a notification.
type NotificationResponse struct {
	ID        string `json:"id" doc:"Unique identifier"`
	Title     string `json:"title" doc:"Short headline"`
	Message   string `json:"message" doc:"Notification body"`
	Link      string `json:"link,omitempty" doc:"In-app destination"`
	IsRead    bool   `json:"is_read" doc:"Whether the notification was read"`
	CreatedAt string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
}

func toNotificationResponse(n domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(timeFmt),
	}
}

// ReviewResponse is the API representation of a review.
type ReviewResponse struct {
	ID         string `json:"id" doc:"Unique identifier"`
	BookingID  string `json:"booking_id" doc:"Reviewed booking ID"`
	TenantID   string `json:"tenant_id" doc:"Reviewer profile ID"`
	PropertyID string `json:"property_id" doc:"Reviewed property ID"`
	Rating     int    `json:"rating" doc:"Star rating (1-5)"`
	Comment    string `json:"comment,omitempty" doc:"Free-form comment"`
	CreatedAt  string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
}

func toReviewResponse(r domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		BookingID:  r.BookingID,
		TenantID:   r.TenantID,
		PropertyID: r.PropertyID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt.Format(timeFmt),
	}
}

// WishlistResponse is the API representation of a wishlist entry.
type WishlistResponse struct {
	ID         string `json:"id" doc:"Unique identifier"`
	PropertyID string `json:"property_id" doc:"Saved property ID"`
	CreatedAt  string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
}

func toWishlistResponse(w domain.WishlistItem) WishlistResponse {
	return WishlistResponse{
		ID:         w.ID,
		PropertyID: w.PropertyID,
		CreatedAt:  w.CreatedAt.Format(timeFmt),
	}
}
