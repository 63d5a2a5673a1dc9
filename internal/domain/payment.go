package domain

import (
	"fmt"
	"time"
)

// Payment lifecycle states. A payment is submitted pending by the tenant and
// settled verified or rejected by the property owner. Both outcomes are terminal.
const (
	PaymentPending  Status = "pending"
	PaymentVerified Status = "verified"
	PaymentRejected Status = "rejected"
)

// Payment lifecycle events.
const (
	EventVerify Event = "verify"
	EventReject Event = "reject"
)

// PaymentTransitions defines all valid state changes in the payment lifecycle.
var PaymentTransitions = []Transition{
	{Event: EventVerify, Src: PaymentPending, Dst: PaymentVerified},
	{Event: EventReject, Src: PaymentPending, Dst: PaymentRejected},
}

// Payment is a monthly rent payment submitted against a booking. At most one
// payment may exist per (booking, month, year) billing period.
type Payment struct {
	ID              string
	BookingID       string
	Amount          int64
	PeriodMonth     int
	PeriodYear      int
	Status          Status
	ProofRef        string
	Notes           string
	RejectionReason string
	VerifiedBy      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewPayment creates a pending payment for the given billing period.
func NewPayment(id, bookingID string, amount int64, month, year int, proofRef, notes string) Payment {
	now := time.Now().UTC()
	return Payment{
		ID:          id,
		BookingID:   bookingID,
		Amount:      amount,
		PeriodMonth: month,
		PeriodYear:  year,
		Status:      PaymentPending,
		ProofRef:    proofRef,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// PeriodLabel renders the billing period for notification copy, e.g. "June 2024".
func (p Payment) PeriodLabel() string {
	return fmt.Sprintf("%s %d", time.Month(p.PeriodMonth), p.PeriodYear)
}

// FormatRupiah renders an amount for notification copy, e.g. "Rp1.500.000".
func FormatRupiah(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	if amount < 0 {
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if amount < 0 {
		return "-Rp" + string(out)
	}
	return "Rp" + string(out)
}

// PaymentDetail is a payment joined through its booking to the room and
// property, used for ownership checks and notification addressing.
type PaymentDetail struct {
	Payment
	TenantID   string
	RoomName   string
	PropertyID string
	OwnerID    string
}
