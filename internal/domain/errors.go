package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for simple conditions without extra context. Not-found
// covers both a genuinely absent row and one filtered out by access rules;
// the two are indistinguishable to callers by design.
var (
	ErrUnauthorized = errors.New("not authenticated")
	ErrForbidden    = errors.New("not allowed for this actor")

	ErrProfileNotFound      = errors.New("profile not found")
	ErrPropertyNotFound     = errors.New("property not found")
	ErrRoomNotFound         = errors.New("room not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrContractNotFound     = errors.New("contract not found")
	ErrRequestNotFound      = errors.New("maintenance request not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// TransitionError is returned when a state transition is not allowed.
type TransitionError struct {
	Event   Event
	Current Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %q is not valid from state %q", e.Event, e.Current)
}

// ValidationError is returned when a required field is missing or out of range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DuplicatePeriodError is returned when a payment already exists for a
// booking's billing period.
type DuplicatePeriodError struct {
	BookingID string
	Month     int
	Year      int
}

func (e *DuplicatePeriodError) Error() string {
	return fmt.Sprintf("a payment for period %d/%d already exists on this booking", e.Month, e.Year)
}

// AlreadyReviewedError is returned when a booking already has a review.
type AlreadyReviewedError struct {
	BookingID string
}

func (e *AlreadyReviewedError) Error() string {
	return fmt.Sprintf("booking %q has already been reviewed", e.BookingID)
}
