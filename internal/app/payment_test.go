package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kosthub/kosthub/internal/app"
	"github.com/kosthub/kosthub/internal/domain"
)

func newPaymentFixture() (*app.PaymentService, *memPayments, *memBookings, *capturePublisher) {
	payments := newMemPayments()
	bookings := newMemBookings()

	d := pendingDetail("b1")
	d.Status = domain.BookingApproved
	d.Booking.Status = domain.BookingApproved
	bookings.add(d)

	publisher := &capturePublisher{}
	svc := app.NewPaymentService(payments, bookings,
		&tableValidator{transitions: domain.PaymentTransitions}, publisher, newMemBlobs())
	return svc, payments, bookings, publisher
}

func pendingPaymentDetail(id string) domain.PaymentDetail {
	return domain.PaymentDetail{
		Payment: domain.Payment{
			ID: id, BookingID: "b1", Amount: 1_500_000,
			PeriodMonth: 6, PeriodYear: 2024, Status: domain.PaymentPending,
		},
		TenantID: tenant.ID, RoomName: "Kamar A1",
		PropertyID: "prop-1", OwnerID: owner.ID,
	}
}

func TestPaymentService_Submit(t *testing.T) {
	svc, _, _, publisher := newPaymentFixture()

	payment, err := svc.Submit(context.Background(), tenant, "b1", 1_500_000, 6, 2024, []byte("jpeg"), "")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if payment.Status != domain.PaymentPending {
		t.Errorf("status = %q, want %q", payment.Status, domain.PaymentPending)
	}
	if payment.ProofRef == "" {
		t.Error("proof ref should be set after upload")
	}
	if len(publisher.events) != 1 || publisher.events[0].Entity != "payment" {
		t.Errorf("events = %+v, want one payment event", publisher.events)
	}
}

func TestPaymentService_Submit_BookingNotPayable(t *testing.T) {
	svc, _, bookings, _ := newPaymentFixture()
	d := pendingDetail("b2")
	bookings.add(d) // still pending

	_, err := svc.Submit(context.Background(), tenant, "b2", 1_500_000, 6, 2024, []byte("jpeg"), "")
	var valErr *domain.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestPaymentService_Submit_DuplicatePeriod(t *testing.T) {
	svc, _, _, _ := newPaymentFixture()

	if _, err := svc.Submit(context.Background(), tenant, "b1", 1_500_000, 6, 2024, []byte("jpeg"), ""); err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	_, err := svc.Submit(context.Background(), tenant, "b1", 1_500_000, 6, 2024, []byte("jpeg"), "")
	var dupErr *domain.DuplicatePeriodError
	if !errors.As(err, &dupErr) {
		t.Fatalf("err = %v, want DuplicatePeriodError", err)
	}
	if dupErr.Month != 6 || dupErr.Year != 2024 {
		t.Errorf("period = %d/%d, want 6/2024", dupErr.Month, dupErr.Year)
	}
}

func TestPaymentService_Submit_NotBookingTenant(t *testing.T) {
	svc, _, _, _ := newPaymentFixture()

	stranger := domain.Actor{ID: "tenant-2", Role: domain.RoleTenant}
	_, err := svc.Submit(context.Background(), stranger, "b1", 1_500_000, 6, 2024, []byte("jpeg"), "")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestPaymentService_Verify(t *testing.T) {
	svc, payments, _, publisher := newPaymentFixture()
	payments.add(pendingPaymentDetail("p1"))

	payment, err := svc.Verify(context.Background(), owner, "p1", domain.EventVerify, "")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if payment.Status != domain.PaymentVerified {
		t.Errorf("status = %q, want %q", payment.Status, domain.PaymentVerified)
	}
	if payment.VerifiedBy != owner.ID {
		t.Errorf("verified by = %q, want %q", payment.VerifiedBy, owner.ID)
	}
	if !strings.Contains(payments.lastNote.Message, "Rp1.500.000") {
		t.Errorf("note %q should carry the formatted amount", payments.lastNote.Message)
	}
	if !strings.Contains(payments.lastNote.Message, "June 2024") {
		t.Errorf("note %q should carry the billing period", payments.lastNote.Message)
	}
	if len(publisher.events) != 1 || publisher.events[0].Event != domain.EventVerify {
		t.Errorf("events = %+v, want one verify", publisher.events)
	}
}

func TestPaymentService_Reject_RequiresReason(t *testing.T) {
	svc, payments, _, _ := newPaymentFixture()
	payments.add(pendingPaymentDetail("p1"))

	_, err := svc.Verify(context.Background(), owner, "p1", domain.EventReject, "")
	var valErr *domain.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if valErr.Field != "reason" {
		t.Errorf("field = %q, want %q", valErr.Field, "reason")
	}
}

func TestPaymentService_Reject(t *testing.T) {
	svc, payments, _, _ := newPaymentFixture()
	payments.add(pendingPaymentDetail("p1"))

	payment, err := svc.Verify(context.Background(), owner, "p1", domain.EventReject, "proof unreadable")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if payment.Status != domain.PaymentRejected {
		t.Errorf("status = %q, want %q", payment.Status, domain.PaymentRejected)
	}
	if payment.RejectionReason != "proof unreadable" {
		t.Errorf("reason = %q, want recorded", payment.RejectionReason)
	}
	if !strings.Contains(payments.lastNote.Message, "proof unreadable") {
		t.Errorf("note %q should carry the reason", payments.lastNote.Message)
	}
}

func TestPaymentService_Verify_SettledPayment(t *testing.T) {
	svc, payments, _, _ := newPaymentFixture()
	d := pendingPaymentDetail("p1")
	d.Status = domain.PaymentVerified
	d.Payment.Status = domain.PaymentVerified
	payments.add(d)

	_, err := svc.Verify(context.Background(), owner, "p1", domain.EventVerify, "")
	var trErr *domain.TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("err = %v, want TransitionError", err)
	}
}

func TestPaymentService_Verify_NonOwnerForbidden(t *testing.T) {
	svc, payments, _, _ := newPaymentFixture()
	payments.add(pendingPaymentDetail("p1"))

	_, err := svc.Verify(context.Background(), tenant, "p1", domain.EventVerify, "")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestPaymentService_ListByBooking_ParticipantsOnly(t *testing.T) {
	svc, _, _, _ := newPaymentFixture()

	if _, err := svc.ListByBooking(context.Background(), tenant, "b1"); err != nil {
		t.Errorf("tenant list: %v", err)
	}
	if _, err := svc.ListByBooking(context.Background(), owner, "b1"); err != nil {
		t.Errorf("owner list: %v", err)
	}

	stranger := domain.Actor{ID: "tenant-2", Role: domain.RoleTenant}
	if _, err := svc.ListByBooking(context.Background(), stranger, "b1"); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Errorf("stranger err = %v, want ErrBookingNotFound", err)
	}
}

func TestPaymentService_ListForOwner_TenantForbidden(t *testing.T) {
	svc, _, _, _ := newPaymentFixture()

	if _, err := svc.ListForOwner(context.Background(), tenant); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}
