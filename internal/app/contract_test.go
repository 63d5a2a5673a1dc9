package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kosthub/kosthub/internal/app"
	"github.com/kosthub/kosthub/internal/domain"
)

func newContractFixture() (*app.ContractService, *memContracts, *memBookings, *capturePublisher) {
	contracts := newMemContracts()
	bookings := newMemBookings()

	d := pendingDetail("b1")
	d.Status = domain.BookingApproved
	d.Booking.Status = domain.BookingApproved
	bookings.add(d)

	publisher := &capturePublisher{}
	svc := app.NewContractService(contracts, bookings, publisher)
	return svc, contracts, bookings, publisher
}

func TestContractService_Create(t *testing.T) {
	svc, _, _, publisher := newContractFixture()

	contract, err := svc.Create(context.Background(), owner, "b1", date(2024, 12, 1), "six months")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if contract.Status != domain.ContractActive {
		t.Errorf("status = %q, want %q", contract.Status, domain.ContractActive)
	}
	if contract.PropertyName != "Kost Melati" || contract.RoomName != "Kamar A1" {
		t.Errorf("snapshot = (%q, %q), want copied from booking", contract.PropertyName, contract.RoomName)
	}
	if contract.MonthlyRent != 1_500_000 {
		t.Errorf("rent = %d, want %d", contract.MonthlyRent, 1_500_000)
	}
	if len(publisher.events) != 1 || publisher.events[0].Event != app.EventSigned {
		t.Errorf("events = %+v, want one signed", publisher.events)
	}
}

func TestContractService_Create_PendingBookingRejected(t *testing.T) {
	svc, _, bookings, _ := newContractFixture()
	bookings.add(pendingDetail("b2"))

	_, err := svc.Create(context.Background(), owner, "b2", date(2024, 12, 1), "")
	var valErr *domain.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestContractService_Create_NonOwnerForbidden(t *testing.T) {
	svc, _, _, _ := newContractFixture()

	_, err := svc.Create(context.Background(), tenant, "b1", date(2024, 12, 1), "")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestContractService_Get_SweepsExpiry(t *testing.T) {
	svc, contracts, _, _ := newContractFixture()
	contracts.Create(context.Background(), domain.Contract{
		ID: "c1", OwnerID: owner.ID, TenantID: tenant.ID,
		Status:  domain.ContractActive,
		EndDate: time.Now().UTC().Add(-24 * time.Hour),
	})

	contract, err := svc.Get(context.Background(), owner, "c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if contract.Status != domain.ContractExpired {
		t.Errorf("status = %q, want %q after lazy sweep", contract.Status, domain.ContractExpired)
	}
	if contracts.sweeps != 1 {
		t.Errorf("sweeps = %d, want 1", contracts.sweeps)
	}
}

func TestContractService_ListMine_SweepsExpiry(t *testing.T) {
	svc, contracts, _, _ := newContractFixture()
	contracts.Create(context.Background(), domain.Contract{
		ID: "c1", OwnerID: owner.ID, TenantID: tenant.ID,
		Status:  domain.ContractActive,
		EndDate: time.Now().UTC().Add(-24 * time.Hour),
	})

	mine, err := svc.ListMine(context.Background(), tenant)
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if len(mine) != 1 || mine[0].Status != domain.ContractExpired {
		t.Errorf("got %+v, want one expired contract", mine)
	}
}

func TestContractService_Terminate(t *testing.T) {
	svc, contracts, _, publisher := newContractFixture()
	contracts.Create(context.Background(), domain.Contract{
		ID: "c1", OwnerID: owner.ID, TenantID: tenant.ID,
		RoomName: "Kamar A1", PropertyName: "Kost Melati",
		Status:  domain.ContractActive,
		EndDate: time.Now().UTC().Add(30 * 24 * time.Hour),
	})

	contract, err := svc.Terminate(context.Background(), owner, "c1")
	if err != nil {
		t.Fatalf("Terminate: %v", err)
	}
	if contract.Status != domain.ContractTerminated {
		t.Errorf("status = %q, want %q", contract.Status, domain.ContractTerminated)
	}
	if contracts.lastNote.UserID != tenant.ID {
		t.Errorf("note user = %q, want tenant", contracts.lastNote.UserID)
	}
	if len(publisher.events) != 1 || publisher.events[0].Event != app.EventTerminate {
		t.Errorf("events = %+v, want one terminate", publisher.events)
	}
}

func TestContractService_Terminate_Idempotent(t *testing.T) {
	svc, contracts, _, _ := newContractFixture()
	contracts.Create(context.Background(), domain.Contract{
		ID: "c1", OwnerID: owner.ID, TenantID: tenant.ID,
		Status:  domain.ContractTerminated,
		EndDate: time.Now().UTC().Add(30 * 24 * time.Hour),
	})

	// Terminating an already-terminated contract succeeds and notifies again.
	contract, err := svc.Terminate(context.Background(), owner, "c1")
	if err != nil {
		t.Fatalf("Terminate: %v", err)
	}
	if contract.Status != domain.ContractTerminated {
		t.Errorf("status = %q, want %q", contract.Status, domain.ContractTerminated)
	}
	if contracts.lastNote.UserID != tenant.ID {
		t.Error("repeat termination should still notify the tenant")
	}
}

func TestContractService_Terminate_NonOwnerForbidden(t *testing.T) {
	svc, contracts, _, _ := newContractFixture()
	contracts.Create(context.Background(), domain.Contract{
		ID: "c1", OwnerID: owner.ID, TenantID: tenant.ID,
		Status: domain.ContractActive,
	})

	_, err := svc.Terminate(context.Background(), tenant, "c1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}
