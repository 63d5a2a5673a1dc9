package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kosthub/kosthub/internal/domain"
)

// Contract events on the async stream. Contracts have no fsm-guarded
// transitions: expiry is a date predicate and termination is unconditional.
const (
	EventSigned    domain.Event = "signed"
	EventTerminate domain.Event = "terminate"
)

// ContractService manages lease contracts derived from approved bookings.
// Expiry is lazy: reads sweep overdue contracts first instead of relying on
// a background process.
type ContractService struct {
	contracts domain.ContractRepository
	bookings  domain.BookingRepository
	publisher domain.EventPublisher
}

// NewContractService creates a service with the given adapters.
func NewContractService(contracts domain.ContractRepository, bookings domain.BookingRepository, publisher domain.EventPublisher) *ContractService {
	return &ContractService{
		contracts: contracts,
		bookings:  bookings,
		publisher: publisher,
	}
}

// Create signs an active contract from an approved or active booking,
// snapshotting the property name, room name and rent so later edits to those
// rows never alter the signed terms.
func (s *ContractService) Create(ctx context.Context, actor domain.Actor, bookingID string, endDate time.Time, notes string) (domain.Contract, error) {
	if actor.ID == "" {
		return domain.Contract{}, domain.ErrUnauthorized
	}

	detail, err := s.bookings.GetDetail(ctx, bookingID)
	if err != nil {
		return domain.Contract{}, err
	}
	if detail.OwnerID != actor.ID {
		return domain.Contract{}, domain.ErrForbidden
	}
	if detail.Status != domain.BookingApproved && detail.Status != domain.BookingActive {
		return domain.Contract{}, &domain.ValidationError{Field: "booking", Reason: "must be approved or active to sign a contract"}
	}

	id, err := generateID()
	if err != nil {
		return domain.Contract{}, fmt.Errorf("generating contract id: %w", err)
	}

	contract := domain.NewContract(id, detail, endDate, notes)

	if err := s.contracts.Create(ctx, contract); err != nil {
		return domain.Contract{}, fmt.Errorf("creating contract: %w", err)
	}

	if err := s.publisher.Publish(ctx, domain.DomainEvent{
		Event:    EventSigned,
		Entity:   "contract",
		EntityID: contract.ID,
		UserID:   contract.TenantID,
		Status:   contract.Status,
	}); err != nil {
		return domain.Contract{}, fmt.Errorf("publishing contract event: %w", err)
	}

	return contract, nil
}

// Get returns a contract visible to the actor, sweeping due expiries first
// so a contract past its end date always reads as expired.
func (s *ContractService) Get(ctx context.Context, actor domain.Actor, id string) (domain.Contract, error) {
	if actor.ID == "" {
		return domain.Contract{}, domain.ErrUnauthorized
	}

	if _, err := s.contracts.ExpireDue(ctx, time.Now().UTC()); err != nil {
		return domain.Contract{}, fmt.Errorf("sweeping expired contracts: %w", err)
	}

	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return domain.Contract{}, err
	}
	if contract.TenantID != actor.ID && contract.OwnerID != actor.ID {
		return domain.Contract{}, domain.ErrContractNotFound
	}
	return contract, nil
}

// ListMine returns the actor's contracts, sweeping due expiries first.
func (s *ContractService) ListMine(ctx context.Context, actor domain.Actor) ([]domain.Contract, error) {
	if actor.ID == "" {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.contracts.ExpireDue(ctx, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("sweeping expired contracts: %w", err)
	}

	if actor.Role == domain.RoleOwner {
		return s.contracts.ListByOwner(ctx, actor.ID)
	}
	return s.contracts.ListByTenant(ctx, actor.ID)
}

// ExpireDue flips active contracts whose end date has passed. The read paths
// already call this; the cron sweep in main runs it on a schedule as well.
func (s *ContractService) ExpireDue(ctx context.Context) (int64, error) {
	return s.contracts.ExpireDue(ctx, time.Now().UTC())
}

// Terminate sets a contract to terminated regardless of its current status
// and notifies the tenant. Terminating an already-terminated contract is
// idempotent: it succeeds without error.
func (s *ContractService) Terminate(ctx context.Context, actor domain.Actor, id string) (domain.Contract, error) {
	if actor.ID == "" {
		return domain.Contract{}, domain.ErrUnauthorized
	}

	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return domain.Contract{}, err
	}
	if contract.OwnerID != actor.ID {
		return domain.Contract{}, domain.ErrForbidden
	}

	contract.Status = domain.ContractTerminated

	noteID, err := generateID()
	if err != nil {
		return domain.Contract{}, fmt.Errorf("generating notification id: %w", err)
	}
	note := domain.NewNotification(noteID, contract.TenantID,
		"Contract terminated",
		fmt.Sprintf("Your contract for %s at %s has been terminated by the owner.", contract.RoomName, contract.PropertyName),
		"/contracts",
	)

	if err := s.contracts.Terminate(ctx, contract, note); err != nil {
		return domain.Contract{}, fmt.Errorf("terminating contract: %w", err)
	}

	if err := s.publisher.Publish(ctx, domain.DomainEvent{
		Event:    EventTerminate,
		Entity:   "contract",
		EntityID: contract.ID,
		UserID:   contract.TenantID,
		Status:   contract.Status,
	}); err != nil {
		return domain.Contract{}, fmt.Errorf("publishing event %q: %w", EventTerminate, err)
	}

	return contract, nil
}
