package services

import (
	portsrepo "github.com/SscSPs/courier_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/courier_ledger/internal/core/ports/services"
	"github.com/SscSPs/courier_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The guard and the reference service are shared by every ledger service.
	guard := NewUniquenessGuard(repos.UniquenessRepo, cfg.IdentifierMaxAttempts)
	container.Reference = NewReferenceService(repos.ReferenceRepo, guard)

	container.Booking = NewBookingService(
		repos.BookingRepo,
		container.Reference,
		guard,
		WithStrictDeliveryTransitions(cfg.StrictDeliveryTransitions),
	)
	container.Expense = NewExpenseService(repos.ExpenseRepo, container.Reference, guard)
	container.Vehicle = NewVehicleService(repos.VehicleRepo, container.Reference, guard)
	container.LedgerAudit = NewLedgerAuditService(repos.AuditRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.BookingSvcFacade   = (*bookingService)(nil)
	_ portssvc.ExpenseSvcFacade   = (*expenseService)(nil)
	_ portssvc.ReferenceSvcFacade = (*referenceService)(nil)
	_ portssvc.VehicleSvcFacade   = (*vehicleService)(nil)
	_ portssvc.LedgerAuditSvc     = (*ledgerAuditService)(nil)
)
