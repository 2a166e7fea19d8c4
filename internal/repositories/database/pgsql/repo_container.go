package pgsql

import (
	portsrepo "github.com/SscSPs/courier_ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every Postgres repository onto one pool.
// *pgxpool.Pool satisfies PgxPool.
func NewRepositoryProvider(dbPool PgxPool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		BookingRepo:    newPgxBookingRepository(dbPool),
		ExpenseRepo:    newPgxExpenseRepository(dbPool),
		ReferenceRepo:  newPgxReferenceRepository(dbPool),
		VehicleRepo:    newPgxVehicleRepository(dbPool),
		UniquenessRepo: newPgxUniquenessRepository(dbPool),
		AuditRepo:      newPgxLedgerAuditRepository(dbPool),
	}
}
