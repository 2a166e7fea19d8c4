package repositories

import (
	"context"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// VehicleRepositoryFacade defines persistence for fleet vehicles.
type VehicleRepositoryFacade interface {
	FindVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	FindVehicleByIDForUpdate(ctx context.Context, tx pgx.Tx, vehicleID string) (*domain.Vehicle, error)
	SaveVehicle(ctx context.Context, tx pgx.Tx, vehicle domain.Vehicle) error
	UpdateVehicle(ctx context.Context, tx pgx.Tx, vehicle domain.Vehicle) error
}

// VehicleRepositoryWithTx extends VehicleRepositoryFacade with transaction capabilities
type VehicleRepositoryWithTx interface {
	VehicleRepositoryFacade
	TransactionManager
}

// LedgerAuditRepository reads ledger headers next to their active payment totals.
type LedgerAuditRepository interface {
	// FindBookingLedgerMismatches returns snapshots of active bookings whose stored totals disagree with their payments.
	FindBookingLedgerMismatches(ctx context.Context) ([]domain.LedgerSnapshot, error)

	// FindExpenseLedgerMismatches returns snapshots of active expenses whose stored totals disagree with their payments.
	FindExpenseLedgerMismatches(ctx context.Context) ([]domain.LedgerSnapshot, error)
}
