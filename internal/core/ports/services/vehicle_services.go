package services

import (
	"context"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
	"github.com/SscSPs/courier_ledger/internal/dto"
)

// VehicleSvcFacade manages fleet vehicles
type VehicleSvcFacade interface {
	CreateVehicle(ctx context.Context, req dto.CreateVehicleRequest, creatorUserID string) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicleID string, req dto.UpdateVehicleRequest, userID string) (*domain.Vehicle, error)
	GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
}

// LedgerAuditSvc checks that stored ledger totals agree with active payments.
type LedgerAuditSvc interface {
	Audit(ctx context.Context) (*domain.LedgerAuditReport, error)
}
