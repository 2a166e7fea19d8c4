package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	"github.com/SscSPs/courier_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/courier_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/courier_ledger/internal/core/ports/services"
	"github.com/SscSPs/courier_ledger/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type vehicleService struct {
	BaseService
	vehicleRepo  portsrepo.VehicleRepositoryWithTx
	refValidator portssvc.ReferenceValidatorSvc
	guard        portssvc.UniquenessGuardSvc
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(vehicleRepo portsrepo.VehicleRepositoryWithTx, refValidator portssvc.ReferenceValidatorSvc, guard portssvc.UniquenessGuardSvc, opts ...ServiceOption) portssvc.VehicleSvcFacade {
	o := applyOptions(opts)
	return &vehicleService{
		BaseService:  BaseService{now: o.now},
		vehicleRepo:  vehicleRepo,
		refValidator: refValidator,
		guard:        guard,
	}
}

var _ portssvc.VehicleSvcFacade = (*vehicleService)(nil)

func checkCapacity(c *decimal.Decimal) (decimal.Decimal, error) {
	if c == nil {
		return decimal.Zero, nil
	}
	if c.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: capacity cannot be negative", apperrors.ErrInvalidAmount)
	}
	return *c, nil
}

func (s *vehicleService) CreateVehicle(ctx context.Context, req dto.CreateVehicleRequest, creatorUserID string) (*domain.Vehicle, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	capacity, err := checkCapacity(req.CapacityKg)
	if err != nil {
		return nil, err
	}

	vehicle := domain.Vehicle{
		VehicleID:          uuid.NewString(),
		RegistrationNumber: strings.ToUpper(strings.TrimSpace(req.RegistrationNumber)),
		RCNumber:           strings.TrimSpace(req.RCNumber),
		VehicleTypeCode:    strings.TrimSpace(req.VehicleTypeCode),
		CenterCode:         strings.TrimSpace(req.CenterCode),
		Model:              strings.TrimSpace(req.Model),
		CapacityKg:         capacity,
		IsActive:           true,
		AuditFields:        auditFields(creatorUserID, s.Now()),
	}

	err = s.RunInTx(ctx, s.vehicleRepo, func(tx pgx.Tx) error {
		if err := validateRefs(ctx, s.refValidator, tx,
			refCheck{domain.RefVehicleType, vehicle.VehicleTypeCode},
			refCheck{domain.RefOfficeCenter, vehicle.CenterCode},
		); err != nil {
			return err
		}
		if err := s.guard.EnsureUnique(ctx, tx, domain.EntityVehicle, domain.FieldRegistrationNumber, vehicle.RegistrationNumber, ""); err != nil {
			return err
		}
		if err := s.guard.EnsureUnique(ctx, tx, domain.EntityVehicle, domain.FieldRCNumber, vehicle.RCNumber, ""); err != nil {
			return err
		}
		return s.vehicleRepo.SaveVehicle(ctx, tx, vehicle)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Vehicle created", slog.String("vehicle_id", vehicle.VehicleID), slog.String("registration_number", vehicle.RegistrationNumber))
	return &vehicle, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, vehicleID string, req dto.UpdateVehicleRequest, userID string) (*domain.Vehicle, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var vehicle *domain.Vehicle
	err := s.RunInTx(ctx, s.vehicleRepo, func(tx pgx.Tx) error {
		var err error
		vehicle, err = s.vehicleRepo.FindVehicleByIDForUpdate(ctx, tx, vehicleID)
		if err != nil {
			return err
		}

		if req.RegistrationNumber != nil {
			reg := strings.ToUpper(strings.TrimSpace(*req.RegistrationNumber))
			if reg != vehicle.RegistrationNumber {
				if err := s.guard.EnsureUnique(ctx, tx, domain.EntityVehicle, domain.FieldRegistrationNumber, reg, vehicle.VehicleID); err != nil {
					return err
				}
				vehicle.RegistrationNumber = reg
			}
		}
		if req.RCNumber != nil {
			rc := strings.TrimSpace(*req.RCNumber)
			if rc != vehicle.RCNumber {
				if err := s.guard.EnsureUnique(ctx, tx, domain.EntityVehicle, domain.FieldRCNumber, rc, vehicle.VehicleID); err != nil {
					return err
				}
				vehicle.RCNumber = rc
			}
		}

		var checks []refCheck
		if req.VehicleTypeCode != nil {
			vehicle.VehicleTypeCode = strings.TrimSpace(*req.VehicleTypeCode)
			checks = append(checks, refCheck{domain.RefVehicleType, vehicle.VehicleTypeCode})
		}
		if req.CenterCode != nil {
			vehicle.CenterCode = strings.TrimSpace(*req.CenterCode)
			checks = append(checks, refCheck{domain.RefOfficeCenter, vehicle.CenterCode})
		}
		if err := validateRefs(ctx, s.refValidator, tx, checks...); err != nil {
			return err
		}

		if req.Model != nil {
			vehicle.Model = strings.TrimSpace(*req.Model)
		}
		if req.CapacityKg != nil {
			if vehicle.CapacityKg, err = checkCapacity(req.CapacityKg); err != nil {
				return err
			}
		}
		vehicle.LastUpdatedAt = s.Now()
		vehicle.LastUpdatedBy = userID
		return s.vehicleRepo.UpdateVehicle(ctx, tx, *vehicle)
	})
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	return s.vehicleRepo.FindVehicleByID(ctx, vehicleID)
}
