package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	"github.com/SscSPs/courier_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/courier_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

const vehicleColumns = `
	vehicle_id, registration_number, rc_number, vehicle_type_code, center_code, model, capacity_kg,
	is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxVehicleRepository struct {
	BaseRepository
}

func newPgxVehicleRepository(pool PgxPool) portsrepo.VehicleRepositoryWithTx {
	return &PgxVehicleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.VehicleRepositoryWithTx = (*PgxVehicleRepository)(nil)

func scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := row.Scan(
		&v.VehicleID,
		&v.RegistrationNumber,
		&v.RCNumber,
		&v.VehicleTypeCode,
		&v.CenterCode,
		&v.Model,
		&v.CapacityKg,
		&v.IsActive,
		&v.CreatedAt,
		&v.CreatedBy,
		&v.LastUpdatedAt,
		&v.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PgxVehicleRepository) FindVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE vehicle_id = $1;`
	v, err := scanVehicle(r.Pool.QueryRow(ctx, query, vehicleID))
	if err != nil {
		return nil, mapReadError(err, "vehicle "+vehicleID)
	}
	return v, nil
}

func (r *PgxVehicleRepository) FindVehicleByIDForUpdate(ctx context.Context, tx pgx.Tx, vehicleID string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE vehicle_id = $1 AND is_active = TRUE FOR UPDATE;`
	v, err := scanVehicle(tx.QueryRow(ctx, query, vehicleID))
	if err != nil {
		return nil, mapReadError(err, "vehicle "+vehicleID)
	}
	return v, nil
}

func (r *PgxVehicleRepository) SaveVehicle(ctx context.Context, tx pgx.Tx, vehicle domain.Vehicle) error {
	query := `INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	_, err := tx.Exec(ctx, query,
		vehicle.VehicleID,
		vehicle.RegistrationNumber,
		vehicle.RCNumber,
		vehicle.VehicleTypeCode,
		vehicle.CenterCode,
		vehicle.Model,
		vehicle.CapacityKg,
		vehicle.IsActive,
		vehicle.CreatedAt,
		vehicle.CreatedBy,
		vehicle.LastUpdatedAt,
		vehicle.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "vehicle "+vehicle.RegistrationNumber)
	}
	return nil
}

func (r *PgxVehicleRepository) UpdateVehicle(ctx context.Context, tx pgx.Tx, vehicle domain.Vehicle) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE vehicles
		SET registration_number = $2, rc_number = $3, vehicle_type_code = $4, center_code = $5,
		    model = $6, capacity_kg = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE vehicle_id = $1;
	`,
		vehicle.VehicleID,
		vehicle.RegistrationNumber,
		vehicle.RCNumber,
		vehicle.VehicleTypeCode,
		vehicle.CenterCode,
		vehicle.Model,
		vehicle.CapacityKg,
		vehicle.IsActive,
		vehicle.LastUpdatedAt,
		vehicle.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "vehicle "+vehicle.RegistrationNumber)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: vehicle %s", apperrors.ErrNotFound, vehicle.VehicleID)
	}
	return nil
}
