package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	"github.com/SscSPs/courier_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/courier_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// uniqueTarget is the table and columns a guarded identifier lives in.
type uniqueTarget struct {
	table    string
	column   string
	idColumn string
}

type uniqueKey struct {
	kind  domain.EntityKind
	field string
}

// uniqueTargets whitelists every identifier the guard may check, so no SQL
// identifier ever comes from the caller.
var uniqueTargets = buildUniqueTargets()

func buildUniqueTargets() map[uniqueKey]uniqueTarget {
	targets := map[uniqueKey]uniqueTarget{
		{domain.EntityBooking, domain.FieldBookingNumber}:        {"bookings", "booking_number", "booking_id"},
		{domain.EntityBooking, domain.FieldLLRNumber}:            {"bookings", "llr_number", "booking_id"},
		{domain.EntityBookingPayment, domain.FieldPaymentNumber}: {"booking_payments", "payment_number", "payment_id"},
		{domain.EntityExpense, domain.FieldExpenseNumber}:        {"expenses", "expense_number", "expense_id"},
		{domain.EntityExpensePayment, domain.FieldPaymentNumber}: {"expense_payments", "payment_number", "payment_id"},
		{domain.EntityVehicle, domain.FieldRegistrationNumber}:   {"vehicles", "registration_number", "vehicle_id"},
		{domain.EntityVehicle, domain.FieldRCNumber}:             {"vehicles", "rc_number", "vehicle_id"},
	}
	for kind, table := range referenceTables {
		targets[uniqueKey{domain.EntityKind(kind), domain.FieldCode}] = uniqueTarget{table, "code", "reference_id"}
		targets[uniqueKey{domain.EntityKind(kind), domain.FieldName}] = uniqueTarget{table, "name", "reference_id"}
	}
	return targets
}

type PgxUniquenessRepository struct {
	BaseRepository
}

func newPgxUniquenessRepository(pool PgxPool) portsrepo.UniquenessChecker {
	return &PgxUniquenessRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UniquenessChecker = (*PgxUniquenessRepository)(nil)

// ExistsActive reports whether an active row already holds value. A nil tx reads through the pool.
func (r *PgxUniquenessRepository) ExistsActive(ctx context.Context, tx pgx.Tx, kind domain.EntityKind, field, value, excludeID string) (bool, error) {
	target, ok := uniqueTargets[uniqueKey{kind, field}]
	if !ok {
		return false, fmt.Errorf("%w: %s.%s is not a guarded identifier", apperrors.ErrValidation, kind, field)
	}
	var q queryer = r.Pool
	if tx != nil {
		q = tx
	}

	query := `SELECT EXISTS (SELECT 1 FROM ` + target.table + ` WHERE ` + target.column + ` = $1 AND is_active = TRUE`
	args := []any{value}
	if excludeID != "" {
		query += ` AND ` + target.idColumn + ` <> $2`
		args = append(args, excludeID)
	}
	query += `);`

	var exists bool
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s.%s uniqueness: %w", kind, field, err)
	}
	return exists, nil
}
