package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/courier_ledger/internal/core/ports/repositories"
)

type PgxLedgerAuditRepository struct {
	BaseRepository
}

func newPgxLedgerAuditRepository(pool PgxPool) portsrepo.LedgerAuditRepository {
	return &PgxLedgerAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerAuditRepository = (*PgxLedgerAuditRepository)(nil)

// FindBookingLedgerMismatches joins each active booking to the sum of its active payments
// and keeps the rows whose stored totals cannot be right.
func (r *PgxLedgerAuditRepository) FindBookingLedgerMismatches(ctx context.Context) ([]domain.LedgerSnapshot, error) {
	query := `
		SELECT b.booking_id, b.booking_number, b.total_amount, b.paid_amount, b.due_amount, b.payment_status,
		       COALESCE(p.active_total, 0) AS active_total
		FROM bookings b
		LEFT JOIN (
			SELECT booking_number, SUM(amount) AS active_total
			FROM booking_payments
			WHERE is_active = TRUE
			GROUP BY booking_number
		) p ON p.booking_number = b.booking_number
		WHERE b.is_active = TRUE
		  AND (
			b.paid_amount <> COALESCE(p.active_total, 0)
			OR b.due_amount <> b.total_amount - b.paid_amount
			OR b.paid_amount > b.total_amount
			OR b.payment_status <> CASE
				WHEN b.due_amount <= 0 THEN 'completed'
				WHEN b.paid_amount > 0 THEN 'partial'
				ELSE 'pending'
			END
		  )
		ORDER BY b.booking_date, b.created_at;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query booking ledger mismatches: %w", err)
	}
	defer rows.Close()

	snapshots := []domain.LedgerSnapshot{}
	for rows.Next() {
		s := domain.LedgerSnapshot{EntityKind: domain.EntityBooking}
		if err := rows.Scan(
			&s.EntityID,
			&s.BusinessNumber,
			&s.Amount,
			&s.PaidAmount,
			&s.DueAmount,
			&s.PaymentStatus,
			&s.ActivePaymentsTotal,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking ledger row: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking ledger rows: %w", err)
	}
	return snapshots, nil
}

// FindExpenseLedgerMismatches is the expense counterpart of FindBookingLedgerMismatches.
func (r *PgxLedgerAuditRepository) FindExpenseLedgerMismatches(ctx context.Context) ([]domain.LedgerSnapshot, error) {
	query := `
		SELECT e.expense_id, e.expense_number, e.amount, e.paid_amount, e.is_paid,
		       COALESCE(p.active_total, 0) AS active_total
		FROM expenses e
		LEFT JOIN (
			SELECT expense_number, SUM(amount) AS active_total
			FROM expense_payments
			WHERE is_active = TRUE
			GROUP BY expense_number
		) p ON p.expense_number = e.expense_number
		WHERE e.is_active = TRUE
		  AND (
			e.paid_amount <> COALESCE(p.active_total, 0)
			OR e.paid_amount > e.amount
			OR e.is_paid <> (e.paid_amount >= e.amount)
		  )
		ORDER BY e.expense_date, e.created_at;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense ledger mismatches: %w", err)
	}
	defer rows.Close()

	snapshots := []domain.LedgerSnapshot{}
	for rows.Next() {
		s := domain.LedgerSnapshot{EntityKind: domain.EntityExpense}
		if err := rows.Scan(
			&s.EntityID,
			&s.BusinessNumber,
			&s.Amount,
			&s.PaidAmount,
			&s.IsPaid,
			&s.ActivePaymentsTotal,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense ledger row: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense ledger rows: %w", err)
	}
	return snapshots, nil
}
