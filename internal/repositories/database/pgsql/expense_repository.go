package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	"github.com/SscSPs/courier_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/courier_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/courier_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const expenseColumns = `
	expense_id, expense_number, expense_category_code, center_code, expense_date,
	amount, paid_amount, is_paid, vendor_name, description,
	is_active, created_at, created_by, last_updated_at, last_updated_by`

const expensePaymentColumns = `
	payment_id, payment_number, expense_number, payment_date, amount,
	payment_type, status, notes,
	is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool PgxPool) portsrepo.ExpenseRepositoryWithTx {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryWithTx = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(
		&e.ExpenseID,
		&e.ExpenseNumber,
		&e.ExpenseCategoryCode,
		&e.CenterCode,
		&e.ExpenseDate,
		&e.Amount,
		&e.PaidAmount,
		&e.IsPaid,
		&e.VendorName,
		&e.Description,
		&e.IsActive,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanExpensePayment(row pgx.Row) (domain.ExpensePayment, error) {
	var p domain.ExpensePayment
	err := row.Scan(
		&p.PaymentID,
		&p.PaymentNumber,
		&p.ExpenseNumber,
		&p.PaymentDate,
		&p.Amount,
		&p.PaymentType,
		&p.Status,
		&p.Notes,
		&p.IsActive,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	query := `INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`
	_, err := tx.Exec(ctx, query,
		expense.ExpenseID,
		expense.ExpenseNumber,
		expense.ExpenseCategoryCode,
		expense.CenterCode,
		expense.ExpenseDate,
		expense.Amount,
		expense.PaidAmount,
		expense.IsPaid,
		expense.VendorName,
		expense.Description,
		expense.IsActive,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "expense "+expense.ExpenseNumber)
	}
	return nil
}

// UpdateExpense rewrites the descriptive fields and amount. paid_amount and is_paid are left to UpdateExpenseLedger.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	query := `
		UPDATE expenses
		SET expense_category_code = $2, center_code = $3, expense_date = $4, amount = $5,
		    vendor_name = $6, description = $7, last_updated_at = $8, last_updated_by = $9
		WHERE expense_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := tx.Exec(ctx, query,
		expense.ExpenseID,
		expense.ExpenseCategoryCode,
		expense.CenterCode,
		expense.ExpenseDate,
		expense.Amount,
		expense.VendorName,
		expense.Description,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "expense "+expense.ExpenseNumber)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expense.ExpenseID)
	}
	return nil
}

// UpdateExpenseLedger writes paid_amount and is_paid together.
func (r *PgxExpenseRepository) UpdateExpenseLedger(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE expenses
		SET paid_amount = $2, is_paid = $3, last_updated_at = $4, last_updated_by = $5
		WHERE expense_id = $1 AND is_active = TRUE;
	`, expense.ExpenseID, expense.PaidAmount, expense.IsPaid, expense.LastUpdatedAt, expense.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update ledger of expense %s: %w", expense.ExpenseNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expense.ExpenseID)
	}
	return nil
}

func (r *PgxExpenseRepository) DeactivateExpense(ctx context.Context, tx pgx.Tx, expenseID string, userID string, at time.Time) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE expenses
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE expense_id = $1 AND is_active = TRUE;
	`, expenseID, at, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate expense %s: %w", expenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
	}
	return nil
}

func (r *PgxExpenseRepository) SaveExpensePayment(ctx context.Context, tx pgx.Tx, payment domain.ExpensePayment) error {
	query := `INSERT INTO expense_payments (` + expensePaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`
	_, err := tx.Exec(ctx, query,
		payment.PaymentID,
		payment.PaymentNumber,
		payment.ExpenseNumber,
		payment.PaymentDate,
		payment.Amount,
		payment.PaymentType,
		payment.Status,
		payment.Notes,
		payment.IsActive,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "expense payment "+payment.PaymentNumber)
	}
	return nil
}

func (r *PgxExpenseRepository) UpdateExpensePayment(ctx context.Context, tx pgx.Tx, payment domain.ExpensePayment) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE expense_payments
		SET payment_date = $2, amount = $3, payment_type = $4, notes = $5, last_updated_at = $6, last_updated_by = $7
		WHERE payment_id = $1 AND is_active = TRUE;
	`,
		payment.PaymentID,
		payment.PaymentDate,
		payment.Amount,
		payment.PaymentType,
		payment.Notes,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense payment %s: %w", payment.PaymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense payment %s", apperrors.ErrNotFound, payment.PaymentID)
	}
	return nil
}

func (r *PgxExpenseRepository) DeactivateExpensePayment(ctx context.Context, tx pgx.Tx, paymentID string, userID string, at time.Time) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE expense_payments
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE payment_id = $1 AND is_active = TRUE;
	`, paymentID, at, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate expense payment %s: %w", paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense payment %s", apperrors.ErrNotFound, paymentID)
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string, includeInactive bool) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	e, err := scanExpense(r.Pool.QueryRow(ctx, query+";", expenseID))
	if err != nil {
		return nil, mapReadError(err, "expense "+expenseID)
	}
	return e, nil
}

func (r *PgxExpenseRepository) FindExpenseByIDForUpdate(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1 AND is_active = TRUE FOR UPDATE;`
	e, err := scanExpense(tx.QueryRow(ctx, query, expenseID))
	if err != nil {
		return nil, mapReadError(err, "expense "+expenseID)
	}
	return e, nil
}

func (r *PgxExpenseRepository) FindExpenseByNumberForUpdate(ctx context.Context, tx pgx.Tx, expenseNumber string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_number = $1 AND is_active = TRUE FOR UPDATE;`
	e, err := scanExpense(tx.QueryRow(ctx, query, expenseNumber))
	if err != nil {
		return nil, mapReadError(err, "expense "+expenseNumber)
	}
	return e, nil
}

func (r *PgxExpenseRepository) FindActiveExpensePayment(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.ExpensePayment, error) {
	query := `SELECT ` + expensePaymentColumns + ` FROM expense_payments WHERE payment_id = $1 AND is_active = TRUE;`
	p, err := scanExpensePayment(tx.QueryRow(ctx, query, paymentID))
	if err != nil {
		return nil, mapReadError(err, "expense payment "+paymentID)
	}
	return &p, nil
}

// SumActivePayments totals active payments of an expense. excludePaymentID, when set, is left out of the sum.
func (r *PgxExpenseRepository) SumActivePayments(ctx context.Context, tx pgx.Tx, expenseNumber string, excludePaymentID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expense_payments
		WHERE expense_number = $1 AND is_active = TRUE`
	args := []any{expenseNumber}
	if excludePaymentID != "" {
		query += ` AND payment_id <> $2`
		args = append(args, excludePaymentID)
	}

	var total decimal.Decimal
	if err := tx.QueryRow(ctx, query+";", args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments of expense %s: %w", expenseNumber, err)
	}
	return total, nil
}

func (r *PgxExpenseRepository) CountActivePayments(ctx context.Context, tx pgx.Tx, expenseNumber string) (int, error) {
	var count int
	err := tx.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM expense_payments
		WHERE expense_number = $1 AND is_active = TRUE;
	`, expenseNumber).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count payments of expense %s: %w", expenseNumber, err)
	}
	return count, nil
}

// FindPaymentsByExpenseNumber retrieves the payments of an expense, oldest first.
func (r *PgxExpenseRepository) FindPaymentsByExpenseNumber(ctx context.Context, expenseNumber string, includeInactive bool) ([]domain.ExpensePayment, error) {
	query := `SELECT ` + expensePaymentColumns + ` FROM expense_payments WHERE expense_number = $1`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	rows, err := r.Pool.Query(ctx, query+` ORDER BY payment_date, created_at;`, expenseNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments of expense %s: %w", expenseNumber, err)
	}
	defer rows.Close()

	payments := []domain.ExpensePayment{}
	for rows.Next() {
		p, err := scanExpensePayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense payment rows: %w", err)
	}
	return payments, nil
}

// ListExpenses retrieves a page of expenses using token-based pagination on (expense_date, created_at).
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ExpenseListFilter) ([]domain.Expense, *string, error) {
	limit := pagination.NormalizeLimit(filter.Limit)
	fetchLimit := limit + 1

	var conditions []string
	var args []any
	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(args))))
	}

	if !filter.IncludeInactive {
		conditions = append(conditions, "is_active = TRUE")
	}
	if filter.CenterCode != "" {
		addCondition("center_code = ?", filter.CenterCode)
	}
	if filter.ExpenseCategoryCode != "" {
		addCondition("expense_category_code = ?", filter.ExpenseCategoryCode)
	}
	if filter.IsPaid != nil {
		addCondition("is_paid = ?", *filter.IsPaid)
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*filter.NextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		conditions = append(conditions, fmt.Sprintf("(expense_date, created_at) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, fetchLimit)
	query += " ORDER BY expense_date DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0, fetchLimit)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating expense rows: %w", err)
	}

	var nextToken *string
	if len(expenses) > limit {
		last := expenses[limit-1]
		token := pagination.EncodeToken(last.ExpenseDate, last.CreatedAt)
		nextToken = &token
		expenses = expenses[:limit]
	}
	return expenses, nextToken, nil
}
