package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ExpenseListFilter narrows ListExpenses.
type ExpenseListFilter struct {
	CenterCode          string
	ExpenseCategoryCode string
	IsPaid              *bool
	IncludeInactive     bool
	Limit               int
	NextToken           *string
}

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense. Inactive expenses are only returned when includeInactive is set.
	FindExpenseByID(ctx context.Context, expenseID string, includeInactive bool) (*domain.Expense, error)

	// FindPaymentsByExpenseNumber retrieves the payments of an expense ordered by payment date.
	FindPaymentsByExpenseNumber(ctx context.Context, expenseNumber string, includeInactive bool) ([]domain.ExpensePayment, error)

	// ListExpenses retrieves a page of expenses, newest expense date first, and a token for the next page.
	ListExpenses(ctx context.Context, filter ExpenseListFilter) ([]domain.Expense, *string, error)
}

// ExpenseWriter defines write operations for expense data. Every method runs inside the caller's transaction.
type ExpenseWriter interface {
	SaveExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error
	UpdateExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error

	// UpdateExpenseLedger writes the recomputed paid amount and is_paid flag.
	UpdateExpenseLedger(ctx context.Context, tx pgx.Tx, expense domain.Expense) error

	DeactivateExpense(ctx context.Context, tx pgx.Tx, expenseID string, userID string, at time.Time) error

	SaveExpensePayment(ctx context.Context, tx pgx.Tx, payment domain.ExpensePayment) error

	// UpdateExpensePayment rewrites an active payment. Returns apperrors.ErrNotFound if it is no longer active.
	UpdateExpensePayment(ctx context.Context, tx pgx.Tx, payment domain.ExpensePayment) error

	// DeactivateExpensePayment soft deletes an active payment. Returns apperrors.ErrNotFound if it is no longer active.
	DeactivateExpensePayment(ctx context.Context, tx pgx.Tx, paymentID string, userID string, at time.Time) error
}

// ExpenseLedgerSupport defines the locked reads the expense ledger relies on.
type ExpenseLedgerSupport interface {
	// FindExpenseByIDForUpdate loads an active expense and holds its row lock until tx ends.
	FindExpenseByIDForUpdate(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.Expense, error)

	// FindExpenseByNumberForUpdate is FindExpenseByIDForUpdate keyed by expense number.
	FindExpenseByNumberForUpdate(ctx context.Context, tx pgx.Tx, expenseNumber string) (*domain.Expense, error)

	// FindActiveExpensePayment loads an active payment inside tx.
	FindActiveExpensePayment(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.ExpensePayment, error)

	// SumActivePayments totals the active payments of an expense, skipping excludePaymentID when set.
	SumActivePayments(ctx context.Context, tx pgx.Tx, expenseNumber string, excludePaymentID string) (decimal.Decimal, error)

	// CountActivePayments counts the active payments of an expense.
	CountActivePayments(ctx context.Context, tx pgx.Tx, expenseNumber string) (int, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
	ExpenseLedgerSupport
}

// ExpenseRepositoryWithTx extends ExpenseRepositoryFacade with transaction capabilities
type ExpenseRepositoryWithTx interface {
	ExpenseRepositoryFacade
	TransactionManager
}
