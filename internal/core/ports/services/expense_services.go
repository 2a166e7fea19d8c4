package services

import (
	"context"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
	"github.com/SscSPs/courier_ledger/internal/dto"
)

// ExpenseReaderSvc defines read operations for expenses
type ExpenseReaderSvc interface {
	GetExpense(ctx context.Context, expenseID string, includeInactive bool) (*domain.Expense, error)
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error)
	ListExpensePayments(ctx context.Context, expenseID string, includeInactive bool) ([]domain.ExpensePayment, error)
}

// ExpenseWriterSvc defines write operations for expenses
type ExpenseWriterSvc interface {
	// CreateExpense records an expense and an optional first payment.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error)

	// UpdateExpense updates an expense. The amount is locked once active payments exist.
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error)

	// DeleteExpense soft deletes an expense that has no active payments.
	DeleteExpense(ctx context.Context, expenseID string, userID string) error
}

// ExpensePaymentSvc defines the expense payment ledger
type ExpensePaymentSvc interface {
	CreateExpensePayment(ctx context.Context, req dto.CreateExpensePaymentRequest, userID string) (*domain.ExpensePaymentResult, error)

	// BulkCreateExpensePayments records each payment independently inside one transaction.
	// The batch commits when at least one payment succeeded.
	BulkCreateExpensePayments(ctx context.Context, reqs []dto.CreateExpensePaymentRequest, userID string) (*domain.BulkExpensePaymentResult, error)

	UpdateExpensePayment(ctx context.Context, paymentID string, req dto.UpdateExpensePaymentRequest, userID string) (*domain.ExpensePaymentResult, error)
	DeleteExpensePayment(ctx context.Context, paymentID string, userID string) (*domain.ExpenseStatus, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
	ExpensePaymentSvc
}
