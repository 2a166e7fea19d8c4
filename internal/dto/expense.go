package dto

import (
	"time"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InitialExpensePaymentRequest is an optional payment recorded together with a new expense.
type InitialExpensePaymentRequest struct {
	PaymentDate *Date           `json:"paymentDate"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"paymentType" binding:"required,oneof=cash bank_transfer cheque upi card"`
	Notes       string          `json:"notes" binding:"max=500"`
}

// CreateExpenseRequest defines the payload for recording an expense.
type CreateExpenseRequest struct {
	ExpenseNumber       string                        `json:"expenseNumber" binding:"omitempty,max=32"`
	ExpenseCategoryCode string                        `json:"expenseCategoryCode" binding:"required,max=32"`
	CenterCode          string                        `json:"centerCode" binding:"required,max=32"`
	ExpenseDate         Date                          `json:"expenseDate" binding:"required"`
	Amount              decimal.Decimal               `json:"amount"`
	VendorName          string                        `json:"vendorName" binding:"max=255"`
	Description         string                        `json:"description" binding:"max=1000"`
	Payment             *InitialExpensePaymentRequest `json:"payment"`
}

// UpdateExpenseRequest defines the payload for updating an expense.
// Amount can only change while the expense has no active payments.
type UpdateExpenseRequest struct {
	ExpenseCategoryCode *string          `json:"expenseCategoryCode" binding:"omitempty,min=1,max=32"`
	CenterCode          *string          `json:"centerCode" binding:"omitempty,min=1,max=32"`
	ExpenseDate         *Date            `json:"expenseDate"`
	Amount              *decimal.Decimal `json:"amount"`
	VendorName          *string          `json:"vendorName" binding:"omitempty,max=255"`
	Description         *string          `json:"description" binding:"omitempty,max=1000"`
}

// CreateExpensePaymentRequest defines the payload for paying an expense.
type CreateExpensePaymentRequest struct {
	ExpenseID   string          `json:"expenseID" binding:"required"`
	PaymentDate Date            `json:"paymentDate" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"paymentType" binding:"required,oneof=cash bank_transfer cheque upi card"`
	Notes       string          `json:"notes" binding:"max=500"`
}

// BulkCreateExpensePaymentsRequest wraps a batch of payments.
type BulkCreateExpensePaymentsRequest struct {
	Payments []CreateExpensePaymentRequest `json:"payments" binding:"required,min=1,max=200"`
}

// UpdateExpensePaymentRequest defines the payload for amending an expense payment.
type UpdateExpensePaymentRequest struct {
	PaymentDate *Date            `json:"paymentDate"`
	Amount      *decimal.Decimal `json:"amount"`
	PaymentType *string          `json:"paymentType" binding:"omitempty,oneof=cash bank_transfer cheque upi card"`
	Notes       *string          `json:"notes" binding:"omitempty,max=500"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	Limit               int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken           *string `form:"nextToken"`
	CenterCode          string  `form:"centerCode"`
	ExpenseCategoryCode string  `form:"expenseCategoryCode"`
	IsPaid              *bool   `form:"isPaid"`
	IncludeInactive     bool    `form:"includeInactive"`
}

// ExpenseStatusResponse summarises how much of an expense has been paid.
type ExpenseStatusResponse struct {
	IsFullyPaid bool            `json:"isFullyPaid"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	Remaining   decimal.Decimal `json:"remaining"`
}

// ExpensePaymentResponse is an expense payment as returned by the API.
type ExpensePaymentResponse struct {
	PaymentID     string                 `json:"paymentID"`
	PaymentNumber string                 `json:"paymentNumber"`
	ExpenseNumber string                 `json:"expenseNumber"`
	PaymentDate   Date                   `json:"paymentDate"`
	Amount        decimal.Decimal        `json:"amount"`
	PaymentType   string                 `json:"paymentType"`
	Status        string                 `json:"status"`
	Notes         string                 `json:"notes"`
	IsActive      bool                   `json:"isActive"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
	ExpenseStatus *ExpenseStatusResponse `json:"expenseStatus,omitempty"`
}

// ExpensePaymentSummary is the payment rollup shown with an expense.
type ExpensePaymentSummary struct {
	TotalPaid    decimal.Decimal `json:"totalPaid"`
	Remaining    decimal.Decimal `json:"remaining"`
	IsFullyPaid  bool            `json:"isFullyPaid"`
	PaymentCount int             `json:"paymentCount"`
}

// ExpenseResponse is an expense with its payments.
type ExpenseResponse struct {
	ExpenseID           string                   `json:"expenseID"`
	ExpenseNumber       string                   `json:"expenseNumber"`
	ExpenseCategoryCode string                   `json:"expenseCategoryCode"`
	CenterCode          string                   `json:"centerCode"`
	ExpenseDate         Date                     `json:"expenseDate"`
	Amount              decimal.Decimal          `json:"amount"`
	PaidAmount          decimal.Decimal          `json:"paidAmount"`
	IsPaid              bool                     `json:"isPaid"`
	VendorName          string                   `json:"vendorName"`
	Description         string                   `json:"description"`
	IsActive            bool                     `json:"isActive"`
	CreatedAt           time.Time                `json:"createdAt"`
	CreatedBy           string                   `json:"createdBy"`
	LastUpdatedAt       time.Time                `json:"lastUpdatedAt"`
	LastUpdatedBy       string                   `json:"lastUpdatedBy"`
	PaymentSummary      ExpensePaymentSummary    `json:"paymentSummary"`
	Payments            []ExpensePaymentResponse `json:"payments"`
}

// ListExpensesResponse wraps a page of expenses.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// BulkPaymentFailureResponse describes one rejected item of a bulk request.
type BulkPaymentFailureResponse struct {
	Index     int             `json:"index"`
	ExpenseID string          `json:"expenseID"`
	Amount    decimal.Decimal `json:"amount"`
	Error     string          `json:"error"`
}

// BulkExpensePaymentResponse reports which payments of a batch were recorded.
type BulkExpensePaymentResponse struct {
	Successful []ExpensePaymentResponse     `json:"successful"`
	Failed     []BulkPaymentFailureResponse `json:"failed"`
}

// ToExpenseStatusResponse converts a domain.ExpenseStatus to its DTO.
func ToExpenseStatusResponse(s domain.ExpenseStatus) *ExpenseStatusResponse {
	return &ExpenseStatusResponse{
		IsFullyPaid: s.IsFullyPaid,
		TotalPaid:   s.TotalPaid,
		Remaining:   s.Remaining,
	}
}

// ToExpensePaymentResponse converts a domain.ExpensePayment to ExpensePaymentResponse DTO.
func ToExpensePaymentResponse(p domain.ExpensePayment) ExpensePaymentResponse {
	return ExpensePaymentResponse{
		PaymentID:     p.PaymentID,
		PaymentNumber: p.PaymentNumber,
		ExpenseNumber: p.ExpenseNumber,
		PaymentDate:   NewDate(p.PaymentDate),
		Amount:        p.Amount,
		PaymentType:   string(p.PaymentType),
		Status:        p.Status,
		Notes:         p.Notes,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
	}
}

// ToExpensePaymentResultResponse includes the expense status produced by the write.
func ToExpensePaymentResultResponse(r domain.ExpensePaymentResult) ExpensePaymentResponse {
	resp := ToExpensePaymentResponse(r.Payment)
	resp.ExpenseStatus = ToExpenseStatusResponse(r.Status)
	return resp
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	payments := make([]ExpensePaymentResponse, len(e.Payments))
	activeCount := 0
	for i, p := range e.Payments {
		payments[i] = ToExpensePaymentResponse(p)
		if p.IsActive {
			activeCount++
		}
	}
	return ExpenseResponse{
		ExpenseID:           e.ExpenseID,
		ExpenseNumber:       e.ExpenseNumber,
		ExpenseCategoryCode: e.ExpenseCategoryCode,
		CenterCode:          e.CenterCode,
		ExpenseDate:         NewDate(e.ExpenseDate),
		Amount:              e.Amount,
		PaidAmount:          e.PaidAmount,
		IsPaid:              e.IsPaid,
		VendorName:          e.VendorName,
		Description:         e.Description,
		IsActive:            e.IsActive,
		CreatedAt:           e.CreatedAt,
		CreatedBy:           e.CreatedBy,
		LastUpdatedAt:       e.LastUpdatedAt,
		LastUpdatedBy:       e.LastUpdatedBy,
		PaymentSummary: ExpensePaymentSummary{
			TotalPaid:    e.PaidAmount,
			Remaining:    e.Remaining(),
			IsFullyPaid:  e.IsPaid,
			PaymentCount: activeCount,
		},
		Payments: payments,
	}
}

// ToListExpensesResponse converts a page of expenses to ListExpensesResponse DTO.
func ToListExpensesResponse(expenses []domain.Expense, nextToken *string) ListExpensesResponse {
	list := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		list[i] = ToExpenseResponse(&expenses[i])
	}
	return ListExpensesResponse{Expenses: list, NextToken: nextToken}
}

// ToBulkExpensePaymentResponse converts a bulk result to its DTO.
func ToBulkExpensePaymentResponse(r *domain.BulkExpensePaymentResult) BulkExpensePaymentResponse {
	resp := BulkExpensePaymentResponse{
		Successful: make([]ExpensePaymentResponse, len(r.Successful)),
		Failed:     make([]BulkPaymentFailureResponse, len(r.Failed)),
	}
	for i, s := range r.Successful {
		resp.Successful[i] = ToExpensePaymentResultResponse(s)
	}
	for i, f := range r.Failed {
		resp.Failed[i] = BulkPaymentFailureResponse{
			Index:     f.Index,
			ExpenseID: f.ExpenseID,
			Amount:    f.Amount,
			Error:     f.Reason,
		}
	}
	return resp
}
