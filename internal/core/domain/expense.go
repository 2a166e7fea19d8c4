package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ExpensePaymentType is how an expense was paid.
type ExpensePaymentType string

const (
	ExpensePaymentCash         ExpensePaymentType = "cash"
	ExpensePaymentBankTransfer ExpensePaymentType = "bank_transfer"
	ExpensePaymentCheque       ExpensePaymentType = "cheque"
	ExpensePaymentUPI          ExpensePaymentType = "upi"
	ExpensePaymentCard         ExpensePaymentType = "card"
)

// IsValid reports whether t is a known expense payment type.
func (t ExpensePaymentType) IsValid() bool {
	switch t {
	case ExpensePaymentCash, ExpensePaymentBankTransfer, ExpensePaymentCheque, ExpensePaymentUPI, ExpensePaymentCard:
		return true
	}
	return false
}

// ExpensePaymentStatusCompleted is the status stored on accepted expense payments.
const ExpensePaymentStatusCompleted = "completed"

// Expense is an operating cost incurred by a center.
type Expense struct {
	ExpenseID           string
	ExpenseNumber       string
	ExpenseCategoryCode string
	CenterCode          string
	ExpenseDate         time.Time
	Amount              decimal.Decimal
	PaidAmount          decimal.Decimal
	IsPaid              bool
	VendorName          string
	Description         string
	IsActive            bool
	AuditFields
	Payments []ExpensePayment
}

// ExpensePayment is one settlement against an expense.
type ExpensePayment struct {
	PaymentID     string
	PaymentNumber string
	ExpenseNumber string
	PaymentDate   time.Time
	Amount        decimal.Decimal
	PaymentType   ExpensePaymentType
	Status        string
	Notes         string
	IsActive      bool
	AuditFields
}

// ExpenseStatus summarises how much of an expense has been paid.
type ExpenseStatus struct {
	IsFullyPaid bool
	TotalPaid   decimal.Decimal
	Remaining   decimal.Decimal
}

// ExpensePaymentResult is a written payment and the expense state it produced.
type ExpensePaymentResult struct {
	Payment ExpensePayment
	Status  ExpenseStatus
}

// BulkPaymentFailure describes one rejected item of a bulk request.
type BulkPaymentFailure struct {
	Index     int
	ExpenseID string
	Amount    decimal.Decimal
	Reason    string
}

// BulkExpensePaymentResult is the outcome of a bulk payment request.
type BulkExpensePaymentResult struct {
	Successful []ExpensePaymentResult
	Failed     []BulkPaymentFailure
}

// Remaining is the unpaid part of the expense.
func (e Expense) Remaining() decimal.Decimal {
	return e.Amount.Sub(e.PaidAmount)
}

// Status reports the current payment summary.
func (e Expense) Status() ExpenseStatus {
	return ExpenseStatus{
		IsFullyPaid: e.IsPaid,
		TotalPaid:   e.PaidAmount,
		Remaining:   e.Remaining(),
	}
}

// CheckPayment validates amount against what remains once othersPaid is
// accounted for. othersPaid is the sum of every other active payment.
func (e Expense) CheckPayment(othersPaid, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: payment amount must be greater than zero", apperrors.ErrInvalidAmount)
	}
	remaining := e.Amount.Sub(othersPaid)
	if othersPaid.Add(amount).GreaterThan(e.Amount) {
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		return &apperrors.OverpaymentError{Requested: amount, Remaining: remaining}
	}
	return nil
}

// ApplyPaidAmount sets the paid total and recomputes is_paid.
// paid must be the sum of the expense's active payments.
func (e *Expense) ApplyPaidAmount(paid decimal.Decimal) error {
	paid = RoundMoney(paid)
	if paid.IsNegative() {
		return fmt.Errorf("%w: paid amount %s is negative", apperrors.ErrInvalidAmount, paid.StringFixed(2))
	}
	if paid.GreaterThan(e.Amount) {
		remaining := e.Amount.Sub(e.PaidAmount)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		return &apperrors.OverpaymentError{Requested: paid, Remaining: remaining}
	}
	e.PaidAmount = paid
	e.IsPaid = paid.GreaterThanOrEqual(e.Amount)
	return nil
}

// LedgerIssues compares the stored totals with the sum of active payments.
func (e Expense) LedgerIssues(activePaymentsTotal decimal.Decimal) []string {
	var issues []string
	if e.PaidAmount.GreaterThan(e.Amount) {
		issues = append(issues, "paid amount exceeds expense amount")
	}
	if !e.PaidAmount.Equal(activePaymentsTotal) {
		issues = append(issues, "paid amount does not match active payments")
	}
	if e.IsPaid != activePaymentsTotal.GreaterThanOrEqual(e.Amount) {
		issues = append(issues, "is_paid flag does not match payments")
	}
	return issues
}
