package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerSnapshot is the stored header totals of a ledger next to the sum of
// its active payments, as read by the integrity audit.
type LedgerSnapshot struct {
	EntityKind          EntityKind
	EntityID            string
	BusinessNumber      string
	Amount              decimal.Decimal
	PaidAmount          decimal.Decimal
	DueAmount           decimal.Decimal
	PaymentStatus       PaymentStatus
	IsPaid              bool
	ActivePaymentsTotal decimal.Decimal
}

// Issues applies the matching ledger rules to the snapshot.
func (s LedgerSnapshot) Issues() []string {
	switch s.EntityKind {
	case EntityBooking:
		b := Booking{
			BookingNumber: s.BusinessNumber,
			TotalAmount:   s.Amount,
			PaidAmount:    s.PaidAmount,
			DueAmount:     s.DueAmount,
			PaymentStatus: s.PaymentStatus,
		}
		return b.LedgerIssues(s.ActivePaymentsTotal)
	case EntityExpense:
		e := Expense{
			ExpenseNumber: s.BusinessNumber,
			Amount:        s.Amount,
			PaidAmount:    s.PaidAmount,
			IsPaid:        s.IsPaid,
		}
		return e.LedgerIssues(s.ActivePaymentsTotal)
	}
	return nil
}

// LedgerDiscrepancy is one ledger whose stored totals disagree with its payments.
type LedgerDiscrepancy struct {
	EntityKind     EntityKind
	EntityID       string
	BusinessNumber string
	Issues         []string
}

// LedgerAuditReport is the result of one integrity pass.
type LedgerAuditReport struct {
	CheckedAt     time.Time
	Discrepancies []LedgerDiscrepancy
}
