package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// MoneyScale is the number of decimal places every stored amount carries.
const MoneyScale = 2

// RoundMoney rounds an amount to MoneyScale places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// EntityKind names a ledger or master-data table for uniqueness checks.
type EntityKind string

const (
	EntityBooking        EntityKind = "booking"
	EntityBookingPayment EntityKind = "booking_payment"
	EntityExpense        EntityKind = "expense"
	EntityExpensePayment EntityKind = "expense_payment"
	EntityVehicle        EntityKind = "vehicle"
)

// Business identifier fields guarded by the uniqueness guard.
const (
	FieldBookingNumber      = "booking_number"
	FieldLLRNumber          = "llr_number"
	FieldPaymentNumber      = "payment_number"
	FieldExpenseNumber      = "expense_number"
	FieldRegistrationNumber = "registration_number"
	FieldRCNumber           = "rc_number"
	FieldCode               = "code"
	FieldName               = "name"
)
