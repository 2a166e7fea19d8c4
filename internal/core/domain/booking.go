package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the settlement state of a booking.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPartial   PaymentStatus = "partial"
	PaymentCompleted PaymentStatus = "completed"
)

// PaymentType classifies a single booking payment against the due at the time it was taken.
type PaymentType string

const (
	PaymentTypeFull    PaymentType = "full"
	PaymentTypePartial PaymentType = "partial"
)

// PaymentMode is how money changed hands.
type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "cash"
	PaymentModeCard         PaymentMode = "card"
	PaymentModeUPI          PaymentMode = "upi"
	PaymentModeBankTransfer PaymentMode = "bank_transfer"
	PaymentModeCheque       PaymentMode = "cheque"
)

// IsValid reports whether m is a known payment mode.
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeCard, PaymentModeUPI, PaymentModeBankTransfer, PaymentModeCheque:
		return true
	}
	return false
}

// Booking is a courier consignment and the header of its payment ledger.
type Booking struct {
	BookingID             string
	BookingNumber         string
	LLRNumber             string
	ReferenceNumber       string
	BookingDate           time.Time
	ExpectedDeliveryDate  *time.Time
	ActualDeliveryDate    *time.Time
	CustomerCode          string
	OriginCenterCode      string
	DestinationCenterCode string
	PickupLocationCode    string
	DropLocationCode      string
	SenderName            string
	SenderPhone           string
	ReceiverName          string
	ReceiverPhone         string
	SpecialInstructions   string
	TotalAmount           decimal.Decimal
	PaidAmount            decimal.Decimal
	DueAmount             decimal.Decimal
	PaymentStatus         PaymentStatus
	PaymentMode           PaymentMode
	DeliveryStatus        DeliveryStatus
	IsActive              bool
	AuditFields
	Packages []PackageLine
	Payments []BookingPayment
}

// PackageLine is one costed package row of a booking.
type PackageLine struct {
	PackageID       string
	BookingNumber   string
	PackageTypeCode string
	Quantity        int
	PickupCharge    decimal.Decimal
	DropCharge      decimal.Decimal
	HandlingCharge  decimal.Decimal
	LineTotal       decimal.Decimal
	Description     string
	IsActive        bool
	AuditFields
}

// BookingPayment is a single collection against a booking.
type BookingPayment struct {
	PaymentID             string
	PaymentNumber         string
	BookingNumber         string
	CustomerCode          string
	Amount                decimal.Decimal
	PaymentMode           PaymentMode
	PaymentType           PaymentType
	PaymentDate           time.Time
	Status                string
	Description           string
	CollectedBy           string
	CollectedAtCenterCode string
	IsActive              bool
	AuditFields
}

// BookingPaymentStatusRecorded is the status stored on accepted booking payments.
const BookingPaymentStatusRecorded = "recorded"

// PaymentStatusFor derives the settlement state from the paid and due amounts.
func PaymentStatusFor(paid, due decimal.Decimal) PaymentStatus {
	switch {
	case due.LessThanOrEqual(decimal.Zero):
		return PaymentCompleted
	case paid.GreaterThan(decimal.Zero):
		return PaymentPartial
	default:
		return PaymentPending
	}
}

// IsSettled reports whether nothing remains due.
func (b Booking) IsSettled() bool {
	return b.DueAmount.LessThanOrEqual(decimal.Zero)
}

// CheckPayment validates a new payment against the current due and reports
// whether it settles the booking in full.
func (b Booking) CheckPayment(amount decimal.Decimal) (PaymentType, error) {
	if b.IsSettled() {
		return "", fmt.Errorf("%w: booking %s", apperrors.ErrAlreadySettled, b.BookingNumber)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", fmt.Errorf("%w: payment amount must be greater than zero", apperrors.ErrInvalidAmount)
	}
	if amount.GreaterThan(b.DueAmount) {
		return "", fmt.Errorf("%w: payment %s exceeds due amount %s", apperrors.ErrInvalidAmount, amount.StringFixed(2), b.DueAmount.StringFixed(2))
	}
	if amount.Equal(b.DueAmount) {
		return PaymentTypeFull, nil
	}
	return PaymentTypePartial, nil
}

// ApplyPaidAmount sets the paid total and recomputes due and status.
// paid must be the sum of the booking's active payments.
func (b *Booking) ApplyPaidAmount(paid decimal.Decimal) error {
	paid = RoundMoney(paid)
	if paid.IsNegative() {
		return fmt.Errorf("%w: paid amount %s is negative", apperrors.ErrInvalidAmount, paid.StringFixed(2))
	}
	if paid.GreaterThan(b.TotalAmount) {
		return fmt.Errorf("%w: paid amount %s exceeds total %s", apperrors.ErrInvalidAmount, paid.StringFixed(2), b.TotalAmount.StringFixed(2))
	}
	b.PaidAmount = paid
	b.DueAmount = b.TotalAmount.Sub(paid)
	b.PaymentStatus = PaymentStatusFor(b.PaidAmount, b.DueAmount)
	return nil
}

// TransitionDelivery moves the booking to next. When strict is set only the
// forward adjacency graph is accepted. actual, when present, is stamped as the
// actual delivery date.
func (b *Booking) TransitionDelivery(next DeliveryStatus, actual *time.Time, strict bool) error {
	if !next.IsValid() {
		return fmt.Errorf("%w: unknown delivery status %q", apperrors.ErrValidation, next)
	}
	if strict && !b.DeliveryStatus.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.DeliveryStatus, next)
	}
	b.DeliveryStatus = next
	if actual != nil {
		d := *actual
		b.ActualDeliveryDate = &d
	}
	return nil
}

// LedgerIssues compares the stored totals with the sum of active payments.
func (b Booking) LedgerIssues(activePaymentsTotal decimal.Decimal) []string {
	var issues []string
	if !b.DueAmount.Equal(b.TotalAmount.Sub(b.PaidAmount)) {
		issues = append(issues, "due amount does not equal total minus paid")
	}
	if b.PaidAmount.GreaterThan(b.TotalAmount) {
		issues = append(issues, "paid amount exceeds total")
	}
	if !b.PaidAmount.Equal(activePaymentsTotal) {
		issues = append(issues, "paid amount does not match active payments")
	}
	if b.PaymentStatus != PaymentStatusFor(b.PaidAmount, b.DueAmount) {
		issues = append(issues, "payment status does not match amounts")
	}
	return issues
}
