package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Ledger errors. These are raised by the booking and expense ledgers and map to
// conflict responses at the HTTP edge.
var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrAlreadySettled = errors.New("booking is already fully paid")
	ErrOverpayment    = errors.New("payment exceeds remaining balance")
	ErrAmountLocked   = errors.New("expense amount cannot change while active payments exist")
	ErrHasDependents  = errors.New("record has active dependent records")
	ErrBatchFailed    = errors.New("no item in the batch could be processed")
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

// AppError carries an HTTP-ish status code alongside the wrapped cause.
// Repositories use it for infrastructure failures that should not leak details.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// OverpaymentError reports how much could still be paid against an expense.
type OverpaymentError struct {
	Requested decimal.Decimal
	Remaining decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("%s: requested %s, remaining %s", ErrOverpayment.Error(), e.Requested.StringFixed(2), e.Remaining.StringFixed(2))
}

func (e *OverpaymentError) Unwrap() error {
	return ErrOverpayment
}
