package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// BookingListFilter narrows ListBookings.
type BookingListFilter struct {
	DeliveryStatus  *domain.DeliveryStatus
	CustomerCode    string
	IncludeInactive bool
	Limit           int
	NextToken       *string
}

// BookingReader defines read operations for booking data
type BookingReader interface {
	// FindBookingByID retrieves a booking header. Inactive bookings are only returned when includeInactive is set.
	FindBookingByID(ctx context.Context, bookingID string, includeInactive bool) (*domain.Booking, error)

	// FindPackagesByBookingNumber retrieves the package lines of a booking.
	FindPackagesByBookingNumber(ctx context.Context, bookingNumber string, includeInactive bool) ([]domain.PackageLine, error)

	// FindPaymentsByBookingNumber retrieves the payments of a booking ordered by payment date.
	FindPaymentsByBookingNumber(ctx context.Context, bookingNumber string, includeInactive bool) ([]domain.BookingPayment, error)

	// ListBookings retrieves a page of bookings, newest booking date first, and a token for the next page.
	ListBookings(ctx context.Context, filter BookingListFilter) ([]domain.Booking, *string, error)
}

// BookingWriter defines write operations for booking data. Every method runs inside the caller's transaction.
type BookingWriter interface {
	// SaveBooking inserts the booking header and its package lines.
	SaveBooking(ctx context.Context, tx pgx.Tx, booking domain.Booking) error

	// UpdateBooking updates the descriptive fields of a booking.
	UpdateBooking(ctx context.Context, tx pgx.Tx, booking domain.Booking) error

	// UpdateBookingLedger writes the recomputed paid, due and payment status.
	UpdateBookingLedger(ctx context.Context, tx pgx.Tx, booking domain.Booking) error

	// UpdateDeliveryStatus writes the delivery status and actual delivery date.
	UpdateDeliveryStatus(ctx context.Context, tx pgx.Tx, booking domain.Booking) error

	// DeactivateBooking soft deletes the booking and its package lines.
	DeactivateBooking(ctx context.Context, tx pgx.Tx, booking domain.Booking, userID string, at time.Time) error

	// SaveBookingPayment inserts a booking payment.
	SaveBookingPayment(ctx context.Context, tx pgx.Tx, payment domain.BookingPayment) error

	// DeactivateBookingPayment soft deletes a booking payment.
	DeactivateBookingPayment(ctx context.Context, tx pgx.Tx, paymentID string, userID string, at time.Time) error
}

// BookingLedgerSupport defines the locked reads the booking ledger relies on.
type BookingLedgerSupport interface {
	// FindBookingByIDForUpdate loads an active booking and holds its row lock until tx ends.
	FindBookingByIDForUpdate(ctx context.Context, tx pgx.Tx, bookingID string) (*domain.Booking, error)

	// FindBookingPaymentByID loads a payment inside tx.
	FindBookingPaymentByID(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.BookingPayment, error)

	// SumActivePayments totals the active payments of a booking.
	SumActivePayments(ctx context.Context, tx pgx.Tx, bookingNumber string) (decimal.Decimal, error)

	// CountActivePayments counts the active payments of a booking.
	CountActivePayments(ctx context.Context, tx pgx.Tx, bookingNumber string) (int, error)
}

// BookingRepositoryFacade combines all booking-related repository interfaces
type BookingRepositoryFacade interface {
	BookingReader
	BookingWriter
	BookingLedgerSupport
}

// BookingRepositoryWithTx extends BookingRepositoryFacade with transaction capabilities
type BookingRepositoryWithTx interface {
	BookingRepositoryFacade
	TransactionManager
}
