package services

import (
	"context"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
	"github.com/SscSPs/courier_ledger/internal/dto"
)

// BookingReaderSvc defines read operations for bookings
type BookingReaderSvc interface {
	// GetBooking retrieves a booking with its package lines and payments.
	GetBooking(ctx context.Context, bookingID string, includeInactive bool) (*domain.Booking, error)

	// ListBookings retrieves a page of bookings.
	ListBookings(ctx context.Context, params dto.ListBookingsParams) (*dto.ListBookingsResponse, error)
}

// BookingWriterSvc defines write operations for bookings
type BookingWriterSvc interface {
	// CreateBooking costs the package lines, assigns identifiers and records an optional up-front payment.
	CreateBooking(ctx context.Context, req dto.CreateBookingRequest, creatorUserID string) (*domain.Booking, error)

	// UpdateBooking updates descriptive fields. Ledger fields are never touched.
	UpdateBooking(ctx context.Context, bookingID string, req dto.UpdateBookingRequest, userID string) (*domain.Booking, error)

	// UpdateDeliveryStatus moves the booking along its delivery path.
	UpdateDeliveryStatus(ctx context.Context, bookingID string, req dto.UpdateDeliveryStatusRequest, userID string) (*dto.DeliveryStatusResponse, error)

	// DeleteBooking soft deletes a booking that has no active payments.
	DeleteBooking(ctx context.Context, bookingID string, userID string) error
}

// BookingPaymentSvc defines the booking payment ledger
type BookingPaymentSvc interface {
	// AddBookingPayment records a payment and recomputes paid, due and payment status.
	AddBookingPayment(ctx context.Context, bookingID string, req dto.AddBookingPaymentRequest, userID string) (*domain.Booking, error)

	// DeleteBookingPayment soft deletes a payment and recomputes the booking totals.
	DeleteBookingPayment(ctx context.Context, bookingID string, paymentID string, userID string) (*domain.Booking, error)
}

// BookingSvcFacade combines all booking-related service interfaces
type BookingSvcFacade interface {
	BookingReaderSvc
	BookingWriterSvc
	BookingPaymentSvc
}
