package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	"github.com/SscSPs/courier_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/courier_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/courier_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const bookingColumns = `
	booking_id, booking_number, llr_number, reference_number, booking_date,
	expected_delivery_date, actual_delivery_date, customer_code,
	origin_center_code, destination_center_code, pickup_location_code, drop_location_code,
	sender_name, sender_phone, receiver_name, receiver_phone, special_instructions,
	total_amount, paid_amount, due_amount, payment_status, payment_mode, delivery_status,
	is_active, created_at, created_by, last_updated_at, last_updated_by`

const packageColumns = `
	package_id, booking_number, package_type_code, quantity,
	pickup_charge, drop_charge, handling_charge, line_total, description,
	is_active, created_at, created_by, last_updated_at, last_updated_by`

const bookingPaymentColumns = `
	payment_id, payment_number, booking_number, customer_code, amount,
	payment_mode, payment_type, payment_date, status, description,
	collected_by, collected_at_center_code,
	is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxBookingRepository struct {
	BaseRepository
}

// newPgxBookingRepository creates a new repository for bookings, their packages and payments.
func newPgxBookingRepository(pool PgxPool) portsrepo.BookingRepositoryWithTx {
	return &PgxBookingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BookingRepositoryWithTx = (*PgxBookingRepository)(nil)

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.BookingID,
		&b.BookingNumber,
		&b.LLRNumber,
		&b.ReferenceNumber,
		&b.BookingDate,
		&b.ExpectedDeliveryDate,
		&b.ActualDeliveryDate,
		&b.CustomerCode,
		&b.OriginCenterCode,
		&b.DestinationCenterCode,
		&b.PickupLocationCode,
		&b.DropLocationCode,
		&b.SenderName,
		&b.SenderPhone,
		&b.ReceiverName,
		&b.ReceiverPhone,
		&b.SpecialInstructions,
		&b.TotalAmount,
		&b.PaidAmount,
		&b.DueAmount,
		&b.PaymentStatus,
		&b.PaymentMode,
		&b.DeliveryStatus,
		&b.IsActive,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanPackage(row pgx.Row) (domain.PackageLine, error) {
	var p domain.PackageLine
	err := row.Scan(
		&p.PackageID,
		&p.BookingNumber,
		&p.PackageTypeCode,
		&p.Quantity,
		&p.PickupCharge,
		&p.DropCharge,
		&p.HandlingCharge,
		&p.LineTotal,
		&p.Description,
		&p.IsActive,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

func scanBookingPayment(row pgx.Row) (domain.BookingPayment, error) {
	var p domain.BookingPayment
	err := row.Scan(
		&p.PaymentID,
		&p.PaymentNumber,
		&p.BookingNumber,
		&p.CustomerCode,
		&p.Amount,
		&p.PaymentMode,
		&p.PaymentType,
		&p.PaymentDate,
		&p.Status,
		&p.Description,
		&p.CollectedBy,
		&p.CollectedAtCenterCode,
		&p.IsActive,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

// SaveBooking inserts the booking header followed by its package lines.
func (r *PgxBookingRepository) SaveBooking(ctx context.Context, tx pgx.Tx, booking domain.Booking) error {
	query := `INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28);`
	_, err := tx.Exec(ctx, query,
		booking.BookingID,
		booking.BookingNumber,
		booking.LLRNumber,
		booking.ReferenceNumber,
		booking.BookingDate,
		booking.ExpectedDeliveryDate,
		booking.ActualDeliveryDate,
		booking.CustomerCode,
		booking.OriginCenterCode,
		booking.DestinationCenterCode,
		booking.PickupLocationCode,
		booking.DropLocationCode,
		booking.SenderName,
		booking.SenderPhone,
		booking.ReceiverName,
		booking.ReceiverPhone,
		booking.SpecialInstructions,
		booking.TotalAmount,
		booking.PaidAmount,
		booking.DueAmount,
		booking.PaymentStatus,
		booking.PaymentMode,
		booking.DeliveryStatus,
		booking.IsActive,
		booking.CreatedAt,
		booking.CreatedBy,
		booking.LastUpdatedAt,
		booking.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "booking "+booking.BookingNumber)
	}

	if len(booking.Packages) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	packageQuery := `INSERT INTO booking_packages (` + packageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`
	for _, p := range booking.Packages {
		batch.Queue(packageQuery,
			p.PackageID,
			booking.BookingNumber,
			p.PackageTypeCode,
			p.Quantity,
			p.PickupCharge,
			p.DropCharge,
			p.HandlingCharge,
			p.LineTotal,
			p.Description,
			p.IsActive,
			p.CreatedAt,
			p.CreatedBy,
			p.LastUpdatedAt,
			p.LastUpdatedBy,
		)
	}
	// Closing the batch surfaces the first failed insert.
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError(err, "packages of booking "+booking.BookingNumber)
	}
	return nil
}

// UpdateBooking rewrites the descriptive fields. Amounts and statuses have their own writers.
func (r *PgxBookingRepository) UpdateBooking(ctx context.Context, tx pgx.Tx, booking domain.Booking) error {
	query := `
		UPDATE bookings
		SET llr_number = $2, reference_number = $3, booking_date = $4, expected_delivery_date = $5,
		    pickup_location_code = $6, drop_location_code = $7,
		    sender_name = $8, sender_phone = $9, receiver_name = $10, receiver_phone = $11,
		    special_instructions = $12, last_updated_at = $13, last_updated_by = $14
		WHERE booking_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := tx.Exec(ctx, query,
		booking.BookingID,
		booking.LLRNumber,
		booking.ReferenceNumber,
		booking.BookingDate,
		booking.ExpectedDeliveryDate,
		booking.PickupLocationCode,
		booking.DropLocationCode,
		booking.SenderName,
		booking.SenderPhone,
		booking.ReceiverName,
		booking.ReceiverPhone,
		booking.SpecialInstructions,
		booking.LastUpdatedAt,
		booking.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "booking "+booking.BookingNumber)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: booking %s", apperrors.ErrNotFound, booking.BookingID)
	}
	return nil
}

// UpdateBookingLedger writes paid, due and payment status together.
func (r *PgxBookingRepository) UpdateBookingLedger(ctx context.Context, tx pgx.Tx, booking domain.Booking) error {
	query := `
		UPDATE bookings
		SET paid_amount = $2, due_amount = $3, payment_status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE booking_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := tx.Exec(ctx, query,
		booking.BookingID,
		booking.PaidAmount,
		booking.DueAmount,
		booking.PaymentStatus,
		booking.LastUpdatedAt,
		booking.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger of booking %s: %w", booking.BookingNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: booking %s", apperrors.ErrNotFound, booking.BookingID)
	}
	return nil
}

// UpdateDeliveryStatus writes the delivery status and actual delivery date.
func (r *PgxBookingRepository) UpdateDeliveryStatus(ctx context.Context, tx pgx.Tx, booking domain.Booking) error {
	query := `
		UPDATE bookings
		SET delivery_status = $2, actual_delivery_date = $3, last_updated_at = $4, last_updated_by = $5
		WHERE booking_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := tx.Exec(ctx, query,
		booking.BookingID,
		booking.DeliveryStatus,
		booking.ActualDeliveryDate,
		booking.LastUpdatedAt,
		booking.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update delivery status of booking %s: %w", booking.BookingNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: booking %s", apperrors.ErrNotFound, booking.BookingID)
	}
	return nil
}

// DeactivateBooking soft deletes the booking header and its package lines.
func (r *PgxBookingRepository) DeactivateBooking(ctx context.Context, tx pgx.Tx, booking domain.Booking, userID string, at time.Time) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE bookings
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE booking_id = $1 AND is_active = TRUE;
	`, booking.BookingID, at, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate booking %s: %w", booking.BookingNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: booking %s", apperrors.ErrNotFound, booking.BookingID)
	}

	_, err = tx.Exec(ctx, `
		UPDATE booking_packages
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE booking_number = $1 AND is_active = TRUE;
	`, booking.BookingNumber, at, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate packages of booking %s: %w", booking.BookingNumber, err)
	}
	return nil
}

// SaveBookingPayment inserts a payment row.
func (r *PgxBookingRepository) SaveBookingPayment(ctx context.Context, tx pgx.Tx, payment domain.BookingPayment) error {
	query := `INSERT INTO booking_payments (` + bookingPaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`
	_, err := tx.Exec(ctx, query,
		payment.PaymentID,
		payment.PaymentNumber,
		payment.BookingNumber,
		payment.CustomerCode,
		payment.Amount,
		payment.PaymentMode,
		payment.PaymentType,
		payment.PaymentDate,
		payment.Status,
		payment.Description,
		payment.CollectedBy,
		payment.CollectedAtCenterCode,
		payment.IsActive,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "payment "+payment.PaymentNumber)
	}
	return nil
}

// DeactivateBookingPayment soft deletes an active payment.
func (r *PgxBookingRepository) DeactivateBookingPayment(ctx context.Context, tx pgx.Tx, paymentID string, userID string, at time.Time) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE booking_payments
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE payment_id = $1 AND is_active = TRUE;
	`, paymentID, at, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate booking payment %s: %w", paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: booking payment %s", apperrors.ErrNotFound, paymentID)
	}
	return nil
}

// FindBookingByID retrieves a booking header.
func (r *PgxBookingRepository) FindBookingByID(ctx context.Context, bookingID string, includeInactive bool) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	b, err := scanBooking(r.Pool.QueryRow(ctx, query+";", bookingID))
	if err != nil {
		return nil, mapReadError(err, "booking "+bookingID)
	}
	return b, nil
}

// FindBookingByIDForUpdate locks an active booking row for the rest of tx.
func (r *PgxBookingRepository) FindBookingByIDForUpdate(ctx context.Context, tx pgx.Tx, bookingID string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1 AND is_active = TRUE FOR UPDATE;`
	b, err := scanBooking(tx.QueryRow(ctx, query, bookingID))
	if err != nil {
		return nil, mapReadError(err, "booking "+bookingID)
	}
	return b, nil
}

// FindPackagesByBookingNumber retrieves the package lines of a booking.
func (r *PgxBookingRepository) FindPackagesByBookingNumber(ctx context.Context, bookingNumber string, includeInactive bool) ([]domain.PackageLine, error) {
	query := `SELECT ` + packageColumns + ` FROM booking_packages WHERE booking_number = $1`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	rows, err := r.Pool.Query(ctx, query+` ORDER BY created_at, package_id;`, bookingNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query packages of booking %s: %w", bookingNumber, err)
	}
	defer rows.Close()

	packages := []domain.PackageLine{}
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan package row: %w", err)
		}
		packages = append(packages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating package rows: %w", err)
	}
	return packages, nil
}

// FindPaymentsByBookingNumber retrieves the payments of a booking, oldest first.
func (r *PgxBookingRepository) FindPaymentsByBookingNumber(ctx context.Context, bookingNumber string, includeInactive bool) ([]domain.BookingPayment, error) {
	query := `SELECT ` + bookingPaymentColumns + ` FROM booking_payments WHERE booking_number = $1`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	rows, err := r.Pool.Query(ctx, query+` ORDER BY payment_date, created_at;`, bookingNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments of booking %s: %w", bookingNumber, err)
	}
	defer rows.Close()

	payments := []domain.BookingPayment{}
	for rows.Next() {
		p, err := scanBookingPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking payment rows: %w", err)
	}
	return payments, nil
}

// FindBookingPaymentByID loads a payment, active or not.
func (r *PgxBookingRepository) FindBookingPaymentByID(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.BookingPayment, error) {
	query := `SELECT ` + bookingPaymentColumns + ` FROM booking_payments WHERE payment_id = $1;`
	p, err := scanBookingPayment(tx.QueryRow(ctx, query, paymentID))
	if err != nil {
		return nil, mapReadError(err, "booking payment "+paymentID)
	}
	return &p, nil
}

// SumActivePayments totals the active payments of a booking.
func (r *PgxBookingRepository) SumActivePayments(ctx context.Context, tx pgx.Tx, bookingNumber string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM booking_payments
		WHERE booking_number = $1 AND is_active = TRUE;
	`, bookingNumber).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments of booking %s: %w", bookingNumber, err)
	}
	return total, nil
}

// CountActivePayments counts the active payments of a booking.
func (r *PgxBookingRepository) CountActivePayments(ctx context.Context, tx pgx.Tx, bookingNumber string) (int, error) {
	var count int
	err := tx.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM booking_payments
		WHERE booking_number = $1 AND is_active = TRUE;
	`, bookingNumber).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count payments of booking %s: %w", bookingNumber, err)
	}
	return count, nil
}

// ListBookings retrieves a page of bookings using token-based pagination on (booking_date, created_at).
func (r *PgxBookingRepository) ListBookings(ctx context.Context, filter portsrepo.BookingListFilter) ([]domain.Booking, *string, error) {
	limit := pagination.NormalizeLimit(filter.Limit)
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	var conditions []string
	var args []any
	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(args))))
	}

	if !filter.IncludeInactive {
		conditions = append(conditions, "is_active = TRUE")
	}
	if filter.DeliveryStatus != nil {
		addCondition("delivery_status = ?", *filter.DeliveryStatus)
	}
	if filter.CustomerCode != "" {
		addCondition("customer_code = ?", filter.CustomerCode)
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*filter.NextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		conditions = append(conditions, fmt.Sprintf("(booking_date, created_at) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, fetchLimit)
	query += " ORDER BY booking_date DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0, fetchLimit)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating booking rows: %w", err)
	}

	var nextToken *string
	if len(bookings) > limit {
		last := bookings[limit-1]
		token := pagination.EncodeToken(last.BookingDate, last.CreatedAt)
		nextToken = &token
		bookings = bookings[:limit]
	}
	return bookings, nextToken, nil
}
