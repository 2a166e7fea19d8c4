package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	"github.com/SscSPs/courier_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/courier_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/courier_ledger/internal/core/ports/services"
	"github.com/SscSPs/courier_ledger/internal/dto"
	"github.com/SscSPs/courier_ledger/internal/utils/accounting"
	"github.com/SscSPs/courier_ledger/internal/utils/identifier"
	"github.com/SscSPs/courier_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// bookingService owns the booking ledger: package costing, payment collection and delivery progress.
type bookingService struct {
	BaseService
	bookingRepo       portsrepo.BookingRepositoryWithTx
	refValidator      portssvc.ReferenceValidatorSvc
	guard             portssvc.UniquenessGuardSvc
	strictTransitions bool
}

// NewBookingService creates a new BookingService.
func NewBookingService(bookingRepo portsrepo.BookingRepositoryWithTx, refValidator portssvc.ReferenceValidatorSvc, guard portssvc.UniquenessGuardSvc, opts ...ServiceOption) portssvc.BookingSvcFacade {
	o := applyOptions(opts)
	return &bookingService{
		BaseService:       BaseService{now: o.now},
		bookingRepo:       bookingRepo,
		refValidator:      refValidator,
		guard:             guard,
		strictTransitions: o.strictTransitions,
	}
}

// Ensure bookingService implements the portssvc.BookingSvcFacade interface
var _ portssvc.BookingSvcFacade = (*bookingService)(nil)

type refCheck struct {
	kind domain.ReferenceKind
	code string
}

// validateRefs checks every non-empty code, once per (kind, code).
func validateRefs(ctx context.Context, v portssvc.ReferenceValidatorSvc, tx pgx.Tx, checks ...refCheck) error {
	seen := make(map[refCheck]struct{}, len(checks))
	for _, c := range checks {
		if c.code == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		if err := v.ValidateReference(ctx, tx, c.kind, c.code); err != nil {
			return err
		}
	}
	return nil
}

func auditFields(userID string, at time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     at,
		CreatedBy:     userID,
		LastUpdatedAt: at,
		LastUpdatedBy: userID,
	}
}

// CreateBooking implements portssvc.BookingWriterSvc
func (s *bookingService) CreateBooking(ctx context.Context, req dto.CreateBookingRequest, creatorUserID string) (*domain.Booking, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	lines := make([]domain.PackageLine, 0, len(req.Packages))
	for i, p := range req.Packages {
		line, err := accounting.BuildPackageLine(strings.TrimSpace(p.PackageTypeCode), p.Description, accounting.LineCharges{
			Quantity:       p.Quantity,
			PickupCharge:   p.PickupCharge,
			DropCharge:     p.DropCharge,
			HandlingCharge: p.HandlingCharge,
		})
		if err != nil {
			return nil, fmt.Errorf("package %d: %w", i+1, err)
		}
		lines = append(lines, line)
	}
	total := accounting.BookingTotal(lines)

	paid := decimal.Zero
	if req.PaidAmount != nil {
		paid = domain.RoundMoney(*req.PaidAmount)
		if paid.IsNegative() || paid.GreaterThan(total) {
			return nil, fmt.Errorf("%w: paid amount %s must be between 0 and the booking total %s",
				apperrors.ErrInvalidAmount, paid.StringFixed(2), total.StringFixed(2))
		}
	}
	mode := domain.PaymentMode(req.PaymentMode)
	if mode == "" {
		mode = domain.PaymentModeCash
	}

	now := s.Now()
	audit := auditFields(creatorUserID, now)
	booking := domain.Booking{
		BookingID:             uuid.NewString(),
		BookingNumber:         strings.TrimSpace(req.BookingNumber),
		LLRNumber:             strings.TrimSpace(req.LLRNumber),
		ReferenceNumber:       strings.TrimSpace(req.ReferenceNumber),
		BookingDate:           req.BookingDate.Time,
		ExpectedDeliveryDate:  req.ExpectedDeliveryDate.TimePtr(),
		CustomerCode:          strings.TrimSpace(req.CustomerCode),
		OriginCenterCode:      strings.TrimSpace(req.OriginCenterCode),
		DestinationCenterCode: strings.TrimSpace(req.DestinationCenterCode),
		PickupLocationCode:    strings.TrimSpace(req.PickupLocationCode),
		DropLocationCode:      strings.TrimSpace(req.DropLocationCode),
		SenderName:            strings.TrimSpace(req.SenderName),
		SenderPhone:           strings.TrimSpace(req.SenderPhone),
		ReceiverName:          strings.TrimSpace(req.ReceiverName),
		ReceiverPhone:         strings.TrimSpace(req.ReceiverPhone),
		SpecialInstructions:   req.SpecialInstructions,
		TotalAmount:           total,
		PaymentMode:           mode,
		DeliveryStatus:        domain.DeliveryNotStarted,
		IsActive:              true,
		AuditFields:           audit,
	}
	if err := booking.ApplyPaidAmount(paid); err != nil {
		return nil, err
	}

	err := s.RunInTx(ctx, s.bookingRepo, func(tx pgx.Tx) error {
		checks := []refCheck{
			{domain.RefCustomer, booking.CustomerCode},
			{domain.RefOfficeCenter, booking.OriginCenterCode},
			{domain.RefOfficeCenter, booking.DestinationCenterCode},
			{domain.RefLocation, booking.PickupLocationCode},
			{domain.RefLocation, booking.DropLocationCode},
		}
		for _, line := range lines {
			checks = append(checks, refCheck{domain.RefPackageType, line.PackageTypeCode})
		}
		if err := validateRefs(ctx, s.refValidator, tx, checks...); err != nil {
			return err
		}

		var err error
		booking.BookingNumber, err = claimIdentifier(ctx, s.guard, tx, domain.EntityBooking, domain.FieldBookingNumber, booking.BookingNumber, identifier.PrefixBooking)
		if err != nil {
			return err
		}
		booking.LLRNumber, err = claimIdentifier(ctx, s.guard, tx, domain.EntityBooking, domain.FieldLLRNumber, booking.LLRNumber, identifier.PrefixLLR)
		if err != nil {
			return err
		}

		for i := range lines {
			lines[i].PackageID = uuid.NewString()
			lines[i].BookingNumber = booking.BookingNumber
			lines[i].AuditFields = audit
		}
		booking.Packages = lines

		if err := s.bookingRepo.SaveBooking(ctx, tx, booking); err != nil {
			return err
		}

		if paid.IsPositive() {
			paymentType := domain.PaymentTypePartial
			if paid.Equal(total) {
				paymentType = domain.PaymentTypeFull
			}
			payment := domain.BookingPayment{
				PaymentID:     uuid.NewString(),
				BookingNumber: booking.BookingNumber,
				CustomerCode:  booking.CustomerCode,
				Amount:        paid,
				PaymentMode:   mode,
				PaymentType:   paymentType,
				PaymentDate:   booking.BookingDate,
				Status:        domain.BookingPaymentStatusRecorded,
				Description:   "Payment collected at booking",
				CollectedBy:   creatorUserID,
				IsActive:      true,
				AuditFields:   audit,
			}
			payment.PaymentNumber, err = s.guard.GenerateUnique(ctx, tx, domain.EntityBookingPayment, domain.FieldPaymentNumber, identifier.PrefixBookingPayment)
			if err != nil {
				return err
			}
			if err := s.bookingRepo.SaveBookingPayment(ctx, tx, payment); err != nil {
				return err
			}
			booking.Payments = []domain.BookingPayment{payment}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Booking created",
		slog.String("booking_id", booking.BookingID),
		slog.String("booking_number", booking.BookingNumber),
		slog.String("total_amount", booking.TotalAmount.StringFixed(2)),
		slog.String("paid_amount", booking.PaidAmount.StringFixed(2)))
	return &booking, nil
}

// recomputeLedger derives paid, due and status from the active payments and stores them.
// The booking row must already be locked by tx.
func (s *bookingService) recomputeLedger(ctx context.Context, tx pgx.Tx, booking *domain.Booking, userID string, at time.Time) error {
	paid, err := s.bookingRepo.SumActivePayments(ctx, tx, booking.BookingNumber)
	if err != nil {
		return err
	}
	if err := booking.ApplyPaidAmount(paid); err != nil {
		s.LogError(ctx, err, "Booking ledger invariant violated", slog.String("booking_id", booking.BookingID))
		return err
	}
	booking.LastUpdatedAt = at
	booking.LastUpdatedBy = userID
	return s.bookingRepo.UpdateBookingLedger(ctx, tx, *booking)
}

// AddBookingPayment implements portssvc.BookingPaymentSvc
func (s *bookingService) AddBookingPayment(ctx context.Context, bookingID string, req dto.AddBookingPaymentRequest, userID string) (*domain.Booking, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	amount := domain.RoundMoney(req.Amount)
	now := s.Now()

	var booking *domain.Booking
	var payment domain.BookingPayment
	err := s.RunInTx(ctx, s.bookingRepo, func(tx pgx.Tx) error {
		var err error
		booking, err = s.bookingRepo.FindBookingByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		paymentType, err := booking.CheckPayment(amount)
		if err != nil {
			return err
		}

		customerCode := strings.TrimSpace(req.CustomerCode)
		if customerCode == "" {
			customerCode = booking.CustomerCode
		}
		centerCode := strings.TrimSpace(req.CollectedAtCenterCode)
		if err := validateRefs(ctx, s.refValidator, tx,
			refCheck{domain.RefCustomer, customerCode},
			refCheck{domain.RefOfficeCenter, centerCode},
		); err != nil {
			return err
		}

		paymentDate := now
		if t := req.PaymentDate.TimePtr(); t != nil {
			paymentDate = *t
		}
		collectedBy := strings.TrimSpace(req.CollectedBy)
		if collectedBy == "" {
			collectedBy = userID
		}

		payment = domain.BookingPayment{
			PaymentID:             uuid.NewString(),
			BookingNumber:         booking.BookingNumber,
			CustomerCode:          customerCode,
			Amount:                amount,
			PaymentMode:           domain.PaymentMode(req.PaymentMode),
			PaymentType:           paymentType,
			PaymentDate:           paymentDate,
			Status:                domain.BookingPaymentStatusRecorded,
			Description:           req.Description,
			CollectedBy:           collectedBy,
			CollectedAtCenterCode: centerCode,
			IsActive:              true,
			AuditFields:           auditFields(userID, now),
		}
		payment.PaymentNumber, err = s.guard.GenerateUnique(ctx, tx, domain.EntityBookingPayment, domain.FieldPaymentNumber, identifier.PrefixBookingPayment)
		if err != nil {
			return err
		}
		if err := s.bookingRepo.SaveBookingPayment(ctx, tx, payment); err != nil {
			return err
		}

		return s.recomputeLedger(ctx, tx, booking, userID, now)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Booking payment recorded",
		slog.String("booking_id", booking.BookingID),
		slog.String("payment_number", payment.PaymentNumber),
		slog.String("amount", amount.StringFixed(2)),
		slog.String("payment_status", string(booking.PaymentStatus)))

	if err := s.loadDetails(ctx, booking, false); err != nil {
		return nil, err
	}
	return booking, nil
}

// DeleteBookingPayment implements portssvc.BookingPaymentSvc
func (s *bookingService) DeleteBookingPayment(ctx context.Context, bookingID string, paymentID string, userID string) (*domain.Booking, error) {
	now := s.Now()

	var booking *domain.Booking
	err := s.RunInTx(ctx, s.bookingRepo, func(tx pgx.Tx) error {
		var err error
		booking, err = s.bookingRepo.FindBookingByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		payment, err := s.bookingRepo.FindBookingPaymentByID(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		if !payment.IsActive || payment.BookingNumber != booking.BookingNumber {
			return fmt.Errorf("%w: payment %s on booking %s", apperrors.ErrNotFound, paymentID, booking.BookingNumber)
		}

		if err := s.bookingRepo.DeactivateBookingPayment(ctx, tx, paymentID, userID, now); err != nil {
			return err
		}
		return s.recomputeLedger(ctx, tx, booking, userID, now)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Booking payment deleted", slog.String("booking_id", bookingID), slog.String("payment_id", paymentID))
	if err := s.loadDetails(ctx, booking, false); err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdateBooking implements portssvc.BookingWriterSvc
func (s *bookingService) UpdateBooking(ctx context.Context, bookingID string, req dto.UpdateBookingRequest, userID string) (*domain.Booking, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	now := s.Now()

	var booking *domain.Booking
	err := s.RunInTx(ctx, s.bookingRepo, func(tx pgx.Tx) error {
		var err error
		booking, err = s.bookingRepo.FindBookingByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		if req.LLRNumber != nil {
			llr := strings.TrimSpace(*req.LLRNumber)
			if llr != booking.LLRNumber {
				if err := s.guard.EnsureUnique(ctx, tx, domain.EntityBooking, domain.FieldLLRNumber, llr, booking.BookingID); err != nil {
					return err
				}
				booking.LLRNumber = llr
			}
		}

		var checks []refCheck
		if req.PickupLocationCode != nil {
			booking.PickupLocationCode = strings.TrimSpace(*req.PickupLocationCode)
			checks = append(checks, refCheck{domain.RefLocation, booking.PickupLocationCode})
		}
		if req.DropLocationCode != nil {
			booking.DropLocationCode = strings.TrimSpace(*req.DropLocationCode)
			checks = append(checks, refCheck{domain.RefLocation, booking.DropLocationCode})
		}
		if err := validateRefs(ctx, s.refValidator, tx, checks...); err != nil {
			return err
		}

		if req.ReferenceNumber != nil {
			booking.ReferenceNumber = strings.TrimSpace(*req.ReferenceNumber)
		}
		if req.BookingDate != nil && !req.BookingDate.IsZero() {
			booking.BookingDate = req.BookingDate.Time
		}
		if req.ExpectedDeliveryDate != nil {
			booking.ExpectedDeliveryDate = req.ExpectedDeliveryDate.TimePtr()
		}
		if req.SenderName != nil {
			booking.SenderName = strings.TrimSpace(*req.SenderName)
		}
		if req.SenderPhone != nil {
			booking.SenderPhone = strings.TrimSpace(*req.SenderPhone)
		}
		if req.ReceiverName != nil {
			booking.ReceiverName = strings.TrimSpace(*req.ReceiverName)
		}
		if req.ReceiverPhone != nil {
			booking.ReceiverPhone = strings.TrimSpace(*req.ReceiverPhone)
		}
		if req.SpecialInstructions != nil {
			booking.SpecialInstructions = *req.SpecialInstructions
		}
		booking.LastUpdatedAt = now
		booking.LastUpdatedBy = userID

		return s.bookingRepo.UpdateBooking(ctx, tx, *booking)
	})
	if err != nil {
		return nil, err
	}

	if err := s.loadDetails(ctx, booking, false); err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdateDeliveryStatus implements portssvc.BookingWriterSvc
func (s *bookingService) UpdateDeliveryStatus(ctx context.Context, bookingID string, req dto.UpdateDeliveryStatusRequest, userID string) (*dto.DeliveryStatusResponse, error) {
	next, err := domain.ParseDeliveryStatus(req.DeliveryStatus)
	if err != nil {
		return nil, err
	}
	now := s.Now()

	var previous domain.DeliveryStatus
	err = s.RunInTx(ctx, s.bookingRepo, func(tx pgx.Tx) error {
		booking, err := s.bookingRepo.FindBookingByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		previous = booking.DeliveryStatus
		if err := booking.TransitionDelivery(next, req.ActualDeliveryDate.TimePtr(), s.strictTransitions); err != nil {
			return err
		}
		booking.LastUpdatedAt = now
		booking.LastUpdatedBy = userID
		return s.bookingRepo.UpdateDeliveryStatus(ctx, tx, *booking)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Delivery status updated",
		slog.String("booking_id", bookingID),
		slog.String("from", string(previous)),
		slog.String("to", string(next)))
	return &dto.DeliveryStatusResponse{
		Success: true,
		Message: fmt.Sprintf("Delivery status updated to %s", next),
	}, nil
}

// DeleteBooking implements portssvc.BookingWriterSvc
func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string, userID string) error {
	now := s.Now()
	err := s.RunInTx(ctx, s.bookingRepo, func(tx pgx.Tx) error {
		booking, err := s.bookingRepo.FindBookingByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		count, err := s.bookingRepo.CountActivePayments(ctx, tx, booking.BookingNumber)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: booking %s has %d active payment(s)", apperrors.ErrHasDependents, booking.BookingNumber, count)
		}
		return s.bookingRepo.DeactivateBooking(ctx, tx, *booking, userID, now)
	})
	if err != nil {
		return err
	}
	s.LogInfo(ctx, "Booking deleted", slog.String("booking_id", bookingID))
	return nil
}

// GetBooking implements portssvc.BookingReaderSvc
func (s *bookingService) GetBooking(ctx context.Context, bookingID string, includeInactive bool) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID, includeInactive)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get booking", slog.String("booking_id", bookingID))
		}
		return nil, err
	}
	if err := s.loadDetails(ctx, booking, includeInactive); err != nil {
		return nil, err
	}
	return booking, nil
}

// ListBookings implements portssvc.BookingReaderSvc
func (s *bookingService) ListBookings(ctx context.Context, params dto.ListBookingsParams) (*dto.ListBookingsResponse, error) {
	filter := portsrepo.BookingListFilter{
		CustomerCode:    strings.TrimSpace(params.CustomerCode),
		IncludeInactive: params.IncludeInactive,
		Limit:           pagination.NormalizeLimit(params.Limit),
		NextToken:       params.NextToken,
	}
	if params.DeliveryStatus != "" {
		status, err := domain.ParseDeliveryStatus(params.DeliveryStatus)
		if err != nil {
			return nil, err
		}
		filter.DeliveryStatus = &status
	}

	bookings, nextToken, err := s.bookingRepo.ListBookings(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bookings")
		return nil, err
	}
	resp := dto.ToListBookingsResponse(bookings, nextToken)
	return &resp, nil
}

func (s *bookingService) loadDetails(ctx context.Context, booking *domain.Booking, includeInactive bool) error {
	packages, err := s.bookingRepo.FindPackagesByBookingNumber(ctx, booking.BookingNumber, includeInactive)
	if err != nil {
		return err
	}
	payments, err := s.bookingRepo.FindPaymentsByBookingNumber(ctx, booking.BookingNumber, includeInactive)
	if err != nil {
		return err
	}
	booking.Packages = packages
	booking.Payments = payments
	return nil
}
