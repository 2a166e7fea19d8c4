package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	"github.com/SscSPs/courier_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/courier_ledger/internal/core/ports/services"
	"github.com/SscSPs/courier_ledger/internal/core/services"
	"github.com/SscSPs/courier_ledger/internal/dto"
	"github.com/SscSPs/courier_ledger/internal/utils/identifier"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type BookingServiceTestSuite struct {
	suite.Suite
	repo    *MockBookingRepository
	refs    *MockReferenceValidator
	guard   *MockUniquenessGuard
	service portssvc.BookingSvcFacade
	ctx     context.Context
	tx      *fakeTx
}

func (s *BookingServiceTestSuite) SetupTest() {
	s.repo = new(MockBookingRepository)
	s.refs = new(MockReferenceValidator)
	s.guard = new(MockUniquenessGuard)
	s.service = services.NewBookingService(s.repo, s.refs, s.guard, services.WithClock(func() time.Time { return fixedNow }))
	s.ctx = context.Background()
	s.tx = &fakeTx{name: "tx"}
}

func (s *BookingServiceTestSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
	s.refs.AssertExpectations(s.T())
	s.guard.AssertExpectations(s.T())
}

// partialBooking is a 500.00 booking with 200.00 collected.
func partialBooking() *domain.Booking {
	return &domain.Booking{
		BookingID:      "booking-1",
		BookingNumber:  "BK2403010001",
		LLRNumber:      "LLR2403010001",
		CustomerCode:   "CUST1",
		BookingDate:    fixedNow,
		TotalAmount:    dec("500"),
		PaidAmount:     dec("200"),
		DueAmount:      dec("300"),
		PaymentStatus:  domain.PaymentPartial,
		PaymentMode:    domain.PaymentModeCash,
		DeliveryStatus: domain.DeliveryNotStarted,
		IsActive:       true,
	}
}

func (s *BookingServiceTestSuite) expectTx(commit bool) {
	s.repo.On("Begin", s.ctx).Return(s.tx, nil).Once()
	if commit {
		s.repo.On("Commit", s.ctx, s.tx).Return(nil).Once()
	} else {
		s.repo.On("Rollback", s.ctx, s.tx).Return(nil).Once()
	}
}

func (s *BookingServiceTestSuite) expectDetails(bookingNumber string) {
	s.repo.On("FindPackagesByBookingNumber", s.ctx, bookingNumber, false).Return([]domain.PackageLine{}, nil).Once()
	s.repo.On("FindPaymentsByBookingNumber", s.ctx, bookingNumber, false).Return([]domain.BookingPayment{}, nil).Once()
}

func (s *BookingServiceTestSuite) TestCreateBooking_CostsPackagesAndRecordsInitialPayment() {
	qty := 2
	req := dto.CreateBookingRequest{
		BookingDate:           dto.NewDate(fixedNow),
		CustomerCode:          "CUST1",
		OriginCenterCode:      "HYD",
		DestinationCenterCode: "BLR",
		SenderName:            "Ravi",
		ReceiverName:          "Anita",
		Packages: []dto.CreatePackageRequest{{
			PackageTypeCode: "BOX",
			Quantity:        &qty,
			PickupCharge:    decPtr("100"),
			DropCharge:      decPtr("50"),
			HandlingCharge:  decPtr("100"),
		}},
		PaidAmount:  decPtr("200"),
		PaymentMode: "upi",
	}

	s.expectTx(true)
	s.refs.On("ValidateReference", s.ctx, s.tx, domain.RefCustomer, "CUST1").Return(nil).Once()
	s.refs.On("ValidateReference", s.ctx, s.tx, domain.RefOfficeCenter, "HYD").Return(nil).Once()
	s.refs.On("ValidateReference", s.ctx, s.tx, domain.RefOfficeCenter, "BLR").Return(nil).Once()
	s.refs.On("ValidateReference", s.ctx, s.tx, domain.RefPackageType, "BOX").Return(nil).Once()
	s.guard.On("GenerateUnique", s.ctx, s.tx, domain.EntityBooking, domain.FieldBookingNumber, identifier.PrefixBooking).Return("BK2403010042", nil).Once()
	s.guard.On("GenerateUnique", s.ctx, s.tx, domain.EntityBooking, domain.FieldLLRNumber, identifier.PrefixLLR).Return("LLR2403010042", nil).Once()
	s.guard.On("GenerateUnique", s.ctx, s.tx, domain.EntityBookingPayment, domain.FieldPaymentNumber, identifier.PrefixBookingPayment).Return("PAY2403010042", nil).Once()
	s.repo.On("SaveBooking", s.ctx, s.tx, mock.MatchedBy(func(b domain.Booking) bool {
		return b.BookingNumber == "BK2403010042" &&
			b.TotalAmount.Equal(dec("500")) &&
			b.PaidAmount.Equal(dec("200")) &&
			b.DueAmount.Equal(dec("300")) &&
			b.PaymentStatus == domain.PaymentPartial &&
			len(b.Packages) == 1 &&
			b.Packages[0].BookingNumber == "BK2403010042" &&
			b.Packages[0].LineTotal.Equal(dec("500"))
	})).Return(nil).Once()
	s.repo.On("SaveBookingPayment", s.ctx, s.tx, mock.MatchedBy(func(p domain.BookingPayment) bool {
		return p.PaymentNumber == "PAY2403010042" &&
			p.Amount.Equal(dec("200")) &&
			p.PaymentType == domain.PaymentTypePartial &&
			p.PaymentMode == domain.PaymentModeUPI
	})).Return(nil).Once()

	booking, err := s.service.CreateBooking(s.ctx, req, "user-1")
	s.Require().NoError(err)
	s.Equal("LLR2403010042", booking.LLRNumber)
	s.Equal(domain.DeliveryNotStarted, booking.DeliveryStatus)
	s.Len(booking.Payments, 1)
}

func (s *BookingServiceTestSuite) TestCreateBooking_PaidAboveTotalIsRejected() {
	req := dto.CreateBookingRequest{
		BookingDate:           dto.NewDate(fixedNow),
		CustomerCode:          "CUST1",
		OriginCenterCode:      "HYD",
		DestinationCenterCode: "BLR",
		SenderName:            "Ravi",
		ReceiverName:          "Anita",
		Packages:              []dto.CreatePackageRequest{{PackageTypeCode: "BOX", PickupCharge: decPtr("100")}},
		PaidAmount:            decPtr("100.01"),
	}

	_, err := s.service.CreateBooking(s.ctx, req, "user-1")
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
	s.repo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *BookingServiceTestSuite) TestCreateBooking_WithoutPackagesIsSettledAtZero() {
	req := dto.CreateBookingRequest{
		BookingDate:           dto.NewDate(fixedNow),
		CustomerCode:          "CUST1",
		OriginCenterCode:      "HYD",
		DestinationCenterCode: "BLR",
		SenderName:            "Ravi",
		ReceiverName:          "Anita",
	}

	s.expectTx(true)
	s.refs.On("ValidateReference", s.ctx, s.tx, mock.Anything, mock.Anything).Return(nil)
	s.guard.On("GenerateUnique", s.ctx, s.tx, domain.EntityBooking, domain.FieldBookingNumber, identifier.PrefixBooking).Return("BK2403010050", nil).Once()
	s.guard.On("GenerateUnique", s.ctx, s.tx, domain.EntityBooking, domain.FieldLLRNumber, identifier.PrefixLLR).Return("LLR2403010050", nil).Once()
	s.repo.On("SaveBooking", s.ctx, s.tx, mock.MatchedBy(func(b domain.Booking) bool {
		return b.TotalAmount.IsZero() && b.DueAmount.IsZero() && len(b.Packages) == 0
	})).Return(nil).Once()

	booking, err := s.service.CreateBooking(s.ctx, req, "user-1")
	s.Require().NoError(err)
	s.True(booking.TotalAmount.IsZero())
	s.True(booking.DueAmount.IsZero())
	s.Equal(domain.PaymentCompleted, booking.PaymentStatus)
	s.Empty(booking.Payments)
	s.repo.AssertNotCalled(s.T(), "SaveBookingPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (s *BookingServiceTestSuite) TestCreateBooking_DuplicateLLRNumber() {
	req := dto.CreateBookingRequest{
		LLRNumber:             "LLR-TAKEN",
		BookingDate:           dto.NewDate(fixedNow),
		CustomerCode:          "CUST1",
		OriginCenterCode:      "HYD",
		DestinationCenterCode: "HYD",
		SenderName:            "Ravi",
		ReceiverName:          "Anita",
		Packages:              []dto.CreatePackageRequest{{PackageTypeCode: "BOX"}},
	}

	s.expectTx(false)
	s.refs.On("ValidateReference", s.ctx, s.tx, mock.Anything, mock.Anything).Return(nil)
	s.guard.On("GenerateUnique", s.ctx, s.tx, domain.EntityBooking, domain.FieldBookingNumber, identifier.PrefixBooking).Return("BK2403010043", nil).Once()
	s.guard.On("EnsureUnique", s.ctx, s.tx, domain.EntityBooking, domain.FieldLLRNumber, "LLR-TAKEN", "").
		Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.CreateBooking(s.ctx, req, "user-1")
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.repo.AssertNotCalled(s.T(), "SaveBooking", mock.Anything, mock.Anything, mock.Anything)
	// Origin and destination are the same center, so it is checked once.
	s.refs.AssertNumberOfCalls(s.T(), "ValidateReference", 3)
}

func (s *BookingServiceTestSuite) TestAddBookingPayment_SettlesBooking() {
	booking := partialBooking()
	s.expectTx(true)
	s.repo.On("FindBookingByIDForUpdate", s.ctx, s.tx, "booking-1").Return(booking, nil).Once()
	s.refs.On("ValidateReference", s.ctx, s.tx, domain.RefCustomer, "CUST1").Return(nil).Once()
	s.guard.On("GenerateUnique", s.ctx, s.tx, domain.EntityBookingPayment, domain.FieldPaymentNumber, identifier.PrefixBookingPayment).Return("PAY2403010007", nil).Once()
	s.repo.On("SaveBookingPayment", s.ctx, s.tx, mock.MatchedBy(func(p domain.BookingPayment) bool {
		return p.Amount.Equal(dec("300")) && p.PaymentType == domain.PaymentTypeFull && p.CollectedBy == "user-1"
	})).Return(nil).Once()
	s.repo.On("SumActivePayments", s.ctx, s.tx, "BK2403010001").Return(dec("500"), nil).Once()
	s.repo.On("UpdateBookingLedger", s.ctx, s.tx, mock.MatchedBy(func(b domain.Booking) bool {
		return b.PaidAmount.Equal(dec("500")) && b.DueAmount.IsZero() && b.PaymentStatus == domain.PaymentCompleted
	})).Return(nil).Once()
	s.expectDetails("BK2403010001")

	result, err := s.service.AddBookingPayment(s.ctx, "booking-1", dto.AddBookingPaymentRequest{
		Amount:      dec("300"),
		PaymentMode: "cash",
	}, "user-1")
	s.Require().NoError(err)
	s.Equal(domain.PaymentCompleted, result.PaymentStatus)
	s.True(result.DueAmount.IsZero())
}

func (s *BookingServiceTestSuite) TestAddBookingPayment_PartialKeepsPartialStatus() {
	booking := partialBooking()
	s.expectTx(true)
	s.repo.On("FindBookingByIDForUpdate", s.ctx, s.tx, "booking-1").Return(booking, nil).Once()
	s.refs.On("ValidateReference", s.ctx, s.tx, domain.RefCustomer, "CUST1").Return(nil).Once()
	s.refs.On("ValidateReference", s.ctx, s.tx, domain.RefOfficeCenter, "HYD").Return(nil).Once()
	s.guard.On("GenerateUnique", s.ctx, s.tx, domain.EntityBookingPayment, domain.FieldPaymentNumber, identifier.PrefixBookingPayment).Return("PAY2403010008", nil).Once()
	s.repo.On("SaveBookingPayment", s.ctx, s.tx, mock.MatchedBy(func(p domain.BookingPayment) bool {
		return p.PaymentType == domain.PaymentTypePartial && p.CollectedAtCenterCode == "HYD"
	})).Return(nil).Once()
	s.repo.On("SumActivePayments", s.ctx, s.tx, "BK2403010001").Return(dec("300"), nil).Once()
	s.repo.On("UpdateBookingLedger", s.ctx, s.tx, mock.Anything).Return(nil).Once()
	s.expectDetails("BK2403010001")

	result, err := s.service.AddBookingPayment(s.ctx, "booking-1", dto.AddBookingPaymentRequest{
		Amount:                dec("100"),
		PaymentMode:           "card",
		CollectedAtCenterCode: "HYD",
	}, "user-1")
	s.Require().NoError(err)
	s.Equal(domain.PaymentPartial, result.PaymentStatus)
	s.True(result.DueAmount.Equal(dec("200")))
}

func (s *BookingServiceTestSuite) TestAddBookingPayment_ExceedingDueIsRejected() {
	s.expectTx(false)
	s.repo.On("FindBookingByIDForUpdate", s.ctx, s.tx, "booking-1").Return(partialBooking(), nil).Once()

	_, err := s.service.AddBookingPayment(s.ctx, "booking-1", dto.AddBookingPaymentRequest{
		Amount:      dec("300.01"),
		PaymentMode: "cash",
	}, "user-1")
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
	s.repo.AssertNotCalled(s.T(), "SaveBookingPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (s *BookingServiceTestSuite) TestAddBookingPayment_SettledBookingIsRejected() {
	booking := partialBooking()
	booking.PaidAmount = dec("500")
	booking.DueAmount = decimal.Zero
	booking.PaymentStatus = domain.PaymentCompleted

	s.expectTx(false)
	s.repo.On("FindBookingByIDForUpdate", s.ctx, s.tx, "booking-1").Return(booking, nil).Once()

	_, err := s.service.AddBookingPayment(s.ctx, "booking-1", dto.AddBookingPaymentRequest{
		Amount:      dec("1"),
		PaymentMode: "cash",
	}, "user-1")
	s.ErrorIs(err, apperrors.ErrAlreadySettled)
}

func (s *BookingServiceTestSuite) TestAddBookingPayment_MissingModeFailsValidation() {
	_, err := s.service.AddBookingPayment(s.ctx, "booking-1", dto.AddBookingPaymentRequest{Amount: dec("10")}, "user-1")
	s.ErrorIs(err, apperrors.ErrValidation)
	s.repo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *BookingServiceTestSuite) TestDeleteBookingPayment_RecomputesFromRemainingPayments() {
	booking := partialBooking()
	booking.PaidAmount = dec("500")
	booking.DueAmount = decimal.Zero
	booking.PaymentStatus = domain.PaymentCompleted

	s.expectTx(true)
	s.repo.On("FindBookingByIDForUpdate", s.ctx, s.tx, "booking-1").Return(booking, nil).Once()
	s.repo.On("FindBookingPaymentByID", s.ctx, s.tx, "pay-2").Return(&domain.BookingPayment{
		PaymentID:     "pay-2",
		BookingNumber: "BK2403010001",
		Amount:        dec("300"),
		IsActive:      true,
	}, nil).Once()
	s.repo.On("DeactivateBookingPayment", s.ctx, s.tx, "pay-2", "user-1", fixedNow).Return(nil).Once()
	s.repo.On("SumActivePayments", s.ctx, s.tx, "BK2403010001").Return(dec("200"), nil).Once()
	s.repo.On("UpdateBookingLedger", s.ctx, s.tx, mock.MatchedBy(func(b domain.Booking) bool {
		return b.PaidAmount.Equal(dec("200")) && b.DueAmount.Equal(dec("300")) && b.PaymentStatus == domain.PaymentPartial
	})).Return(nil).Once()
	s.expectDetails("BK2403010001")

	result, err := s.service.DeleteBookingPayment(s.ctx, "booking-1", "pay-2", "user-1")
	s.Require().NoError(err)
	s.Equal(domain.PaymentPartial, result.PaymentStatus)
}

func (s *BookingServiceTestSuite) TestDeleteBookingPayment_PaymentOfAnotherBooking() {
	s.expectTx(false)
	s.repo.On("FindBookingByIDForUpdate", s.ctx, s.tx, "booking-1").Return(partialBooking(), nil).Once()
	s.repo.On("FindBookingPaymentByID", s.ctx, s.tx, "pay-9").Return(&domain.BookingPayment{
		PaymentID:     "pay-9",
		BookingNumber: "BK-OTHER",
		IsActive:      true,
	}, nil).Once()

	_, err := s.service.DeleteBookingPayment(s.ctx, "booking-1", "pay-9", "user-1")
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.repo.AssertNotCalled(s.T(), "DeactivateBookingPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *BookingServiceTestSuite) TestUpdateBooking_DuplicateLLRNumber() {
	llr := "LLR-TAKEN"
	s.expectTx(false)
	s.repo.On("FindBookingByIDForUpdate", s.ctx, s.tx, "booking-1").Return(partialBooking(), nil).Once()
	s.guard.On("EnsureUnique", s.ctx, s.tx, domain.EntityBooking, domain.FieldLLRNumber, llr, "booking-1").
		Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.UpdateBooking(s.ctx, "booking-1", dto.UpdateBookingRequest{LLRNumber: &llr}, "user-1")
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.repo.AssertNotCalled(s.T(), "UpdateBooking", mock.Anything, mock.Anything, mock.Anything)
}

func (s *BookingServiceTestSuite) TestUpdateBooking_ChangesBookingDate() {
	moved := dto.NewDate(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	s.expectTx(true)
	s.repo.On("FindBookingByIDForUpdate", s.ctx, s.tx, "booking-1").Return(partialBooking(), nil).Once()
	s.repo.On("UpdateBooking", s.ctx, s.tx, mock.MatchedBy(func(b domain.Booking) bool {
		return b.BookingDate.Equal(moved.Time) && b.TotalAmount.Equal(dec("500"))
	})).Return(nil).Once()
	s.expectDetails("BK2403010001")

	result, err := s.service.UpdateBooking(s.ctx, "booking-1", dto.UpdateBookingRequest{BookingDate: &moved}, "user-2")
	s.Require().NoError(err)
	s.True(result.BookingDate.Equal(moved.Time))
}

func (s *BookingServiceTestSuite) TestUpdateBooking_SameLLRSkipsUniquenessCheck() {
	llr := "LLR2403010001"
	receiver := "  Anita K  "
	s.expectTx(true)
	s.repo.On("FindBookingByIDForUpdate", s.ctx, s.tx, "booking-1").Return(partialBooking(), nil).Once()
	s.repo.On("UpdateBooking", s.ctx, s.tx, mock.MatchedBy(func(b domain.Booking) bool {
		return b.ReceiverName == "Anita K" && b.LastUpdatedBy == "user-2"
	})).Return(nil).Once()
	s.expectDetails("BK2403010001")

	result, err := s.service.UpdateBooking(s.ctx, "booking-1", dto.UpdateBookingRequest{LLRNumber: &llr, ReceiverName: &receiver}, "user-2")
	s.Require().NoError(err)
	s.Equal("Anita K", result.ReceiverName)
	s.guard.AssertNotCalled(s.T(), "EnsureUnique", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *BookingServiceTestSuite) TestDeleteBooking_WithActivePayments() {
	s.expectTx(false)
	s.repo.On("FindBookingByIDForUpdate", s.ctx, s.tx, "booking-1").Return(partialBooking(), nil).Once()
	s.repo.On("CountActivePayments", s.ctx, s.tx, "BK2403010001").Return(1, nil).Once()

	err := s.service.DeleteBooking(s.ctx, "booking-1", "user-1")
	s.ErrorIs(err, apperrors.ErrHasDependents)
}

func (s *BookingServiceTestSuite) TestDeleteBooking_NoPayments() {
	booking := partialBooking()
	s.expectTx(true)
	s.repo.On("FindBookingByIDForUpdate", s.ctx, s.tx, "booking-1").Return(booking, nil).Once()
	s.repo.On("CountActivePayments", s.ctx, s.tx, "BK2403010001").Return(0, nil).Once()
	s.repo.On("DeactivateBooking", s.ctx, s.tx, *booking, "user-1", fixedNow).Return(nil).Once()

	s.NoError(s.service.DeleteBooking(s.ctx, "booking-1", "user-1"))
}

func (s *BookingServiceTestSuite) TestDeleteBooking_AlreadyDeleted() {
	s.expectTx(false)
	s.repo.On("FindBookingByIDForUpdate", s.ctx, s.tx, "booking-1").Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.DeleteBooking(s.ctx, "booking-1", "user-1")
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.repo.AssertNotCalled(s.T(), "DeactivateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *BookingServiceTestSuite) TestUpdateDeliveryStatus_PermissiveAllowsJump() {
	actual := dto.NewDate(fixedNow)
	s.expectTx(true)
	s.repo.On("FindBookingByIDForUpdate", s.ctx, s.tx, "booking-1").Return(partialBooking(), nil).Once()
	s.repo.On("UpdateDeliveryStatus", s.ctx, s.tx, mock.MatchedBy(func(b domain.Booking) bool {
		return b.DeliveryStatus == domain.DeliveryDelivered && b.ActualDeliveryDate != nil
	})).Return(nil).Once()

	resp, err := s.service.UpdateDeliveryStatus(s.ctx, "booking-1", dto.UpdateDeliveryStatusRequest{
		DeliveryStatus:     " Delivered ",
		ActualDeliveryDate: &actual,
	}, "user-1")
	s.Require().NoError(err)
	s.True(resp.Success)
	s.Equal("Delivery status updated to delivered", resp.Message)
}

func (s *BookingServiceTestSuite) TestUpdateDeliveryStatus_StrictRejectsJump() {
	strict := services.NewBookingService(s.repo, s.refs, s.guard,
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithStrictDeliveryTransitions(true))

	s.expectTx(false)
	s.repo.On("FindBookingByIDForUpdate", s.ctx, s.tx, "booking-1").Return(partialBooking(), nil).Once()

	_, err := strict.UpdateDeliveryStatus(s.ctx, "booking-1", dto.UpdateDeliveryStatusRequest{DeliveryStatus: "delivered"}, "user-1")
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *BookingServiceTestSuite) TestUpdateDeliveryStatus_UnknownStatus() {
	_, err := s.service.UpdateDeliveryStatus(s.ctx, "booking-1", dto.UpdateDeliveryStatusRequest{DeliveryStatus: "lost"}, "user-1")
	s.ErrorIs(err, apperrors.ErrValidation)
	s.repo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *BookingServiceTestSuite) TestGetBooking_NotFound() {
	s.repo.On("FindBookingByID", s.ctx, "missing", false).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.GetBooking(s.ctx, "missing", false)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestBookingService(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}
