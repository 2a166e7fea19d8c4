package services_test

import (
	"context"
	"errors"
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

type ExpenseServiceTestSuite struct {
	suite.Suite
	repo    *MockExpenseRepository
	refs    *MockReferenceValidator
	guard   *MockUniquenessGuard
	service portssvc.ExpenseSvcFacade
	ctx     context.Context
	tx      *fakeTx
}

func (s *ExpenseServiceTestSuite) SetupTest() {
	s.repo = new(MockExpenseRepository)
	s.refs = new(MockReferenceValidator)
	s.guard = new(MockUniquenessGuard)
	s.service = services.NewExpenseService(s.repo, s.refs, s.guard, services.WithClock(func() time.Time { return fixedNow }))
	s.ctx = context.Background()
	s.tx = &fakeTx{name: "tx"}
}

func (s *ExpenseServiceTestSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
	s.refs.AssertExpectations(s.T())
	s.guard.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) expectTx(commit bool) {
	s.repo.On("Begin", s.ctx).Return(s.tx, nil).Once()
	if commit {
		s.repo.On("Commit", s.ctx, s.tx).Return(nil).Once()
	} else {
		s.repo.On("Rollback", s.ctx, s.tx).Return(nil).Once()
	}
}

// expense100 is an unpaid 100.00 expense.
func expense100(id, number string) *domain.Expense {
	return &domain.Expense{
		ExpenseID:           id,
		ExpenseNumber:       number,
		ExpenseCategoryCode: "FUEL",
		CenterCode:          "HYD",
		ExpenseDate:         fixedNow,
		Amount:              dec("100"),
		PaidAmount:          decimal.Zero,
		IsActive:            true,
	}
}

func paymentRequest(expenseID, amount string) dto.CreateExpensePaymentRequest {
	return dto.CreateExpensePaymentRequest{
		ExpenseID:   expenseID,
		PaymentDate: dto.NewDate(fixedNow),
		Amount:      dec(amount),
		PaymentType: "cash",
	}
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_WithInitialPayment() {
	s.expectTx(true)
	s.refs.On("ValidateReference", s.ctx, s.tx, domain.RefExpenseCategory, "FUEL").Return(nil).Once()
	s.refs.On("ValidateReference", s.ctx, s.tx, domain.RefOfficeCenter, "HYD").Return(nil).Once()
	s.guard.On("GenerateUnique", s.ctx, s.tx, domain.EntityExpense, domain.FieldExpenseNumber, identifier.PrefixExpense).Return("EXP2403010001", nil).Once()
	s.guard.On("GenerateUnique", s.ctx, s.tx, domain.EntityExpensePayment, domain.FieldPaymentNumber, identifier.PrefixExpensePayment).Return("EPY2403010001", nil).Once()
	s.repo.On("SaveExpense", s.ctx, s.tx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.ExpenseNumber == "EXP2403010001" && e.PaidAmount.Equal(dec("100")) && e.IsPaid
	})).Return(nil).Once()
	s.repo.On("SaveExpensePayment", s.ctx, s.tx, mock.MatchedBy(func(p domain.ExpensePayment) bool {
		return p.ExpenseNumber == "EXP2403010001" && p.PaymentNumber == "EPY2403010001" && p.Amount.Equal(dec("100"))
	})).Return(nil).Once()

	expense, err := s.service.CreateExpense(s.ctx, dto.CreateExpenseRequest{
		ExpenseCategoryCode: "FUEL",
		CenterCode:          "HYD",
		ExpenseDate:         dto.NewDate(fixedNow),
		Amount:              dec("100"),
		Payment:             &dto.InitialExpensePaymentRequest{Amount: dec("100"), PaymentType: "upi"},
	}, "user-1")
	s.Require().NoError(err)
	s.True(expense.IsPaid)
	s.Len(expense.Payments, 1)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_InitialPaymentAboveAmount() {
	_, err := s.service.CreateExpense(s.ctx, dto.CreateExpenseRequest{
		ExpenseCategoryCode: "FUEL",
		CenterCode:          "HYD",
		ExpenseDate:         dto.NewDate(fixedNow),
		Amount:              dec("100"),
		Payment:             &dto.InitialExpensePaymentRequest{Amount: dec("100.01"), PaymentType: "cash"},
	}, "user-1")
	s.ErrorIs(err, apperrors.ErrOverpayment)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_ZeroAmount() {
	_, err := s.service.CreateExpense(s.ctx, dto.CreateExpenseRequest{
		ExpenseCategoryCode: "FUEL",
		CenterCode:          "HYD",
		ExpenseDate:         dto.NewDate(fixedNow),
		Amount:              decimal.Zero,
	}, "user-1")
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (s *ExpenseServiceTestSuite) TestCreateExpensePayment_ExactRemainderSettles() {
	expense := expense100("exp-1", "EXP1")
	s.expectTx(true)
	s.repo.On("FindExpenseByIDForUpdate", s.ctx, s.tx, "exp-1").Return(expense, nil).Once()
	s.repo.On("SumActivePayments", s.ctx, s.tx, "EXP1", "").Return(dec("60"), nil).Once()
	s.guard.On("GenerateUnique", s.ctx, s.tx, domain.EntityExpensePayment, domain.FieldPaymentNumber, identifier.PrefixExpensePayment).Return("EPY1", nil).Once()
	s.repo.On("SaveExpensePayment", s.ctx, s.tx, mock.AnythingOfType("domain.ExpensePayment")).Return(nil).Once()
	s.repo.On("UpdateExpenseLedger", s.ctx, s.tx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.PaidAmount.Equal(dec("100")) && e.IsPaid
	})).Return(nil).Once()

	result, err := s.service.CreateExpensePayment(s.ctx, paymentRequest("exp-1", "40"), "user-1")
	s.Require().NoError(err)
	s.True(result.Status.IsFullyPaid)
	s.True(result.Status.Remaining.IsZero())
	s.Equal("EPY1", result.Payment.PaymentNumber)
}

func (s *ExpenseServiceTestSuite) TestCreateExpensePayment_OverpaymentReportsRemaining() {
	s.expectTx(false)
	s.repo.On("FindExpenseByIDForUpdate", s.ctx, s.tx, "exp-1").Return(expense100("exp-1", "EXP1"), nil).Once()
	s.repo.On("SumActivePayments", s.ctx, s.tx, "EXP1", "").Return(dec("60"), nil).Once()

	_, err := s.service.CreateExpensePayment(s.ctx, paymentRequest("exp-1", "40.01"), "user-1")
	s.Require().ErrorIs(err, apperrors.ErrOverpayment)

	var overpay *apperrors.OverpaymentError
	s.Require().True(errors.As(err, &overpay))
	s.True(overpay.Remaining.Equal(dec("40")))
	s.repo.AssertNotCalled(s.T(), "SaveExpensePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestUpdateExpense_AmountLockedByPayments() {
	amount := dec("150")
	s.expectTx(false)
	s.repo.On("FindExpenseByIDForUpdate", s.ctx, s.tx, "exp-1").Return(expense100("exp-1", "EXP1"), nil).Once()
	s.repo.On("CountActivePayments", s.ctx, s.tx, "EXP1").Return(2, nil).Once()

	_, err := s.service.UpdateExpense(s.ctx, "exp-1", dto.UpdateExpenseRequest{Amount: &amount}, "user-1")
	s.ErrorIs(err, apperrors.ErrAmountLocked)
}

func (s *ExpenseServiceTestSuite) TestUpdateExpense_SameAmountIsNotLocked() {
	amount := dec("100.00")
	vendor := "Shell"
	s.expectTx(true)
	s.repo.On("FindExpenseByIDForUpdate", s.ctx, s.tx, "exp-1").Return(expense100("exp-1", "EXP1"), nil).Once()
	s.repo.On("UpdateExpense", s.ctx, s.tx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.VendorName == "Shell"
	})).Return(nil).Once()
	s.repo.On("FindPaymentsByExpenseNumber", s.ctx, "EXP1", false).Return([]domain.ExpensePayment{}, nil).Once()

	expense, err := s.service.UpdateExpense(s.ctx, "exp-1", dto.UpdateExpenseRequest{Amount: &amount, VendorName: &vendor}, "user-1")
	s.Require().NoError(err)
	s.Equal("Shell", expense.VendorName)
	s.repo.AssertNotCalled(s.T(), "CountActivePayments", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestUpdateExpensePayment_ExcludesItselfFromSum() {
	expense := expense100("exp-1", "EXP1")
	expense.PaidAmount = dec("80")
	newAmount := dec("70")

	s.expectTx(true)
	s.repo.On("FindActiveExpensePayment", s.ctx, s.tx, "pay-1").Return(&domain.ExpensePayment{
		PaymentID:     "pay-1",
		ExpenseNumber: "EXP1",
		Amount:        dec("50"),
		PaymentType:   domain.ExpensePaymentCash,
		IsActive:      true,
	}, nil).Once()
	s.repo.On("FindExpenseByNumberForUpdate", s.ctx, s.tx, "EXP1").Return(expense, nil).Once()
	s.repo.On("SumActivePayments", s.ctx, s.tx, "EXP1", "pay-1").Return(dec("30"), nil).Once()
	s.repo.On("UpdateExpensePayment", s.ctx, s.tx, mock.MatchedBy(func(p domain.ExpensePayment) bool {
		return p.Amount.Equal(dec("70"))
	})).Return(nil).Once()
	s.repo.On("UpdateExpenseLedger", s.ctx, s.tx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.PaidAmount.Equal(dec("100")) && e.IsPaid
	})).Return(nil).Once()

	result, err := s.service.UpdateExpensePayment(s.ctx, "pay-1", dto.UpdateExpensePaymentRequest{Amount: &newAmount}, "user-1")
	s.Require().NoError(err)
	s.True(result.Status.IsFullyPaid)
}

func (s *ExpenseServiceTestSuite) TestDeleteExpensePayment_ReopensExpense() {
	expense := expense100("exp-1", "EXP1")
	expense.PaidAmount = dec("100")
	expense.IsPaid = true

	s.expectTx(true)
	s.repo.On("FindActiveExpensePayment", s.ctx, s.tx, "pay-1").Return(&domain.ExpensePayment{
		PaymentID:     "pay-1",
		ExpenseNumber: "EXP1",
		Amount:        dec("70"),
		IsActive:      true,
	}, nil).Once()
	s.repo.On("FindExpenseByNumberForUpdate", s.ctx, s.tx, "EXP1").Return(expense, nil).Once()
	s.repo.On("SumActivePayments", s.ctx, s.tx, "EXP1", "pay-1").Return(dec("30"), nil).Once()
	s.repo.On("DeactivateExpensePayment", s.ctx, s.tx, "pay-1", "user-1", fixedNow).Return(nil).Once()
	s.repo.On("UpdateExpenseLedger", s.ctx, s.tx, mock.Anything).Return(nil).Once()

	status, err := s.service.DeleteExpensePayment(s.ctx, "pay-1", "user-1")
	s.Require().NoError(err)
	s.False(status.IsFullyPaid)
	s.True(status.TotalPaid.Equal(dec("30")))
	s.True(status.Remaining.Equal(dec("70")))
}

func (s *ExpenseServiceTestSuite) TestDeleteExpense_WithActivePayments() {
	s.expectTx(false)
	s.repo.On("FindExpenseByIDForUpdate", s.ctx, s.tx, "exp-1").Return(expense100("exp-1", "EXP1"), nil).Once()
	s.repo.On("CountActivePayments", s.ctx, s.tx, "EXP1").Return(1, nil).Once()

	err := s.service.DeleteExpense(s.ctx, "exp-1", "user-1")
	s.ErrorIs(err, apperrors.ErrHasDependents)
}

func (s *ExpenseServiceTestSuite) TestBulkCreateExpensePayments_PartialSuccess() {
	sp1 := &fakeTx{name: "sp1"}
	sp2 := &fakeTx{name: "sp2"}

	s.expectTx(true)
	s.repo.On("BeginSavepoint", s.ctx, s.tx).Return(sp1, nil).Once()
	s.repo.On("BeginSavepoint", s.ctx, s.tx).Return(sp2, nil).Once()

	// First item pays 40 of 100.
	s.repo.On("FindExpenseByIDForUpdate", s.ctx, sp1, "exp-1").Return(expense100("exp-1", "EXP1"), nil).Once()
	s.repo.On("SumActivePayments", s.ctx, sp1, "EXP1", "").Return(decimal.Zero, nil).Once()
	s.guard.On("GenerateUnique", s.ctx, sp1, domain.EntityExpensePayment, domain.FieldPaymentNumber, identifier.PrefixExpensePayment).Return("EPY1", nil).Once()
	s.repo.On("SaveExpensePayment", s.ctx, sp1, mock.AnythingOfType("domain.ExpensePayment")).Return(nil).Once()
	s.repo.On("UpdateExpenseLedger", s.ctx, sp1, mock.Anything).Return(nil).Once()
	s.repo.On("Commit", s.ctx, sp1).Return(nil).Once()

	// Second item overpays.
	s.repo.On("FindExpenseByIDForUpdate", s.ctx, sp2, "exp-2").Return(expense100("exp-2", "EXP2"), nil).Once()
	s.repo.On("SumActivePayments", s.ctx, sp2, "EXP2", "").Return(dec("90"), nil).Once()
	s.repo.On("Rollback", s.ctx, sp2).Return(nil).Once()

	result, err := s.service.BulkCreateExpensePayments(s.ctx, []dto.CreateExpensePaymentRequest{
		paymentRequest("exp-1", "40"),
		paymentRequest("exp-2", "20"),
	}, "user-1")
	s.Require().NoError(err)
	s.Len(result.Successful, 1)
	s.Require().Len(result.Failed, 1)
	s.Equal(1, result.Failed[0].Index)
	s.Equal("exp-2", result.Failed[0].ExpenseID)
	s.Contains(result.Failed[0].Reason, "remaining 10.00")
}

func (s *ExpenseServiceTestSuite) TestBulkCreateExpensePayments_AllFailed() {
	sp1 := &fakeTx{name: "sp1"}
	sp2 := &fakeTx{name: "sp2"}
	invalid := paymentRequest("exp-1", "10")
	invalid.PaymentType = ""

	s.expectTx(false)
	s.repo.On("BeginSavepoint", s.ctx, s.tx).Return(sp1, nil).Once()
	s.repo.On("BeginSavepoint", s.ctx, s.tx).Return(sp2, nil).Once()
	s.repo.On("Rollback", s.ctx, sp1).Return(nil).Once()
	s.repo.On("FindExpenseByIDForUpdate", s.ctx, sp2, "missing").Return(nil, apperrors.ErrNotFound).Once()
	s.repo.On("Rollback", s.ctx, sp2).Return(nil).Once()

	result, err := s.service.BulkCreateExpensePayments(s.ctx, []dto.CreateExpensePaymentRequest{
		invalid,
		paymentRequest("missing", "10"),
	}, "user-1")
	s.ErrorIs(err, apperrors.ErrBatchFailed)
	s.Require().NotNil(result)
	s.Empty(result.Successful)
	s.Len(result.Failed, 2)
	s.repo.AssertNotCalled(s.T(), "Commit", s.ctx, s.tx)
}

func (s *ExpenseServiceTestSuite) TestBulkCreateExpensePayments_Empty() {
	_, err := s.service.BulkCreateExpensePayments(s.ctx, nil, "user-1")
	s.ErrorIs(err, apperrors.ErrValidation)
}

func TestExpenseService(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
