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
	"github.com/SscSPs/courier_ledger/internal/utils/identifier"
	"github.com/SscSPs/courier_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// expenseService owns the expense ledger. Every payment write locks the parent
// expense row and recomputes paid_amount and is_paid from the active payments.
type expenseService struct {
	BaseService
	expenseRepo  portsrepo.ExpenseRepositoryWithTx
	refValidator portssvc.ReferenceValidatorSvc
	guard        portssvc.UniquenessGuardSvc
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryWithTx, refValidator portssvc.ReferenceValidatorSvc, guard portssvc.UniquenessGuardSvc, opts ...ServiceOption) portssvc.ExpenseSvcFacade {
	o := applyOptions(opts)
	return &expenseService{
		BaseService:  BaseService{now: o.now},
		expenseRepo:  expenseRepo,
		refValidator: refValidator,
		guard:        guard,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// recomputeLedger stores paid as the expense's paid amount after checking it against the expense amount.
func (s *expenseService) recomputeLedger(ctx context.Context, tx pgx.Tx, expense *domain.Expense, paid decimal.Decimal, userID string, at time.Time) error {
	if err := expense.ApplyPaidAmount(paid); err != nil {
		return err
	}
	expense.LastUpdatedAt = at
	expense.LastUpdatedBy = userID
	return s.expenseRepo.UpdateExpenseLedger(ctx, tx, *expense)
}

// CreateExpense implements portssvc.ExpenseWriterSvc
func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	amount := domain.RoundMoney(req.Amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be greater than zero", apperrors.ErrInvalidAmount)
	}

	now := s.Now()
	audit := auditFields(creatorUserID, now)
	expense := domain.Expense{
		ExpenseID:           uuid.NewString(),
		ExpenseNumber:       strings.TrimSpace(req.ExpenseNumber),
		ExpenseCategoryCode: strings.TrimSpace(req.ExpenseCategoryCode),
		CenterCode:          strings.TrimSpace(req.CenterCode),
		ExpenseDate:         req.ExpenseDate.Time,
		Amount:              amount,
		PaidAmount:          decimal.Zero,
		VendorName:          strings.TrimSpace(req.VendorName),
		Description:         req.Description,
		IsActive:            true,
		AuditFields:         audit,
	}

	var initial *domain.ExpensePayment
	if req.Payment != nil {
		payAmount := domain.RoundMoney(req.Payment.Amount)
		if err := expense.CheckPayment(decimal.Zero, payAmount); err != nil {
			return nil, err
		}
		paymentDate := expense.ExpenseDate
		if t := req.Payment.PaymentDate.TimePtr(); t != nil {
			paymentDate = *t
		}
		initial = &domain.ExpensePayment{
			PaymentID:   uuid.NewString(),
			PaymentDate: paymentDate,
			Amount:      payAmount,
			PaymentType: domain.ExpensePaymentType(req.Payment.PaymentType),
			Status:      domain.ExpensePaymentStatusCompleted,
			Notes:       req.Payment.Notes,
			IsActive:    true,
			AuditFields: audit,
		}
		if err := expense.ApplyPaidAmount(payAmount); err != nil {
			return nil, err
		}
	}

	err := s.RunInTx(ctx, s.expenseRepo, func(tx pgx.Tx) error {
		if err := validateRefs(ctx, s.refValidator, tx,
			refCheck{domain.RefExpenseCategory, expense.ExpenseCategoryCode},
			refCheck{domain.RefOfficeCenter, expense.CenterCode},
		); err != nil {
			return err
		}

		var err error
		expense.ExpenseNumber, err = claimIdentifier(ctx, s.guard, tx, domain.EntityExpense, domain.FieldExpenseNumber, expense.ExpenseNumber, identifier.PrefixExpense)
		if err != nil {
			return err
		}
		if err := s.expenseRepo.SaveExpense(ctx, tx, expense); err != nil {
			return err
		}

		if initial != nil {
			initial.ExpenseNumber = expense.ExpenseNumber
			initial.PaymentNumber, err = s.guard.GenerateUnique(ctx, tx, domain.EntityExpensePayment, domain.FieldPaymentNumber, identifier.PrefixExpensePayment)
			if err != nil {
				return err
			}
			if err := s.expenseRepo.SaveExpensePayment(ctx, tx, *initial); err != nil {
				return err
			}
			expense.Payments = []domain.ExpensePayment{*initial}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("expense_number", expense.ExpenseNumber),
		slog.String("amount", expense.Amount.StringFixed(2)))
	return &expense, nil
}

// UpdateExpense implements portssvc.ExpenseWriterSvc
func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	now := s.Now()

	var expense *domain.Expense
	err := s.RunInTx(ctx, s.expenseRepo, func(tx pgx.Tx) error {
		var err error
		expense, err = s.expenseRepo.FindExpenseByIDForUpdate(ctx, tx, expenseID)
		if err != nil {
			return err
		}

		if req.Amount != nil {
			amount := domain.RoundMoney(*req.Amount)
			if !amount.Equal(expense.Amount) {
				count, err := s.expenseRepo.CountActivePayments(ctx, tx, expense.ExpenseNumber)
				if err != nil {
					return err
				}
				if count > 0 {
					return fmt.Errorf("%w: expense %s has %d active payment(s)", apperrors.ErrAmountLocked, expense.ExpenseNumber, count)
				}
				if !amount.IsPositive() {
					return fmt.Errorf("%w: expense amount must be greater than zero", apperrors.ErrInvalidAmount)
				}
				expense.Amount = amount
				if err := expense.ApplyPaidAmount(expense.PaidAmount); err != nil {
					return err
				}
			}
		}

		var checks []refCheck
		if req.ExpenseCategoryCode != nil {
			expense.ExpenseCategoryCode = strings.TrimSpace(*req.ExpenseCategoryCode)
			checks = append(checks, refCheck{domain.RefExpenseCategory, expense.ExpenseCategoryCode})
		}
		if req.CenterCode != nil {
			expense.CenterCode = strings.TrimSpace(*req.CenterCode)
			checks = append(checks, refCheck{domain.RefOfficeCenter, expense.CenterCode})
		}
		if err := validateRefs(ctx, s.refValidator, tx, checks...); err != nil {
			return err
		}

		if req.ExpenseDate != nil && !req.ExpenseDate.IsZero() {
			expense.ExpenseDate = req.ExpenseDate.Time
		}
		if req.VendorName != nil {
			expense.VendorName = strings.TrimSpace(*req.VendorName)
		}
		if req.Description != nil {
			expense.Description = *req.Description
		}
		expense.LastUpdatedAt = now
		expense.LastUpdatedBy = userID

		return s.expenseRepo.UpdateExpense(ctx, tx, *expense)
	})
	if err != nil {
		return nil, err
	}

	if err := s.loadPayments(ctx, expense, false); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense implements portssvc.ExpenseWriterSvc
func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string, userID string) error {
	now := s.Now()
	err := s.RunInTx(ctx, s.expenseRepo, func(tx pgx.Tx) error {
		expense, err := s.expenseRepo.FindExpenseByIDForUpdate(ctx, tx, expenseID)
		if err != nil {
			return err
		}
		count, err := s.expenseRepo.CountActivePayments(ctx, tx, expense.ExpenseNumber)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: expense %s has %d active payment(s)", apperrors.ErrHasDependents, expense.ExpenseNumber, count)
		}
		return s.expenseRepo.DeactivateExpense(ctx, tx, expense.ExpenseID, userID, now)
	})
	if err != nil {
		return err
	}
	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}

// createPaymentInTx records one payment against the locked expense. tx may be a savepoint.
func (s *expenseService) createPaymentInTx(ctx context.Context, tx pgx.Tx, req dto.CreateExpensePaymentRequest, userID string, now time.Time) (*domain.ExpensePaymentResult, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	amount := domain.RoundMoney(req.Amount)

	expense, err := s.expenseRepo.FindExpenseByIDForUpdate(ctx, tx, req.ExpenseID)
	if err != nil {
		return nil, err
	}
	othersPaid, err := s.expenseRepo.SumActivePayments(ctx, tx, expense.ExpenseNumber, "")
	if err != nil {
		return nil, err
	}
	if err := expense.CheckPayment(othersPaid, amount); err != nil {
		return nil, err
	}

	payment := domain.ExpensePayment{
		PaymentID:     uuid.NewString(),
		ExpenseNumber: expense.ExpenseNumber,
		PaymentDate:   req.PaymentDate.Time,
		Amount:        amount,
		PaymentType:   domain.ExpensePaymentType(req.PaymentType),
		Status:        domain.ExpensePaymentStatusCompleted,
		Notes:         req.Notes,
		IsActive:      true,
		AuditFields:   auditFields(userID, now),
	}
	payment.PaymentNumber, err = s.guard.GenerateUnique(ctx, tx, domain.EntityExpensePayment, domain.FieldPaymentNumber, identifier.PrefixExpensePayment)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.SaveExpensePayment(ctx, tx, payment); err != nil {
		return nil, err
	}
	if err := s.recomputeLedger(ctx, tx, expense, othersPaid.Add(amount), userID, now); err != nil {
		return nil, err
	}

	return &domain.ExpensePaymentResult{Payment: payment, Status: expense.Status()}, nil
}

// CreateExpensePayment implements portssvc.ExpensePaymentSvc
func (s *expenseService) CreateExpensePayment(ctx context.Context, req dto.CreateExpensePaymentRequest, userID string) (*domain.ExpensePaymentResult, error) {
	now := s.Now()
	var result *domain.ExpensePaymentResult
	err := s.RunInTx(ctx, s.expenseRepo, func(tx pgx.Tx) error {
		var err error
		result, err = s.createPaymentInTx(ctx, tx, req, userID, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Expense payment recorded",
		slog.String("expense_id", req.ExpenseID),
		slog.String("payment_number", result.Payment.PaymentNumber),
		slog.Bool("is_fully_paid", result.Status.IsFullyPaid))
	return result, nil
}

// BulkCreateExpensePayments implements portssvc.ExpensePaymentSvc.
// Each item runs in its own savepoint so one failure does not undo the others.
func (s *expenseService) BulkCreateExpensePayments(ctx context.Context, reqs []dto.CreateExpensePaymentRequest, userID string) (*domain.BulkExpensePaymentResult, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: at least one payment is required", apperrors.ErrValidation)
	}
	now := s.Now()

	tx, err := s.expenseRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := s.expenseRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to rollback bulk payment transaction")
		}
	}()

	result := &domain.BulkExpensePaymentResult{}
	for i, req := range reqs {
		sp, err := s.expenseRepo.BeginSavepoint(ctx, tx)
		if err != nil {
			return nil, err
		}

		item, err := s.createPaymentInTx(ctx, sp, req, userID, now)
		if err != nil {
			if rbErr := s.expenseRepo.Rollback(ctx, sp); rbErr != nil {
				return nil, rbErr
			}
			s.LogDebug(ctx, "Bulk payment item rejected", slog.Int("index", i), slog.String("error", err.Error()))
			result.Failed = append(result.Failed, domain.BulkPaymentFailure{
				Index:     i,
				ExpenseID: req.ExpenseID,
				Amount:    req.Amount,
				Reason:    err.Error(),
			})
			continue
		}
		if err := s.expenseRepo.Commit(ctx, sp); err != nil {
			return nil, err
		}
		result.Successful = append(result.Successful, *item)
	}

	if len(result.Successful) == 0 {
		return result, fmt.Errorf("%w: all %d payments were rejected", apperrors.ErrBatchFailed, len(reqs))
	}
	if err := s.expenseRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	committed = true

	s.LogInfo(ctx, "Bulk expense payments recorded",
		slog.Int("successful", len(result.Successful)),
		slog.Int("failed", len(result.Failed)))
	return result, nil
}

// lockPaymentAndExpense resolves the payment's expense, locks it, and returns both.
func (s *expenseService) lockPaymentAndExpense(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.ExpensePayment, *domain.Expense, error) {
	payment, err := s.expenseRepo.FindActiveExpensePayment(ctx, tx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	expense, err := s.expenseRepo.FindExpenseByNumberForUpdate(ctx, tx, payment.ExpenseNumber)
	if err != nil {
		return nil, nil, err
	}
	return payment, expense, nil
}

// UpdateExpensePayment implements portssvc.ExpensePaymentSvc
func (s *expenseService) UpdateExpensePayment(ctx context.Context, paymentID string, req dto.UpdateExpensePaymentRequest, userID string) (*domain.ExpensePaymentResult, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	now := s.Now()

	var result *domain.ExpensePaymentResult
	err := s.RunInTx(ctx, s.expenseRepo, func(tx pgx.Tx) error {
		payment, expense, err := s.lockPaymentAndExpense(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		othersPaid, err := s.expenseRepo.SumActivePayments(ctx, tx, expense.ExpenseNumber, paymentID)
		if err != nil {
			return err
		}

		if req.Amount != nil {
			payment.Amount = domain.RoundMoney(*req.Amount)
		}
		if err := expense.CheckPayment(othersPaid, payment.Amount); err != nil {
			return err
		}
		if req.PaymentDate != nil && !req.PaymentDate.IsZero() {
			payment.PaymentDate = req.PaymentDate.Time
		}
		if req.PaymentType != nil {
			payment.PaymentType = domain.ExpensePaymentType(*req.PaymentType)
		}
		if req.Notes != nil {
			payment.Notes = *req.Notes
		}
		payment.LastUpdatedAt = now
		payment.LastUpdatedBy = userID

		if err := s.expenseRepo.UpdateExpensePayment(ctx, tx, *payment); err != nil {
			return err
		}
		if err := s.recomputeLedger(ctx, tx, expense, othersPaid.Add(payment.Amount), userID, now); err != nil {
			return err
		}
		result = &domain.ExpensePaymentResult{Payment: *payment, Status: expense.Status()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Expense payment updated", slog.String("payment_id", paymentID))
	return result, nil
}

// DeleteExpensePayment implements portssvc.ExpensePaymentSvc
func (s *expenseService) DeleteExpensePayment(ctx context.Context, paymentID string, userID string) (*domain.ExpenseStatus, error) {
	now := s.Now()

	var status domain.ExpenseStatus
	err := s.RunInTx(ctx, s.expenseRepo, func(tx pgx.Tx) error {
		_, expense, err := s.lockPaymentAndExpense(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		othersPaid, err := s.expenseRepo.SumActivePayments(ctx, tx, expense.ExpenseNumber, paymentID)
		if err != nil {
			return err
		}
		if err := s.expenseRepo.DeactivateExpensePayment(ctx, tx, paymentID, userID, now); err != nil {
			return err
		}
		if err := s.recomputeLedger(ctx, tx, expense, othersPaid, userID, now); err != nil {
			return err
		}
		status = expense.Status()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Expense payment deleted", slog.String("payment_id", paymentID))
	return &status, nil
}

// GetExpense implements portssvc.ExpenseReaderSvc
func (s *expenseService) GetExpense(ctx context.Context, expenseID string, includeInactive bool) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID, includeInactive)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get expense", slog.String("expense_id", expenseID))
		}
		return nil, err
	}
	if err := s.loadPayments(ctx, expense, includeInactive); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses implements portssvc.ExpenseReaderSvc
func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error) {
	expenses, nextToken, err := s.expenseRepo.ListExpenses(ctx, portsrepo.ExpenseListFilter{
		CenterCode:          strings.TrimSpace(params.CenterCode),
		ExpenseCategoryCode: strings.TrimSpace(params.ExpenseCategoryCode),
		IsPaid:              params.IsPaid,
		IncludeInactive:     params.IncludeInactive,
		Limit:               pagination.NormalizeLimit(params.Limit),
		NextToken:           params.NextToken,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses")
		return nil, err
	}
	resp := dto.ToListExpensesResponse(expenses, nextToken)
	return &resp, nil
}

// ListExpensePayments implements portssvc.ExpenseReaderSvc
func (s *expenseService) ListExpensePayments(ctx context.Context, expenseID string, includeInactive bool) ([]domain.ExpensePayment, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID, includeInactive)
	if err != nil {
		return nil, err
	}
	return s.expenseRepo.FindPaymentsByExpenseNumber(ctx, expense.ExpenseNumber, includeInactive)
}

func (s *expenseService) loadPayments(ctx context.Context, expense *domain.Expense, includeInactive bool) error {
	payments, err := s.expenseRepo.FindPaymentsByExpenseNumber(ctx, expense.ExpenseNumber, includeInactive)
	if err != nil {
		return err
	}
	expense.Payments = payments
	return nil
}
