package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
	"github.com/SscSPs/courier_ledger/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerAudit_ReportsOnlyInconsistentLedgers(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLedgerAuditRepository)
	repo.On("FindBookingLedgerMismatches", ctx).Return([]domain.LedgerSnapshot{{
		EntityKind:          domain.EntityBooking,
		EntityID:            "bk-1",
		BusinessNumber:      "BKG1",
		Amount:              dec("500"),
		PaidAmount:          dec("200"),
		DueAmount:           dec("300"),
		PaymentStatus:       domain.PaymentPartial,
		ActivePaymentsTotal: dec("200"),
	}}, nil).Once()
	repo.On("FindExpenseLedgerMismatches", ctx).Return([]domain.LedgerSnapshot{{
		EntityKind:          domain.EntityExpense,
		EntityID:            "exp-1",
		BusinessNumber:      "EXP1",
		Amount:              dec("100"),
		PaidAmount:          dec("100"),
		IsPaid:              true,
		ActivePaymentsTotal: dec("60"),
	}}, nil).Once()

	svc := services.NewLedgerAuditService(repo, services.WithClock(func() time.Time { return fixedNow }))
	report, err := svc.Audit(ctx)

	require.NoError(t, err)
	assert.Equal(t, fixedNow, report.CheckedAt)
	require.Len(t, report.Discrepancies, 1)
	assert.Equal(t, "EXP1", report.Discrepancies[0].BusinessNumber)
	assert.Contains(t, report.Discrepancies[0].Issues, "paid amount does not match active payments")
	assert.Contains(t, report.Discrepancies[0].Issues, "is_paid flag does not match payments")
	repo.AssertExpectations(t)
}

func TestLedgerAudit_RepositoryError(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("timeout")
	repo := new(MockLedgerAuditRepository)
	repo.On("FindBookingLedgerMismatches", ctx).Return(nil, dbErr).Once()

	_, err := services.NewLedgerAuditService(repo).Audit(ctx)
	assert.ErrorIs(t, err, dbErr)
	repo.AssertExpectations(t)
}
