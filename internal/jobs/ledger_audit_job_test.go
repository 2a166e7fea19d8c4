package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLedgerAuditService struct {
	mock.Mock
}

func (m *MockLedgerAuditService) Audit(ctx context.Context) (*domain.LedgerAuditReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAuditReport), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewLedgerAuditJob_RejectsNonPositiveInterval(t *testing.T) {
	_, err := NewLedgerAuditJob(new(MockLedgerAuditService), 0, discardLogger())
	assert.Error(t, err)
}

func TestLedgerAuditJob_RunOnce(t *testing.T) {
	audit := new(MockLedgerAuditService)
	audit.On("Audit", mock.Anything).Return(&domain.LedgerAuditReport{
		Discrepancies: []domain.LedgerDiscrepancy{{EntityKind: domain.EntityExpense, BusinessNumber: "EXP1"}},
	}, nil).Once()

	job, err := NewLedgerAuditJob(audit, time.Hour, discardLogger())
	require.NoError(t, err)
	defer func() { _ = job.Stop() }()

	assert.NoError(t, job.RunOnce(context.Background()))
	audit.AssertExpectations(t)
}

func TestLedgerAuditJob_RunOncePropagatesError(t *testing.T) {
	dbErr := errors.New("connection refused")
	audit := new(MockLedgerAuditService)
	audit.On("Audit", mock.Anything).Return(nil, dbErr).Once()

	job, err := NewLedgerAuditJob(audit, time.Hour, discardLogger())
	require.NoError(t, err)
	defer func() { _ = job.Stop() }()

	assert.ErrorIs(t, job.RunOnce(context.Background()), dbErr)
	audit.AssertExpectations(t)
}

func TestLedgerAuditJob_StartStop(t *testing.T) {
	job, err := NewLedgerAuditJob(new(MockLedgerAuditService), time.Hour, discardLogger())
	require.NoError(t, err)

	job.Start()
	assert.NoError(t, job.Stop())
}
