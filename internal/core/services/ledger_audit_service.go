package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/courier_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/courier_ledger/internal/core/ports/services"
)

// ledgerAuditService re-derives ledger totals from active payments and reports disagreements.
// It never repairs data.
type ledgerAuditService struct {
	BaseService
	auditRepo portsrepo.LedgerAuditRepository
}

// NewLedgerAuditService creates a new LedgerAuditSvc.
func NewLedgerAuditService(auditRepo portsrepo.LedgerAuditRepository, opts ...ServiceOption) portssvc.LedgerAuditSvc {
	o := applyOptions(opts)
	return &ledgerAuditService{
		BaseService: BaseService{now: o.now},
		auditRepo:   auditRepo,
	}
}

var _ portssvc.LedgerAuditSvc = (*ledgerAuditService)(nil)

func (s *ledgerAuditService) Audit(ctx context.Context) (*domain.LedgerAuditReport, error) {
	report := &domain.LedgerAuditReport{CheckedAt: s.Now()}

	bookings, err := s.auditRepo.FindBookingLedgerMismatches(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to audit booking ledgers")
		return nil, err
	}
	expenses, err := s.auditRepo.FindExpenseLedgerMismatches(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to audit expense ledgers")
		return nil, err
	}

	for _, snap := range append(bookings, expenses...) {
		issues := snap.Issues()
		if len(issues) == 0 {
			continue
		}
		report.Discrepancies = append(report.Discrepancies, domain.LedgerDiscrepancy{
			EntityKind:     snap.EntityKind,
			EntityID:       snap.EntityID,
			BusinessNumber: snap.BusinessNumber,
			Issues:         issues,
		})
		s.GetLogger(ctx).Warn("Ledger discrepancy found",
			slog.String("kind", string(snap.EntityKind)),
			slog.String("number", snap.BusinessNumber),
			slog.String("issues", strings.Join(issues, "; ")))
	}

	s.LogInfo(ctx, "Ledger audit finished", slog.Int("discrepancies", len(report.Discrepancies)))
	return report, nil
}
