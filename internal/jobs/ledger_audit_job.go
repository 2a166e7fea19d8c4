package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/courier_ledger/internal/core/ports/services"
	"github.com/SscSPs/courier_ledger/internal/middleware"
	"github.com/go-co-op/gocron/v2"
)

const ledgerAuditJobName = "ledger-audit"

// LedgerAuditJob runs the ledger integrity audit on a fixed interval.
// Discrepancies are logged; nothing is repaired.
type LedgerAuditJob struct {
	scheduler gocron.Scheduler
	audit     portssvc.LedgerAuditSvc
	logger    *slog.Logger
}

// NewLedgerAuditJob schedules audit every interval. The job does not run until Start is called.
func NewLedgerAuditJob(audit portssvc.LedgerAuditSvc, interval time.Duration, logger *slog.Logger) (*LedgerAuditJob, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("ledger audit interval must be positive, got %s", interval)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	job := &LedgerAuditJob{
		scheduler: scheduler,
		audit:     audit,
		logger:    logger.With(slog.String("job", ledgerAuditJobName)),
	}

	// A slow audit must not overlap the next run.
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(job.RunOnce, context.Background()),
		gocron.WithName(ledgerAuditJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("failed to create ledger audit job: %w", err)
	}
	return job, nil
}

// RunOnce performs a single audit pass and logs its outcome.
func (j *LedgerAuditJob) RunOnce(ctx context.Context) error {
	ctx = middleware.WithLogger(ctx, j.logger)
	report, err := j.audit.Audit(ctx)
	if err != nil {
		j.logger.Error("Scheduled ledger audit failed", slog.String("error", err.Error()))
		return err
	}
	if len(report.Discrepancies) > 0 {
		j.logger.Warn("Scheduled ledger audit found discrepancies", slog.Int("count", len(report.Discrepancies)))
	}
	return nil
}

// Start starts the scheduler.
func (j *LedgerAuditJob) Start() {
	j.logger.Info("Starting ledger audit scheduler")
	j.scheduler.Start()
}

// Stop stops the scheduler and waits for a running audit to finish.
func (j *LedgerAuditJob) Stop() error {
	j.logger.Info("Stopping ledger audit scheduler")
	return j.scheduler.Shutdown()
}
