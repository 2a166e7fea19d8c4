package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/courier_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/courier_ledger/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// BaseService provides common functionality for all services
type BaseService struct {
	now func() time.Time
}

// Now returns the current UTC time, or the injected clock in tests.
func (s *BaseService) Now() time.Time {
	if s.now != nil {
		return s.now().UTC()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// RunInTx runs fn inside a transaction from tm. The transaction commits when fn
// returns nil and rolls back otherwise.
func (s *BaseService) RunInTx(ctx context.Context, tm portsrepo.TransactionManager, fn func(tx pgx.Tx) error) error {
	tx, err := tm.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction")
		return err
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tm.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to rollback transaction")
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tm.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit transaction")
		return err
	}
	committed = true
	return nil
}

// ServiceOption configures optional service behaviour.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	now               func() time.Time
	strictTransitions bool
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(o *serviceOptions) {
		o.now = now
	}
}

// WithStrictDeliveryTransitions enforces the forward-only delivery graph.
func WithStrictDeliveryTransitions(strict bool) ServiceOption {
	return func(o *serviceOptions) {
		o.strictTransitions = strict
	}
}

func applyOptions(opts []ServiceOption) serviceOptions {
	var o serviceOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
