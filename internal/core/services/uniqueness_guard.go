package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	"github.com/SscSPs/courier_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/courier_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/courier_ledger/internal/core/ports/services"
	"github.com/SscSPs/courier_ledger/internal/utils/identifier"
	"github.com/jackc/pgx/v5"
)

// DefaultIdentifierAttempts bounds identifier generation retries.
const DefaultIdentifierAttempts = 5

type uniquenessGuard struct {
	BaseService
	checker     portsrepo.UniquenessChecker
	maxAttempts int
	generate    identifier.Generator
}

// NewUniquenessGuard creates a guard backed by checker. maxAttempts <= 0 uses DefaultIdentifierAttempts.
func NewUniquenessGuard(checker portsrepo.UniquenessChecker, maxAttempts int, opts ...ServiceOption) portssvc.UniquenessGuardSvc {
	return newUniquenessGuard(checker, maxAttempts, identifier.Generate, opts...)
}

func newUniquenessGuard(checker portsrepo.UniquenessChecker, maxAttempts int, gen identifier.Generator, opts ...ServiceOption) *uniquenessGuard {
	if maxAttempts <= 0 {
		maxAttempts = DefaultIdentifierAttempts
	}
	o := applyOptions(opts)
	return &uniquenessGuard{
		BaseService: BaseService{now: o.now},
		checker:     checker,
		maxAttempts: maxAttempts,
		generate:    gen,
	}
}

var _ portssvc.UniquenessGuardSvc = (*uniquenessGuard)(nil)

func (g *uniquenessGuard) EnsureUnique(ctx context.Context, tx pgx.Tx, kind domain.EntityKind, field, value, excludeID string) error {
	exists, err := g.checker.ExistsActive(ctx, tx, kind, field, value, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s %q is already in use", apperrors.ErrDuplicate, field, value)
	}
	return nil
}

func (g *uniquenessGuard) GenerateUnique(ctx context.Context, tx pgx.Tx, kind domain.EntityKind, field, prefix string) (string, error) {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		candidate, err := g.generate(prefix, g.Now())
		if err != nil {
			return "", err
		}
		exists, err := g.checker.ExistsActive(ctx, tx, kind, field, candidate, "")
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		g.LogDebug(ctx, "Generated identifier collided, retrying",
			slog.String("field", field),
			slog.String("candidate", candidate),
			slog.Int("attempt", attempt))
	}
	return "", fmt.Errorf("%w: could not generate a free %s after %d attempts", apperrors.ErrDuplicate, field, g.maxAttempts)
}

// claimIdentifier returns requested after checking it is free, or a generated
// identifier when requested is empty.
func claimIdentifier(ctx context.Context, guard portssvc.UniquenessGuardSvc, tx pgx.Tx, kind domain.EntityKind, field, requested, prefix string) (string, error) {
	if requested != "" {
		if err := guard.EnsureUnique(ctx, tx, kind, field, requested, ""); err != nil {
			return "", err
		}
		return requested, nil
	}
	return guard.GenerateUnique(ctx, tx, kind, field, prefix)
}
