package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ReferenceRepositoryFacade defines persistence for master data of every kind.
type ReferenceRepositoryFacade interface {
	// FindActiveReference looks up an active entity by code inside tx. Returns apperrors.ErrNotFound when absent.
	FindActiveReference(ctx context.Context, tx pgx.Tx, kind domain.ReferenceKind, code string) (*domain.ReferenceEntity, error)

	SaveReference(ctx context.Context, tx pgx.Tx, ref domain.ReferenceEntity) error

	ListReferences(ctx context.Context, kind domain.ReferenceKind, includeInactive bool) ([]domain.ReferenceEntity, error)

	// DeactivateReference soft deletes an active entity. Returns apperrors.ErrNotFound when absent.
	DeactivateReference(ctx context.Context, kind domain.ReferenceKind, code string, userID string, at time.Time) error
}

// ReferenceRepositoryWithTx extends ReferenceRepositoryFacade with transaction capabilities
type ReferenceRepositoryWithTx interface {
	ReferenceRepositoryFacade
	TransactionManager
}

// UniquenessChecker answers whether a business identifier is already held by an active row.
type UniquenessChecker interface {
	// ExistsActive reports whether an active row of kind has field = value, ignoring the row whose id is excludeID.
	ExistsActive(ctx context.Context, tx pgx.Tx, kind domain.EntityKind, field, value, excludeID string) (bool, error)
}
