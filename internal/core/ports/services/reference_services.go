package services

import (
	"context"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
	"github.com/SscSPs/courier_ledger/internal/dto"
	"github.com/jackc/pgx/v5"
)

// ReferenceValidatorSvc confirms that codes on incoming writes point at active master data.
type ReferenceValidatorSvc interface {
	// ValidateReference returns apperrors.ErrNotFound naming kind and code when no active entity matches.
	ValidateReference(ctx context.Context, tx pgx.Tx, kind domain.ReferenceKind, code string) error
}

// UniquenessGuardSvc keeps business identifiers unique among active rows.
type UniquenessGuardSvc interface {
	// EnsureUnique returns apperrors.ErrDuplicate naming field and value when another active row holds value.
	EnsureUnique(ctx context.Context, tx pgx.Tx, kind domain.EntityKind, field, value, excludeID string) error

	// GenerateUnique draws prefixed identifiers until one is free among active rows.
	GenerateUnique(ctx context.Context, tx pgx.Tx, kind domain.EntityKind, field, prefix string) (string, error)
}

// ReferenceSvcFacade manages master data
type ReferenceSvcFacade interface {
	ReferenceValidatorSvc
	CreateReference(ctx context.Context, kind domain.ReferenceKind, req dto.CreateReferenceRequest, creatorUserID string) (*domain.ReferenceEntity, error)
	ListReferences(ctx context.Context, kind domain.ReferenceKind, includeInactive bool) ([]domain.ReferenceEntity, error)
	DeactivateReference(ctx context.Context, kind domain.ReferenceKind, code string, userID string) error
}
