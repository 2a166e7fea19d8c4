package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	"github.com/SscSPs/courier_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/courier_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/courier_ledger/internal/core/ports/services"
	"github.com/SscSPs/courier_ledger/internal/dto"
	"github.com/jackc/pgx/v5"
)

type referenceService struct {
	BaseService
	refRepo portsrepo.ReferenceRepositoryWithTx
	guard   portssvc.UniquenessGuardSvc
}

// NewReferenceService creates the master data service. It also serves as the reference validator.
func NewReferenceService(refRepo portsrepo.ReferenceRepositoryWithTx, guard portssvc.UniquenessGuardSvc, opts ...ServiceOption) portssvc.ReferenceSvcFacade {
	o := applyOptions(opts)
	return &referenceService{
		BaseService: BaseService{now: o.now},
		refRepo:     refRepo,
		guard:       guard,
	}
}

var _ portssvc.ReferenceSvcFacade = (*referenceService)(nil)

func checkKind(kind domain.ReferenceKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown reference kind %q", apperrors.ErrValidation, kind)
	}
	return nil
}

// ValidateReference implements portssvc.ReferenceValidatorSvc
func (s *referenceService) ValidateReference(ctx context.Context, tx pgx.Tx, kind domain.ReferenceKind, code string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("%w: %s code is required", apperrors.ErrValidation, kind)
	}
	_, err := s.refRepo.FindActiveReference(ctx, tx, kind, code)
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: %s %q does not exist or is inactive", apperrors.ErrNotFound, kind, code)
	}
	s.LogError(ctx, err, "Failed to look up reference", slog.String("kind", string(kind)), slog.String("code", code))
	return err
}

func (s *referenceService) CreateReference(ctx context.Context, kind domain.ReferenceKind, req dto.CreateReferenceRequest, creatorUserID string) (*domain.ReferenceEntity, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	now := s.Now()
	ref := domain.ReferenceEntity{
		ReferenceID: uuid.NewString(),
		Kind:        kind,
		Code:        strings.TrimSpace(req.Code),
		Name:        strings.TrimSpace(req.Name),
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	err := s.RunInTx(ctx, s.refRepo, func(tx pgx.Tx) error {
		entity := domain.EntityKind(kind)
		if err := s.guard.EnsureUnique(ctx, tx, entity, domain.FieldCode, ref.Code, ""); err != nil {
			return err
		}
		if err := s.guard.EnsureUnique(ctx, tx, entity, domain.FieldName, ref.Name, ""); err != nil {
			return err
		}
		return s.refRepo.SaveReference(ctx, tx, ref)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Reference created", slog.String("kind", string(kind)), slog.String("code", ref.Code))
	return &ref, nil
}

func (s *referenceService) ListReferences(ctx context.Context, kind domain.ReferenceKind, includeInactive bool) ([]domain.ReferenceEntity, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	return s.refRepo.ListReferences(ctx, kind, includeInactive)
}

func (s *referenceService) DeactivateReference(ctx context.Context, kind domain.ReferenceKind, code string, userID string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	if err := s.refRepo.DeactivateReference(ctx, kind, code, userID, s.Now()); err != nil {
		return err
	}
	s.LogInfo(ctx, "Reference deactivated", slog.String("kind", string(kind)), slog.String("code", code))
	return nil
}
