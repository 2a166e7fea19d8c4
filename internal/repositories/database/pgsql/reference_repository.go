package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	"github.com/SscSPs/courier_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/courier_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// referenceTables maps each master-data kind to its table. Table names are
// never taken from user input.
var referenceTables = map[domain.ReferenceKind]string{
	domain.RefOfficeCenter:    "office_centers",
	domain.RefLocation:        "locations",
	domain.RefCustomer:        "customers",
	domain.RefExpenseCategory: "expense_categories",
	domain.RefVehicleType:     "vehicle_types",
	domain.RefPackageType:     "package_types",
}

const referenceColumns = `reference_id, code, name, is_active, created_at, created_by, last_updated_at, last_updated_by`

func referenceTable(kind domain.ReferenceKind) (string, error) {
	table, ok := referenceTables[kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown reference kind %q", apperrors.ErrValidation, kind)
	}
	return table, nil
}

type PgxReferenceRepository struct {
	BaseRepository
}

func newPgxReferenceRepository(pool PgxPool) portsrepo.ReferenceRepositoryWithTx {
	return &PgxReferenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReferenceRepositoryWithTx = (*PgxReferenceRepository)(nil)

func scanReference(row pgx.Row, kind domain.ReferenceKind) (domain.ReferenceEntity, error) {
	ref := domain.ReferenceEntity{Kind: kind}
	err := row.Scan(
		&ref.ReferenceID,
		&ref.Code,
		&ref.Name,
		&ref.IsActive,
		&ref.CreatedAt,
		&ref.CreatedBy,
		&ref.LastUpdatedAt,
		&ref.LastUpdatedBy,
	)
	return ref, err
}

// FindActiveReference looks up an active entity by code. A nil tx reads through the pool.
func (r *PgxReferenceRepository) FindActiveReference(ctx context.Context, tx pgx.Tx, kind domain.ReferenceKind, code string) (*domain.ReferenceEntity, error) {
	table, err := referenceTable(kind)
	if err != nil {
		return nil, err
	}
	var q queryer = r.Pool
	if tx != nil {
		q = tx
	}

	query := `SELECT ` + referenceColumns + ` FROM ` + table + ` WHERE code = $1 AND is_active = TRUE;`
	ref, err := scanReference(q.QueryRow(ctx, query, code), kind)
	if err != nil {
		return nil, mapReadError(err, fmt.Sprintf("%s %s", kind, code))
	}
	return &ref, nil
}

func (r *PgxReferenceRepository) SaveReference(ctx context.Context, tx pgx.Tx, ref domain.ReferenceEntity) error {
	table, err := referenceTable(ref.Kind)
	if err != nil {
		return err
	}
	query := `INSERT INTO ` + table + ` (` + referenceColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err = tx.Exec(ctx, query,
		ref.ReferenceID,
		ref.Code,
		ref.Name,
		ref.IsActive,
		ref.CreatedAt,
		ref.CreatedBy,
		ref.LastUpdatedAt,
		ref.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("%s %s", ref.Kind, ref.Code))
	}
	return nil
}

// ListReferences returns every entity of kind ordered by code.
func (r *PgxReferenceRepository) ListReferences(ctx context.Context, kind domain.ReferenceKind, includeInactive bool) ([]domain.ReferenceEntity, error) {
	table, err := referenceTable(kind)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + referenceColumns + ` FROM ` + table
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	rows, err := r.Pool.Query(ctx, query+` ORDER BY code, created_at;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	refs := []domain.ReferenceEntity{}
	for rows.Next() {
		ref, err := scanReference(rows, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", kind, err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", kind, err)
	}
	return refs, nil
}

func (r *PgxReferenceRepository) DeactivateReference(ctx context.Context, kind domain.ReferenceKind, code string, userID string, at time.Time) error {
	table, err := referenceTable(kind)
	if err != nil {
		return err
	}
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE `+table+`
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE code = $1 AND is_active = TRUE;
	`, code, at, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate %s %s: %w", kind, code, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, kind, code)
	}
	return nil
}
