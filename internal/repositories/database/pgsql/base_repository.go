package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the repositories translate.
const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

// PgxPool is the subset of *pgxpool.Pool the repositories use.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool PgxPool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// BeginSavepoint opens a savepoint inside tx.
func (r *BaseRepository) BeginSavepoint(ctx context.Context, tx pgx.Tx) (pgx.Tx, error) {
	sp, err := tx.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to open savepoint", err)
	}
	return sp, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// queryer is satisfied by both the pool and a transaction.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// mapWriteError turns driver errors on INSERT/UPDATE into application errors.
func mapWriteError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s conflicts with an existing record (%s)", apperrors.ErrDuplicate, what, pgErr.ConstraintName)
		case invalidTextRepresentation:
			return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
		}
	}
	return fmt.Errorf("failed to write %s: %w", what, err)
}

// mapReadError turns pgx.ErrNoRows into apperrors.ErrNotFound. A malformed
// uuid key cannot match any row, so it is reported the same way.
func mapReadError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.Is(err, pgx.ErrNoRows) || (errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	return fmt.Errorf("failed to read %s: %w", what, err)
}
