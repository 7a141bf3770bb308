package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	portsrepo "github.com/dairyworks/farm_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx so repositories run
// unchanged inside and outside a unit of work.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

var (
	_ DBTX = (*pgxpool.Pool)(nil)
	_ DBTX = (pgx.Tx)(nil)
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db DBTX
}

// UnitOfWork runs business events in a single READ COMMITTED transaction.
type UnitOfWork struct {
	*store
	pool *pgxpool.Pool
}

var _ portsrepo.UnitOfWork = (*UnitOfWork)(nil)

// NewUnitOfWork returns a unit of work whose plain accessors read through the pool.
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{store: newStore(pool), pool: pool}
}

// WithinTx begins a transaction, hands fn a store bound to it and commits when fn
// returns nil. Any error or panic rolls the transaction back.
func (u *UnitOfWork) WithinTx(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(ctx, tx)
			panic(p)
		}
		if err != nil {
			rollback(ctx, tx)
		}
	}()

	if err = fn(ctx, newStore(tx)); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.ErrorContext(ctx, "failed to rollback transaction", slog.String("error", err.Error()))
	}
}

// storageError wraps a driver failure, translating constraint violations into
// the sentinel the services understand.
func storageError(message string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s: %s", apperrors.ErrConflict, message, pgErr.Detail)
		case "23503", "23514": // foreign_key_violation, check_violation
			return fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, message, pgErr.ConstraintName)
		}
	}
	return apperrors.NewAppError(500, message, err)
}
