package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	portsrepo "github.com/dairyworks/farm_ledger/internal/core/ports/repositories"
	"github.com/dairyworks/farm_ledger/internal/models"
	"github.com/dairyworks/farm_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type transactionRepository struct {
	BaseRepository
}

var _ portsrepo.TransactionRepositoryFacade = (*transactionRepository)(nil)

const transactionColumns = `transaction_id, txn_date, debit_account_id, credit_account_id, amount, description,
	context_descriptions, ref_kind, ref_id, ref_number, created_at, created_by`

const transactionOrder = ` ORDER BY txn_date, created_at, transaction_id`

func (r *transactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	modelTxns, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan transactions", err)
	}
	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

func (r *transactionRepository) FindTransactionsByRef(ctx context.Context, kind domain.RefKind, documentID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ref_kind = $1 AND ref_id = $2` + transactionOrder
	return r.queryTransactions(ctx, query, string(kind), documentID)
}

func (r *transactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, dr domain.DateRange) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + ` FROM transactions
		WHERE (debit_account_id = $1 OR credit_account_id = $1) AND txn_date BETWEEN $2 AND $3` + transactionOrder
	return r.queryTransactions(ctx, query, accountID, dr.Start, dr.End)
}

func (r *transactionRepository) ListTransactionsInRange(ctx context.Context, dr domain.DateRange) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE txn_date BETWEEN $1 AND $2` + transactionOrder
	return r.queryTransactions(ctx, query, dr.Start, dr.End)
}

// SumTransactionsBefore totals the debit and credit legs of accountID dated strictly before cutoff.
func (r *transactionRepository) SumTransactionsBefore(ctx context.Context, accountID string, cutoff time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE debit_account_id = $1), 0),
			COALESCE(SUM(amount) FILTER (WHERE credit_account_id = $1), 0)
		FROM transactions
		WHERE (debit_account_id = $1 OR credit_account_id = $1) AND txn_date < $2;
	`
	var debits, credits decimal.Decimal
	if err := r.db.QueryRow(ctx, query, accountID, cutoff).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum transactions", err)
	}
	return debits, credits, nil
}

func (r *transactionRepository) SaveTransactions(ctx context.Context, transactions []domain.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, t := range transactions {
		contexts := t.ContextDescriptions
		if contexts == nil {
			contexts = map[string]string{}
		}
		encoded, err := json.Marshal(contexts)
		if err != nil {
			return apperrors.NewAppError(500, "failed to encode context descriptions", err)
		}
		var refKind, refID, refNumber *string
		if t.Ref != nil {
			kind := string(t.Ref.Kind)
			refKind, refID, refNumber = &kind, &t.Ref.ID, &t.Ref.Number
		}
		batch.Queue(query,
			t.TransactionID, t.Date, t.DebitAccountID, t.CreditAccountID, t.Amount, t.Description,
			encoded, refKind, refID, refNumber, t.CreatedAt, t.CreatedBy,
		)
	}
	return execBatch(ctx, r.db, batch, "failed to save transaction")
}

func (r *transactionRepository) DeleteTransactions(ctx context.Context, transactionIDs []string) error {
	if len(transactionIDs) == 0 {
		return nil
	}
	ct, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = ANY($1);`, transactionIDs)
	if err != nil {
		return storageError(fmt.Sprintf("failed to delete %d transactions", len(transactionIDs)), err)
	}
	if ct.RowsAffected() != int64(len(transactionIDs)) {
		return fmt.Errorf("%w: deleted %d of %d transactions", apperrors.ErrConflict, ct.RowsAffected(), len(transactionIDs))
	}
	return nil
}

// execBatch runs every queued statement and returns the first failure.
func execBatch(ctx context.Context, db DBTX, batch *pgx.Batch, message string) error {
	br := db.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = storageError(message, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = storageError(message, err)
	}
	return batchErr
}
