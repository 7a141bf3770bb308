package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	portsrepo "github.com/dairyworks/farm_ledger/internal/core/ports/repositories"
	"github.com/dairyworks/farm_ledger/internal/models"
	"github.com/dairyworks/farm_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type accountRepository struct {
	BaseRepository
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

const accountColumns = `account_id, account_type, account_name, customer_name, supplier_name, phone, address,
	initial_balance, balance, balance_method, is_active,
	created_at, created_by, last_updated_at, last_updated_by, version`

func (r *accountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	modelAccounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan accounts", err)
	}
	return mapping.ToDomainAccountSlice(modelAccounts), nil
}

func (r *accountRepository) queryAccount(ctx context.Context, notFound string, query string, args ...any) (*domain.Account, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, notFound)
		}
		return nil, apperrors.NewAppError(500, "failed to scan account", err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// SaveAccount inserts a new account.
func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.db.Exec(ctx, query,
		m.AccountID, m.AccountType, m.AccountName, m.CustomerName, m.SupplierName, m.Phone, m.Address,
		m.InitialBalance, m.Balance, m.BalanceMethod, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		return storageError(fmt.Sprintf("failed to save account %s", m.AccountID), err)
	}
	return nil
}

// UpdateAccount rewrites the descriptive columns; balance moves only through IncrementBalances.
func (r *accountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET account_name = $2, customer_name = $3, supplier_name = $4, phone = $5, address = $6,
			initial_balance = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10,
			version = version + 1
		WHERE account_id = $1;
	`
	ct, err := r.db.Exec(ctx, query,
		m.AccountID, m.AccountName, m.CustomerName, m.SupplierName, m.Phone, m.Address,
		m.InitialBalance, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return storageError(fmt.Sprintf("failed to update account %s", m.AccountID), err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return r.queryAccount(ctx, "account "+accountID, query, accountID)
}

// FindAccountsByIDs returns the accounts that exist among accountIDs, keyed by id.
func (r *accountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	accounts, err := r.queryAccounts(ctx, query, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		out[acc.AccountID] = acc
	}
	return out, nil
}

func (r *accountRepository) FindAccountByName(ctx context.Context, accountType domain.AccountType, name string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + ` FROM accounts
		WHERE account_type = $1 AND account_name = $2
		ORDER BY account_id
		LIMIT 1;
	`
	return r.queryAccount(ctx, fmt.Sprintf("%s account %q", accountType, name), query, string(accountType), name)
}

// ListAccounts applies the filter in SQL; search matches names and phone case-insensitively.
func (r *accountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	var (
		where []string
		args  []any
	)
	if filter.AccountType != "" {
		args = append(args, string(filter.AccountType))
		where = append(where, fmt.Sprintf("account_type = $%d", len(args)))
	}
	if filter.ActiveOnly {
		where = append(where, "is_active")
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+strings.ToLower(search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(LOWER(account_name) LIKE $%d OR LOWER(customer_name) LIKE $%d OR LOWER(supplier_name) LIKE $%d OR LOWER(phone) LIKE $%d)",
			n, n, n, n))
	}

	query := `SELECT ` + accountColumns + ` FROM accounts`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY account_type, account_name, account_id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return r.queryAccounts(ctx, query, args...)
}

// IncrementBalances applies signed deltas atomically. Rows are updated in id
// order so concurrent postings lock accounts in the same sequence.
func (r *accountRepository) IncrementBalances(ctx context.Context, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(changes) == 0 {
		return nil
	}

	accountIDs := make([]string, 0, len(changes))
	for id := range changes {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs)

	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4, version = version + 1
		WHERE account_id = $1;
	`
	batch := &pgx.Batch{}
	for _, id := range accountIDs {
		batch.Queue(query, id, changes[id], now, userID)
	}

	br := r.db.SendBatch(ctx, batch)
	var batchErr error
	for _, id := range accountIDs {
		ct, err := br.Exec()
		switch {
		case batchErr != nil:
		case err != nil:
			batchErr = storageError(fmt.Sprintf("failed to update balance for account %s", id), err)
		case ct.RowsAffected() == 0:
			batchErr = fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = apperrors.NewAppError(500, "failed to close balance update batch", err)
	}
	return batchErr
}
