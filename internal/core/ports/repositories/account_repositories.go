package repositories

import (
	"context"
	"time"

	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing IDs are absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountByName retrieves an account of the given type by its exact account name.
	FindAccountByName(ctx context.Context, accountType domain.AccountType, name string) (*domain.Account, error)

	// ListAccounts retrieves accounts matching the filter, ordered by type then name.
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details. The stored balance is left
	// alone; it only moves through IncrementBalances.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountBalanceWriter applies posting deltas to stored balances.
type AccountBalanceWriter interface {
	// IncrementBalances adds each delta to the matching account balance with a single
	// atomic update per account. A missing account fails with apperrors.ErrNotFound.
	IncrementBalances(ctx context.Context, changes map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceWriter
}
