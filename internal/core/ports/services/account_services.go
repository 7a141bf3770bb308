package services

import (
	"context"

	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/dairyworks/farm_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)

	// SearchAccounts retrieves accounts filtered by type and a free-text search over
	// names and phone numbers.
	SearchAccounts(ctx context.Context, params dto.SearchAccountsParams) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
}

// AccountPostingSvc posts money movements that involve accounts only.
type AccountPostingSvc interface {
	// CreatePayment records money received from (receive) or given to (give) a party.
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, userID string) (*domain.Transaction, error)

	// CreateTransfer moves funds between two cash or bank accounts.
	CreateTransfer(ctx context.Context, req dto.TransferData, userID string) (*domain.Transaction, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountPostingSvc
}
