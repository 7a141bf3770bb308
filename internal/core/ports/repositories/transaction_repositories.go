package repositories

import (
	"context"
	"time"

	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations over the transaction log
type TransactionReader interface {
	// FindTransactionsByRef retrieves every transaction posted for a document.
	FindTransactionsByRef(ctx context.Context, kind domain.RefKind, documentID string) ([]domain.Transaction, error)

	// ListTransactionsByAccount retrieves the account's transactions dated inside r,
	// ascending by date then creation time.
	ListTransactionsByAccount(ctx context.Context, accountID string, r domain.DateRange) ([]domain.Transaction, error)

	// SumTransactionsBefore totals the amounts posted to the debit and credit side of the
	// account with a date strictly before cutoff.
	SumTransactionsBefore(ctx context.Context, accountID string, cutoff time.Time) (debits decimal.Decimal, credits decimal.Decimal, err error)

	// ListTransactionsInRange retrieves every transaction dated inside r, ascending.
	ListTransactionsInRange(ctx context.Context, r domain.DateRange) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations over the transaction log
type TransactionWriter interface {
	// SaveTransactions appends transactions to the log.
	SaveTransactions(ctx context.Context, transactions []domain.Transaction) error

	// DeleteTransactions removes transactions as part of a compensating reversal.
	DeleteTransactions(ctx context.Context, transactionIDs []string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
