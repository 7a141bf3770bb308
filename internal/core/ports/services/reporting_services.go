package services

import (
	"context"
	"time"

	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/dairyworks/farm_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvc computes opening balances and running ledgers.
type LedgerSvc interface {
	// OpeningBalance returns the account balance as of just before cutoff.
	OpeningBalance(ctx context.Context, accountID string, cutoff time.Time) (decimal.Decimal, error)

	// GetAccountLedger returns the running ledger of one account, debits positive.
	GetAccountLedger(ctx context.Context, accountID string, r domain.DateRange) (*domain.AccountLedger, error)

	// GetSalesLedger returns the sales account ledger, credits positive.
	GetSalesLedger(ctx context.Context, r domain.DateRange) (*domain.AccountLedger, error)

	// GetCashLedger returns the cash account ledger, debits positive.
	GetCashLedger(ctx context.Context, r domain.DateRange) (*domain.AccountLedger, error)

	// GetBankLedger returns the ledger of accountID, or of the first active bank account
	// when accountID is empty.
	GetBankLedger(ctx context.Context, accountID string, r domain.DateRange) (*domain.AccountLedger, error)
}

// DayBookReaderSvc builds day book reports.
type DayBookReaderSvc interface {
	GetDayBook(ctx context.Context, date time.Time) (*domain.DayBook, error)
	GetDayBookReport(ctx context.Context, r domain.DateRange) ([]domain.DayBookRow, error)
}

// DayBookWriterSvc posts the vouchers raised from the day book screen.
type DayBookWriterSvc interface {
	CreateCollection(ctx context.Context, req dto.CreateCollectionRequest, userID string) (*domain.Collection, error)
	CreateJournalTransaction(ctx context.Context, req dto.CreateJournalTransactionRequest, userID string) (*domain.Transaction, error)
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.ExpenseVoucher, error)
}

// DayBookSvcFacade combines all day book service interfaces
type DayBookSvcFacade interface {
	DayBookReaderSvc
	DayBookWriterSvc
}
