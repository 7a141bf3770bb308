package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	portsrepo "github.com/dairyworks/farm_ledger/internal/core/ports/repositories"
	portssvc "github.com/dairyworks/farm_ledger/internal/core/ports/services"
	"github.com/dairyworks/farm_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// AccountNames names the well-known accounts postings and ledgers resolve by name.
type AccountNames struct {
	Sales    string
	Purchase string
	Cash     string
}

func (n AccountNames) withDefaults() AccountNames {
	if n.Sales == "" {
		n.Sales = "Sales Account"
	}
	if n.Purchase == "" {
		n.Purchase = "Purchase Account"
	}
	if n.Cash == "" {
		n.Cash = "Cash Account"
	}
	return n
}

// ledgerService is the read side of the ledger: opening balances and running ledgers.
type ledgerService struct {
	BaseService
	store portsrepo.Store
	names AccountNames
}

// NewLedgerService creates a new ledger query service.
func NewLedgerService(store portsrepo.Store, names AccountNames, opts ...ServiceOption) portssvc.LedgerSvc {
	return &ledgerService{
		BaseService: newBaseService(opts),
		store:       store,
		names:       names.withDefaults(),
	}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

// OpeningBalance sums debits minus credits dated before cutoff onto the account's
// baseline: the initial balance for perpetual accounts, zero for transactional ones.
func (s *ledgerService) OpeningBalance(ctx context.Context, accountID string, cutoff time.Time) (decimal.Decimal, error) {
	acc, err := s.store.Accounts().FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return openingBalance(ctx, s.store, *acc, cutoff, accounting.DebitPositive)
}

func openingBalance(ctx context.Context, store portsrepo.Store, acc domain.Account, cutoff time.Time, conv accounting.Convention) (decimal.Decimal, error) {
	debits, credits, err := store.Transactions().SumTransactionsBefore(ctx, acc.AccountID, cutoff)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.OpeningFromTotals(acc, debits, credits, conv), nil
}

func (s *ledgerService) GetAccountLedger(ctx context.Context, accountID string, r domain.DateRange) (*domain.AccountLedger, error) {
	acc, err := s.store.Accounts().FindAccountByID(ctx, accountID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to load account for ledger", slog.String("account_id", accountID))
		return nil, err
	}
	return s.ledger(ctx, *acc, r, accounting.DebitPositive)
}

func (s *ledgerService) GetSalesLedger(ctx context.Context, r domain.DateRange) (*domain.AccountLedger, error) {
	acc, err := resolveWellKnownAccount(ctx, s.store, domain.SaleAccount, s.names.Sales)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to resolve sales account")
		return nil, err
	}
	return s.ledger(ctx, *acc, r, accounting.CreditPositive)
}

func (s *ledgerService) GetCashLedger(ctx context.Context, r domain.DateRange) (*domain.AccountLedger, error) {
	acc, err := resolveWellKnownAccount(ctx, s.store, domain.CashAccount, s.names.Cash)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to resolve cash account")
		return nil, err
	}
	return s.ledger(ctx, *acc, r, accounting.DebitPositive)
}

func (s *ledgerService) GetBankLedger(ctx context.Context, accountID string, r domain.DateRange) (*domain.AccountLedger, error) {
	var acc *domain.Account
	var err error
	if accountID == "" {
		acc, err = resolveWellKnownAccount(ctx, s.store, domain.BankAccount, "")
	} else {
		acc, err = s.store.Accounts().FindAccountByID(ctx, accountID)
		if err == nil && acc.AccountType != domain.BankAccount {
			err = fmt.Errorf("%w: account %s is not a bank account", apperrors.ErrValidation, accountID)
		}
	}
	if err != nil {
		s.LogFailure(ctx, err, "Failed to resolve bank account", slog.String("account_id", accountID))
		return nil, err
	}
	return s.ledger(ctx, *acc, r, accounting.DebitPositive)
}

func (s *ledgerService) ledger(ctx context.Context, acc domain.Account, r domain.DateRange, conv accounting.Convention) (*domain.AccountLedger, error) {
	if r.End.Before(r.Start) {
		return nil, fmt.Errorf("%w: range end precedes start", apperrors.ErrValidation)
	}
	opening, err := openingBalance(ctx, s.store, acc, r.Start, conv)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute opening balance", slog.String("account_id", acc.AccountID))
		return nil, err
	}
	txns, err := s.store.Transactions().ListTransactionsByAccount(ctx, acc.AccountID, r)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger transactions", slog.String("account_id", acc.AccountID))
		return nil, err
	}
	ledger := accounting.BuildLedger(acc, r, opening, txns, conv)
	return &ledger, nil
}
