package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	portsrepo "github.com/dairyworks/farm_ledger/internal/core/ports/repositories"
	portssvc "github.com/dairyworks/farm_ledger/internal/core/ports/services"
	"github.com/dairyworks/farm_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	uow portsrepo.UnitOfWork
}

// NewAccountService creates a new account service.
func NewAccountService(uow portsrepo.UnitOfWork, opts ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(opts),
		uow:         uow,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	account := domain.Account{
		AccountID:      uuid.NewString(),
		AccountType:    req.AccountType,
		AccountName:    strings.TrimSpace(req.AccountName),
		Phone:          strings.TrimSpace(req.Phone),
		Address:        strings.TrimSpace(req.Address),
		InitialBalance: domain.RoundMoney(req.InitialBalance),
		BalanceMethod:  domain.BalanceMethodFor(req.AccountType),
		IsActive:       true,
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}
	switch req.AccountType {
	case domain.CustomerAccount:
		account.CustomerName = firstNonEmpty(req.CustomerName, req.AccountName)
	case domain.SupplierAccount:
		account.SupplierName = firstNonEmpty(req.SupplierName, req.AccountName)
	}
	if account.AccountName == "" {
		account.AccountName = account.DisplayName()
	}
	if account.DisplayName() == "" {
		return nil, fmt.Errorf("%w: a name is required for %s accounts", apperrors.ErrValidation, req.AccountType)
	}
	account.Balance = account.Baseline()

	if err := s.uow.Accounts().SaveAccount(ctx, account); err != nil {
		s.LogFailure(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.uow.Accounts().FindAccountByID(ctx, accountID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	accounts, err := s.uow.Accounts().ListAccounts(ctx, domain.AccountFilter{Limit: params.Limit, Offset: params.Offset})
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) SearchAccounts(ctx context.Context, params dto.SearchAccountsParams) ([]domain.Account, error) {
	if params.AccountType != "" && !params.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, params.AccountType)
	}
	accounts, err := s.uow.Accounts().ListAccounts(ctx, domain.AccountFilter{
		AccountType: params.AccountType,
		Search:      params.Search,
		ActiveOnly:  params.ActiveOnly,
		Limit:       params.Limit,
		Offset:      params.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to search accounts", slog.String("search", params.Search))
		return nil, err
	}
	return accounts, nil
}

// UpdateAccount edits the descriptive fields of an account. Changing the initial balance
// of a perpetual account shifts its running balance by the same difference.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	now := s.Now()
	var updated domain.Account
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		current, err := tx.Accounts().FindAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		account := *current

		if req.AccountName != nil {
			account.AccountName = strings.TrimSpace(*req.AccountName)
		}
		if req.CustomerName != nil && account.AccountType == domain.CustomerAccount {
			account.CustomerName = strings.TrimSpace(*req.CustomerName)
		}
		if req.SupplierName != nil && account.AccountType == domain.SupplierAccount {
			account.SupplierName = strings.TrimSpace(*req.SupplierName)
		}
		if req.Phone != nil {
			account.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.Address != nil {
			account.Address = strings.TrimSpace(*req.Address)
		}
		if req.IsActive != nil {
			account.IsActive = *req.IsActive
		}
		if account.DisplayName() == "" {
			return fmt.Errorf("%w: account name must not be empty", apperrors.ErrValidation)
		}

		shift := decimal.Zero
		if req.InitialBalance != nil {
			initial := domain.RoundMoney(*req.InitialBalance)
			shift = initial.Sub(account.Baseline())
			account.InitialBalance = initial
			if account.BalanceMethod != domain.Perpetual {
				shift = decimal.Zero
			}
		}

		account.Touch(userID, now)
		if err := tx.Accounts().UpdateAccount(ctx, account); err != nil {
			return err
		}
		if !shift.IsZero() {
			if err := tx.Accounts().IncrementBalances(ctx, map[string]decimal.Decimal{account.AccountID: shift}, userID, now); err != nil {
				return err
			}
		}
		refreshed, err := tx.Accounts().FindAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		updated = *refreshed
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return &updated, nil
}

func (s *accountService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, userID string) (*domain.Transaction, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if req.PaymentType != dto.PaymentReceive && req.PaymentType != dto.PaymentGive {
		return nil, fmt.Errorf("%w: paymentType must be receive or give", apperrors.ErrValidation)
	}
	date, err := s.documentDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	var posted domain.Transaction
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		p := newPosting(tx, userID, now)
		party, err := p.account(ctx, "party", req.AccountID)
		if err != nil {
			return err
		}
		payment, err := p.account(ctx, "payment", req.PaymentAccountID, moneyAccountTypes...)
		if err != nil {
			return err
		}

		id := uuid.NewString()
		ref := &domain.DocumentRef{Kind: domain.PaymentRef, ID: id}
		debit, credit := payment, party
		contexts := map[string]string{
			payment.AccountID: "Payment received from " + party.DisplayName(),
			party.AccountID:   "Payment made via " + payment.DisplayName(),
		}
		if req.PaymentType == dto.PaymentGive {
			debit, credit = party, payment
			contexts = map[string]string{
				payment.AccountID: "Payment made to " + party.DisplayName(),
				party.AccountID:   "Payment received via " + payment.DisplayName(),
			}
		}
		description := firstNonEmpty(req.Notes, fmt.Sprintf("Payment %s", req.PaymentType))
		txn, err := p.add(date, debit, credit, req.Amount, description, contexts, ref)
		if err != nil {
			return err
		}
		if err := p.flush(ctx); err != nil {
			return err
		}
		posted = txn
		return nil
	})
	observePosting("create_payment", err)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create payment",
			slog.String("account_id", req.AccountID),
			slog.String("payment_type", string(req.PaymentType)))
		return nil, err
	}

	s.LogInfo(ctx, "Payment created", slog.String("transaction_id", posted.TransactionID))
	return &posted, nil
}

func (s *accountService) CreateTransfer(ctx context.Context, req dto.TransferData, userID string) (*domain.Transaction, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)
	}
	date, err := s.documentDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	var posted domain.Transaction
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		p := newPosting(tx, userID, now)
		from, err := p.account(ctx, "source", req.FromAccountID, moneyAccountTypes...)
		if err != nil {
			return err
		}
		to, err := p.account(ctx, "destination", req.ToAccountID, moneyAccountTypes...)
		if err != nil {
			return err
		}

		ref := &domain.DocumentRef{Kind: domain.TransferRef, ID: uuid.NewString()}
		description := firstNonEmpty(req.Notes, "Fund transfer")
		txn, err := p.add(date, to, from, req.Amount, description, map[string]string{
			to.AccountID:   "Transfer from " + from.DisplayName(),
			from.AccountID: "Transfer to " + to.DisplayName(),
		}, ref)
		if err != nil {
			return err
		}
		if err := p.flush(ctx); err != nil {
			return err
		}
		posted = txn
		return nil
	})
	observePosting("create_transfer", err)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create transfer",
			slog.String("from_account_id", req.FromAccountID),
			slog.String("to_account_id", req.ToAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer created", slog.String("transaction_id", posted.TransactionID))
	return &posted, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
