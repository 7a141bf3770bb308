package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	portsrepo "github.com/dairyworks/farm_ledger/internal/core/ports/repositories"
	"github.com/dairyworks/farm_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// posting collects the transactions, balance deltas and stock movements of one business
// event inside a unit of work and writes them out in flush.
type posting struct {
	tx       portsrepo.Store
	userID   string
	now      time.Time
	accounts map[string]domain.Account
	txns     []domain.Transaction
	changes  map[string]decimal.Decimal
	moves    []domain.StockMovement
}

func newPosting(tx portsrepo.Store, userID string, now time.Time) *posting {
	return &posting{
		tx:       tx,
		userID:   userID,
		now:      now,
		accounts: make(map[string]domain.Account),
		changes:  make(map[string]decimal.Decimal),
	}
}

// account resolves a required account. A missing, inactive or wrongly typed account is a
// validation failure. With no allowed types any type is accepted.
func (p *posting) account(ctx context.Context, role, accountID string, allowed ...domain.AccountType) (domain.Account, error) {
	if accountID == "" {
		return domain.Account{}, fmt.Errorf("%w: %s account is required", apperrors.ErrValidation, role)
	}
	acc, ok := p.accounts[accountID]
	if !ok {
		found, err := p.tx.Accounts().FindAccountByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return domain.Account{}, fmt.Errorf("%w: %s account %s not found", apperrors.ErrValidation, role, accountID)
			}
			return domain.Account{}, err
		}
		acc = *found
	}
	if !acc.IsActive {
		return domain.Account{}, fmt.Errorf("%w: %s account %s is inactive", apperrors.ErrValidation, role, accountID)
	}
	if len(allowed) > 0 && !typeIn(acc.AccountType, allowed) {
		return domain.Account{}, fmt.Errorf("%w: %s account %s has type %s, expected one of %v",
			apperrors.ErrValidation, role, accountID, acc.AccountType, allowed)
	}
	p.accounts[accountID] = acc
	return acc, nil
}

// wellKnownAccount resolves the account of accountType called name, falling back to the
// first active account of that type.
func (p *posting) wellKnownAccount(ctx context.Context, accountType domain.AccountType, name string) (domain.Account, error) {
	acc, err := resolveWellKnownAccount(ctx, p.tx, accountType, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Account{}, fmt.Errorf("%w: no %s account configured", apperrors.ErrValidation, accountType)
		}
		return domain.Account{}, err
	}
	p.accounts[acc.AccountID] = *acc
	return *acc, nil
}

// add records a transaction between two accounts already resolved through account.
// amount is rounded to domain.MoneyPlaces so balance deltas match the stored rows.
func (p *posting) add(date time.Time, debit, credit domain.Account, amount decimal.Decimal, description string, contexts map[string]string, ref *domain.DocumentRef) (domain.Transaction, error) {
	txn := domain.Transaction{
		TransactionID:       uuid.NewString(),
		Date:                date,
		DebitAccountID:      debit.AccountID,
		CreditAccountID:     credit.AccountID,
		Amount:              domain.RoundMoney(amount),
		Description:         description,
		ContextDescriptions: contexts,
		Ref:                 ref,
		// offset keeps the transactions of one posting in creation order
		CreatedAt:           p.now.Add(time.Duration(len(p.txns)) * time.Microsecond),
		CreatedBy:           p.userID,
	}
	if err := txn.Validate(); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	changes, err := accounting.BalanceChanges(txn, p.accounts)
	if err != nil {
		return domain.Transaction{}, err
	}
	accounting.MergeChanges(p.changes, changes)
	p.txns = append(p.txns, txn)
	return txn, nil
}

// item loads the stock item behind ref. Unknown items are a validation failure.
func (p *posting) item(ctx context.Context, ref domain.ItemRef) (domain.Item, error) {
	if !ref.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown item type %q", apperrors.ErrValidation, ref.Kind)
	}
	item, err := p.tx.Inventory().FindItem(ctx, ref)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s %s not found", apperrors.ErrValidation, ref.Kind, ref.ID)
		}
		return nil, err
	}
	return item, nil
}

// moveStock adjusts an item's stock by delta and records the movement for doc.
func (p *posting) moveStock(ctx context.Context, ref domain.ItemRef, delta decimal.Decimal, doc domain.DocumentRef, date time.Time) error {
	previous, current, err := p.tx.Inventory().AdjustStock(ctx, ref, delta)
	if err != nil {
		return err
	}
	p.moves = append(p.moves, domain.StockMovement{
		MovementID:    uuid.NewString(),
		Item:          ref,
		Ref:           doc,
		Quantity:      delta,
		PreviousStock: previous,
		NewStock:      current,
		Date:          date,
		CreatedBy:     p.userID,
		CreatedAt:     p.now,
	})
	return nil
}

// flush writes the collected transactions, balance deltas and stock movements.
func (p *posting) flush(ctx context.Context) error {
	if len(p.txns) > 0 {
		if err := p.tx.Transactions().SaveTransactions(ctx, p.txns); err != nil {
			return err
		}
	}
	if len(p.changes) > 0 {
		if err := p.tx.Accounts().IncrementBalances(ctx, p.changes, p.userID, p.now); err != nil {
			return err
		}
	}
	if len(p.moves) > 0 {
		if err := p.tx.Inventory().SaveStockMovements(ctx, p.moves); err != nil {
			return err
		}
	}
	p.txns, p.moves = nil, nil
	p.changes = make(map[string]decimal.Decimal)
	return nil
}

// reverse undoes every posting made for a document: balance effects are negated, stock is
// restored from the recorded movements, and both the transactions and the movements are
// deleted. It does not touch the document itself.
func reverse(ctx context.Context, tx portsrepo.Store, kind domain.RefKind, documentID, userID string, now time.Time) error {
	txns, err := tx.Transactions().FindTransactionsByRef(ctx, kind, documentID)
	if err != nil {
		return err
	}
	if len(txns) > 0 {
		ids := make([]string, 0, len(txns)*2)
		for _, t := range txns {
			ids = append(ids, t.DebitAccountID, t.CreditAccountID)
		}
		accounts, err := tx.Accounts().FindAccountsByIDs(ctx, ids)
		if err != nil {
			return err
		}
		changes := make(map[string]decimal.Decimal)
		txnIDs := make([]string, 0, len(txns))
		for _, t := range txns {
			delta, err := accounting.BalanceChanges(t, accounts)
			if err != nil {
				return fmt.Errorf("reversing transaction %s: %w", t.TransactionID, err)
			}
			accounting.MergeChanges(changes, delta)
			txnIDs = append(txnIDs, t.TransactionID)
		}
		for id, delta := range changes {
			changes[id] = delta.Neg()
		}
		if err := tx.Accounts().IncrementBalances(ctx, changes, userID, now); err != nil {
			return err
		}
		if err := tx.Transactions().DeleteTransactions(ctx, txnIDs); err != nil {
			return err
		}
	}

	moves, err := tx.Inventory().FindStockMovementsByRef(ctx, kind, documentID)
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		return nil
	}
	moveIDs := make([]string, 0, len(moves))
	for _, m := range moves {
		if _, _, err := tx.Inventory().AdjustStock(ctx, m.Item, m.Quantity.Neg()); err != nil {
			return err
		}
		moveIDs = append(moveIDs, m.MovementID)
	}
	return tx.Inventory().DeleteStockMovements(ctx, moveIDs)
}

// resolveWellKnownAccount looks an active account up by name, falling back to the first
// active account of the type.
func resolveWellKnownAccount(ctx context.Context, store portsrepo.Store, accountType domain.AccountType, name string) (*domain.Account, error) {
	if name != "" {
		acc, err := store.Accounts().FindAccountByName(ctx, accountType, name)
		switch {
		case err == nil && acc.IsActive:
			return acc, nil
		case err != nil && !errors.Is(err, apperrors.ErrNotFound):
			return nil, err
		}
	}
	accounts, err := store.Accounts().ListAccounts(ctx, domain.AccountFilter{AccountType: accountType, ActiveOnly: true, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: no active %s account", apperrors.ErrNotFound, accountType)
	}
	return &accounts[0], nil
}

func typeIn(t domain.AccountType, allowed []domain.AccountType) bool {
	for _, a := range allowed {
		if t == a {
			return true
		}
	}
	return false
}

var moneyAccountTypes = []domain.AccountType{domain.CashAccount, domain.BankAccount}

// lineInput is a requested line before it is priced.
type lineInput struct {
	Ref      domain.ItemRef
	Quantity decimal.Decimal
	Rate     decimal.Decimal
}

// priceLines validates request lines against inventory and prices them.
func (p *posting) priceLines(ctx context.Context, lines []lineInput) ([]domain.LineItem, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: at least one line item is required", apperrors.ErrValidation)
	}
	items := make([]domain.LineItem, 0, len(lines))
	for i, l := range lines {
		if !l.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: line %d quantity must be positive", apperrors.ErrValidation, i+1)
		}
		if !l.Quantity.Equal(l.Quantity.Round(domain.QuantityPlaces)) {
			return nil, fmt.Errorf("%w: line %d quantity allows at most %d decimal places", apperrors.ErrValidation, i+1, domain.QuantityPlaces)
		}
		if l.Rate.IsNegative() {
			return nil, fmt.Errorf("%w: line %d rate must not be negative", apperrors.ErrValidation, i+1)
		}
		item, err := p.item(ctx, l.Ref)
		if err != nil {
			return nil, err
		}
		li := domain.LineItem{Item: l.Ref, Name: item.DisplayName(), Quantity: l.Quantity, Rate: l.Rate}
		li.Amount = li.LineTotal()
		items = append(items, li)
	}
	return items, nil
}

// documentTotal returns Σ line totals − discount, which must be positive.
func documentTotal(items []domain.LineItem, discount decimal.Decimal) (decimal.Decimal, error) {
	if discount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: discount must not be negative", apperrors.ErrValidation)
	}
	total := domain.SumLineItems(items).Sub(domain.RoundMoney(discount))
	if !total.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: grand total must be positive, got %s", apperrors.ErrValidation, total.String())
	}
	return total, nil
}
