package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/dairyworks/farm_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

func (v *view) FindTransactionsByRef(_ context.Context, kind domain.RefKind, documentID string) ([]domain.Transaction, error) {
	return v.selectTransactions(func(t domain.Transaction) bool { return t.HasRef(kind, documentID) })
}

func (v *view) ListTransactionsByAccount(_ context.Context, accountID string, r domain.DateRange) ([]domain.Transaction, error) {
	return v.selectTransactions(func(t domain.Transaction) bool {
		return t.Involves(accountID) && r.Contains(t.Date)
	})
}

func (v *view) ListTransactionsInRange(_ context.Context, r domain.DateRange) ([]domain.Transaction, error) {
	return v.selectTransactions(func(t domain.Transaction) bool { return r.Contains(t.Date) })
}

func (v *view) SumTransactionsBefore(_ context.Context, accountID string, cutoff time.Time) (decimal.Decimal, decimal.Decimal, error) {
	debits, credits := decimal.Zero, decimal.Zero
	err := v.read(func(d *state) error {
		for _, t := range d.transactions {
			if !t.Date.Before(cutoff) {
				continue
			}
			switch accountID {
			case t.DebitAccountID:
				debits = debits.Add(t.Amount)
			case t.CreditAccountID:
				credits = credits.Add(t.Amount)
			}
		}
		return nil
	})
	return debits, credits, err
}

func (v *view) SaveTransactions(_ context.Context, transactions []domain.Transaction) error {
	return v.write(func(d *state) error {
		for _, t := range transactions {
			if _, exists := d.transactions[t.TransactionID]; exists {
				return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrConflict, t.TransactionID)
			}
		}
		for _, t := range transactions {
			d.transactions[t.TransactionID] = copyTransaction(t)
		}
		return nil
	})
}

func (v *view) DeleteTransactions(_ context.Context, transactionIDs []string) error {
	return v.write(func(d *state) error {
		for _, id := range transactionIDs {
			if _, ok := d.transactions[id]; !ok {
				return fmt.Errorf("%w: transaction %s already removed", apperrors.ErrConflict, id)
			}
		}
		for _, id := range transactionIDs {
			delete(d.transactions, id)
		}
		return nil
	})
}

func (v *view) selectTransactions(keep func(domain.Transaction) bool) ([]domain.Transaction, error) {
	out := []domain.Transaction{}
	err := v.read(func(d *state) error {
		for _, t := range d.transactions {
			if keep(t) {
				out = append(out, t)
			}
		}
		return nil
	})
	accounting.SortChronologically(out)
	return out, err
}

func copyTransaction(t domain.Transaction) domain.Transaction {
	if t.ContextDescriptions != nil {
		t.ContextDescriptions = copyMap(t.ContextDescriptions)
	}
	if t.Ref != nil {
		ref := *t.Ref
		t.Ref = &ref
	}
	return t
}
