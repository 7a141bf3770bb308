package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (v *view) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	var out *domain.Account
	err := v.read(func(d *state) error {
		acc, ok := d.accounts[accountID]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		out = &acc
		return nil
	})
	return out, err
}

func (v *view) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	err := v.read(func(d *state) error {
		for _, id := range accountIDs {
			if acc, ok := d.accounts[id]; ok {
				out[id] = acc
			}
		}
		return nil
	})
	return out, err
}

func (v *view) FindAccountByName(_ context.Context, accountType domain.AccountType, name string) (*domain.Account, error) {
	var out *domain.Account
	err := v.read(func(d *state) error {
		for _, acc := range sortedAccounts(d) {
			if acc.AccountType == accountType && acc.AccountName == name {
				found := acc
				out = &found
				return nil
			}
		}
		return fmt.Errorf("%w: %s account %q", apperrors.ErrNotFound, accountType, name)
	})
	return out, err
}

func (v *view) ListAccounts(_ context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	var out []domain.Account
	err := v.read(func(d *state) error {
		search := strings.ToLower(strings.TrimSpace(filter.Search))
		for _, acc := range sortedAccounts(d) {
			if filter.AccountType != "" && acc.AccountType != filter.AccountType {
				continue
			}
			if filter.ActiveOnly && !acc.IsActive {
				continue
			}
			if search != "" && !matchesSearch(acc, search) {
				continue
			}
			out = append(out, acc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (v *view) SaveAccount(_ context.Context, account domain.Account) error {
	return v.write(func(d *state) error {
		if _, exists := d.accounts[account.AccountID]; exists {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrConflict, account.AccountID)
		}
		d.accounts[account.AccountID] = account
		return nil
	})
}

func (v *view) UpdateAccount(_ context.Context, account domain.Account) error {
	return v.write(func(d *state) error {
		stored, exists := d.accounts[account.AccountID]
		if !exists {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, account.AccountID)
		}
		account.Balance = stored.Balance
		d.accounts[account.AccountID] = account
		return nil
	})
}

func (v *view) IncrementBalances(_ context.Context, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	return v.write(func(d *state) error {
		for id := range changes {
			if _, ok := d.accounts[id]; !ok {
				return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
			}
		}
		for id, delta := range changes {
			acc := d.accounts[id]
			acc.Balance = acc.Balance.Add(delta)
			acc.Touch(userID, now)
			d.accounts[id] = acc
		}
		return nil
	})
}

func sortedAccounts(d *state) []domain.Account {
	out := make([]domain.Account, 0, len(d.accounts))
	for _, acc := range d.accounts {
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AccountType != out[j].AccountType {
			return out[i].AccountType < out[j].AccountType
		}
		if out[i].AccountName != out[j].AccountName {
			return out[i].AccountName < out[j].AccountName
		}
		return out[i].AccountID < out[j].AccountID
	})
	return out
}

func matchesSearch(acc domain.Account, search string) bool {
	for _, field := range []string{acc.AccountName, acc.CustomerName, acc.SupplierName, acc.Phone} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	if items == nil {
		return []T{}
	}
	return items
}
