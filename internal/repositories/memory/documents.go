package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
)

func (v *view) SaveSale(_ context.Context, sale domain.Sale) error {
	return v.write(func(d *state) error {
		if _, exists := d.sales[sale.SaleID]; exists {
			return fmt.Errorf("%w: sale %s already exists", apperrors.ErrConflict, sale.SaleID)
		}
		sale.Items = append([]domain.LineItem(nil), sale.Items...)
		d.sales[sale.SaleID] = sale
		return nil
	})
}

func (v *view) UpdateSale(_ context.Context, sale domain.Sale) error {
	return v.write(func(d *state) error {
		stored, exists := d.sales[sale.SaleID]
		if !exists {
			return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, sale.SaleID)
		}
		if stored.Version != sale.Version-1 {
			return fmt.Errorf("%w: sale %s changed since it was read", apperrors.ErrConflict, sale.SaleID)
		}
		sale.Items = append([]domain.LineItem(nil), sale.Items...)
		d.sales[sale.SaleID] = sale
		return nil
	})
}

func (v *view) DeleteSale(_ context.Context, saleID string) error {
	return v.write(func(d *state) error {
		if _, exists := d.sales[saleID]; !exists {
			return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
		}
		delete(d.sales, saleID)
		return nil
	})
}

func (v *view) FindSaleByID(_ context.Context, saleID string) (*domain.Sale, error) {
	var out *domain.Sale
	err := v.read(func(d *state) error {
		sale, ok := d.sales[saleID]
		if !ok {
			return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
		}
		sale.Items = append([]domain.LineItem(nil), sale.Items...)
		out = &sale
		return nil
	})
	return out, err
}

// LockSaleByID is FindSaleByID: units of work on the memory store are already serialised.
func (v *view) LockSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	return v.FindSaleByID(ctx, saleID)
}

func (v *view) ListSalesByDate(_ context.Context, r domain.DateRange) ([]domain.Sale, error) {
	out := []domain.Sale{}
	err := v.read(func(d *state) error {
		for _, sale := range d.sales {
			if r.Contains(sale.Date) {
				out = append(out, sale)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].SaleNumber < out[j].SaleNumber
	})
	return out, err
}

func (v *view) SavePurchase(_ context.Context, purchase domain.Purchase) error {
	return v.write(func(d *state) error {
		if _, exists := d.purchases[purchase.PurchaseID]; exists {
			return fmt.Errorf("%w: purchase %s already exists", apperrors.ErrConflict, purchase.PurchaseID)
		}
		purchase.Items = append([]domain.LineItem(nil), purchase.Items...)
		d.purchases[purchase.PurchaseID] = purchase
		return nil
	})
}

func (v *view) FindPurchaseByID(_ context.Context, purchaseID string) (*domain.Purchase, error) {
	var out *domain.Purchase
	err := v.read(func(d *state) error {
		purchase, ok := d.purchases[purchaseID]
		if !ok {
			return fmt.Errorf("%w: purchase %s", apperrors.ErrNotFound, purchaseID)
		}
		purchase.Items = append([]domain.LineItem(nil), purchase.Items...)
		out = &purchase
		return nil
	})
	return out, err
}

func (v *view) ListPurchasesByDate(_ context.Context, r domain.DateRange) ([]domain.Purchase, error) {
	out := []domain.Purchase{}
	err := v.read(func(d *state) error {
		for _, p := range d.purchases {
			if r.Contains(p.Date) {
				out = append(out, p)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].PurchaseNumber < out[j].PurchaseNumber
	})
	return out, err
}

func (v *view) SaveCollection(_ context.Context, collection domain.Collection) error {
	return v.write(func(d *state) error {
		if _, exists := d.collections[collection.CollectionID]; exists {
			return fmt.Errorf("%w: collection %s already exists", apperrors.ErrConflict, collection.CollectionID)
		}
		d.collections[collection.CollectionID] = collection
		return nil
	})
}

func (v *view) FindCollectionByID(_ context.Context, collectionID string) (*domain.Collection, error) {
	var out *domain.Collection
	err := v.read(func(d *state) error {
		c, ok := d.collections[collectionID]
		if !ok {
			return fmt.Errorf("%w: collection %s", apperrors.ErrNotFound, collectionID)
		}
		out = &c
		return nil
	})
	return out, err
}

func (v *view) SaveExpense(_ context.Context, expense domain.ExpenseVoucher) error {
	return v.write(func(d *state) error {
		if _, exists := d.expenses[expense.ExpenseID]; exists {
			return fmt.Errorf("%w: expense %s already exists", apperrors.ErrConflict, expense.ExpenseID)
		}
		d.expenses[expense.ExpenseID] = expense
		return nil
	})
}

func (v *view) FindExpenseByID(_ context.Context, expenseID string) (*domain.ExpenseVoucher, error) {
	var out *domain.ExpenseVoucher
	err := v.read(func(d *state) error {
		e, ok := d.expenses[expenseID]
		if !ok {
			return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
		}
		out = &e
		return nil
	})
	return out, err
}
