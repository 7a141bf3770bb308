package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (v *view) FindItem(_ context.Context, ref domain.ItemRef) (domain.Item, error) {
	var out domain.Item
	err := v.read(func(d *state) error {
		item, err := lookupItem(d, ref)
		out = item
		return err
	})
	return out, err
}

func (v *view) AdjustStock(_ context.Context, ref domain.ItemRef, delta decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	var previous, current decimal.Decimal
	err := v.write(func(d *state) error {
		item, err := lookupItem(d, ref)
		if err != nil {
			return err
		}
		previous = item.AvailableStock()
		current = previous.Add(delta)
		if current.IsNegative() {
			return fmt.Errorf("%w: %s has %s, needs %s", apperrors.ErrInsufficientStock,
				item.DisplayName(), previous.String(), delta.Neg().String())
		}
		switch it := item.(type) {
		case domain.Product:
			it.CurrentStock = current
			d.products[it.ProductID] = it
		case domain.Livestock:
			it.Quantity = current
			d.livestock[it.LivestockID] = it
		}
		return nil
	})
	return previous, current, err
}

func (v *view) SaveStockMovements(_ context.Context, movements []domain.StockMovement) error {
	return v.write(func(d *state) error {
		for _, m := range movements {
			d.movements[m.MovementID] = m
		}
		return nil
	})
}

func (v *view) FindStockMovementsByRef(_ context.Context, kind domain.RefKind, documentID string) ([]domain.StockMovement, error) {
	out := []domain.StockMovement{}
	err := v.read(func(d *state) error {
		for _, m := range d.movements {
			if m.Ref.Kind == kind && m.Ref.ID == documentID {
				out = append(out, m)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].MovementID < out[j].MovementID
	})
	return out, err
}

func (v *view) DeleteStockMovements(_ context.Context, movementIDs []string) error {
	return v.write(func(d *state) error {
		for _, id := range movementIDs {
			if _, ok := d.movements[id]; !ok {
				return fmt.Errorf("%w: stock movement %s already removed", apperrors.ErrConflict, id)
			}
		}
		for _, id := range movementIDs {
			delete(d.movements, id)
		}
		return nil
	})
}

func (v *view) NextNumber(_ context.Context, name domain.SequenceName) (int64, error) {
	var next int64
	err := v.write(func(d *state) error {
		d.sequences[name]++
		next = d.sequences[name]
		return nil
	})
	return next, err
}

func lookupItem(d *state, ref domain.ItemRef) (domain.Item, error) {
	switch ref.Kind {
	case domain.ProductItem:
		if p, ok := d.products[ref.ID]; ok {
			return p, nil
		}
	case domain.LivestockItem:
		if l, ok := d.livestock[ref.ID]; ok {
			return l, nil
		}
	default:
		return nil, fmt.Errorf("%w: unknown item kind %q", apperrors.ErrValidation, ref.Kind)
	}
	return nil, fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, ref.Kind, ref.ID)
}
