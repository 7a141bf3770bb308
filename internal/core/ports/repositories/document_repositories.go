package repositories

import (
	"context"

	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleRepository persists sale documents.
type SaleRepository interface {
	SaveSale(ctx context.Context, sale domain.Sale) error
	// UpdateSale writes sale if the stored row is still at sale.Version-1 and fails with
	// apperrors.ErrConflict otherwise.
	UpdateSale(ctx context.Context, sale domain.Sale) error
	DeleteSale(ctx context.Context, saleID string) error
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	// LockSaleByID loads a sale and holds it against concurrent edits until the unit of
	// work ends. Outside a unit of work it behaves like FindSaleByID.
	LockSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSalesByDate(ctx context.Context, r domain.DateRange) ([]domain.Sale, error)
}

// PurchaseRepository persists purchase documents.
type PurchaseRepository interface {
	SavePurchase(ctx context.Context, purchase domain.Purchase) error
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)
	ListPurchasesByDate(ctx context.Context, r domain.DateRange) ([]domain.Purchase, error)
}

// VoucherRepository persists collections and expense vouchers raised from the day book.
type VoucherRepository interface {
	SaveCollection(ctx context.Context, collection domain.Collection) error
	FindCollectionByID(ctx context.Context, collectionID string) (*domain.Collection, error)
	SaveExpense(ctx context.Context, expense domain.ExpenseVoucher) error
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.ExpenseVoucher, error)
}

// InventoryRepository is the stock capability of products and livestock. Implementations
// dispatch on ItemRef.Kind to the matching inventory.
type InventoryRepository interface {
	// FindItem loads the product or livestock group behind ref.
	FindItem(ctx context.Context, ref domain.ItemRef) (domain.Item, error)

	// AdjustStock adds delta to the item's stock in one atomic conditional update and
	// returns the stock before and after. It fails with apperrors.ErrInsufficientStock
	// when the result would be negative, leaving stock untouched.
	AdjustStock(ctx context.Context, ref domain.ItemRef, delta decimal.Decimal) (previous decimal.Decimal, current decimal.Decimal, err error)

	SaveStockMovements(ctx context.Context, movements []domain.StockMovement) error
	FindStockMovementsByRef(ctx context.Context, kind domain.RefKind, documentID string) ([]domain.StockMovement, error)
	DeleteStockMovements(ctx context.Context, movementIDs []string) error
}

// SequenceRepository hands out monotonic document numbers.
type SequenceRepository interface {
	// NextNumber atomically increments the named counter and returns the new value.
	NextNumber(ctx context.Context, name domain.SequenceName) (int64, error)
}
