package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	portsrepo "github.com/dairyworks/farm_ledger/internal/core/ports/repositories"
	"github.com/dairyworks/farm_ledger/internal/models"
	"github.com/dairyworks/farm_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// documentRepository stores sales, purchases and the day book vouchers.
type documentRepository struct {
	BaseRepository
}

var (
	_ portsrepo.SaleRepository     = (*documentRepository)(nil)
	_ portsrepo.PurchaseRepository = (*documentRepository)(nil)
	_ portsrepo.VoucherRepository  = (*documentRepository)(nil)
)

const saleColumns = `sale_id, sale_number, customer_account_id, sale_date, items, discount, grand_total,
	paid_amount, payment_account_id, notes, created_at, created_by, last_updated_at, last_updated_by, version`

const purchaseColumns = `purchase_id, purchase_number, supplier_account_id, purchase_date, items, discount, grand_total,
	paid_amount, payment_account_id, notes, created_at, created_by, last_updated_at, last_updated_by, version`

const collectionColumns = `collection_id, collection_number, customer_account_id, payment_account_id, amount,
	collection_date, notes, created_at, created_by, last_updated_at, last_updated_by, version`

const expenseColumns = `expense_id, expense_number, expense_account_id, payment_account_id, amount, category,
	expense_date, notes, created_at, created_by, last_updated_at, last_updated_by, version`

// collectOne scans a single row into T, mapping no rows to ErrNotFound.
func collectOne[T any](rows pgx.Rows, err error, what string) (T, error) {
	var zero T
	if err != nil {
		return zero, apperrors.NewAppError(500, "failed to query "+what, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
		}
		return zero, apperrors.NewAppError(500, "failed to scan "+what, err)
	}
	return m, nil
}

func collectAll[T any](rows pgx.Rows, err error, what string) ([]T, error) {
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query "+what, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan "+what, err)
	}
	return out, nil
}

func (r *documentRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	items, err := mapping.EncodeLineItems(sale.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = r.db.Exec(ctx, query,
		sale.SaleID, sale.SaleNumber, sale.CustomerAccountID, sale.Date, items, sale.Discount, sale.GrandTotal,
		sale.PaidAmount, sale.PaymentAccountID, sale.Notes,
		sale.CreatedAt, sale.CreatedBy, sale.LastUpdatedAt, sale.LastUpdatedBy, sale.Version,
	)
	if err != nil {
		return storageError(fmt.Sprintf("failed to save sale %s", sale.SaleID), err)
	}
	return nil
}

func (r *documentRepository) UpdateSale(ctx context.Context, sale domain.Sale) error {
	items, err := mapping.EncodeLineItems(sale.Items)
	if err != nil {
		return err
	}
	query := `
		UPDATE sales
		SET customer_account_id = $2, sale_date = $3, items = $4, discount = $5, grand_total = $6,
			paid_amount = $7, payment_account_id = $8, notes = $9,
			last_updated_at = $10, last_updated_by = $11, version = $12
		WHERE sale_id = $1 AND version = $12 - 1;
	`
	ct, err := r.db.Exec(ctx, query,
		sale.SaleID, sale.CustomerAccountID, sale.Date, items, sale.Discount, sale.GrandTotal,
		sale.PaidAmount, sale.PaymentAccountID, sale.Notes,
		sale.LastUpdatedAt, sale.LastUpdatedBy, sale.Version,
	)
	if err != nil {
		return storageError(fmt.Sprintf("failed to update sale %s", sale.SaleID), err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: sale %s is missing or changed since it was read", apperrors.ErrConflict, sale.SaleID)
	}
	return nil
}

func (r *documentRepository) DeleteSale(ctx context.Context, saleID string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM sales WHERE sale_id = $1;`, saleID)
	if err != nil {
		return storageError(fmt.Sprintf("failed to delete sale %s", saleID), err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
	}
	return nil
}

func (r *documentRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	rows, err := r.db.Query(ctx, `SELECT `+saleColumns+` FROM sales WHERE sale_id = $1;`, saleID)
	m, err := collectOne[models.Sale](rows, err, "sale "+saleID)
	if err != nil {
		return nil, err
	}
	sale, err := mapping.ToDomainSale(m)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// LockSaleByID reads the sale row FOR UPDATE, so a concurrent edit of the same sale waits
// for this transaction to finish and then sees its postings.
func (r *documentRepository) LockSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	rows, err := r.db.Query(ctx, `SELECT `+saleColumns+` FROM sales WHERE sale_id = $1 FOR UPDATE;`, saleID)
	m, err := collectOne[models.Sale](rows, err, "sale "+saleID)
	if err != nil {
		return nil, err
	}
	sale, err := mapping.ToDomainSale(m)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *documentRepository) ListSalesByDate(ctx context.Context, dr domain.DateRange) ([]domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_date BETWEEN $1 AND $2 ORDER BY sale_date, sale_number;`
	rows, err := r.db.Query(ctx, query, dr.Start, dr.End)
	modelSales, err := collectAll[models.Sale](rows, err, "sales")
	if err != nil {
		return nil, err
	}
	sales := make([]domain.Sale, 0, len(modelSales))
	for _, m := range modelSales {
		sale, err := mapping.ToDomainSale(m)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, nil
}

func (r *documentRepository) SavePurchase(ctx context.Context, purchase domain.Purchase) error {
	items, err := mapping.EncodeLineItems(purchase.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = r.db.Exec(ctx, query,
		purchase.PurchaseID, purchase.PurchaseNumber, purchase.SupplierAccountID, purchase.Date, items,
		purchase.Discount, purchase.GrandTotal, purchase.PaidAmount, purchase.PaymentAccountID, purchase.Notes,
		purchase.CreatedAt, purchase.CreatedBy, purchase.LastUpdatedAt, purchase.LastUpdatedBy, purchase.Version,
	)
	if err != nil {
		return storageError(fmt.Sprintf("failed to save purchase %s", purchase.PurchaseID), err)
	}
	return nil
}

func (r *documentRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	rows, err := r.db.Query(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE purchase_id = $1;`, purchaseID)
	m, err := collectOne[models.Purchase](rows, err, "purchase "+purchaseID)
	if err != nil {
		return nil, err
	}
	purchase, err := mapping.ToDomainPurchase(m)
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *documentRepository) ListPurchasesByDate(ctx context.Context, dr domain.DateRange) ([]domain.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE purchase_date BETWEEN $1 AND $2 ORDER BY purchase_date, purchase_number;`
	rows, err := r.db.Query(ctx, query, dr.Start, dr.End)
	modelPurchases, err := collectAll[models.Purchase](rows, err, "purchases")
	if err != nil {
		return nil, err
	}
	purchases := make([]domain.Purchase, 0, len(modelPurchases))
	for _, m := range modelPurchases {
		purchase, err := mapping.ToDomainPurchase(m)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, purchase)
	}
	return purchases, nil
}

func (r *documentRepository) SaveCollection(ctx context.Context, c domain.Collection) error {
	query := `
		INSERT INTO collections (` + collectionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		c.CollectionID, c.CollectionNumber, c.CustomerAccountID, c.PaymentAccountID, c.Amount, c.Date, c.Notes,
		c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy, c.Version,
	)
	if err != nil {
		return storageError(fmt.Sprintf("failed to save collection %s", c.CollectionID), err)
	}
	return nil
}

func (r *documentRepository) FindCollectionByID(ctx context.Context, collectionID string) (*domain.Collection, error) {
	rows, err := r.db.Query(ctx, `SELECT `+collectionColumns+` FROM collections WHERE collection_id = $1;`, collectionID)
	m, err := collectOne[models.Collection](rows, err, "collection "+collectionID)
	if err != nil {
		return nil, err
	}
	collection := mapping.ToDomainCollection(m)
	return &collection, nil
}

func (r *documentRepository) SaveExpense(ctx context.Context, e domain.ExpenseVoucher) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		e.ExpenseID, e.ExpenseNumber, e.ExpenseAccountID, e.PaymentAccountID, e.Amount, e.Category, e.Date, e.Notes,
		e.CreatedAt, e.CreatedBy, e.LastUpdatedAt, e.LastUpdatedBy, e.Version,
	)
	if err != nil {
		return storageError(fmt.Sprintf("failed to save expense %s", e.ExpenseID), err)
	}
	return nil
}

func (r *documentRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.ExpenseVoucher, error) {
	rows, err := r.db.Query(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE expense_id = $1;`, expenseID)
	m, err := collectOne[models.Expense](rows, err, "expense "+expenseID)
	if err != nil {
		return nil, err
	}
	expense := mapping.ToDomainExpense(m)
	return &expense, nil
}
