package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	portsrepo "github.com/dairyworks/farm_ledger/internal/core/ports/repositories"
	"github.com/dairyworks/farm_ledger/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// inventoryRepository owns item stock, stock movements and document sequences.
type inventoryRepository struct {
	BaseRepository
}

var (
	_ portsrepo.InventoryRepository = (*inventoryRepository)(nil)
	_ portsrepo.SequenceRepository  = (*inventoryRepository)(nil)
)

const movementColumns = `movement_id, item_kind, item_id, ref_kind, ref_id, ref_number, quantity,
	previous_stock, new_stock, movement_date, created_by, created_at`

// stockTable maps an item kind to its table and columns.
type stockTable struct {
	table, idColumn, stockColumn string
}

func stockTableFor(kind domain.ItemKind) (stockTable, error) {
	switch kind {
	case domain.ProductItem:
		return stockTable{table: "products", idColumn: "product_id", stockColumn: "current_stock"}, nil
	case domain.LivestockItem:
		return stockTable{table: "livestock", idColumn: "livestock_id", stockColumn: "quantity"}, nil
	}
	return stockTable{}, fmt.Errorf("%w: unknown item kind %q", apperrors.ErrValidation, kind)
}

func (r *inventoryRepository) FindItem(ctx context.Context, ref domain.ItemRef) (domain.Item, error) {
	what := fmt.Sprintf("%s %s", ref.Kind, ref.ID)
	switch ref.Kind {
	case domain.ProductItem:
		rows, err := r.db.Query(ctx, `SELECT product_id, name, unit, current_stock, sale_price FROM products WHERE product_id = $1;`, ref.ID)
		m, err := collectOne[models.Product](rows, err, what)
		if err != nil {
			return nil, err
		}
		return domain.Product{ProductID: m.ProductID, Name: m.Name, Unit: m.Unit, CurrentStock: m.CurrentStock, SalePrice: m.SalePrice}, nil
	case domain.LivestockItem:
		rows, err := r.db.Query(ctx, `SELECT livestock_id, tag_number, category, quantity FROM livestock WHERE livestock_id = $1;`, ref.ID)
		m, err := collectOne[models.Livestock](rows, err, what)
		if err != nil {
			return nil, err
		}
		return domain.Livestock{LivestockID: m.LivestockID, TagNumber: m.TagNumber, Category: m.Category, Quantity: m.Quantity}, nil
	}
	return nil, fmt.Errorf("%w: unknown item kind %q", apperrors.ErrValidation, ref.Kind)
}

// AdjustStock moves stock by delta in one guarded statement so concurrent
// postings can never drive it below zero.
func (r *inventoryRepository) AdjustStock(ctx context.Context, ref domain.ItemRef, delta decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	t, err := stockTableFor(ref.Kind)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	query := fmt.Sprintf(`
		UPDATE %[1]s SET %[3]s = %[3]s + $2
		WHERE %[2]s = $1 AND %[3]s + $2 >= 0
		RETURNING %[3]s - $2, %[3]s;
	`, t.table, t.idColumn, t.stockColumn)

	var previous, current decimal.Decimal
	err = r.db.QueryRow(ctx, query, ref.ID, delta).Scan(&previous, &current)
	if err == nil {
		return previous, current, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, decimal.Zero, storageError(fmt.Sprintf("failed to adjust stock of %s %s", ref.Kind, ref.ID), err)
	}

	// The guard rejected the update: tell a missing item from a short one.
	item, findErr := r.FindItem(ctx, ref)
	if findErr != nil {
		return decimal.Zero, decimal.Zero, findErr
	}
	return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %s has %s, needs %s", apperrors.ErrInsufficientStock,
		item.DisplayName(), item.AvailableStock().String(), delta.Neg().String())
}

func (r *inventoryRepository) SaveStockMovements(ctx context.Context, movements []domain.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, m := range movements {
		batch.Queue(query,
			m.MovementID, string(m.Item.Kind), m.Item.ID, string(m.Ref.Kind), m.Ref.ID, m.Ref.Number, m.Quantity,
			m.PreviousStock, m.NewStock, m.Date, m.CreatedBy, m.CreatedAt,
		)
	}
	return execBatch(ctx, r.db, batch, "failed to save stock movement")
}

func (r *inventoryRepository) FindStockMovementsByRef(ctx context.Context, kind domain.RefKind, documentID string) ([]domain.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM stock_movements
		WHERE ref_kind = $1 AND ref_id = $2
		ORDER BY created_at, movement_id;
	`
	rows, err := r.db.Query(ctx, query, string(kind), documentID)
	modelMovements, err := collectAll[models.StockMovement](rows, err, "stock movements")
	if err != nil {
		return nil, err
	}
	out := make([]domain.StockMovement, 0, len(modelMovements))
	for _, m := range modelMovements {
		out = append(out, domain.StockMovement{
			MovementID:    m.MovementID,
			Item:          domain.ItemRef{Kind: domain.ItemKind(m.ItemKind), ID: m.ItemID},
			Ref:           domain.DocumentRef{Kind: domain.RefKind(m.RefKind), ID: m.RefID, Number: m.RefNumber},
			Quantity:      m.Quantity,
			PreviousStock: m.PreviousStock,
			NewStock:      m.NewStock,
			Date:          m.Date,
			CreatedBy:     m.CreatedBy,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out, nil
}

func (r *inventoryRepository) DeleteStockMovements(ctx context.Context, movementIDs []string) error {
	if len(movementIDs) == 0 {
		return nil
	}
	ct, err := r.db.Exec(ctx, `DELETE FROM stock_movements WHERE movement_id = ANY($1);`, movementIDs)
	if err != nil {
		return storageError("failed to delete stock movements", err)
	}
	if ct.RowsAffected() != int64(len(movementIDs)) {
		return fmt.Errorf("%w: deleted %d of %d stock movements", apperrors.ErrConflict, ct.RowsAffected(), len(movementIDs))
	}
	return nil
}

// NextNumber increments the named counter and returns the new value.
func (r *inventoryRepository) NextNumber(ctx context.Context, name domain.SequenceName) (int64, error) {
	query := `
		INSERT INTO sequences (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		RETURNING value;
	`
	var next int64
	if err := r.db.QueryRow(ctx, query, string(name)).Scan(&next); err != nil {
		return 0, apperrors.NewAppError(500, fmt.Sprintf("failed to advance sequence %s", name), err)
	}
	return next, nil
}
