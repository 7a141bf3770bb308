package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID    string          `db:"product_id"`
	Name         string          `db:"name"`
	Unit         string          `db:"unit"`
	CurrentStock decimal.Decimal `db:"current_stock"`
	SalePrice    decimal.Decimal `db:"sale_price"`
}

type Livestock struct {
	LivestockID string          `db:"livestock_id"`
	TagNumber   string          `db:"tag_number"`
	Category    string          `db:"category"`
	Quantity    decimal.Decimal `db:"quantity"`
}

// StockMovement is the stock_movements table row.
type StockMovement struct {
	MovementID    string          `db:"movement_id"`
	ItemKind      string          `db:"item_kind"`
	ItemID        string          `db:"item_id"`
	RefKind       string          `db:"ref_kind"`
	RefID         string          `db:"ref_id"`
	RefNumber     string          `db:"ref_number"`
	Quantity      decimal.Decimal `db:"quantity"`
	PreviousStock decimal.Decimal `db:"previous_stock"`
	NewStock      decimal.Decimal `db:"new_stock"`
	Date          time.Time       `db:"movement_date"`
	CreatedBy     string          `db:"created_by"`
	CreatedAt     time.Time       `db:"created_at"`
}
