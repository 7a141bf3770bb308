package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemKind selects which inventory an item belongs to.
type ItemKind string

const (
	ProductItem   ItemKind = "PRODUCT"
	LivestockItem ItemKind = "LIVESTOCK"
)

// IsValid reports whether k is a known item kind.
func (k ItemKind) IsValid() bool {
	return k == ProductItem || k == LivestockItem
}

// ItemRef identifies a stock-carrying item.
type ItemRef struct {
	Kind ItemKind `json:"kind"`
	ID   string   `json:"id"`
}

// Item is implemented by every stock-carrying variant.
type Item interface {
	Ref() ItemRef
	DisplayName() string
	AvailableStock() decimal.Decimal
}

// Product is a stocked farm product such as milk or feed.
type Product struct {
	ProductID    string          `json:"productID"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	SalePrice    decimal.Decimal `json:"salePrice"`
}

func (p Product) Ref() ItemRef                    { return ItemRef{Kind: ProductItem, ID: p.ProductID} }
func (p Product) DisplayName() string             { return p.Name }
func (p Product) AvailableStock() decimal.Decimal { return p.CurrentStock }

// Livestock is a herd group counted by head.
type Livestock struct {
	LivestockID string          `json:"livestockID"`
	TagNumber   string          `json:"tagNumber"`
	Category    string          `json:"category"`
	Quantity    decimal.Decimal `json:"quantity"`
}

func (l Livestock) Ref() ItemRef { return ItemRef{Kind: LivestockItem, ID: l.LivestockID} }
func (l Livestock) DisplayName() string {
	if l.Category == "" {
		return l.TagNumber
	}
	return l.Category + " " + l.TagNumber
}
func (l Livestock) AvailableStock() decimal.Decimal { return l.Quantity }

var (
	_ Item = Product{}
	_ Item = Livestock{}
)

// StockMovement records one stock change caused by a document.
type StockMovement struct {
	MovementID    string          `json:"movementID"`
	Item          ItemRef         `json:"item"`
	Ref           DocumentRef     `json:"ref"`
	Quantity      decimal.Decimal `json:"quantity"` // signed: negative leaves stock
	PreviousStock decimal.Decimal `json:"previousStock"`
	NewStock      decimal.Decimal `json:"newStock"`
	Date          time.Time       `json:"date"`
	CreatedBy     string          `json:"createdBy"`
	CreatedAt     time.Time       `json:"createdAt"`
}
