package dto

import (
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one product or livestock line on a sale or purchase.
type LineItemRequest struct {
	ItemType domain.ItemKind `json:"itemType" binding:"required,oneof=PRODUCT LIVESTOCK"`
	ItemID   string          `json:"itemId" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"dgt0,dplaces=3"`
	Rate     decimal.Decimal `json:"rate" binding:"dgte0"`
}

// CreateSaleRequest defines the data needed to raise a sale invoice.
// GrandTotal is computed as the sum of line totals less Discount.
type CreateSaleRequest struct {
	CustomerAccountID string            `json:"customerAccountId" binding:"required"`
	Date              string            `json:"date"`
	Items             []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount          decimal.Decimal   `json:"discount" binding:"dgte0,dplaces=2"`
	PaidAmount        decimal.Decimal   `json:"paidAmount" binding:"dgte0,dplaces=2"`
	PaymentAccountID  string            `json:"paymentAccountId"`
	Notes             string            `json:"notes" binding:"max=500"`
}

// UpdateSaleRequest replaces every editable field of a sale.
type UpdateSaleRequest = CreateSaleRequest

// BulkSaleEntry is one customer's credit sale inside a bulk request.
type BulkSaleEntry struct {
	CustomerAccountID string            `json:"customerAccountId" binding:"required"`
	Items             []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount          decimal.Decimal   `json:"discount" binding:"dgte0,dplaces=2"`
	Notes             string            `json:"notes" binding:"max=500"`
}

// CreateMultipleSalesRequest raises credit sales for many customers on one date.
type CreateMultipleSalesRequest struct {
	Date  string          `json:"date"`
	Sales []BulkSaleEntry `json:"sales" binding:"required,min=1,max=500,dive"`
}

// UpdateSalePaymentRequest records an additional payment against an existing sale.
type UpdateSalePaymentRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"dgt0,dplaces=2"`
	PaymentAccountID string          `json:"paymentAccountId" binding:"required"`
	Date             string          `json:"date"`
	Notes            string          `json:"notes" binding:"max=500"`
}

// SaleResponse is a sale together with its computed outstanding amount.
type SaleResponse struct {
	domain.Sale
	SaleNo      string          `json:"saleNo"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// ToSaleResponse converts a domain.Sale to SaleResponse DTO
func ToSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		Sale:        *s,
		SaleNo:      domain.FormatDocumentNumber(domain.SaleRef, s.SaleNumber),
		Outstanding: s.Outstanding(),
	}
}

// ToListSaleResponse converts a slice of domain.Sale to SaleResponse DTOs
func ToListSaleResponse(sales []domain.Sale) []SaleResponse {
	res := make([]SaleResponse, len(sales))
	for i := range sales {
		res[i] = ToSaleResponse(&sales[i])
	}
	return res
}
