package dto

import (
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest defines the data needed to record a supplier bill.
type CreatePurchaseRequest struct {
	SupplierAccountID string            `json:"supplierAccountId" binding:"required"`
	Date              string            `json:"date"`
	Items             []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount          decimal.Decimal   `json:"discount" binding:"dgte0,dplaces=2"`
	PaidAmount        decimal.Decimal   `json:"paidAmount" binding:"dgte0,dplaces=2"`
	PaymentAccountID  string            `json:"paymentAccountId"`
	Notes             string            `json:"notes" binding:"max=500"`
}

// PurchaseResponse is a purchase with its formatted number.
type PurchaseResponse struct {
	domain.Purchase
	PurchaseNo string `json:"purchaseNo"`
}

// ToPurchaseResponse converts a domain.Purchase to PurchaseResponse DTO
func ToPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	return PurchaseResponse{
		Purchase:   *p,
		PurchaseNo: domain.FormatDocumentNumber(domain.PurchaseRef, p.PurchaseNumber),
	}
}

// ToListPurchaseResponse converts a slice of domain.Purchase to PurchaseResponse DTOs
func ToListPurchaseResponse(purchases []domain.Purchase) []PurchaseResponse {
	res := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		res[i] = ToPurchaseResponse(&purchases[i])
	}
	return res
}
