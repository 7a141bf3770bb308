package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one stocked item on a sale or purchase.
type LineItem struct {
	Item     ItemRef         `json:"item"`
	Name     string          `json:"name,omitempty"`
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

// MoneyPlaces is the scale of every stored money amount.
const MoneyPlaces int32 = 2

// QuantityPlaces is the scale of stored stock quantities.
const QuantityPlaces int32 = 3

// RoundMoney rounds d half away from zero to MoneyPlaces, the way the numeric columns do.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// LineTotal returns Quantity × Rate rounded to MoneyPlaces.
func (l LineItem) LineTotal() decimal.Decimal {
	return RoundMoney(l.Quantity.Mul(l.Rate))
}

// SumLineItems adds up the line totals of items.
func SumLineItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// Sale is an invoice raised to a customer.
type Sale struct {
	SaleID            string          `json:"saleID"`
	SaleNumber        int64           `json:"saleNumber"`
	CustomerAccountID string          `json:"customerAccountID"`
	Date              time.Time       `json:"date"`
	Items             []LineItem      `json:"items"`
	Discount          decimal.Decimal `json:"discount"`
	GrandTotal        decimal.Decimal `json:"grandTotal"`
	PaidAmount        decimal.Decimal `json:"paidAmount"`
	PaymentAccountID  string          `json:"paymentAccountID,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	AuditFields
}

// Ref returns the document reference carried by the sale's transactions.
func (s Sale) Ref() DocumentRef {
	return DocumentRef{Kind: SaleRef, ID: s.SaleID, Number: FormatDocumentNumber(SaleRef, s.SaleNumber)}
}

// Outstanding is the amount still owed on the invoice; never negative.
func (s Sale) Outstanding() decimal.Decimal {
	due := s.GrandTotal.Sub(s.PaidAmount)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// Purchase is a bill received from a supplier.
type Purchase struct {
	PurchaseID        string          `json:"purchaseID"`
	PurchaseNumber    int64           `json:"purchaseNumber"`
	SupplierAccountID string          `json:"supplierAccountID"`
	Date              time.Time       `json:"date"`
	Items             []LineItem      `json:"items"`
	Discount          decimal.Decimal `json:"discount"`
	GrandTotal        decimal.Decimal `json:"grandTotal"`
	PaidAmount        decimal.Decimal `json:"paidAmount"`
	PaymentAccountID  string          `json:"paymentAccountID,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	AuditFields
}

// Ref returns the document reference carried by the purchase's transactions.
func (p Purchase) Ref() DocumentRef {
	return DocumentRef{Kind: PurchaseRef, ID: p.PurchaseID, Number: FormatDocumentNumber(PurchaseRef, p.PurchaseNumber)}
}
