package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the sales table row; Items holds the JSON encoded line items.
type Sale struct {
	SaleID            string          `db:"sale_id"`
	SaleNumber        int64           `db:"sale_number"`
	CustomerAccountID string          `db:"customer_account_id"`
	Date              time.Time       `db:"sale_date"`
	Items             []byte          `db:"items"`
	Discount          decimal.Decimal `db:"discount"`
	GrandTotal        decimal.Decimal `db:"grand_total"`
	PaidAmount        decimal.Decimal `db:"paid_amount"`
	PaymentAccountID  string          `db:"payment_account_id"`
	Notes             string          `db:"notes"`
	AuditRow
}

// Purchase is the purchases table row.
type Purchase struct {
	PurchaseID        string          `db:"purchase_id"`
	PurchaseNumber    int64           `db:"purchase_number"`
	SupplierAccountID string          `db:"supplier_account_id"`
	Date              time.Time       `db:"purchase_date"`
	Items             []byte          `db:"items"`
	Discount          decimal.Decimal `db:"discount"`
	GrandTotal        decimal.Decimal `db:"grand_total"`
	PaidAmount        decimal.Decimal `db:"paid_amount"`
	PaymentAccountID  string          `db:"payment_account_id"`
	Notes             string          `db:"notes"`
	AuditRow
}

type Collection struct {
	CollectionID      string          `db:"collection_id"`
	CollectionNumber  int64           `db:"collection_number"`
	CustomerAccountID string          `db:"customer_account_id"`
	PaymentAccountID  string          `db:"payment_account_id"`
	Amount            decimal.Decimal `db:"amount"`
	Date              time.Time       `db:"collection_date"`
	Notes             string          `db:"notes"`
	AuditRow
}

type Expense struct {
	ExpenseID        string          `db:"expense_id"`
	ExpenseNumber    int64           `db:"expense_number"`
	ExpenseAccountID string          `db:"expense_account_id"`
	PaymentAccountID string          `db:"payment_account_id"`
	Amount           decimal.Decimal `db:"amount"`
	Category         string          `db:"category"`
	Date             time.Time       `db:"expense_date"`
	Notes            string          `db:"notes"`
	AuditRow
}
