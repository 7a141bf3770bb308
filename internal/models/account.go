package models

import (
	"github.com/shopspring/decimal"
)

// Account is the accounts table row.
type Account struct {
	AccountID      string          `db:"account_id"`
	AccountType    string          `db:"account_type"`
	AccountName    string          `db:"account_name"`
	CustomerName   string          `db:"customer_name"`
	SupplierName   string          `db:"supplier_name"`
	Phone          string          `db:"phone"`
	Address        string          `db:"address"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	Balance        decimal.Decimal `db:"balance"` // Persisted running balance
	BalanceMethod  string          `db:"balance_method"`
	IsActive       bool            `db:"is_active"`
	AuditRow
}
