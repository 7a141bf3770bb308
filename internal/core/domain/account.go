package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies a ledger account.
type AccountType string

const (
	SaleAccount      AccountType = "SALE"
	PurchaseAccount  AccountType = "PURCHASE"
	BankAccount      AccountType = "BANK"
	CashAccount      AccountType = "CASH"
	ExpenseAccount   AccountType = "EXPENSE"
	CustomerAccount  AccountType = "CUSTOMER"
	SupplierAccount  AccountType = "SUPPLIER"
	LiabilityAccount AccountType = "LIABILITY"
)

// AllAccountTypes lists every supported account type.
var AllAccountTypes = []AccountType{SaleAccount, PurchaseAccount, BankAccount, CashAccount, ExpenseAccount, CustomerAccount, SupplierAccount, LiabilityAccount}

// IsValid reports whether t is one of the supported account types.
func (t AccountType) IsValid() bool {
	for _, known := range AllAccountTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsParty reports whether accounts of this type represent a customer or supplier.
func (t AccountType) IsParty() bool {
	return t == CustomerAccount || t == SupplierAccount
}

// IsMoney reports whether accounts of this type hold cash or bank funds.
func (t AccountType) IsMoney() bool {
	return t == CashAccount || t == BankAccount
}

// BalanceMethod decides how an account's opening balance is derived for a period.
type BalanceMethod string

const (
	// Transactional accounts (income statement) start every period from zero.
	Transactional BalanceMethod = "transactional"
	// Perpetual accounts (balance sheet) carry their initial balance forward.
	Perpetual BalanceMethod = "perpetual"
)

// BalanceMethodFor returns the balance method fixed for an account type.
func BalanceMethodFor(t AccountType) BalanceMethod {
	switch t {
	case BankAccount, CashAccount, CustomerAccount, SupplierAccount:
		return Perpetual
	default:
		return Transactional
	}
}

// Side is the leg of a transaction an account appears on.
type Side string

const (
	DebitSide  Side = "debit"
	CreditSide Side = "credit"
)

// NaturalSide returns the side on which postings increase the stored balance of an
// account of type t.
func NaturalSide(t AccountType) Side {
	switch t {
	case SaleAccount, SupplierAccount, LiabilityAccount:
		return CreditSide
	default:
		return DebitSide
	}
}

// Account represents a ledger account.
type Account struct {
	AccountID      string          `json:"accountID"`
	AccountType    AccountType     `json:"accountType"`
	AccountName    string          `json:"accountName,omitempty"`
	CustomerName   string          `json:"customerName,omitempty"`
	SupplierName   string          `json:"supplierName,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Address        string          `json:"address,omitempty"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Balance        decimal.Decimal `json:"balance"`
	BalanceMethod  BalanceMethod   `json:"balanceMethod"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// DisplayName returns the name shown for the account: the party name for customers and
// suppliers, the account name otherwise.
func (a Account) DisplayName() string {
	switch a.AccountType {
	case CustomerAccount:
		if a.CustomerName != "" {
			return a.CustomerName
		}
	case SupplierAccount:
		if a.SupplierName != "" {
			return a.SupplierName
		}
	}
	return a.AccountName
}

// Baseline is the balance the account starts from before any transaction.
func (a Account) Baseline() decimal.Decimal {
	if a.BalanceMethod == Perpetual {
		return a.InitialBalance
	}
	return decimal.Zero
}

// AccountFilter narrows account listings.
type AccountFilter struct {
	AccountType AccountType
	Search      string
	ActiveOnly  bool
	Limit       int
	Offset      int
}
