package dto

import (
	"github.com/shopspring/decimal"
)

// CreateCollectionRequest records money received from a customer outside a sale.
type CreateCollectionRequest struct {
	CustomerAccountID string          `json:"customerAccountId" binding:"required"`
	PaymentAccountID  string          `json:"paymentAccountId" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"dgt0,dplaces=2"`
	Date              string          `json:"date"`
	Notes             string          `json:"notes" binding:"max=500"`
}

// CreateJournalTransactionRequest is a free debit/credit entry.
type CreateJournalTransactionRequest struct {
	DebitAccountID  string          `json:"debitAccountId" binding:"required"`
	CreditAccountID string          `json:"creditAccountId" binding:"required,nefield=DebitAccountID"`
	Amount          decimal.Decimal `json:"amount" binding:"dgt0,dplaces=2"`
	Date            string          `json:"date"`
	Description     string          `json:"description" binding:"max=500"`
}

// CreateExpenseRequest records money paid out against an expense account.
type CreateExpenseRequest struct {
	ExpenseAccountID string          `json:"expenseAccountId" binding:"required"`
	PaymentAccountID string          `json:"paymentAccountId" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"dgt0,dplaces=2"`
	Category         string          `json:"category" binding:"max=80"`
	Date             string          `json:"date"`
	Notes            string          `json:"notes" binding:"max=500"`
}

// DayBookParams selects a single day for the day book.
type DayBookParams struct {
	Date string `form:"date"`
}
