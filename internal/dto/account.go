package dto

import (
	"time"

	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// The balance method is derived from the account type.
type CreateAccountRequest struct {
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=SALE PURCHASE BANK CASH EXPENSE CUSTOMER SUPPLIER LIABILITY"`
	AccountName    string             `json:"accountName" binding:"max=120"`
	CustomerName   string             `json:"customerName" binding:"max=120"`
	SupplierName   string             `json:"supplierName" binding:"max=120"`
	Phone          string             `json:"phone" binding:"max=32"`
	Address        string             `json:"address" binding:"max=255"`
	InitialBalance decimal.Decimal    `json:"initialBalance" binding:"dplaces=2"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	AccountName    *string          `json:"accountName"`
	CustomerName   *string          `json:"customerName"`
	SupplierName   *string          `json:"supplierName"`
	Phone          *string          `json:"phone"`
	Address        *string          `json:"address"`
	InitialBalance *decimal.Decimal `json:"initialBalance" binding:"omitempty,dplaces=2"`
	IsActive       *bool            `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string               `json:"accountID"`
	AccountType    domain.AccountType   `json:"accountType"`
	AccountName    string               `json:"accountName"`
	DisplayName    string               `json:"displayName"`
	CustomerName   string               `json:"customerName,omitempty"`
	SupplierName   string               `json:"supplierName,omitempty"`
	Phone          string               `json:"phone,omitempty"`
	Address        string               `json:"address,omitempty"`
	InitialBalance decimal.Decimal      `json:"initialBalance"`
	Balance        decimal.Decimal      `json:"balance"`
	BalanceMethod  domain.BalanceMethod `json:"balanceMethod"`
	IsActive       bool                 `json:"isActive"`
	CreatedAt      time.Time            `json:"createdAt"`
	CreatedBy      string               `json:"createdBy"`
	LastUpdatedAt  time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy  string               `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		AccountType:    acc.AccountType,
		AccountName:    acc.AccountName,
		DisplayName:    acc.DisplayName(),
		CustomerName:   acc.CustomerName,
		SupplierName:   acc.SupplierName,
		Phone:          acc.Phone,
		Address:        acc.Address,
		InitialBalance: acc.InitialBalance,
		Balance:        acc.Balance,
		BalanceMethod:  acc.BalanceMethod,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
		LastUpdatedAt:  acc.LastUpdatedAt,
		LastUpdatedBy:  acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20" binding:"min=0,max=500"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// SearchAccountsParams defines query parameters for the filtered account search.
type SearchAccountsParams struct {
	AccountType domain.AccountType `form:"accountType" binding:"omitempty,oneof=SALE PURCHASE BANK CASH EXPENSE CUSTOMER SUPPLIER LIABILITY"`
	Search      string             `form:"search"`
	ActiveOnly  bool               `form:"activeOnly"`
	Limit       int                `form:"limit,default=50" binding:"min=0,max=500"`
	Offset      int                `form:"offset,default=0" binding:"min=0"`
}

// PaymentType is the direction of a payment relative to the business.
type PaymentType string

const (
	PaymentReceive PaymentType = "receive"
	PaymentGive    PaymentType = "give"
)

// CreatePaymentRequest records money received from or given to a party.
type CreatePaymentRequest struct {
	AccountID        string          `json:"accountId" binding:"required"`
	PaymentAccountID string          `json:"paymentAccountId" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"dgt0,dplaces=2"`
	PaymentType      PaymentType     `json:"paymentType" binding:"required,oneof=receive give"`
	Date             string          `json:"date"`
	Notes            string          `json:"notes"`
}

// TransferData moves funds between two cash or bank accounts.
type TransferData struct {
	FromAccountID string          `json:"fromAccountId" binding:"required"`
	ToAccountID   string          `json:"toAccountId" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"dgt0,dplaces=2"`
	Date          string          `json:"date"`
	Notes         string          `json:"notes"`
}

// CreateTransferRequest wraps the transfer payload.
type CreateTransferRequest struct {
	TransferData TransferData `json:"transferData" binding:"required"`
}

// TransactionResponse is a posted transaction as returned by the API.
type TransactionResponse struct {
	TransactionID       string              `json:"transactionID"`
	Date                time.Time           `json:"date"`
	DebitAccountID      string              `json:"debitAccountID"`
	CreditAccountID     string              `json:"creditAccountID"`
	Amount              decimal.Decimal     `json:"amount"`
	Description         string              `json:"description,omitempty"`
	ContextDescriptions map[string]string   `json:"contextDescriptions,omitempty"`
	Ref                 *domain.DocumentRef `json:"ref,omitempty"`
	VoucherType         domain.VoucherType  `json:"voucherType"`
	VoucherNumber       string              `json:"voucherNumber"`
	CreatedAt           time.Time           `json:"createdAt"`
	CreatedBy           string              `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction to its API shape.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:       t.TransactionID,
		Date:                t.Date,
		DebitAccountID:      t.DebitAccountID,
		CreditAccountID:     t.CreditAccountID,
		Amount:              t.Amount,
		Description:         t.Description,
		ContextDescriptions: t.ContextDescriptions,
		Ref:                 t.Ref,
		VoucherType:         domain.VoucherTypeFor(t.Ref),
		VoucherNumber:       domain.VoucherNumber(t.Ref, t.TransactionID),
		CreatedAt:           t.CreatedAt,
		CreatedBy:           t.CreatedBy,
	}
}
