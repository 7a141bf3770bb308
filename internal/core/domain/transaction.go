package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RefKind names the kind of business document a transaction was posted for.
type RefKind string

const (
	SaleRef       RefKind = "SALE"
	PurchaseRef   RefKind = "PURCHASE"
	ExpenseRef    RefKind = "EXPENSE"
	CollectionRef RefKind = "COLLECTION"
	PaymentRef    RefKind = "PAYMENT"
	TransferRef   RefKind = "TRANSFER"
)

// DocumentRef points a transaction back at its originating document.
type DocumentRef struct {
	Kind   RefKind `json:"kind"`
	ID     string  `json:"id"`
	Number string  `json:"number,omitempty"`
}

// Transaction is one immutable single-amount double-entry posting.
type Transaction struct {
	TransactionID       string            `json:"transactionID"`
	Date                time.Time         `json:"date"`
	DebitAccountID      string            `json:"debitAccountID"`
	CreditAccountID     string            `json:"creditAccountID"`
	Amount              decimal.Decimal   `json:"amount"`
	Description         string            `json:"description,omitempty"`
	ContextDescriptions map[string]string `json:"contextDescriptions,omitempty"`
	Ref                 *DocumentRef      `json:"ref,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
	CreatedBy           string            `json:"createdBy"`
}

var (
	ErrSameAccount    = errors.New("debit and credit accounts must differ")
	ErrNonPositive    = errors.New("transaction amount must be positive")
	ErrMissingAccount = errors.New("debit and credit accounts are required")
)

// Validate checks the structural invariants of a transaction.
func (t Transaction) Validate() error {
	if t.DebitAccountID == "" || t.CreditAccountID == "" {
		return ErrMissingAccount
	}
	if t.DebitAccountID == t.CreditAccountID {
		return fmt.Errorf("%w: %s", ErrSameAccount, t.DebitAccountID)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrNonPositive, t.Amount.String())
	}
	return nil
}

// SideOf reports which leg accountID appears on.
func (t Transaction) SideOf(accountID string) (Side, bool) {
	switch accountID {
	case t.DebitAccountID:
		return DebitSide, true
	case t.CreditAccountID:
		return CreditSide, true
	}
	return "", false
}

// Involves reports whether accountID is one of the two parties.
func (t Transaction) Involves(accountID string) bool {
	_, ok := t.SideOf(accountID)
	return ok
}

// DescriptionFor returns how the transaction reads from accountID's point of view,
// falling back to the shared description and then to a generic label.
func (t Transaction) DescriptionFor(accountID string) string {
	if d, ok := t.ContextDescriptions[accountID]; ok && d != "" {
		return d
	}
	if t.Description != "" {
		return t.Description
	}
	if side, ok := t.SideOf(accountID); ok && side == CreditSide {
		return "Credit transaction"
	}
	return "Debit transaction"
}

// HasRef reports whether the transaction belongs to the given document.
func (t Transaction) HasRef(kind RefKind, id string) bool {
	return t.Ref != nil && t.Ref.Kind == kind && t.Ref.ID == id
}
