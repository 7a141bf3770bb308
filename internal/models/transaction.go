package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the transactions table row. Ref columns are NULL for journal entries.
type Transaction struct {
	TransactionID       string            `db:"transaction_id"`
	Date                time.Time         `db:"txn_date"`
	DebitAccountID      string            `db:"debit_account_id"`
	CreditAccountID     string            `db:"credit_account_id"`
	Amount              decimal.Decimal   `db:"amount"`
	Description         string            `db:"description"`
	ContextDescriptions map[string]string `db:"context_descriptions"`
	RefKind             *string           `db:"ref_kind"`
	RefID               *string           `db:"ref_id"`
	RefNumber           *string           `db:"ref_number"`
	CreatedAt           time.Time         `db:"created_at"`
	CreatedBy           string            `db:"created_by"`
}
