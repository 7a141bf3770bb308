package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Collection is money received from a customer outside of a sale.
type Collection struct {
	CollectionID      string          `json:"collectionID"`
	CollectionNumber  int64           `json:"collectionNumber"`
	CustomerAccountID string          `json:"customerAccountID"`
	PaymentAccountID  string          `json:"paymentAccountID"`
	Amount            decimal.Decimal `json:"amount"`
	Date              time.Time       `json:"date"`
	Notes             string          `json:"notes,omitempty"`
	AuditFields
}

func (c Collection) Ref() DocumentRef {
	return DocumentRef{Kind: CollectionRef, ID: c.CollectionID, Number: FormatDocumentNumber(CollectionRef, c.CollectionNumber)}
}

// ExpenseVoucher is money paid out against an expense account.
type ExpenseVoucher struct {
	ExpenseID        string          `json:"expenseID"`
	ExpenseNumber    int64           `json:"expenseNumber"`
	ExpenseAccountID string          `json:"expenseAccountID"`
	PaymentAccountID string          `json:"paymentAccountID"`
	Amount           decimal.Decimal `json:"amount"`
	Category         string          `json:"category,omitempty"`
	Date             time.Time       `json:"date"`
	Notes            string          `json:"notes,omitempty"`
	AuditFields
}

func (e ExpenseVoucher) Ref() DocumentRef {
	return DocumentRef{Kind: ExpenseRef, ID: e.ExpenseID, Number: FormatDocumentNumber(ExpenseRef, e.ExpenseNumber)}
}

// SequenceName keys a monotonic document counter.
type SequenceName string

const (
	SaleSequence       SequenceName = "sale"
	PurchaseSequence   SequenceName = "purchase"
	CollectionSequence SequenceName = "collection"
	ExpenseSequence    SequenceName = "expense"
)

// VoucherType labels a day book row.
type VoucherType string

const (
	VoucherSale       VoucherType = "Sale"
	VoucherPurchase   VoucherType = "Purchase"
	VoucherExpense    VoucherType = "Expense"
	VoucherCollection VoucherType = "Collection"
	VoucherPayment    VoucherType = "Payment"
	VoucherContra     VoucherType = "Contra"
	VoucherJournal    VoucherType = "Journal"
)

// VoucherTypeFor classifies a transaction by its document reference.
func VoucherTypeFor(ref *DocumentRef) VoucherType {
	if ref == nil {
		return VoucherJournal
	}
	switch ref.Kind {
	case SaleRef:
		return VoucherSale
	case PurchaseRef:
		return VoucherPurchase
	case ExpenseRef:
		return VoucherExpense
	case CollectionRef:
		return VoucherCollection
	case PaymentRef:
		return VoucherPayment
	case TransferRef:
		return VoucherContra
	}
	return VoucherJournal
}

var voucherPrefixes = map[VoucherType]string{
	VoucherSale:       "SAL",
	VoucherPurchase:   "PUR",
	VoucherExpense:    "EXP",
	VoucherCollection: "COL",
	VoucherPayment:    "PAY",
	VoucherContra:     "CON",
	VoucherJournal:    "JRN",
}

// VoucherPrefix returns the short code used in fallback voucher numbers.
func VoucherPrefix(v VoucherType) string {
	if p, ok := voucherPrefixes[v]; ok {
		return p
	}
	return "JRN"
}

// FormatDocumentNumber renders a sequence number for a document kind, e.g. SAL-000042.
func FormatDocumentNumber(kind RefKind, n int64) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%s-%06d", VoucherPrefix(VoucherTypeFor(&DocumentRef{Kind: kind})), n)
}

// VoucherNumber returns the ref's own number, or PREFIX-<last 6 chars of txnID>.
func VoucherNumber(ref *DocumentRef, txnID string) string {
	if ref != nil && ref.Number != "" {
		return ref.Number
	}
	suffix := txnID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return VoucherPrefix(VoucherTypeFor(ref)) + "-" + suffix
}
