package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange is an inclusive range of effective dates.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// LedgerRow is one transaction as seen from a single account.
type LedgerRow struct {
	TransactionID  string          `json:"transactionID"`
	Date           time.Time       `json:"date"`
	Particulars    string          `json:"particulars"`
	Type           Side            `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	VoucherType    VoucherType     `json:"voucherType"`
	VoucherNumber  string          `json:"voucherNumber"`
}

// AccountLedger is the running-balance view of one account over a range.
type AccountLedger struct {
	AccountID      string          `json:"accountID"`
	AccountName    string          `json:"accountName"`
	AccountType    AccountType     `json:"accountType"`
	Range          DateRange       `json:"range"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Transactions   []LedgerRow     `json:"transactions"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	// NaturalSide and CurrentBalance report the stored account balance, which grows on
	// the account's natural side. Opening and closing figures follow the ledger's own
	// sign convention and differ in sign for credit-natured accounts.
	NaturalSide    Side            `json:"naturalSide"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// DayBookRow is one voucher line of the day book report.
type DayBookRow struct {
	TransactionID string          `json:"transactionID"`
	Date          time.Time       `json:"date"`
	Particulars   string          `json:"particulars"`
	VoucherType   VoucherType     `json:"voucherType"`
	VoucherNumber string          `json:"voucherNumber"`
	DebitLedger   string          `json:"debitLedger"`
	CreditLedger  string          `json:"creditLedger"`
	DrAmount      decimal.Decimal `json:"drAmount"`
	CrAmount      decimal.Decimal `json:"crAmount"`
}

// DayBook is the report for a single day with cash-in-hand bookends.
type DayBook struct {
	Date              time.Time       `json:"date"`
	Rows              []DayBookRow    `json:"rows"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	OpeningCashInHand decimal.Decimal `json:"openingCashInHand"`
	ClosingCashInHand decimal.Decimal `json:"closingCashInHand"`
}
