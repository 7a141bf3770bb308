package accounting

import (
	"fmt"
	"sort"
	"time"

	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Convention decides which leg of a transaction counts as positive in a ledger view.
type Convention int

const (
	// DebitPositive adds debits and subtracts credits (account, cash and bank ledgers).
	DebitPositive Convention = iota
	// CreditPositive adds credits and subtracts debits (sales ledger).
	CreditPositive
)

// PostingDelta returns the change a posting applies to the stored balance of acc when
// it appears on side. Accounts grow on their natural side and shrink on the other one.
func PostingDelta(acc domain.Account, side domain.Side, amount decimal.Decimal) decimal.Decimal {
	if side == domain.NaturalSide(acc.AccountType) {
		return amount
	}
	return amount.Neg()
}

// BalanceChanges computes the stored-balance delta of both legs of txn.
// accounts must contain the debit and credit accounts.
func BalanceChanges(txn domain.Transaction, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	debitAcc, ok := accounts[txn.DebitAccountID]
	if !ok {
		return nil, fmt.Errorf("debit account %s not loaded", txn.DebitAccountID)
	}
	creditAcc, ok := accounts[txn.CreditAccountID]
	if !ok {
		return nil, fmt.Errorf("credit account %s not loaded", txn.CreditAccountID)
	}
	return map[string]decimal.Decimal{
		debitAcc.AccountID:  PostingDelta(debitAcc, domain.DebitSide, txn.Amount),
		creditAcc.AccountID: PostingDelta(creditAcc, domain.CreditSide, txn.Amount),
	}, nil
}

// MergeChanges adds every delta in src into dst.
func MergeChanges(dst, src map[string]decimal.Decimal) {
	for id, delta := range src {
		dst[id] = dst[id].Add(delta)
	}
}

// SignedAmount returns txn's amount from accountID's point of view under conv.
// Transactions that do not involve the account contribute zero.
func SignedAmount(txn domain.Transaction, accountID string, conv Convention) decimal.Decimal {
	side, ok := txn.SideOf(accountID)
	if !ok {
		return decimal.Zero
	}
	positive := domain.DebitSide
	if conv == CreditPositive {
		positive = domain.CreditSide
	}
	if side == positive {
		return txn.Amount
	}
	return txn.Amount.Neg()
}

// OpeningFromTotals derives an opening balance from the debit and credit totals posted to
// acc before the cutoff. Perpetual accounts start from their initial balance.
func OpeningFromTotals(acc domain.Account, debits, credits decimal.Decimal, conv Convention) decimal.Decimal {
	net := debits.Sub(credits)
	if conv == CreditPositive {
		net = net.Neg()
	}
	return acc.Baseline().Add(net)
}

// OpeningBalance sums txns dated before cutoff onto acc's baseline.
func OpeningBalance(acc domain.Account, txns []domain.Transaction, cutoff time.Time, conv Convention) decimal.Decimal {
	opening := acc.Baseline()
	for _, txn := range txns {
		if txn.Date.Before(cutoff) {
			opening = opening.Add(SignedAmount(txn, acc.AccountID, conv))
		}
	}
	return opening
}

// SortChronologically orders transactions by effective date, then creation time, then id.
func SortChronologically(txns []domain.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.Before(txns[j].Date)
		}
		if !txns[i].CreatedAt.Equal(txns[j].CreatedAt) {
			return txns[i].CreatedAt.Before(txns[j].CreatedAt)
		}
		return txns[i].TransactionID < txns[j].TransactionID
	})
}

// BuildLedger walks txns in chronological order from opening and returns the running
// ledger of acc over r.
func BuildLedger(acc domain.Account, r domain.DateRange, opening decimal.Decimal, txns []domain.Transaction, conv Convention) domain.AccountLedger {
	sorted := make([]domain.Transaction, 0, len(txns))
	for _, txn := range txns {
		if txn.Involves(acc.AccountID) {
			sorted = append(sorted, txn)
		}
	}
	SortChronologically(sorted)

	ledger := domain.AccountLedger{
		AccountID:      acc.AccountID,
		AccountName:    acc.DisplayName(),
		AccountType:    acc.AccountType,
		Range:          r,
		OpeningBalance: opening,
		Transactions:   make([]domain.LedgerRow, 0, len(sorted)),
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
		NaturalSide:    domain.NaturalSide(acc.AccountType),
		CurrentBalance: acc.Balance,
	}

	running := opening
	for _, txn := range sorted {
		side, _ := txn.SideOf(acc.AccountID)
		if side == domain.DebitSide {
			ledger.TotalDebit = ledger.TotalDebit.Add(txn.Amount)
		} else {
			ledger.TotalCredit = ledger.TotalCredit.Add(txn.Amount)
		}
		running = running.Add(SignedAmount(txn, acc.AccountID, conv))
		ledger.Transactions = append(ledger.Transactions, domain.LedgerRow{
			TransactionID:  txn.TransactionID,
			Date:           txn.Date,
			Particulars:    txn.DescriptionFor(acc.AccountID),
			Type:           side,
			Amount:         txn.Amount,
			RunningBalance: running,
			VoucherType:    domain.VoucherTypeFor(txn.Ref),
			VoucherNumber:  domain.VoucherNumber(txn.Ref, txn.TransactionID),
		})
	}
	ledger.ClosingBalance = running
	return ledger
}

// ReplayBalance reconstructs the stored balance of acc from its baseline and every
// transaction that references it.
func ReplayBalance(acc domain.Account, txns []domain.Transaction) decimal.Decimal {
	balance := acc.Baseline()
	for _, txn := range txns {
		if side, ok := txn.SideOf(acc.AccountID); ok {
			balance = balance.Add(PostingDelta(acc, side, txn.Amount))
		}
	}
	return balance
}
