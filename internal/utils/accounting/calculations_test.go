package accounting_test

import (
	"testing"
	"time"

	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/dairyworks/farm_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

var (
	cash     = domain.Account{AccountID: "cash", AccountType: domain.CashAccount, AccountName: "Cash", BalanceMethod: domain.Perpetual, InitialBalance: dec(1000)}
	sales    = domain.Account{AccountID: "sales", AccountType: domain.SaleAccount, AccountName: "Sales Account", BalanceMethod: domain.Transactional, InitialBalance: dec(999)}
	customer = domain.Account{AccountID: "cust", AccountType: domain.CustomerAccount, CustomerName: "Ravi", BalanceMethod: domain.Perpetual}
	supplier = domain.Account{AccountID: "supp", AccountType: domain.SupplierAccount, SupplierName: "Feed Co", BalanceMethod: domain.Perpetual}
)

func txn(id string, date time.Time, debit, credit string, amount int64) domain.Transaction {
	return domain.Transaction{TransactionID: id, Date: date, DebitAccountID: debit, CreditAccountID: credit, Amount: dec(amount), CreatedAt: date}
}

func TestPostingDelta(t *testing.T) {
	tests := []struct {
		name string
		acc  domain.Account
		side domain.Side
		want int64
	}{
		{name: "cash debited grows", acc: cash, side: domain.DebitSide, want: 100},
		{name: "cash credited shrinks", acc: cash, side: domain.CreditSide, want: -100},
		{name: "sales credited grows", acc: sales, side: domain.CreditSide, want: 100},
		{name: "customer debited grows", acc: customer, side: domain.DebitSide, want: 100},
		{name: "customer credited shrinks", acc: customer, side: domain.CreditSide, want: -100},
		{name: "supplier credited grows", acc: supplier, side: domain.CreditSide, want: 100},
		{name: "supplier debited shrinks", acc: supplier, side: domain.DebitSide, want: -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.PostingDelta(tt.acc, tt.side, dec(100))
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestBalanceChanges_SaleIncrementsBothLegs(t *testing.T) {
	accounts := map[string]domain.Account{"cust": customer, "sales": sales}
	changes, err := accounting.BalanceChanges(txn("t1", day(1), "cust", "sales", 500), accounts)
	require.NoError(t, err)
	assert.True(t, dec(500).Equal(changes["cust"]))
	assert.True(t, dec(500).Equal(changes["sales"]))

	_, err = accounting.BalanceChanges(txn("t2", day(1), "cust", "missing", 5), accounts)
	assert.Error(t, err)
}

func TestOpeningBalance(t *testing.T) {
	txns := []domain.Transaction{
		txn("a", day(1), "cash", "sales", 200),
		txn("b", day(2), "cust", "cash", 50),
		txn("c", day(5), "cash", "sales", 70),
	}

	t.Run("perpetual starts from initial balance", func(t *testing.T) {
		got := accounting.OpeningBalance(cash, txns, day(5), accounting.DebitPositive)
		assert.True(t, dec(1150).Equal(got), "got %s", got)
	})
	t.Run("transactional ignores initial balance", func(t *testing.T) {
		got := accounting.OpeningBalance(sales, txns, day(5), accounting.DebitPositive)
		assert.True(t, dec(-200).Equal(got), "got %s", got)
	})
	t.Run("credit positive flips sign", func(t *testing.T) {
		got := accounting.OpeningBalance(sales, txns, day(5), accounting.CreditPositive)
		assert.True(t, dec(200).Equal(got), "got %s", got)
	})
	t.Run("nothing before cutoff", func(t *testing.T) {
		assert.True(t, dec(1000).Equal(accounting.OpeningBalance(cash, txns, day(1), accounting.DebitPositive)))
		assert.True(t, accounting.OpeningBalance(sales, txns, day(1), accounting.DebitPositive).IsZero())
	})
	t.Run("totals agree with the walk", func(t *testing.T) {
		got := accounting.OpeningFromTotals(cash, dec(200), dec(50), accounting.DebitPositive)
		assert.True(t, dec(1150).Equal(got))
	})
}

func TestBuildLedger_OpeningPlusMovementsEqualsClosing(t *testing.T) {
	txns := []domain.Transaction{
		txn("c", day(4), "cash", "sales", 70),
		txn("a", day(2), "cash", "sales", 200),
		txn("b", day(3), "cust", "cash", 50),
		txn("x", day(3), "cust", "sales", 10), // not touching cash
	}
	txns[0].ContextDescriptions = map[string]string{"cash": "Cash sale #3"}

	r := domain.DateRange{Start: day(2), End: day(4)}
	ledger := accounting.BuildLedger(cash, r, dec(1000), txns, accounting.DebitPositive)

	require.Len(t, ledger.Transactions, 3)
	assert.Equal(t, "a", ledger.Transactions[0].TransactionID)
	assert.Equal(t, "b", ledger.Transactions[1].TransactionID)
	assert.Equal(t, "c", ledger.Transactions[2].TransactionID)

	assert.Equal(t, domain.CreditSide, ledger.Transactions[1].Type)
	assert.Equal(t, "Credit transaction", ledger.Transactions[1].Particulars)
	assert.Equal(t, "Cash sale #3", ledger.Transactions[2].Particulars)
	assert.True(t, dec(1200).Equal(ledger.Transactions[0].RunningBalance))
	assert.True(t, dec(1150).Equal(ledger.Transactions[1].RunningBalance))

	movements := decimal.Zero
	for _, row := range ledger.Transactions {
		if row.Type == domain.DebitSide {
			movements = movements.Add(row.Amount)
		} else {
			movements = movements.Sub(row.Amount)
		}
	}
	assert.True(t, ledger.OpeningBalance.Add(movements).Equal(ledger.ClosingBalance))
	assert.True(t, dec(1220).Equal(ledger.ClosingBalance))
	assert.True(t, dec(270).Equal(ledger.TotalDebit))
	assert.True(t, dec(50).Equal(ledger.TotalCredit))
}

func TestReplayBalance(t *testing.T) {
	txns := []domain.Transaction{
		txn("s", day(1), "cust", "sales", 500),
		txn("p", day(1), "cash", "cust", 500),
		txn("adv", day(1), "cash", "cust", 200),
	}
	assert.True(t, dec(-200).Equal(accounting.ReplayBalance(customer, txns)))
	assert.True(t, dec(500).Equal(accounting.ReplayBalance(sales, txns)))
	assert.True(t, dec(1700).Equal(accounting.ReplayBalance(cash, txns)))
}
