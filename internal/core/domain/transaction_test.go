package domain_test

import (
	"testing"

	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		wantErr     error
	}{
		{
			name:        "valid",
			transaction: domain.Transaction{DebitAccountID: "a", CreditAccountID: "b", Amount: decimal.NewFromInt(10)},
		},
		{
			name:        "missing debit",
			transaction: domain.Transaction{CreditAccountID: "b", Amount: decimal.NewFromInt(10)},
			wantErr:     domain.ErrMissingAccount,
		},
		{
			name:        "same account",
			transaction: domain.Transaction{DebitAccountID: "a", CreditAccountID: "a", Amount: decimal.NewFromInt(10)},
			wantErr:     domain.ErrSameAccount,
		},
		{
			name:        "zero amount",
			transaction: domain.Transaction{DebitAccountID: "a", CreditAccountID: "b"},
			wantErr:     domain.ErrNonPositive,
		},
		{
			name:        "negative amount",
			transaction: domain.Transaction{DebitAccountID: "a", CreditAccountID: "b", Amount: decimal.NewFromInt(-1)},
			wantErr:     domain.ErrNonPositive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transaction.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTransaction_DescriptionFor(t *testing.T) {
	txn := domain.Transaction{
		DebitAccountID:      "cust",
		CreditAccountID:     "sales",
		Description:         "Sale SAL-000001",
		ContextDescriptions: map[string]string{"cust": "Milk sold"},
	}

	assert.Equal(t, "Milk sold", txn.DescriptionFor("cust"))
	assert.Equal(t, "Sale SAL-000001", txn.DescriptionFor("sales"))

	txn.Description = ""
	assert.Equal(t, "Credit transaction", txn.DescriptionFor("sales"))
	assert.Equal(t, "Debit transaction", txn.DescriptionFor("other"))
}

func TestTransaction_SideOf(t *testing.T) {
	txn := domain.Transaction{DebitAccountID: "cash", CreditAccountID: "cust"}

	side, ok := txn.SideOf("cash")
	assert.True(t, ok)
	assert.Equal(t, domain.DebitSide, side)

	side, ok = txn.SideOf("cust")
	assert.True(t, ok)
	assert.Equal(t, domain.CreditSide, side)

	assert.False(t, txn.Involves("bank"))
}

func TestVoucherNumber(t *testing.T) {
	assert.Equal(t, "SAL-000042", domain.FormatDocumentNumber(domain.SaleRef, 42))
	assert.Equal(t, "", domain.FormatDocumentNumber(domain.SaleRef, 0))
	assert.Equal(t, "EXP-000007", domain.FormatDocumentNumber(domain.ExpenseRef, 7))

	ref := &domain.DocumentRef{Kind: domain.PurchaseRef, ID: "p1", Number: "PUR-000003"}
	assert.Equal(t, "PUR-000003", domain.VoucherNumber(ref, "txn-abcdef123456"))
	assert.Equal(t, "JRN-123456", domain.VoucherNumber(nil, "txn-abcdef123456"))
	assert.Equal(t, "CON-abc", domain.VoucherNumber(&domain.DocumentRef{Kind: domain.TransferRef}, "abc"))
}

func TestVoucherTypeFor(t *testing.T) {
	assert.Equal(t, domain.VoucherJournal, domain.VoucherTypeFor(nil))
	assert.Equal(t, domain.VoucherSale, domain.VoucherTypeFor(&domain.DocumentRef{Kind: domain.SaleRef}))
	assert.Equal(t, domain.VoucherContra, domain.VoucherTypeFor(&domain.DocumentRef{Kind: domain.TransferRef}))
	assert.Equal(t, domain.VoucherPayment, domain.VoucherTypeFor(&domain.DocumentRef{Kind: domain.PaymentRef}))
}

func TestSale_Outstanding(t *testing.T) {
	s := domain.Sale{GrandTotal: decimal.NewFromInt(500), PaidAmount: decimal.NewFromInt(200)}
	assert.True(t, s.Outstanding().Equal(decimal.NewFromInt(300)))

	s.PaidAmount = decimal.NewFromInt(700)
	assert.True(t, s.Outstanding().IsZero())
}

func TestAccount_DisplayNameAndBaseline(t *testing.T) {
	cust := domain.Account{
		AccountType:    domain.CustomerAccount,
		AccountName:    "Ravi",
		CustomerName:   "Ravi Kumar",
		BalanceMethod:  domain.Perpetual,
		InitialBalance: decimal.NewFromInt(150),
	}
	assert.Equal(t, "Ravi Kumar", cust.DisplayName())
	assert.True(t, cust.Baseline().Equal(decimal.NewFromInt(150)))

	sales := domain.Account{
		AccountType:    domain.SaleAccount,
		AccountName:    "Sales Account",
		BalanceMethod:  domain.Transactional,
		InitialBalance: decimal.NewFromInt(999),
	}
	assert.Equal(t, "Sales Account", sales.DisplayName())
	assert.True(t, sales.Baseline().IsZero())

	assert.Equal(t, domain.CreditSide, domain.NaturalSide(domain.SaleAccount))
	assert.Equal(t, domain.CreditSide, domain.NaturalSide(domain.SupplierAccount))
	assert.Equal(t, domain.DebitSide, domain.NaturalSide(domain.CustomerAccount))
	assert.Equal(t, domain.Perpetual, domain.BalanceMethodFor(domain.BankAccount))
	assert.Equal(t, domain.Transactional, domain.BalanceMethodFor(domain.ExpenseAccount))
}
