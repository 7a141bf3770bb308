package services_test

import (
	"testing"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/dairyworks/farm_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type DayBookServiceTestSuite struct {
	ledgerSuite
}

func TestDayBookServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DayBookServiceTestSuite))
}

func (s *DayBookServiceTestSuite) TestCreateCollection() {
	collection, err := s.dayBook.CreateCollection(s.ctx, dto.CreateCollectionRequest{
		CustomerAccountID: customerID,
		PaymentAccountID:  bankID,
		Amount:            dec(80),
	}, testUserID)
	s.Require().NoError(err)

	s.Equal(int64(1), collection.CollectionNumber)
	s.Equal("COL-000001", collection.Ref().Number)
	s.assertBalance(bankID, 5080)
	s.assertBalance(customerID, -80)

	stored, err := s.store.Vouchers().FindCollectionByID(s.ctx, collection.CollectionID)
	s.Require().NoError(err)
	s.True(stored.Amount.Equal(dec(80)))

	txns, err := s.store.Transactions().FindTransactionsByRef(s.ctx, domain.CollectionRef, collection.CollectionID)
	s.Require().NoError(err)
	s.Require().Len(txns, 1)
	s.Equal("Collection COL-000001", txns[0].Description)
}

func (s *DayBookServiceTestSuite) TestCreateCollection_RequiresCustomer() {
	_, err := s.dayBook.CreateCollection(s.ctx, dto.CreateCollectionRequest{
		CustomerAccountID: supplierID,
		PaymentAccountID:  cashID,
		Amount:            dec(80),
	}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.assertBalance(cashID, 1000)
}

func (s *DayBookServiceTestSuite) TestCreateExpense() {
	expense, err := s.dayBook.CreateExpense(s.ctx, dto.CreateExpenseRequest{
		ExpenseAccountID: expenseID,
		PaymentAccountID: cashID,
		Amount:           dec(100),
		Category:         "Fuel",
	}, testUserID)
	s.Require().NoError(err)

	s.Equal("EXP-000001", expense.Ref().Number)
	s.assertBalance(expenseID, 100)
	s.assertBalance(cashID, 900)

	txns, err := s.store.Transactions().FindTransactionsByRef(s.ctx, domain.ExpenseRef, expense.ExpenseID)
	s.Require().NoError(err)
	s.Require().Len(txns, 1)
	s.Equal("Fuel", txns[0].Description)

	_, err = s.dayBook.CreateExpense(s.ctx, dto.CreateExpenseRequest{
		ExpenseAccountID: customerID,
		PaymentAccountID: cashID,
		Amount:           dec(100),
	}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *DayBookServiceTestSuite) TestCreateJournalTransaction() {
	txn, err := s.dayBook.CreateJournalTransaction(s.ctx, dto.CreateJournalTransactionRequest{
		DebitAccountID:  expenseID,
		CreditAccountID: bankID,
		Amount:          dec(25),
	}, testUserID)
	s.Require().NoError(err)

	s.Nil(txn.Ref)
	s.assertBalance(expenseID, 25)
	s.assertBalance(bankID, 4975)

	_, err = s.dayBook.CreateJournalTransaction(s.ctx, dto.CreateJournalTransactionRequest{
		DebitAccountID:  bankID,
		CreditAccountID: bankID,
		Amount:          dec(25),
	}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *DayBookServiceTestSuite) TestGetDayBook() {
	_, err := s.account.CreatePayment(s.ctx, dto.CreatePaymentRequest{
		AccountID:        customer2,
		PaymentAccountID: cashID,
		Amount:           dec(50),
		PaymentType:      dto.PaymentReceive,
		Date:             "2026-03-14",
	}, testUserID)
	s.Require().NoError(err)

	_, err = s.sale.CreateSale(s.ctx, dto.CreateSaleRequest{
		CustomerAccountID: customerID,
		Items:             milkLine(10, 50),
		PaidAmount:        dec(500),
		PaymentAccountID:  cashID,
	}, testUserID)
	s.Require().NoError(err)
	_, err = s.dayBook.CreateCollection(s.ctx, dto.CreateCollectionRequest{CustomerAccountID: customer2, PaymentAccountID: bankID, Amount: dec(80)}, testUserID)
	s.Require().NoError(err)
	_, err = s.dayBook.CreateExpense(s.ctx, dto.CreateExpenseRequest{ExpenseAccountID: expenseID, PaymentAccountID: cashID, Amount: dec(100)}, testUserID)
	s.Require().NoError(err)
	_, err = s.dayBook.CreateJournalTransaction(s.ctx, dto.CreateJournalTransactionRequest{DebitAccountID: expenseID, CreditAccountID: bankID, Amount: dec(25)}, testUserID)
	s.Require().NoError(err)

	book, err := s.dayBook.GetDayBook(s.ctx, march(15))
	s.Require().NoError(err)

	s.True(book.Date.Equal(march(15)))
	s.Len(book.Rows, 5)
	s.True(book.TotalAmount.Equal(dec(1205)), "got %s", book.TotalAmount)
	s.True(book.OpeningCashInHand.Equal(dec(1050)), "got %s", book.OpeningCashInHand)
	s.True(book.ClosingCashInHand.Equal(dec(1450)), "got %s", book.ClosingCashInHand)

	types := map[domain.VoucherType]int{}
	for _, row := range book.Rows {
		types[row.VoucherType]++
		s.True(row.DrAmount.Equal(row.CrAmount))
		if row.VoucherType == domain.VoucherJournal {
			s.Equal("Diesel / Farmers Bank", row.Particulars)
			s.Equal("Diesel", row.DebitLedger)
			s.Equal("Farmers Bank", row.CreditLedger)
			s.Contains(row.VoucherNumber, "JRN-")
		}
	}
	s.Equal(map[domain.VoucherType]int{
		domain.VoucherSale:       2,
		domain.VoucherCollection: 1,
		domain.VoucherExpense:    1,
		domain.VoucherJournal:    1,
	}, types)
}

func (s *DayBookServiceTestSuite) TestGetDayBookReport_Range() {
	_, err := s.account.CreatePayment(s.ctx, dto.CreatePaymentRequest{
		AccountID:        customer2,
		PaymentAccountID: cashID,
		Amount:           dec(50),
		PaymentType:      dto.PaymentReceive,
		Date:             "2026-03-10",
	}, testUserID)
	s.Require().NoError(err)
	_, err = s.account.CreateTransfer(s.ctx, dto.TransferData{FromAccountID: bankID, ToAccountID: cashID, Amount: dec(300), Date: "2026-03-12"}, testUserID)
	s.Require().NoError(err)

	rows, err := s.dayBook.GetDayBookReport(s.ctx, between(1, 31))
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal(domain.VoucherPayment, rows[0].VoucherType)
	s.Equal(domain.VoucherContra, rows[1].VoucherType)
	s.Equal("Fund transfer", rows[1].Particulars)
	s.Equal("Cash Account", rows[1].DebitLedger)

	rows, err = s.dayBook.GetDayBookReport(s.ctx, between(11, 31))
	s.Require().NoError(err)
	s.Len(rows, 1)
}
