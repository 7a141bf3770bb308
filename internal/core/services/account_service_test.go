package services_test

import (
	"testing"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/dairyworks/farm_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	ledgerSuite
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func (s *AccountServiceTestSuite) TestCreateAccount_Customer() {
	acc, err := s.account.CreateAccount(s.ctx, dto.CreateAccountRequest{
		AccountType:    domain.CustomerAccount,
		AccountName:    "  Lakshmi  ",
		Phone:          "98450 12345",
		InitialBalance: dec(250),
	}, testUserID)
	s.Require().NoError(err)

	s.NotEmpty(acc.AccountID)
	s.Equal("Lakshmi", acc.AccountName)
	s.Equal("Lakshmi", acc.CustomerName)
	s.Equal(domain.Perpetual, acc.BalanceMethod)
	s.True(acc.IsActive)
	s.True(acc.Balance.Equal(dec(250)))
	s.Equal(testUserID, acc.CreatedBy)

	stored, err := s.account.GetAccountByID(s.ctx, acc.AccountID)
	s.Require().NoError(err)
	s.Equal(acc.AccountID, stored.AccountID)
}

func (s *AccountServiceTestSuite) TestCreateAccount_SupplierNameBecomesAccountName() {
	acc, err := s.account.CreateAccount(s.ctx, dto.CreateAccountRequest{
		AccountType:  domain.SupplierAccount,
		SupplierName: "Nandini Feeds",
	}, testUserID)
	s.Require().NoError(err)
	s.Equal("Nandini Feeds", acc.AccountName)
	s.Equal("Nandini Feeds", acc.DisplayName())
}

func (s *AccountServiceTestSuite) TestCreateAccount_TransactionalIgnoresInitialBalance() {
	acc, err := s.account.CreateAccount(s.ctx, dto.CreateAccountRequest{
		AccountType:    domain.ExpenseAccount,
		AccountName:    "Vet Fees",
		InitialBalance: dec(900),
	}, testUserID)
	s.Require().NoError(err)
	s.Equal(domain.Transactional, acc.BalanceMethod)
	s.True(acc.Balance.IsZero())
}

func (s *AccountServiceTestSuite) TestCreateAccount_Validation() {
	_, err := s.account.CreateAccount(s.ctx, dto.CreateAccountRequest{AccountType: domain.CashAccount}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.account.CreateAccount(s.ctx, dto.CreateAccountRequest{AccountType: "ASSET", AccountName: "x"}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.account.CreateAccount(s.ctx, dto.CreateAccountRequest{AccountType: domain.CashAccount, AccountName: "x"}, "")
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_InitialBalanceShiftsBalance() {
	_, err := s.sale.CreateSale(s.ctx, dto.CreateSaleRequest{CustomerAccountID: customerID, Items: milkLine(2, 50)}, testUserID)
	s.Require().NoError(err)
	s.assertBalance(customerID, 100)

	initial := dec(40)
	name := "Ravi K"
	updated, err := s.account.UpdateAccount(s.ctx, customerID, dto.UpdateAccountRequest{
		AccountName:    &name,
		InitialBalance: &initial,
	}, testUserID)
	s.Require().NoError(err)

	s.Equal("Ravi K", updated.AccountName)
	s.True(updated.InitialBalance.Equal(dec(40)))
	s.True(updated.Balance.Equal(dec(140)))
	s.Equal(testUserID, updated.LastUpdatedBy)
	s.assertReplayMatches(customerID)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_Deactivate() {
	inactive := false
	updated, err := s.account.UpdateAccount(s.ctx, customer2, dto.UpdateAccountRequest{IsActive: &inactive}, testUserID)
	s.Require().NoError(err)
	s.False(updated.IsActive)

	_, err = s.sale.CreateSale(s.ctx, dto.CreateSaleRequest{CustomerAccountID: customer2, Items: milkLine(1, 50)}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_NotFound() {
	name := "x"
	_, err := s.account.UpdateAccount(s.ctx, "acc-missing", dto.UpdateAccountRequest{AccountName: &name}, testUserID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestSearchAccounts() {
	found, err := s.account.SearchAccounts(s.ctx, dto.SearchAccountsParams{AccountType: domain.CustomerAccount, ActiveOnly: true})
	s.Require().NoError(err)
	s.Len(found, 2)

	found, err = s.account.SearchAccounts(s.ctx, dto.SearchAccountsParams{Search: "feeds"})
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(supplierID, found[0].AccountID)

	all, err := s.account.ListAccounts(s.ctx, dto.ListAccountsParams{Limit: 3})
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *AccountServiceTestSuite) TestCreatePayment_Receive() {
	txn, err := s.account.CreatePayment(s.ctx, dto.CreatePaymentRequest{
		AccountID:        customerID,
		PaymentAccountID: cashID,
		Amount:           dec(120),
		PaymentType:      dto.PaymentReceive,
	}, testUserID)
	s.Require().NoError(err)

	s.Equal(cashID, txn.DebitAccountID)
	s.Equal(customerID, txn.CreditAccountID)
	s.Require().NotNil(txn.Ref)
	s.Equal(domain.PaymentRef, txn.Ref.Kind)
	s.assertBalance(cashID, 1120)
	s.assertBalance(customerID, -120)
}

func (s *AccountServiceTestSuite) TestCreatePayment_Give() {
	txn, err := s.account.CreatePayment(s.ctx, dto.CreatePaymentRequest{
		AccountID:        supplierID,
		PaymentAccountID: bankID,
		Amount:           dec(800),
		PaymentType:      dto.PaymentGive,
		Notes:            "Feed advance",
	}, testUserID)
	s.Require().NoError(err)

	s.Equal(supplierID, txn.DebitAccountID)
	s.Equal(bankID, txn.CreditAccountID)
	s.Equal("Feed advance", txn.Description)
	s.assertBalance(bankID, 4200)
	s.assertBalance(supplierID, -800)
	s.assertReplayMatches(bankID, supplierID)
}

func (s *AccountServiceTestSuite) TestCreatePayment_Validation() {
	_, err := s.account.CreatePayment(s.ctx, dto.CreatePaymentRequest{
		AccountID: customerID, PaymentAccountID: cashID, Amount: dec(10), PaymentType: "refund",
	}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.account.CreatePayment(s.ctx, dto.CreatePaymentRequest{
		AccountID: customerID, PaymentAccountID: expenseID, Amount: dec(10), PaymentType: dto.PaymentReceive,
	}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.account.CreatePayment(s.ctx, dto.CreatePaymentRequest{
		AccountID: customerID, PaymentAccountID: cashID, Amount: dec(0), PaymentType: dto.PaymentReceive,
	}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.assertBalance(cashID, 1000)
}

func (s *AccountServiceTestSuite) TestCreateTransfer() {
	txn, err := s.account.CreateTransfer(s.ctx, dto.TransferData{
		FromAccountID: cashID,
		ToAccountID:   bankID,
		Amount:        dec(600),
	}, testUserID)
	s.Require().NoError(err)

	s.Equal("Fund transfer", txn.Description)
	s.Equal(bankID, txn.DebitAccountID)
	s.Equal(cashID, txn.CreditAccountID)
	s.Equal(domain.VoucherContra, domain.VoucherTypeFor(txn.Ref))
	s.assertBalance(cashID, 400)
	s.assertBalance(bankID, 5600)
}

func (s *AccountServiceTestSuite) TestCreateTransfer_Validation() {
	_, err := s.account.CreateTransfer(s.ctx, dto.TransferData{FromAccountID: cashID, ToAccountID: cashID, Amount: dec(10)}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.account.CreateTransfer(s.ctx, dto.TransferData{FromAccountID: cashID, ToAccountID: customerID, Amount: dec(10)}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	s.assertBalance(cashID, 1000)
}
