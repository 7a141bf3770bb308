package services_test

import (
	"testing"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/dairyworks/farm_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type PurchaseServiceTestSuite struct {
	ledgerSuite
}

func TestPurchaseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PurchaseServiceTestSuite))
}

func (s *PurchaseServiceTestSuite) TestCreatePurchase_PartlyPaid() {
	purchase, err := s.purchase.CreatePurchase(s.ctx, dto.CreatePurchaseRequest{
		SupplierAccountID: supplierID,
		Items:             milkLine(20, 30),
		PaidAmount:        dec(200),
		PaymentAccountID:  cashID,
	}, testUserID)
	s.Require().NoError(err)

	s.Equal("PUR-000001", purchase.Ref().Number)
	s.True(purchase.GrandTotal.Equal(dec(600)))
	s.assertBalance(purchaseID, 600)
	s.assertBalance(supplierID, 400)
	s.assertBalance(cashID, 800)
	s.True(s.stock(milkID).Equal(dec(120)))

	txns, err := s.store.Transactions().FindTransactionsByRef(s.ctx, domain.PurchaseRef, purchase.PurchaseID)
	s.Require().NoError(err)
	s.Require().Len(txns, 2)
	s.Equal(purchaseID, txns[0].DebitAccountID)
	s.Equal(supplierID, txns[0].CreditAccountID)
	s.Equal(supplierID, txns[1].DebitAccountID)
	s.Equal(cashID, txns[1].CreditAccountID)

	s.assertReplayMatches(purchaseID, supplierID, cashID)
}

func (s *PurchaseServiceTestSuite) TestCreatePurchase_OverpaymentBecomesAdvance() {
	_, err := s.purchase.CreatePurchase(s.ctx, dto.CreatePurchaseRequest{
		SupplierAccountID: supplierID,
		Items:             milkLine(10, 30),
		PaidAmount:        dec(500),
		PaymentAccountID:  bankID,
	}, testUserID)
	s.Require().NoError(err)

	s.assertBalance(supplierID, -200)
	s.assertBalance(bankID, 4500)
	s.assertReplayMatches(supplierID, bankID)
}

func (s *PurchaseServiceTestSuite) TestCreatePurchase_Validation() {
	_, err := s.purchase.CreatePurchase(s.ctx, dto.CreatePurchaseRequest{
		SupplierAccountID: customerID,
		Items:             milkLine(1, 30),
	}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.purchase.CreatePurchase(s.ctx, dto.CreatePurchaseRequest{
		SupplierAccountID: supplierID,
		Items:             milkLine(1, 30),
		PaidAmount:        dec(30),
	}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.purchase.CreatePurchase(s.ctx, dto.CreatePurchaseRequest{
		SupplierAccountID: supplierID,
		Date:              "15-03-2026",
		Items:             milkLine(1, 30),
	}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	s.assertBalance(supplierID, 0)
	s.True(s.stock(milkID).Equal(dec(100)))
}

func (s *PurchaseServiceTestSuite) TestGetAndListPurchases() {
	created, err := s.purchase.CreatePurchase(s.ctx, dto.CreatePurchaseRequest{
		SupplierAccountID: supplierID,
		Date:              "2026-03-02",
		Items:             milkLine(5, 30),
	}, testUserID)
	s.Require().NoError(err)

	got, err := s.purchase.GetPurchase(s.ctx, created.PurchaseID)
	s.Require().NoError(err)
	s.Equal(created.PurchaseNumber, got.PurchaseNumber)
	s.Require().Len(got.Items, 1)
	s.Equal("Milk", got.Items[0].Name)

	listed, err := s.purchase.ListPurchasesByDate(s.ctx, "2026-03-02")
	s.Require().NoError(err)
	s.Len(listed, 1)

	listed, err = s.purchase.ListPurchasesByDate(s.ctx, "2026-03-03")
	s.Require().NoError(err)
	s.Empty(listed)

	_, err = s.purchase.GetPurchase(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}
