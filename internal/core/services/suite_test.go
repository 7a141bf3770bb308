package services_test

import (
	"context"
	"time"

	"github.com/dairyworks/farm_ledger/internal/core/domain"
	portssvc "github.com/dairyworks/farm_ledger/internal/core/ports/services"
	"github.com/dairyworks/farm_ledger/internal/core/services"
	"github.com/dairyworks/farm_ledger/internal/dto"
	"github.com/dairyworks/farm_ledger/internal/repositories/memory"
	"github.com/dairyworks/farm_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const (
	testUserID = "user-1"

	salesID    = "acc-sales"
	purchaseID = "acc-purchase"
	cashID     = "acc-cash"
	bankID     = "acc-bank"
	customerID = "acc-ravi"
	customer2  = "acc-meena"
	supplierID = "acc-feeds"
	expenseID  = "acc-fuel"
	inactiveID = "acc-closed"
	milkID     = "prod-milk"
	calvesID   = "ls-calves"
)

var fixedNow = time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// ledgerSuite wires every service against a fresh in-memory store.
type ledgerSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memory.Store
	account  portssvc.AccountSvcFacade
	sale     portssvc.SaleSvcFacade
	purchase portssvc.PurchaseSvcFacade
	ledger   portssvc.LedgerSvc
	dayBook  portssvc.DayBookSvcFacade
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()

	seed := func(id string, t domain.AccountType, name string, initial int64, active bool) {
		acc := domain.Account{
			AccountID:      id,
			AccountType:    t,
			AccountName:    name,
			InitialBalance: dec(initial),
			BalanceMethod:  domain.BalanceMethodFor(t),
			IsActive:       active,
			AuditFields:    domain.NewAuditFields("seed", fixedNow.AddDate(0, -1, 0)),
		}
		acc.Balance = acc.Baseline()
		s.store.SeedAccount(acc)
	}
	seed(salesID, domain.SaleAccount, "Sales Account", 0, true)
	seed(purchaseID, domain.PurchaseAccount, "Purchase Account", 0, true)
	seed(cashID, domain.CashAccount, "Cash Account", 1000, true)
	seed(bankID, domain.BankAccount, "Farmers Bank", 5000, true)
	seed(customerID, domain.CustomerAccount, "Ravi", 0, true)
	seed(customer2, domain.CustomerAccount, "Meena", 0, true)
	seed(supplierID, domain.SupplierAccount, "Green Feeds", 0, true)
	seed(expenseID, domain.ExpenseAccount, "Diesel", 0, true)
	seed(inactiveID, domain.CustomerAccount, "Closed Customer", 0, false)

	s.store.SeedProduct(domain.Product{ProductID: milkID, Name: "Milk", Unit: "L", CurrentStock: dec(100), SalePrice: dec(50)})
	s.store.SeedLivestock(domain.Livestock{LivestockID: calvesID, TagNumber: "C-01", Category: "Calf", Quantity: dec(3)})

	clock := services.WithClock(func() time.Time { return fixedNow })
	names := services.AccountNames{}
	s.account = services.NewAccountService(s.store, clock)
	s.sale = services.NewSaleService(s.store, names, clock)
	s.purchase = services.NewPurchaseService(s.store, names, clock)
	s.ledger = services.NewLedgerService(s.store, names, clock)
	s.dayBook = services.NewDayBookService(s.store, clock)
}

func (s *ledgerSuite) balance(accountID string) decimal.Decimal {
	acc, err := s.store.Accounts().FindAccountByID(s.ctx, accountID)
	s.Require().NoError(err)
	return acc.Balance
}

func (s *ledgerSuite) assertBalance(accountID string, want int64) {
	got := s.balance(accountID)
	s.True(got.Equal(dec(want)), "balance of %s: want %d, got %s", accountID, want, got)
}

func (s *ledgerSuite) stock(id string) decimal.Decimal {
	item, err := s.store.Inventory().FindItem(s.ctx, domain.ItemRef{Kind: domain.ProductItem, ID: id})
	s.Require().NoError(err)
	return item.AvailableStock()
}

func (s *ledgerSuite) allTime() domain.DateRange {
	return domain.DateRange{
		Start: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// assertReplayMatches recomputes each account's balance from its transactions.
func (s *ledgerSuite) assertReplayMatches(ids ...string) {
	for _, id := range ids {
		acc, err := s.store.Accounts().FindAccountByID(s.ctx, id)
		s.Require().NoError(err)
		txns, err := s.store.Transactions().ListTransactionsByAccount(s.ctx, id, s.allTime())
		s.Require().NoError(err)
		replayed := accounting.ReplayBalance(*acc, txns)
		s.True(replayed.Equal(acc.Balance), "replay of %s: stored %s, replayed %s", id, acc.Balance, replayed)
	}
}

func milkLine(qty, rate int64) []dto.LineItemRequest {
	return []dto.LineItemRequest{{ItemType: domain.ProductItem, ItemID: milkID, Quantity: dec(qty), Rate: dec(rate)}}
}
