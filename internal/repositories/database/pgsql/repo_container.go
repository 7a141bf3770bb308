package pgsql

import (
	portsrepo "github.com/dairyworks/farm_ledger/internal/core/ports/repositories"
)

// store binds every repository to the same DBTX.
type store struct {
	accounts     *accountRepository
	transactions *transactionRepository
	documents    *documentRepository
	inventory    *inventoryRepository
}

var _ portsrepo.Store = (*store)(nil)

func newStore(db DBTX) *store {
	base := BaseRepository{db: db}
	return &store{
		accounts:     &accountRepository{BaseRepository: base},
		transactions: &transactionRepository{BaseRepository: base},
		documents:    &documentRepository{BaseRepository: base},
		inventory:    &inventoryRepository{BaseRepository: base},
	}
}

func (s *store) Accounts() portsrepo.AccountRepositoryFacade         { return s.accounts }
func (s *store) Transactions() portsrepo.TransactionRepositoryFacade { return s.transactions }
func (s *store) Sales() portsrepo.SaleRepository                     { return s.documents }
func (s *store) Purchases() portsrepo.PurchaseRepository             { return s.documents }
func (s *store) Vouchers() portsrepo.VoucherRepository               { return s.documents }
func (s *store) Inventory() portsrepo.InventoryRepository            { return s.inventory }
func (s *store) Sequences() portsrepo.SequenceRepository             { return s.inventory }
