package repositories

// Store bundles every repository a service needs. Implementations bound to a unit of
// work make all of their reads and writes part of that unit.
type Store interface {
	Accounts() AccountRepositoryFacade
	Transactions() TransactionRepositoryFacade
	Sales() SaleRepository
	Purchases() PurchaseRepository
	Vouchers() VoucherRepository
	Inventory() InventoryRepository
	Sequences() SequenceRepository
}
