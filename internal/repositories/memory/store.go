// Package memory provides an in-memory Store used for local development and tests.
// Units of work run against a private copy of the data that replaces the committed
// copy only when the unit succeeds, so a failed unit leaves no trace.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/dairyworks/farm_ledger/internal/core/domain"
	portsrepo "github.com/dairyworks/farm_ledger/internal/core/ports/repositories"
)

type state struct {
	accounts     map[string]domain.Account
	transactions map[string]domain.Transaction
	sales        map[string]domain.Sale
	purchases    map[string]domain.Purchase
	collections  map[string]domain.Collection
	expenses     map[string]domain.ExpenseVoucher
	products     map[string]domain.Product
	livestock    map[string]domain.Livestock
	movements    map[string]domain.StockMovement
	sequences    map[domain.SequenceName]int64
}

func newState() *state {
	return &state{
		accounts:     make(map[string]domain.Account),
		transactions: make(map[string]domain.Transaction),
		sales:        make(map[string]domain.Sale),
		purchases:    make(map[string]domain.Purchase),
		collections:  make(map[string]domain.Collection),
		expenses:     make(map[string]domain.ExpenseVoucher),
		products:     make(map[string]domain.Product),
		livestock:    make(map[string]domain.Livestock),
		movements:    make(map[string]domain.StockMovement),
		sequences:    make(map[domain.SequenceName]int64),
	}
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// clone copies every table. Stored values are never mutated in place, so copying the
// maps is enough to isolate a unit of work.
func (s *state) clone() *state {
	return &state{
		accounts:     copyMap(s.accounts),
		transactions: copyMap(s.transactions),
		sales:        copyMap(s.sales),
		purchases:    copyMap(s.purchases),
		collections:  copyMap(s.collections),
		expenses:     copyMap(s.expenses),
		products:     copyMap(s.products),
		livestock:    copyMap(s.livestock),
		movements:    copyMap(s.movements),
		sequences:    copyMap(s.sequences),
	}
}

// Store is the in-memory UnitOfWork. Reads see committed data under an RWMutex; writers,
// including whole units of work, are serialised by txMu.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *state
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{data: newState()}
}

var _ portsrepo.UnitOfWork = (*Store)(nil)

// view is one handle on the data. The root view reads and writes the committed state
// with locking; a tx view owns a private copy for the duration of a unit of work.
type view struct {
	store *Store
	tx    *state
	txMu  sync.Mutex
}

func (s *Store) root() *view { return &view{store: s} }

func (v *view) read(fn func(d *state) error) error {
	if v.tx != nil {
		v.txMu.Lock()
		defer v.txMu.Unlock()
		return fn(v.tx)
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return fn(v.store.data)
}

// write applies fn to the data. Outside a unit of work fn must validate before it
// mutates, since there is no copy to discard.
func (v *view) write(fn func(d *state) error) error {
	if v.tx != nil {
		v.txMu.Lock()
		defer v.txMu.Unlock()
		return fn(v.tx)
	}
	v.store.txMu.Lock()
	defer v.store.txMu.Unlock()
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.data)
}

func (v *view) Accounts() portsrepo.AccountRepositoryFacade         { return v }
func (v *view) Transactions() portsrepo.TransactionRepositoryFacade { return v }
func (v *view) Sales() portsrepo.SaleRepository                     { return v }
func (v *view) Purchases() portsrepo.PurchaseRepository             { return v }
func (v *view) Vouchers() portsrepo.VoucherRepository               { return v }
func (v *view) Inventory() portsrepo.InventoryRepository            { return v }
func (v *view) Sequences() portsrepo.SequenceRepository             { return v }

func (s *Store) Accounts() portsrepo.AccountRepositoryFacade         { return s.root() }
func (s *Store) Transactions() portsrepo.TransactionRepositoryFacade { return s.root() }
func (s *Store) Sales() portsrepo.SaleRepository                     { return s.root() }
func (s *Store) Purchases() portsrepo.PurchaseRepository             { return s.root() }
func (s *Store) Vouchers() portsrepo.VoucherRepository               { return s.root() }
func (s *Store) Inventory() portsrepo.InventoryRepository            { return s.root() }
func (s *Store) Sequences() portsrepo.SequenceRepository             { return s.root() }

// WithinTx runs fn against a private copy of the data and publishes the copy only if fn
// succeeds. A panic inside fn discards the copy and is re-raised.
func (s *Store) WithinTx(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	working := s.data.clone()
	s.mu.RUnlock()

	tx := &view{store: s, tx: working}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("unit of work cancelled: %w", err)
	}

	s.mu.Lock()
	s.data = working
	s.mu.Unlock()
	return nil
}

// SeedAccount stores an account as-is. Used by local development and tests.
func (s *Store) SeedAccount(a domain.Account) {
	s.mu.Lock()
	s.data.accounts[a.AccountID] = a
	s.mu.Unlock()
}

// SeedProduct stores a product as-is.
func (s *Store) SeedProduct(p domain.Product) {
	s.mu.Lock()
	s.data.products[p.ProductID] = p
	s.mu.Unlock()
}

// SeedLivestock stores a livestock group as-is.
func (s *Store) SeedLivestock(l domain.Livestock) {
	s.mu.Lock()
	s.data.livestock[l.LivestockID] = l
	s.mu.Unlock()
}

// Reset drops all data.
func (s *Store) Reset() {
	s.txMu.Lock()
	s.mu.Lock()
	s.data = newState()
	s.mu.Unlock()
	s.txMu.Unlock()
}
