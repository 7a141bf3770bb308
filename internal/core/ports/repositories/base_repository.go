package repositories

import "context"

// TxFunc is the body of a unit of work. It receives a Store whose repositories all
// operate inside the same database transaction.
type TxFunc func(ctx context.Context, tx Store) error

// UnitOfWork runs TxFunc bodies atomically: every write made through tx is committed
// together when fn returns nil and discarded when it returns an error or panics.
type UnitOfWork interface {
	Store
	WithinTx(ctx context.Context, fn TxFunc) error
}
