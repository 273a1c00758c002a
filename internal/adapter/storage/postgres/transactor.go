package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// snapshotTxOptions gives every statement in the transaction the same MVCC
// snapshot, so a balance and its history are read from one committed state.
var snapshotTxOptions = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

// Transactor implements ports.DBTransactor using pgxpool.Pool.
type Transactor struct {
	pool Pool
}

// NewTransactor creates a new Transactor wrapping the connection pool.
func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool}
}

// Begin starts a new read-write database transaction.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return t.pool.Begin(ctx)
}

// BeginSnapshot starts a repeatable-read, read-only transaction.
func (t *Transactor) BeginSnapshot(ctx context.Context) (pgx.Tx, error) {
	return t.pool.BeginTx(ctx, snapshotTxOptions)
}
