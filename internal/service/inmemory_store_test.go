package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"client-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// inMemoryStore implements ClientRepository, TransactionRepository and
// DBTransactor with per-client row locks held until commit or rollback,
// mirroring SELECT ... FOR UPDATE semantics.
type inMemoryStore struct {
	mu       sync.Mutex
	clients  map[int64]domain.Client
	txns     []domain.Transaction
	rowLocks map[int64]*sync.Mutex
	nextID   int64

	failCreate bool
}

func newInMemoryStore(clients ...domain.Client) *inMemoryStore {
	s := &inMemoryStore{
		clients:  make(map[int64]domain.Client),
		rowLocks: make(map[int64]*sync.Mutex),
	}
	for _, c := range clients {
		s.clients[c.ID] = c
		s.rowLocks[c.ID] = &sync.Mutex{}
	}
	return s
}

// inMemoryTx stages writes and publishes them on Commit. A snapshot tx reads
// from copies taken at begin.
type inMemoryTx struct {
	pgx.Tx
	store *inMemoryStore

	snapshot    bool
	snapClients map[int64]domain.Client
	snapTxns    []domain.Transaction
	held        []int64
	balances    map[int64]int64
	pending     []domain.Transaction
	done        bool
}

func (s *inMemoryStore) Begin(_ context.Context) (pgx.Tx, error) {
	return &inMemoryTx{store: s, balances: make(map[int64]int64)}, nil
}

func (s *inMemoryStore) BeginSnapshot(_ context.Context) (pgx.Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients := make(map[int64]domain.Client, len(s.clients))
	for id, c := range s.clients {
		clients[id] = c
	}
	txns := make([]domain.Transaction, len(s.txns))
	copy(txns, s.txns)

	return &inMemoryTx{store: s, snapshot: true, snapClients: clients, snapTxns: txns}, nil
}

func (t *inMemoryTx) Commit(_ context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.store.mu.Lock()
	for id, balance := range t.balances {
		c := t.store.clients[id]
		c.Balance = balance
		t.store.clients[id] = c
	}
	t.store.txns = append(t.store.txns, t.pending...)
	t.store.mu.Unlock()

	t.release()
	return nil
}

func (t *inMemoryTx) Rollback(_ context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.release()
	return nil
}

func (t *inMemoryTx) release() {
	t.done = true
	for _, id := range t.held {
		t.store.rowLocks[id].Unlock()
	}
	t.held = nil
}

func (s *inMemoryStore) GetByID(_ context.Context, tx pgx.Tx, id int64) (*domain.Client, error) {
	t := tx.(*inMemoryTx)
	if t.snapshot {
		c, ok := t.snapClients[id]
		if !ok {
			return nil, nil
		}
		return &c, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *inMemoryStore) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Client, error) {
	t := tx.(*inMemoryTx)
	s.mu.Lock()
	lock, ok := s.rowLocks[id]
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}

	lock.Lock()
	t.held = append(t.held, id)
	return s.GetByID(ctx, tx, id)
}

func (s *inMemoryStore) UpdateBalance(_ context.Context, tx pgx.Tx, id int64, balance int64) error {
	t := tx.(*inMemoryTx)
	t.balances[id] = balance
	return nil
}

func (s *inMemoryStore) Create(_ context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	if s.failCreate {
		return errors.New("insert failed")
	}
	t := tx.(*inMemoryTx)

	s.mu.Lock()
	s.nextID++
	txn.ID = s.nextID
	s.mu.Unlock()

	txn.CreatedAt = time.Now()
	t.pending = append(t.pending, *txn)
	return nil
}

func (s *inMemoryStore) ListRecent(_ context.Context, tx pgx.Tx, clientID int64, limit int) ([]domain.Transaction, error) {
	t := tx.(*inMemoryTx)

	source := t.snapTxns
	if !t.snapshot {
		s.mu.Lock()
		source = append([]domain.Transaction(nil), s.txns...)
		s.mu.Unlock()
	}

	out := make([]domain.Transaction, 0, limit)
	for _, txn := range source {
		if txn.ClientID == clientID {
			out = append(out, txn)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *inMemoryStore) client(id int64) domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clients[id]
}

func (s *inMemoryStore) countTransactions(clientID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, txn := range s.txns {
		if txn.ClientID == clientID {
			n++
		}
	}
	return n
}
