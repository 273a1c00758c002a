package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"

	"client-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// ClientRepository defines persistence operations for clients.
// Methods accepting pgx.Tx run inside the caller's unit of work.
type ClientRepository interface {
	GetByID(ctx context.Context, tx pgx.Tx, id int64) (*domain.Client, error)
	// GetByIDForUpdate takes the client's row lock until tx ends.
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Client, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, id int64, balance int64) error
}

// TransactionRepository defines persistence operations for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error
	ListRecent(ctx context.Context, tx pgx.Tx, clientID int64, limit int) ([]domain.Transaction, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	// Begin starts a read-write transaction.
	Begin(ctx context.Context) (pgx.Tx, error)
	// BeginSnapshot starts a read-only transaction whose reads all see one snapshot.
	BeginSnapshot(ctx context.Context) (pgx.Tx, error)
}
