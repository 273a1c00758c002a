package postgres

import (
	"context"
	"fmt"

	"client-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct{}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo() *TransactionRepo {
	return &TransactionRepo{}
}

// Create appends a transaction within a database transaction. The store
// assigns the ID and timestamp; clock_timestamp() is read after the client
// lock is held, so timestamps follow lock order.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (client_id, amount, kind, description, created_at)
		VALUES ($1, $2, $3, $4, clock_timestamp())
		RETURNING id, created_at`

	err := tx.QueryRow(ctx, query, t.ClientID, t.Amount, t.Kind, t.Description).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListRecent returns up to limit transactions for a client, newest first.
func (r *TransactionRepo) ListRecent(ctx context.Context, tx pgx.Tx, clientID int64, limit int) ([]domain.Transaction, error) {
	query := `SELECT id, client_id, amount, kind, description, created_at
		FROM transactions WHERE client_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2`

	rows, err := tx.Query(ctx, query, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0, limit)
	for rows.Next() {
		t := domain.Transaction{}
		if err := rows.Scan(&t.ID, &t.ClientID, &t.Amount, &t.Kind, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, nil
}
