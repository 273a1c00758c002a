package postgres

import (
	"context"
	"errors"
	"fmt"

	"client-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// ClientRepo implements ports.ClientRepository.
type ClientRepo struct{}

// NewClientRepo creates a new ClientRepo. All its reads and writes go through
// the caller's transaction.
func NewClientRepo() *ClientRepo {
	return &ClientRepo{}
}

// GetByID fetches a client without locking. Returns nil, nil if it does not exist.
func (r *ClientRepo) GetByID(ctx context.Context, tx pgx.Tx, id int64) (*domain.Client, error) {
	query := `SELECT id, credit_limit, balance FROM clients WHERE id = $1`

	c, err := scanClient(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get client by id: %w", err)
	}
	return c, nil
}

// GetByIDForUpdate fetches a client and holds its row lock until tx ends.
// Concurrent callers for the same id block here; other ids are unaffected.
func (r *ClientRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Client, error) {
	query := `SELECT id, credit_limit, balance FROM clients WHERE id = $1 FOR UPDATE`

	c, err := scanClient(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get client for update: %w", err)
	}
	return c, nil
}

// UpdateBalance sets a client's balance within a transaction.
func (r *ClientRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, id int64, balance int64) error {
	query := `UPDATE clients SET balance = $1 WHERE id = $2`

	tag, err := tx.Exec(ctx, query, balance, id)
	if err != nil {
		return fmt.Errorf("update client balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("client not found: %d", id)
	}
	return nil
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	c := &domain.Client{}
	if err := row.Scan(&c.ID, &c.Limit, &c.Balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}
