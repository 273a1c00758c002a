package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// schemaDDL is idempotent. The CHECK constraint backs the overdraft rule at
// the storage level; the service never relies on it to decide.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS clients (
	id           BIGINT PRIMARY KEY CHECK (id > 0),
	credit_limit BIGINT NOT NULL CHECK (credit_limit >= 0),
	balance      BIGINT NOT NULL DEFAULT 0,
	CONSTRAINT balance_within_limit CHECK (balance >= -credit_limit)
);

CREATE TABLE IF NOT EXISTS transactions (
	id          BIGSERIAL PRIMARY KEY,
	client_id   BIGINT NOT NULL REFERENCES clients (id),
	amount      BIGINT NOT NULL CHECK (amount > 0),
	kind        CHAR(1) NOT NULL CHECK (kind IN ('c', 'd')),
	description VARCHAR(10) NOT NULL CHECK (char_length(description) BETWEEN 1 AND 10),
	created_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS transactions_client_recent_idx
	ON transactions (client_id, created_at DESC, id DESC);
`

// seedClientsSQL provisions the default clients only into an empty table.
const seedClientsSQL = `
INSERT INTO clients (id, credit_limit, balance)
SELECT v.id, v.credit_limit, 0
FROM (VALUES (1, 100000), (2, 80000), (3, 1000000), (4, 10000000), (5, 500000)) AS v (id, credit_limit)
WHERE NOT EXISTS (SELECT 1 FROM clients)`

// Bootstrap creates the ledger tables when missing and seeds the default
// clients into an empty database. It is not a migration tool.
func Bootstrap(ctx context.Context, pool Pool, log zerolog.Logger) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tag, err := pool.Exec(ctx, seedClientsSQL)
	if err != nil {
		return fmt.Errorf("seed clients: %w", err)
	}

	log.Info().
		Int64("seeded_clients", tag.RowsAffected()).
		Msg("ledger schema ready")
	return nil
}
