package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"

	"client-ledger/internal/core/domain"
)

// LedgerService is the concurrency-safe home of client balances.
type LedgerService interface {
	// ApplyTransaction serializes with every other apply for the same client.
	ApplyTransaction(ctx context.Context, clientID int64, req domain.TransactionRequest) (*domain.Balance, error)
	Snapshot(ctx context.Context, clientID int64) (*domain.Snapshot, error)
}

// EventPublisher emits events about committed transactions.
type EventPublisher interface {
	PublishTransaction(ctx context.Context, event domain.TransactionEvent) error
}
