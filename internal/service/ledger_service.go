package service

import (
	"context"
	"fmt"
	"time"

	"client-ledger/internal/core/domain"
	"client-ledger/internal/core/ports"
	"client-ledger/pkg/apperror"

	"github.com/rs/zerolog"
)

// LedgerServiceImpl implements ports.LedgerService on top of a row-locking
// relational store. It holds no balance state of its own.
type LedgerServiceImpl struct {
	clientRepo ports.ClientRepository
	txRepo     ports.TransactionRepository
	transactor ports.DBTransactor
	publisher  ports.EventPublisher // nil = events disabled
	now        func() time.Time
	log        zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl. publisher may be nil.
func NewLedgerService(
	clientRepo ports.ClientRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		clientRepo: clientRepo,
		txRepo:     txRepo,
		transactor: transactor,
		publisher:  publisher,
		now:        time.Now,
		log:        log,
	}
}

// ApplyTransaction locks the client's row, decides, and commits the new
// balance together with the transaction record. Any failure rolls both back.
func (s *LedgerServiceImpl) ApplyTransaction(ctx context.Context, clientID int64, req domain.TransactionRequest) (*domain.Balance, error) {
	if !domain.ValidClientID(clientID) {
		return nil, apperror.ErrNotFound()
	}
	if _, err := domain.ParseTransactionRequest(req.Amount, string(req.Kind), req.Description); err != nil {
		return nil, apperror.MalformedInput(err.Error())
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.StoreUnavailable(fmt.Errorf("begin tx: %w", err))
	}
	// Rollback must still reach the server when ctx is already cancelled.
	defer dbTx.Rollback(context.WithoutCancel(ctx)) //nolint:errcheck

	// Lock & get client; blocks while another apply holds this row.
	client, err := s.clientRepo.GetByIDForUpdate(ctx, dbTx, clientID)
	if err != nil {
		return nil, apperror.StoreUnavailable(fmt.Errorf("lock client: %w", err))
	}
	if client == nil {
		return nil, apperror.ErrNotFound()
	}

	decision := domain.Decide(client.Balance, client.Limit, req.Amount, req.Kind)
	if !decision.Accepted && req.Kind == domain.TransactionKindCredit {
		s.log.Warn().
			Int64("client_id", clientID).
			Int64("balance", client.Balance).
			Int64("amount", req.Amount).
			Msg("credit rejected: balance would overflow")
		return nil, apperror.MalformedInput("amount would overflow balance")
	}
	if !decision.Accepted {
		s.log.Info().
			Int64("client_id", clientID).
			Int64("balance", client.Balance).
			Int64("limit", client.Limit).
			Int64("amount", req.Amount).
			Msg("debit rejected: limit exceeded")
		return nil, apperror.ErrLimitExceeded()
	}

	if err := s.clientRepo.UpdateBalance(ctx, dbTx, clientID, decision.NewBalance); err != nil {
		return nil, apperror.StoreUnavailable(fmt.Errorf("update balance: %w", err))
	}

	txn := &domain.Transaction{
		ClientID:    clientID,
		Amount:      req.Amount,
		Kind:        req.Kind,
		Description: req.Description,
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.StoreUnavailable(fmt.Errorf("create transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.StoreUnavailable(fmt.Errorf("commit tx: %w", err))
	}

	result := &domain.Balance{Limit: client.Limit, Balance: decision.NewBalance}

	s.log.Debug().
		Int64("client_id", clientID).
		Str("kind", string(req.Kind)).
		Int64("amount", req.Amount).
		Int64("balance", result.Balance).
		Msg("transaction applied")

	s.publish(ctx, txn, result)

	return result, nil
}

// Snapshot reads the balance and the most recent transactions inside one
// read-only snapshot transaction. It takes no locks.
func (s *LedgerServiceImpl) Snapshot(ctx context.Context, clientID int64) (*domain.Snapshot, error) {
	if !domain.ValidClientID(clientID) {
		return nil, apperror.ErrNotFound()
	}

	dbTx, err := s.transactor.BeginSnapshot(ctx)
	if err != nil {
		return nil, apperror.StoreUnavailable(fmt.Errorf("begin snapshot tx: %w", err))
	}
	defer dbTx.Rollback(context.WithoutCancel(ctx)) //nolint:errcheck

	client, err := s.clientRepo.GetByID(ctx, dbTx, clientID)
	if err != nil {
		return nil, apperror.StoreUnavailable(fmt.Errorf("get client: %w", err))
	}
	if client == nil {
		return nil, apperror.ErrNotFound()
	}

	recent, err := s.txRepo.ListRecent(ctx, dbTx, clientID, domain.RecentTransactionsLimit)
	if err != nil {
		return nil, apperror.StoreUnavailable(fmt.Errorf("list transactions: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.StoreUnavailable(fmt.Errorf("commit snapshot tx: %w", err))
	}

	return &domain.Snapshot{
		Limit:              client.Limit,
		Balance:            client.Balance,
		TakenAt:            s.now().UTC(),
		RecentTransactions: recent,
	}, nil
}

// publish is best-effort: the transaction is already committed.
func (s *LedgerServiceImpl) publish(ctx context.Context, txn *domain.Transaction, b *domain.Balance) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransaction(context.WithoutCancel(ctx), domain.NewTransactionEvent(txn, b)); err != nil {
		s.log.Warn().Err(err).Int64("client_id", txn.ClientID).Msg("failed to publish transaction event")
	}
}
