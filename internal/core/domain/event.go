package domain

import "time"

// TransactionEvent describes a committed transaction and the balance it produced.
type TransactionEvent struct {
	ClientID    int64           `json:"client_id"`
	Amount      int64           `json:"amount"`
	Kind        TransactionKind `json:"kind"`
	Description string          `json:"description"`
	Balance     int64           `json:"balance"`
	Limit       int64           `json:"limit"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// NewTransactionEvent builds the event for a committed transaction.
func NewTransactionEvent(t *Transaction, b *Balance) TransactionEvent {
	return TransactionEvent{
		ClientID:    t.ClientID,
		Amount:      t.Amount,
		Kind:        t.Kind,
		Description: t.Description,
		Balance:     b.Balance,
		Limit:       b.Limit,
		OccurredAt:  t.CreatedAt,
	}
}
