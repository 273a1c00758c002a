package domain

import "time"

// Client is a pre-provisioned account. Limit never changes; Balance >= -Limit.
type Client struct {
	ID      int64
	Limit   int64
	Balance int64
}

// Balance is the state returned after a committed transaction.
type Balance struct {
	Limit   int64 `json:"limite"`
	Balance int64 `json:"saldo"`
}

// Snapshot is a consistent view of a client and its most recent transactions,
// newest first.
type Snapshot struct {
	Limit              int64
	Balance            int64
	TakenAt            time.Time
	RecentTransactions []Transaction
}

// ValidClientID reports whether id can name a client at all.
func ValidClientID(id int64) bool {
	return id > 0
}
