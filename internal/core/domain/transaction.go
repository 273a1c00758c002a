package domain

import (
	"errors"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// TransactionKind is the direction of a money movement on a client balance.
type TransactionKind string

const (
	TransactionKindCredit TransactionKind = "c"
	TransactionKindDebit  TransactionKind = "d"
)

// MaxDescriptionLength is measured in characters, not bytes.
const MaxDescriptionLength = 10

// MaxAmount is the largest single transaction amount accepted.
const MaxAmount = math.MaxInt32

// RecentTransactionsLimit is how many transactions a snapshot carries.
const RecentTransactionsLimit = 10

var (
	ErrInvalidAmount      = errors.New("amount must be a positive integer no greater than 2147483647")
	ErrInvalidKind        = errors.New("kind must be one of c, d")
	ErrInvalidDescription = errors.New("description must have between 1 and 10 printable characters")
)

// Valid reports whether k is one of the two known kinds.
func (k TransactionKind) Valid() bool {
	return k == TransactionKindCredit || k == TransactionKindDebit
}

// Transaction is an immutable ledger entry, created only by a committed apply.
type Transaction struct {
	ID          int64           `json:"-"`
	ClientID    int64           `json:"-"`
	Amount      int64           `json:"valor"`
	Kind        TransactionKind `json:"tipo"`
	Description string          `json:"descricao"`
	CreatedAt   time.Time       `json:"realizada_em"`
}

// TransactionRequest is a structurally valid request to move money.
// Build it with ParseTransactionRequest; the zero value is not valid.
type TransactionRequest struct {
	Amount      int64
	Kind        TransactionKind
	Description string
}

// ParseTransactionRequest checks the shape of an incoming transaction and
// returns the first reason it is malformed.
func ParseTransactionRequest(amount int64, kind string, description string) (TransactionRequest, error) {
	if amount <= 0 || amount > MaxAmount {
		return TransactionRequest{}, ErrInvalidAmount
	}
	k := TransactionKind(kind)
	if !k.Valid() {
		return TransactionRequest{}, ErrInvalidKind
	}
	if !validDescription(description) {
		return TransactionRequest{}, ErrInvalidDescription
	}
	return TransactionRequest{Amount: amount, Kind: k, Description: description}, nil
}

// Decision is the outcome of Decide. NewBalance is meaningful only when Accepted.
type Decision struct {
	Accepted   bool
	NewBalance int64
}

// validDescription requires 1..MaxDescriptionLength runes of valid UTF-8 with
// no control characters. The store cannot hold NUL.
func validDescription(d string) bool {
	if !utf8.ValidString(d) {
		return false
	}
	n := utf8.RuneCountInString(d)
	if n < 1 || n > MaxDescriptionLength {
		return false
	}
	return strings.IndexFunc(d, unicode.IsControl) < 0
}

// Decide applies a transaction to a balance without touching any store.
// Credits pass unless the balance would overflow; a debit passes only if the
// result stays >= -limit. amount must be positive.
func Decide(balance, limit, amount int64, kind TransactionKind) Decision {
	if amount <= 0 {
		return Decision{}
	}
	switch kind {
	case TransactionKindCredit:
		if balance > math.MaxInt64-amount {
			return Decision{}
		}
		return Decision{Accepted: true, NewBalance: balance + amount}
	case TransactionKindDebit:
		if balance < math.MinInt64+amount {
			return Decision{}
		}
		next := balance - amount
		if next < -limit {
			return Decision{}
		}
		return Decision{Accepted: true, NewBalance: next}
	default:
		return Decision{}
	}
}
