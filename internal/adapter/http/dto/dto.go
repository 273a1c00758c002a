package dto

import (
	"time"

	"client-ledger/internal/core/domain"
)

// TransactionRequest is the request body for POST /clientes/:id/transacoes.
type TransactionRequest struct {
	Valor     int64  `json:"valor" binding:"required,gt=0,max=2147483647"`
	Tipo      string `json:"tipo" binding:"required,txkind"`
	Descricao string `json:"descricao" binding:"required,min=1,max=10"`
}

// ToDomain runs the domain parse on the bound body.
func (r TransactionRequest) ToDomain() (domain.TransactionRequest, error) {
	return domain.ParseTransactionRequest(r.Valor, r.Tipo, r.Descricao)
}

// BalanceResponse is returned after an accepted transaction.
type BalanceResponse struct {
	Limite int64 `json:"limite"`
	Saldo  int64 `json:"saldo"`
}

func NewBalanceResponse(b *domain.Balance) BalanceResponse {
	return BalanceResponse{Limite: b.Limit, Saldo: b.Balance}
}

// SnapshotResponse is the body of GET /clientes/:id/extrato.
type SnapshotResponse struct {
	Saldo             SnapshotBalance       `json:"saldo"`
	UltimasTransacoes []TransactionResponse `json:"ultimas_transacoes"`
}

type SnapshotBalance struct {
	Total       int64  `json:"total"`
	Limite      int64  `json:"limite"`
	DataExtrato string `json:"data_extrato"`
}

type TransactionResponse struct {
	Valor       int64  `json:"valor"`
	Tipo        string `json:"tipo"`
	Descricao   string `json:"descricao"`
	RealizadaEm string `json:"realizada_em"`
}

func NewSnapshotResponse(s *domain.Snapshot) SnapshotResponse {
	items := make([]TransactionResponse, 0, len(s.RecentTransactions))
	for _, t := range s.RecentTransactions {
		items = append(items, TransactionResponse{
			Valor:       t.Amount,
			Tipo:        string(t.Kind),
			Descricao:   t.Description,
			RealizadaEm: formatTime(t.CreatedAt),
		})
	}

	return SnapshotResponse{
		Saldo: SnapshotBalance{
			Total:       s.Balance,
			Limite:      s.Limit,
			DataExtrato: formatTime(s.TakenAt),
		},
		UltimasTransacoes: items,
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
