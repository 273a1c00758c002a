package dto

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"client-ledger/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bind(t *testing.T, body string) (TransactionRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req TransactionRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

func TestTransactionRequest_Binding(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		wantMsg string
	}{
		{"valid debit", `{"valor":1000,"tipo":"d","descricao":"rent"}`, false, ""},
		{"valid credit ten chars", `{"valor":1,"tipo":"c","descricao":"abcdefghij"}`, false, ""},
		{"multibyte ten chars", `{"valor":1,"tipo":"c","descricao":"çççççççççç"}`, false, ""},
		{"zero valor", `{"valor":0,"tipo":"c","descricao":"x"}`, true, "valor is required"},
		{"negative valor", `{"valor":-5,"tipo":"c","descricao":"x"}`, true, "valor must be greater than 0"},
		{"fractional valor", `{"valor":1.5,"tipo":"c","descricao":"x"}`, true, "malformed request body"},
		{"string valor", `{"valor":"10","tipo":"c","descricao":"x"}`, true, "malformed request body"},
		{"unknown tipo", `{"valor":1,"tipo":"x","descricao":"x"}`, true, "tipo must be one of c, d"},
		{"upper tipo", `{"valor":1,"tipo":"C","descricao":"x"}`, true, "tipo must be one of c, d"},
		{"empty descricao", `{"valor":1,"tipo":"c","descricao":""}`, true, "descricao is required"},
		{"null descricao", `{"valor":1,"tipo":"c","descricao":null}`, true, "descricao is required"},
		{"long descricao", `{"valor":1,"tipo":"c","descricao":"abcdefghijk"}`, true, "descricao must have between 1 and 10 characters"},
		{"not json", `valor=1`, true, "malformed request body"},
		{"max valor", `{"valor":2147483647,"tipo":"d","descricao":"x"}`, false, ""},
		{"valor above int32", `{"valor":2147483648,"tipo":"d","descricao":"x"}`, true, "valor must be at most 2147483647"},
		{"max int64 valor", `{"valor":9223372036854775807,"tipo":"d","descricao":"x"}`, true, "valor must be at most 2147483647"},
		{"valor beyond int64", `{"valor":92233720368547758070,"tipo":"d","descricao":"x"}`, true, "malformed request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bind(t, tt.body)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, BindingMessage(err))
		})
	}
}

func TestTransactionRequest_ToDomain(t *testing.T) {
	req, err := bind(t, `{"valor":250,"tipo":"d","descricao":"coffee"}`)
	require.NoError(t, err)

	parsed, err := req.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionRequest{Amount: 250, Kind: domain.TransactionKindDebit, Description: "coffee"}, parsed)
}

func TestTransactionRequest_ToDomainRejectsControlCharacters(t *testing.T) {
	req, err := bind(t, `{"valor":1,"tipo":"c","descricao":"a\u0000b"}`)
	require.NoError(t, err)

	_, err = req.ToDomain()
	assert.ErrorIs(t, err, domain.ErrInvalidDescription)
}

func TestNewSnapshotResponse(t *testing.T) {
	taken := time.Date(2024, 2, 1, 12, 0, 0, 123000000, time.UTC)
	created := time.Date(2024, 2, 1, 11, 59, 0, 0, time.FixedZone("BRT", -3*3600))

	resp := NewSnapshotResponse(&domain.Snapshot{
		Limit:   1000,
		Balance: -500,
		TakenAt: taken,
		RecentTransactions: []domain.Transaction{
			{ID: 1, ClientID: 1, Amount: 500, Kind: domain.TransactionKindDebit, Description: "rent", CreatedAt: created},
		},
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"saldo": {"total": -500, "limite": 1000, "data_extrato": "2024-02-01T12:00:00.123Z"},
		"ultimas_transacoes": [
			{"valor": 500, "tipo": "d", "descricao": "rent", "realizada_em": "2024-02-01T14:59:00Z"}
		]
	}`, string(raw))
}

func TestNewSnapshotResponse_EmptyHistory(t *testing.T) {
	raw, err := json.Marshal(NewSnapshotResponse(&domain.Snapshot{Limit: 10}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"ultimas_transacoes":[]`)
}

func TestNewBalanceResponse(t *testing.T) {
	raw, err := json.Marshal(NewBalanceResponse(&domain.Balance{Limit: 1000, Balance: 1500}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"limite":1000,"saldo":1500}`, string(raw))
}

func TestTxKindValidationRegistered(t *testing.T) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	assert.NoError(t, v.Var("c", "txkind"))
	assert.NoError(t, v.Var("d", "txkind"))
	assert.Error(t, v.Var("x", "txkind"))
}
