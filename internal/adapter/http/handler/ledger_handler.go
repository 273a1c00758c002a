package handler

import (
	"strconv"

	"client-ledger/internal/adapter/http/dto"
	"client-ledger/internal/core/domain"
	"client-ledger/internal/core/ports"
	"client-ledger/pkg/apperror"
	"client-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// LedgerHandler serves the per-client ledger endpoints.
type LedgerHandler struct {
	ledgerSvc ports.LedgerService
}

func NewLedgerHandler(ledgerSvc ports.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

// CreateTransaction handles POST /clientes/:id/transacoes.
func (h *LedgerHandler) CreateTransaction(c *gin.Context) {
	clientID, ok := clientIDParam(c)
	if !ok {
		response.Error(c, apperror.ErrNotFound())
		return
	}

	var body dto.TransactionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.MalformedInput(dto.BindingMessage(err)))
		return
	}
	req, err := body.ToDomain()
	if err != nil {
		response.Error(c, apperror.MalformedInput(err.Error()))
		return
	}

	result, err := h.ledgerSvc.ApplyTransaction(c.Request.Context(), clientID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewBalanceResponse(result))
}

// GetSnapshot handles GET /clientes/:id/extrato.
func (h *LedgerHandler) GetSnapshot(c *gin.Context) {
	clientID, ok := clientIDParam(c)
	if !ok {
		response.Error(c, apperror.ErrNotFound())
		return
	}

	snap, err := h.ledgerSvc.Snapshot(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewSnapshotResponse(snap))
}

// clientIDParam parses :id. Anything that cannot name a client is reported
// as not found rather than malformed.
func clientIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || !domain.ValidClientID(id) {
		return 0, false
	}
	return id, true
}
