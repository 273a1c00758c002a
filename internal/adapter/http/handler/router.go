package handler

import (
	"client-ledger/internal/adapter/http/middleware"
	"client-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 16

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	LedgerSvc      ports.LedgerService
	RateLimiter    ports.RateLimiter // nil = rate limiting disabled
	RateLimit      middleware.RateLimitRule
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter builds the gin engine. The caller sets the gin mode.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBodyBytes))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	ledgerHandler := NewLedgerHandler(deps.LedgerSvc)
	clients := r.Group("/clientes/:id")
	if deps.RateLimiter != nil && deps.RateLimit.Enabled() {
		clients.Use(middleware.RateLimiter(deps.RateLimiter, deps.RateLimit, deps.Logger))
	}
	{
		clients.POST("/transacoes", ledgerHandler.CreateTransaction)
		clients.GET("/extrato", ledgerHandler.GetSnapshot)
	}

	return r
}
