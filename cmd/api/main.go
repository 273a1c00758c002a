package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"client-ledger/config"
	"client-ledger/internal/adapter/events/kafka"
	httpHandler "client-ledger/internal/adapter/http/handler"
	"client-ledger/internal/adapter/http/middleware"
	pgStorage "client-ledger/internal/adapter/storage/postgres"
	redisStorage "client-ledger/internal/adapter/storage/redis"
	"client-ledger/internal/core/ports"
	"client-ledger/internal/service"
	"client-ledger/pkg/logger"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Getenv("LEDGER_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	setGinMode(cfg.Server.Mode)

	log.Info().
		Str("mode", gin.Mode()).
		Int("port", cfg.Server.Port).
		Msg("Starting client ledger")

	ctx := context.Background()

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	if cfg.Database.Bootstrap {
		if err := pgStorage.Bootstrap(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap schema")
		}
	}

	healthCheckers := []ports.HealthChecker{pgStorage.NewHealthCheck(pool)}

	var rateLimiter ports.RateLimiter
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()

		rateLimiter = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	}

	// Left as a nil interface when disabled so the service skips publishing.
	var publisher ports.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kp := kafka.NewPublisher(cfg.Kafka, log)
		defer func() {
			if err := kp.Close(); err != nil {
				log.Warn().Err(err).Msg("Kafka publisher close failed")
			}
		}()
		publisher = kp
	}

	ledgerSvc := service.NewLedgerService(
		pgStorage.NewClientRepo(),
		pgStorage.NewTransactionRepo(),
		pgStorage.NewTransactor(pool),
		publisher,
		logger.Component(log, "ledger"),
	)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		LedgerSvc:   ledgerSvc,
		RateLimiter: rateLimiter,
		RateLimit: middleware.RateLimitRule{
			Limit:  cfg.RateLimit.Limit,
			Window: cfg.RateLimit.Window,
		},
		HealthCheckers: healthCheckers,
		Logger:         logger.Component(log, "http"),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func setGinMode(mode string) {
	switch mode {
	case gin.DebugMode, gin.TestMode:
		gin.SetMode(mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
}
