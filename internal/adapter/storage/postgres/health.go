package postgres

import (
	"context"
	"fmt"
)

// HealthCheck reports whether the ledger database accepts queries. It is the
// only dependency the ledger cannot run without.
type HealthCheck struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

// Ping round-trips a trivial statement through the pool, so an exhausted or
// disconnected pool shows up as unhealthy.
func (h *HealthCheck) Ping(ctx context.Context) error {
	if _, err := h.pool.Exec(ctx, "SELECT 1"); err != nil {
		return fmt.Errorf("ledger database unreachable: %w", err)
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "postgresql"
}
