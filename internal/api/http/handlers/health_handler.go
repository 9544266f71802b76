package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/swiftapp/staff-service/internal/api/dto"
	"github.com/swiftapp/staff-service/internal/observability"
	"github.com/swiftapp/staff-service/internal/persistence"
)

// HealthHandler responds to liveness, readiness and metrics probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
	metrics     *observability.Metrics
}

// NewHealthHandler returns a new handler instance. Nil or disabled stores are reported as "disabled".
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis, metrics: metrics}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(dto.OK(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	}))
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := map[string]any{}
	ready := true

	depStatus["postgres"] = probe(ctx, h.postgres.Enabled(), h.postgres.Ping, &ready)
	depStatus["redis"] = probe(ctx, h.redis.Enabled(), h.redis.Ping, &ready)

	if ready {
		return c.JSON(dto.OK(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		}))
	}
	return c.Status(fiber.StatusServiceUnavailable).JSON(
		dto.Fail("DEPENDENCY_UNAVAILABLE", "one or more dependencies unavailable", depStatus))
}

// Metrics reports in-memory request counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(dto.OK(h.metrics.Snapshot()))
}

func probe(ctx context.Context, enabled bool, ping func(context.Context) error, ready *bool) string {
	if !enabled {
		return "disabled"
	}
	if err := ping(ctx); err != nil {
		*ready = false
		return err.Error()
	}
	return "ok"
}
