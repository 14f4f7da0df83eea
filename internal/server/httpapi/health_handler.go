package httpapi

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports backing store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	redis Pinger
}

func NewHealthHandler(redis Pinger) *HealthHandler {
	return &HealthHandler{redis: redis}
}

// Live handles GET /api/health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return Success(c, http.StatusOK, "", fiber.Map{"alive": true})
}

// Ready handles GET /api/health/ready.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ready := true
	if h.redis != nil && h.redis.Ping(c.UserContext()) != nil {
		ready = false
	}
	if !ready {
		return Error(c, http.StatusServiceUnavailable, "dependencies unavailable")
	}
	return Success(c, http.StatusOK, "", fiber.Map{"ready": true})
}
