package health

import (
	healthsvc "wasteline-backend/internal/application/health"
	"wasteline-backend/internal/middleware"
	"wasteline-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type Handlers struct {
	Rdb      *redis.Client
	DB       healthsvc.DBPinger
	AdminKey string
}

// Root handles GET /: liveness banner.
func (h *Handlers) Root(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Wasteline API is running",
	})
}

// JSON handles GET /health/json: runtime, traffic and dependency health.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := healthsvc.CollectHealth(c.Context(), h.Rdb, h.DB)
	return c.Status(fiber.StatusOK).JSON(result)
}

// Reset handles POST /health/reset: clears the Redis traffic counters. Guarded by the
// admin key header.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	if h.AdminKey == "" || c.Get("X-Admin-Key") != h.AdminKey {
		return response.Error(c, "Forbidden", fiber.StatusForbidden, nil)
	}
	keys := []string{
		middleware.KeyReqTotal,
		middleware.KeyReqErrors,
		middleware.KeyResTime,
		middleware.KeyResCount,
		middleware.KeyStartTime,
		middleware.KeyLastReq,
	}
	if h.Rdb != nil {
		if err := h.Rdb.Del(c.Context(), keys...).Err(); err != nil {
			return response.Error(c, "Failed to reset health counters", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Health counters reset", nil, nil)
}
