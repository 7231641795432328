package collectors

import (
	"strconv"

	collsvc "wasteline-backend/internal/application/collectors"
	"wasteline-backend/internal/middleware"
	"wasteline-backend/internal/pkg/response"
	"wasteline-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *collsvc.Service
}

// Search handles GET /api/v1/collectors: directory search with filters.
func (h *Handlers) Search(c *fiber.Ctx) error {
	limit, offset, ok := validation.Pagination(c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if !ok {
		return response.Error(c, "Invalid pagination parameters", fiber.StatusBadRequest, nil)
	}
	f := collsvc.Filters{
		Name:      c.Query("name"),
		Location:  c.Query("location"),
		WasteType: c.Query("waste_type"),
		Status:    c.Query("status"),
		Limit:     limit,
		Offset:    offset,
	}
	if raw := c.Query("min_price"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return response.Error(c, "Invalid min_price", fiber.StatusBadRequest, nil)
		}
		f.MinPrice = &v
	}
	if raw := c.Query("max_price"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return response.Error(c, "Invalid max_price", fiber.StatusBadRequest, nil)
		}
		f.MaxPrice = &v
	}
	results, err := h.Service.Search(c.Context(), f)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Collectors fetched successfully", results, fiber.Map{
		"count":  len(results),
		"limit":  limit,
		"offset": offset,
	})
}

// GetByID handles GET /api/v1/collectors/:id.
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return response.Error(c, "Invalid collector id", fiber.StatusBadRequest, nil)
	}
	profile, err := h.Service.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Collector fetched successfully", profile, nil)
}

// StatusRequest body for PATCH /api/v1/collectors/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/v1/collectors/status: the authenticated collector
// toggles their own availability (gated in router).
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	var body StatusRequest
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return response.Error(c, "status is required", fiber.StatusBadRequest, nil)
	}
	profile, err := h.Service.UpdateStatus(c.Context(), user.ID, body.Status)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Collector status updated successfully", profile, nil)
}
