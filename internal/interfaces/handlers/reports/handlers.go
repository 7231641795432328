package reports

import (
	"strconv"

	repsvc "wasteline-backend/internal/application/reports"
	"wasteline-backend/internal/middleware"
	"wasteline-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *repsvc.Service
}

// CreateRequest body for POST /api/v1/reports.
type CreateRequest struct {
	Location    string  `json:"location"`
	Description *string `json:"description"`
	WasteType   string  `json:"waste_type"`
	Severity    string  `json:"severity"`
	ImageURL    string  `json:"image_url"`
}

// Create handles POST /api/v1/reports. Residents only (gated in router).
func (h *Handlers) Create(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	var body CreateRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	report, err := h.Service.Create(c.Context(), repsvc.CreateInput{
		UserID:      user.ID,
		Location:    body.Location,
		Description: body.Description,
		WasteType:   body.WasteType,
		Severity:    body.Severity,
		ImageURL:    body.ImageURL,
	})
	if err != nil {
		return response.AppError(c, err)
	}
	return response.SuccessCreated(c, "Report submitted successfully", report, nil)
}

// Mine handles GET /api/v1/reports/mine: the user's own reports, optionally filtered
// by status.
func (h *Handlers) Mine(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	reports, err := h.Service.ListByUser(c.Context(), user.ID, c.Query("status"))
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Reports fetched successfully", reports, nil)
}

// GetByID handles GET /api/v1/reports/:id. Owners only: reports from other users are
// indistinguishable from missing ones.
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	id, ok := paramID(c)
	if !ok {
		return response.Error(c, "Invalid report id", fiber.StatusBadRequest, nil)
	}
	report, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		return response.AppError(c, err)
	}
	if report.UserID != user.ID {
		return response.Error(c, "Report not found", fiber.StatusNotFound, nil)
	}
	return response.Success(c, "Report fetched successfully", report, nil)
}

// StatusRequest body for PATCH /api/v1/reports/:id/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/v1/reports/:id/status.
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	id, ok := paramID(c)
	if !ok {
		return response.Error(c, "Invalid report id", fiber.StatusBadRequest, nil)
	}
	var body StatusRequest
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return response.Error(c, "status is required", fiber.StatusBadRequest, nil)
	}
	report, err := h.Service.UpdateStatus(c.Context(), id, user.ID, body.Status)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Report status updated successfully", report, nil)
}

func paramID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
