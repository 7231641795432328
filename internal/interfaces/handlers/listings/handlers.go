package listings

import (
	"strconv"

	listsvc "wasteline-backend/internal/application/listings"
	"wasteline-backend/internal/middleware"
	"wasteline-backend/internal/pkg/response"
	"wasteline-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *listsvc.Service
}

// CreateRequest body for POST /api/v1/listings.
type CreateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	WasteType   string  `json:"waste_type"`
	Price       float64 `json:"price"`
	Quantity    string  `json:"quantity"`
	Location    string  `json:"location"`
	ImageURL    string  `json:"image_url"`
}

// Create handles POST /api/v1/listings. Residents only (gated in router).
func (h *Handlers) Create(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	var body CreateRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	listing, err := h.Service.Create(c.Context(), listsvc.CreateInput{
		ResidentID:  user.ID,
		Title:       body.Title,
		Description: body.Description,
		WasteType:   body.WasteType,
		Price:       body.Price,
		Quantity:    body.Quantity,
		Location:    body.Location,
		ImageURL:    body.ImageURL,
	})
	if err != nil {
		return response.AppError(c, err)
	}
	return response.SuccessCreated(c, "Listing created successfully", listing, nil)
}

// List handles GET /api/v1/listings: public search with filters and pagination.
func (h *Handlers) List(c *fiber.Ctx) error {
	filters, ok := parseFilters(c)
	if !ok {
		return response.Error(c, "Invalid pagination or price parameters", fiber.StatusBadRequest, nil)
	}
	listings, err := h.Service.List(c.Context(), filters)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Listings fetched successfully", listings, fiber.Map{
		"count":  len(listings),
		"limit":  filters.Limit,
		"offset": filters.Offset,
	})
}

// Mine handles GET /api/v1/listings/mine: the resident's own listings.
func (h *Handlers) Mine(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	includeSold := c.QueryBool("include_sold", false)
	listings, err := h.Service.ListByResident(c.Context(), user.ID, includeSold)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Listings fetched successfully", listings, nil)
}

// Reservations handles GET /api/v1/listings/reservations: listings held by the collector.
func (h *Handlers) Reservations(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	listings, err := h.Service.Reservations(c.Context(), user.ID)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Reservations fetched successfully", listings, nil)
}

// GetByID handles GET /api/v1/listings/:id.
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	listing, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Listing fetched successfully", listing, nil)
}

// TransitionRequest body for PATCH /api/v1/listings/:id/status.
type TransitionRequest struct {
	Status string `json:"status"`
}

// Transition handles PATCH /api/v1/listings/:id/status. Collectors only (gated in
// router). The acting collector is recorded on RESERVED/SOLD transitions.
func (h *Handlers) Transition(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	id, ok := paramID(c)
	if !ok {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	var body TransitionRequest
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return response.Error(c, "status is required", fiber.StatusBadRequest, nil)
	}
	collectorID := user.ID
	listing, err := h.Service.Transition(c.Context(), id, body.Status, &collectorID)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Listing status updated successfully", listing, nil)
}

// Events handles GET /api/v1/listings/:id/events: the lifecycle audit trail.
func (h *Handlers) Events(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	events, err := h.Service.Events(c.Context(), id)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Listing events fetched successfully", events, nil)
}

// --- helpers ---

func paramID(c *fiber.Ctx) (uint, bool) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parseFilters(c *fiber.Ctx) (listsvc.Filters, bool) {
	limit, offset, ok := validation.Pagination(c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if !ok {
		return listsvc.Filters{}, false
	}
	f := listsvc.Filters{
		WasteType:   c.Query("waste_type"),
		Location:    c.Query("location"),
		Status:      c.Query("status"),
		IncludeSold: c.QueryBool("include_sold", false),
		Limit:       limit,
		Offset:      offset,
	}
	if raw := c.Query("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return listsvc.Filters{}, false
		}
		f.MinPrice = &v
	}
	if raw := c.Query("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return listsvc.Filters{}, false
		}
		f.MaxPrice = &v
	}
	return f, true
}
