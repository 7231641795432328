package auth

import (
	authsvc "wasteline-backend/internal/application/auth"
	"wasteline-backend/internal/middleware"
	"wasteline-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	Service *authsvc.Service
}

// Register POST /api/v1/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var body authsvc.RegisterInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	user, err := h.Service.Register(c.Context(), body)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.SuccessCreated(c, "User registered successfully", user, nil)
}

// RegisterCollectorRequest carries the user and profile in one body so both
// are created in a single transaction.
type RegisterCollectorRequest struct {
	User    authsvc.RegisterInput `json:"user"`
	Profile authsvc.ProfileInput  `json:"profile"`
}

// RegisterCollector POST /api/v1/auth/register/collector
func (h *Handlers) RegisterCollector(c *fiber.Ctx) error {
	var body RegisterCollectorRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	user, err := h.Service.RegisterCollector(c.Context(), body.User, body.Profile)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.SuccessCreated(c, "Collector registered successfully", user, nil)
}

// LoginRequest body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the login payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login POST /api/v1/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Email and password are required", fiber.StatusBadRequest, nil)
	}
	token, _, err := h.Service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Login successful", TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil)
}

// Me handles GET /api/v1/auth/me: current user, with collector profile when present.
func (h *Handlers) Me(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	me, err := h.Service.Me(c.Context(), user.ID)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "User fetched successfully", me, nil)
}
