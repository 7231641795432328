package middleware

import (
	"strings"

	authsvc "wasteline-backend/internal/application/auth"
	"wasteline-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// AuthUser is the authenticated identity attached to the request context.
type AuthUser struct {
	ID    uint
	Email string
	Role  string
}

// RequireAuth validates the bearer token and attaches the identity to Locals.
// Returns 401 with the standard error format when no valid credential is
// presented.
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return response.Unauthorized(c, "Not authenticated")
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return response.Unauthorized(c, "Not authenticated")
		}
		claims, err := authsvc.ParseToken(secret, parts[1])
		if err != nil {
			return response.Unauthorized(c, "Could not validate credentials")
		}
		c.Locals(userLocal, &AuthUser{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		})
		return c.Next()
	}
}

// GetUser returns the authenticated user from Locals (nil if not set).
func GetUser(c *fiber.Ctx) *AuthUser {
	u, _ := c.Locals(userLocal).(*AuthUser)
	return u
}

// SetUser attaches an identity to Locals directly. Test helper for handler
// tests that bypass token parsing.
func SetUser(c *fiber.Ctx, u *AuthUser) {
	c.Locals(userLocal, u)
}
