package middleware

import (
	"strings"

	"mangashelf/internal/models"
	"mangashelf/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the http-only cookie carrying the session token.
const SessionCookie = "session_token"

// PrincipalKey is the Locals key the decoded principal is stored under.
const PrincipalKey = "principal"

// Session decodes the session token from the cookie (or an Authorization
// bearer header) into a principal stored in Locals. Invalid, expired, or
// tampered tokens leave the request anonymous; this middleware never rejects
// a request by itself, rejection is the gate's job.
func Session(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(SessionCookie)
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString != "" {
			if principal, err := authService.ValidateToken(tokenString); err == nil {
				c.Locals(PrincipalKey, principal)
			}
		}

		return c.Next()
	}
}

// PrincipalFromCtx returns the authenticated principal for the request, or
// nil for anonymous requests.
func PrincipalFromCtx(c *fiber.Ctx) *models.Principal {
	principal, _ := c.Locals(PrincipalKey).(*models.Principal)
	return principal
}

// AuthRequired rejects anonymous API requests with 401.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if PrincipalFromCtx(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}
		return c.Next()
	}
}

// AdminRequired rejects API requests lacking the admin role. Anonymous
// requests get 401, authenticated non-admins 403.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := PrincipalFromCtx(c)
		if principal == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}
		if !principal.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin role required",
			})
		}
		return c.Next()
	}
}
