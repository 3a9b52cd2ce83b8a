package handlers

import (
	"errors"
	"log"

	"mangashelf/internal/middleware"
	"mangashelf/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles the authenticated profile endpoints.
type ProfileHandler struct {
	authService *services.AuthService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(authService *services.AuthService) *ProfileHandler {
	return &ProfileHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the profile routes. Every route requires an
// authenticated principal.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profile", middleware.AuthRequired())
	profileRoutes.Get("/", h.HandleGetProfile)
	profileRoutes.Put("/", h.HandleUpdateProfile)
}

// HandleGetProfile returns the requesting user's account.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	principal := middleware.PrincipalFromCtx(c)
	user, err := h.authService.GetProfile(principal.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Account not found",
			})
		}
		log.Printf("Error loading profile %s: %v", principal.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load profile",
		})
	}

	user.Password = ""
	return c.JSON(user)
}

// ProfileUpdateRequest carries the mutable profile fields.
type ProfileUpdateRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
}

// HandleUpdateProfile mutates the requesting user's display fields. The
// session token keeps the old display fields until the client triggers a
// session refresh.
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	principal := middleware.PrincipalFromCtx(c)
	user, err := h.authService.UpdateProfile(principal.ID, req.Name, req.Avatar, req.Bio)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Account not found",
			})
		}
		log.Printf("Error updating profile %s: %v", principal.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update profile",
		})
	}

	user.Password = ""
	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"user":    user,
	})
}
