package handlers

import (
	"errors"
	"fmt"
	"log"

	"mangashelf/internal/middleware"
	"mangashelf/internal/models"
	"mangashelf/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the admin-gated catalog management endpoints.
type AdminHandler struct {
	admin    *services.AdminService
	validate *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{
		admin:    admin,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the admin routes. Every route requires the admin
// role.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin", middleware.AdminRequired())
	adminRoutes.Post("/stories", h.HandleCreateStory)
	adminRoutes.Put("/stories/:slug", h.HandleUpdateStory)
	adminRoutes.Post("/stories/:slug/chapters", h.HandleCreateChapter)
	adminRoutes.Post("/genres", h.HandleCreateGenre)
}

// HandleCreateStory creates a new story.
func (h *AdminHandler) HandleCreateStory(c *fiber.Ctx) error {
	var story models.Story
	if err := c.BodyParser(&story); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(story); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.admin.CreateStory(&story); err != nil {
		if errors.Is(err, services.ErrDuplicateSlug) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Could not create story",
				"error":   err.Error(),
			})
		}
		log.Printf("Error creating story: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create story",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(story)
}

// HandleUpdateStory updates an existing story's editable fields.
func (h *AdminHandler) HandleUpdateStory(c *fiber.Ctx) error {
	var updated models.Story
	if err := c.BodyParser(&updated); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	story, err := h.admin.UpdateStory(c.Params("slug"), &updated)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Story not found",
			})
		}
		log.Printf("Error updating story %s: %v", c.Params("slug"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update story",
		})
	}

	return c.JSON(story)
}

// HandleCreateChapter creates a new chapter under a story.
func (h *AdminHandler) HandleCreateChapter(c *fiber.Ctx) error {
	var chapter models.Chapter
	if err := c.BodyParser(&chapter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if chapter.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  map[string]string{"Title": "Field 'Title' is required"},
		})
	}

	if err := h.admin.CreateChapter(c.Params("slug"), &chapter); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Story not found",
			})
		}
		log.Printf("Error creating chapter for story %s: %v", c.Params("slug"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create chapter",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(chapter)
}

// HandleCreateGenre creates a new genre.
func (h *AdminHandler) HandleCreateGenre(c *fiber.Ctx) error {
	var genre models.Genre
	if err := c.BodyParser(&genre); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(genre); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.admin.CreateGenre(&genre); err != nil {
		if errors.Is(err, services.ErrDuplicateSlug) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Could not create genre",
				"error":   err.Error(),
			})
		}
		log.Printf("Error creating genre: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create genre",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(genre)
}

// validationErrorMap flattens validator errors into a field → message map.
func validationErrorMap(err error) map[string]string {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return errorMessages
}
