package handlers

import (
	"errors"
	"log"
	"strings"

	"mangashelf/internal/middleware"
	"mangashelf/internal/services"

	"github.com/gofiber/fiber/v2"
)

// InteractionHandler handles the follow/rating/view write endpoints.
type InteractionHandler struct {
	interactions *services.InteractionService
}

// NewInteractionHandler creates a new InteractionHandler.
func NewInteractionHandler(interactions *services.InteractionService) *InteractionHandler {
	return &InteractionHandler{
		interactions: interactions,
	}
}

// RegisterRoutes registers the interaction routes. Follow and rating require
// an authenticated principal; view recording is public.
func (h *InteractionHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/stories/:slug/view", h.HandleRecordView)

	authed := router.Group("", middleware.AuthRequired())
	authed.Post("/stories/:slug/follow", h.HandleFollow)
	authed.Post("/stories/:slug/rating", h.HandleRate)
	authed.Post("/stories/:slug/comments", h.HandleAddComment)
}

// FollowRequest represents the request body for a follow toggle.
type FollowRequest struct {
	IsFollowed bool `json:"isFollowed"`
}

// HandleFollow sets the requesting user's follow flag for a story.
func (h *InteractionHandler) HandleFollow(c *fiber.Ctx) error {
	var req FollowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	principal := middleware.PrincipalFromCtx(c)
	status, err := h.interactions.SetFollow(principal.ID, c.Params("slug"), req.IsFollowed)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Story not found",
			})
		}
		log.Printf("Error setting follow for user %s: %v", principal.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update follow state",
		})
	}

	return c.JSON(fiber.Map{
		"message":    "Follow state updated",
		"userStatus": status,
	})
}

// RateRequest represents the request body for a rating.
type RateRequest struct {
	Rating int `json:"rating"`
}

// HandleRate sets the requesting user's rating for a story (0 clears it).
func (h *InteractionHandler) HandleRate(c *fiber.Ctx) error {
	var req RateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if req.Rating < 0 || req.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Rating must be between 0 and 5",
		})
	}

	principal := middleware.PrincipalFromCtx(c)
	status, err := h.interactions.Rate(principal.ID, c.Params("slug"), req.Rating)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Story not found",
			})
		}
		log.Printf("Error rating story for user %s: %v", principal.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save rating",
		})
	}

	return c.JSON(fiber.Map{
		"message":    "Rating saved",
		"userStatus": status,
	})
}

// CommentRequest represents the request body for posting a comment.
type CommentRequest struct {
	Content string `json:"content"`
}

// HandleAddComment records the requesting user's comment on a story.
func (h *InteractionHandler) HandleAddComment(c *fiber.Ctx) error {
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if strings.TrimSpace(req.Content) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Comment content must not be empty",
		})
	}

	principal := middleware.PrincipalFromCtx(c)
	comment, err := h.interactions.AddComment(principal.ID, c.Params("slug"), req.Content)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Story not found",
			})
		}
		log.Printf("Error adding comment for user %s: %v", principal.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save comment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// HandleRecordView bumps the view counter for a story. Views are recorded by
// explicit mutation so the read paths stay side-effect free.
func (h *InteractionHandler) HandleRecordView(c *fiber.Ctx) error {
	if err := h.interactions.RecordView(c.Params("slug")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Story not found",
			})
		}
		log.Printf("Error recording view: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not record view",
		})
	}
	return c.JSON(fiber.Map{
		"message": "View recorded",
	})
}
