package handlers

import (
	"mangashelf/internal/middleware"
	"mangashelf/internal/services"

	"github.com/gofiber/fiber/v2"
)

// StoryHandler handles the read-only catalog endpoints.
type StoryHandler struct {
	catalog *services.CatalogService
}

// NewStoryHandler creates a new StoryHandler.
func NewStoryHandler(catalog *services.CatalogService) *StoryHandler {
	return &StoryHandler{
		catalog: catalog,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *StoryHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/home", h.HandleHome)
	router.Get("/rankings", h.HandleRanking)
	router.Get("/stories/:slug", h.HandleStoryDetail)
	router.Get("/stories/:slug/related", h.HandleRelatedStories)
	router.Get("/stories/:slug/comments", h.HandleComments)
	router.Get("/chapters/:id", h.HandleChapterContent)
}

// HandleHome returns the home page aggregate. The aggregate degrades to its
// zero value on fetch failures, so this endpoint never errors.
func (h *StoryHandler) HandleHome(c *fiber.Ctx) error {
	return c.JSON(h.catalog.HomeAggregate(c.Context()))
}

// HandleStoryDetail returns the assembled story page for a slug, including
// the requesting user's interaction state when authenticated.
func (h *StoryHandler) HandleStoryDetail(c *fiber.Ctx) error {
	detail := h.catalog.StoryDetail(c.Params("slug"), middleware.PrincipalFromCtx(c))
	if detail == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Story not found",
		})
	}
	return c.JSON(detail)
}

// HandleRelatedStories lists stories sharing genres with the given story.
func (h *StoryHandler) HandleRelatedStories(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 5)
	related, found := h.catalog.RelatedForStory(c.Params("slug"), limit)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Story not found",
		})
	}
	return c.JSON(related)
}

// HandleComments lists a story's comments, newest first.
func (h *StoryHandler) HandleComments(c *fiber.Ctx) error {
	comments, found := h.catalog.Comments(c.Params("slug"))
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Story not found",
		})
	}
	return c.JSON(comments)
}

// HandleChapterContent returns the reader page for a chapter. Orphaned
// chapters (whose story is gone) are reported as not found.
func (h *StoryHandler) HandleChapterContent(c *fiber.Ctx) error {
	content := h.catalog.ChapterContent(c.Params("id"))
	if content == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Chapter not found",
		})
	}
	return c.JSON(content)
}

// HandleRanking lists the top stories for a ranking kind (views, rating, or
// follows; anything else ranks by views).
func (h *StoryHandler) HandleRanking(c *fiber.Ctx) error {
	kind := c.Query("kind", services.RankByViews)
	limit := c.QueryInt("limit", 10)
	return c.JSON(h.catalog.Ranking(kind, limit))
}
