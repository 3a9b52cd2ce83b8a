package repositories

import "mangashelf/internal/models"

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(comment *models.Comment) error
	FindByStoryID(storyID string) ([]models.Comment, error)
}
