package repositories

import "mangashelf/internal/models"

// ChapterRepository defines the interface for chapter data access.
//
// GetByID returns (nil, nil) when no matching record exists; a non-nil error
// always means the query itself failed.
type ChapterRepository interface {
	Create(chapter *models.Chapter) error
	GetByID(id string) (*models.Chapter, error)
	// FindByStoryID lists a story's chapters sorted by order descending
	// (newest first), the sequence both listing and navigation rely on.
	FindByStoryID(storyID string) ([]models.Chapter, error)
	CountByStoryID(storyID string) (int64, error)
}
