package repositories

import (
	"time"

	"mangashelf/internal/models"
)

// StoryRepository defines the interface for story data access.
//
// Lookup methods return (nil, nil) when no matching record exists; a non-nil
// error always means the query itself failed.
type StoryRepository interface {
	Create(story *models.Story) error
	Update(story *models.Story) error
	GetBySlug(slug string) (*models.Story, error)
	GetByID(id string) (*models.Story, error)
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
	CountCreatedSince(since time.Time) (int64, error)
	FindByGenres(genres []string, excludeID string, limit int) ([]models.Story, error)
	FindRanked(order string, limit int) ([]models.Story, error)
	IncrementViewCount(id string) error
	IncrementCommentCount(id string) error
	AdjustFollowerCount(id string, delta int64) error
	UpdateRatingStats(id string, ratingAvg float64, totalRatings int64) error
}
