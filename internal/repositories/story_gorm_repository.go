package repositories

import (
	"errors"
	"fmt"
	"time"

	"mangashelf/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMStoryRepository is a GORM implementation of StoryRepository.
type GORMStoryRepository struct {
	db *gorm.DB
}

// NewGORMStoryRepository creates a new instance of GORMStoryRepository.
func NewGORMStoryRepository(db *gorm.DB) *GORMStoryRepository {
	return &GORMStoryRepository{
		db: db,
	}
}

// Create creates a new story in the database.
func (r *GORMStoryRepository) Create(story *models.Story) error {
	if story.ID == "" {
		story.ID = uuid.New().String()
	}
	if err := r.db.Create(story).Error; err != nil {
		return fmt.Errorf("failed to create story: %w", err)
	}
	return nil
}

// Update persists all fields of an existing story.
func (r *GORMStoryRepository) Update(story *models.Story) error {
	if err := r.db.Save(story).Error; err != nil {
		return fmt.Errorf("failed to update story %s: %w", story.ID, err)
	}
	return nil
}

// GetBySlug retrieves a story by its slug.
func (r *GORMStoryRepository) GetBySlug(slug string) (*models.Story, error) {
	var story models.Story
	if err := r.db.First(&story, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get story by slug %s: %w", slug, err)
	}
	return &story, nil
}

// GetByID retrieves a story by its ID.
func (r *GORMStoryRepository) GetByID(id string) (*models.Story, error) {
	var story models.Story
	if err := r.db.First(&story, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get story by ID %s: %w", id, err)
	}
	return &story, nil
}

// Count counts all stories.
func (r *GORMStoryRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Story{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count stories: %w", err)
	}
	return count, nil
}

// CountByStatus counts stories with the given publication status.
func (r *GORMStoryRepository) CountByStatus(status string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Story{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count stories by status %s: %w", status, err)
	}
	return count, nil
}

// CountCreatedSince counts stories created at or after the given time.
func (r *GORMStoryRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Story{}).Where("created_at >= ?", since).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count stories created since %s: %w", since, err)
	}
	return count, nil
}

// FindByGenres retrieves stories whose genre set intersects the given genres,
// excluding the story with excludeID, capped at limit. Genres are stored as a
// JSON array, so intersection is matched against the quoted element text.
func (r *GORMStoryRepository) FindByGenres(genres []string, excludeID string, limit int) ([]models.Story, error) {
	if len(genres) == 0 {
		return []models.Story{}, nil
	}

	genreMatch := r.db.Where("genres LIKE ?", likeGenre(genres[0]))
	for _, g := range genres[1:] {
		genreMatch = genreMatch.Or("genres LIKE ?", likeGenre(g))
	}

	var stories []models.Story
	err := r.db.
		Where("id <> ?", excludeID).
		Where(genreMatch).
		Limit(limit).
		Find(&stories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find stories by genres: %w", err)
	}
	return stories, nil
}

func likeGenre(genre string) string {
	return `%"` + genre + `"%`
}

// FindRanked retrieves stories sorted by the given order clause, capped at
// limit. Callers pass one of the fixed ranking clauses; this is never built
// from user input directly.
func (r *GORMStoryRepository) FindRanked(order string, limit int) ([]models.Story, error) {
	var stories []models.Story
	if err := r.db.Order(order).Limit(limit).Find(&stories).Error; err != nil {
		return nil, fmt.Errorf("failed to find ranked stories: %w", err)
	}
	return stories, nil
}

// IncrementViewCount atomically bumps the view counter for a story.
func (r *GORMStoryRepository) IncrementViewCount(id string) error {
	err := r.db.Model(&models.Story{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to increment view count for story %s: %w", id, err)
	}
	return nil
}

// IncrementCommentCount atomically bumps the comment counter for a story.
func (r *GORMStoryRepository) IncrementCommentCount(id string) error {
	err := r.db.Model(&models.Story{}).
		Where("id = ?", id).
		UpdateColumn("total_comments", gorm.Expr("total_comments + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to increment comment count for story %s: %w", id, err)
	}
	return nil
}

// AdjustFollowerCount applies a signed delta to the follower counter,
// clamping at zero so the stat never goes negative.
func (r *GORMStoryRepository) AdjustFollowerCount(id string, delta int64) error {
	err := r.db.Model(&models.Story{}).
		Where("id = ?", id).
		UpdateColumn("follower_count", gorm.Expr(
			"CASE WHEN follower_count + ? < 0 THEN 0 ELSE follower_count + ? END", delta, delta,
		)).Error
	if err != nil {
		return fmt.Errorf("failed to adjust follower count for story %s: %w", id, err)
	}
	return nil
}

// UpdateRatingStats overwrites the denormalized rating aggregate for a story.
func (r *GORMStoryRepository) UpdateRatingStats(id string, ratingAvg float64, totalRatings int64) error {
	err := r.db.Model(&models.Story{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating_avg":    ratingAvg,
			"total_ratings": totalRatings,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update rating stats for story %s: %w", id, err)
	}
	return nil
}
