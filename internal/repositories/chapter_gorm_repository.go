package repositories

import (
	"errors"
	"fmt"

	"mangashelf/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMChapterRepository is a GORM implementation of ChapterRepository.
type GORMChapterRepository struct {
	db *gorm.DB
}

// NewGORMChapterRepository creates a new instance of GORMChapterRepository.
func NewGORMChapterRepository(db *gorm.DB) *GORMChapterRepository {
	return &GORMChapterRepository{
		db: db,
	}
}

// Create creates a new chapter in the database.
func (r *GORMChapterRepository) Create(chapter *models.Chapter) error {
	if chapter.ID == "" {
		chapter.ID = uuid.New().String()
	}
	if err := r.db.Create(chapter).Error; err != nil {
		return fmt.Errorf("failed to create chapter: %w", err)
	}
	return nil
}

// GetByID retrieves a chapter by its ID.
func (r *GORMChapterRepository) GetByID(id string) (*models.Chapter, error) {
	var chapter models.Chapter
	if err := r.db.First(&chapter, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chapter by ID %s: %w", id, err)
	}
	return &chapter, nil
}

// FindByStoryID lists a story's chapters sorted by order descending.
func (r *GORMChapterRepository) FindByStoryID(storyID string) ([]models.Chapter, error) {
	var chapters []models.Chapter
	err := r.db.
		Where("story_id = ?", storyID).
		Order("chapter_order DESC").
		Find(&chapters).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find chapters for story %s: %w", storyID, err)
	}
	return chapters, nil
}

// CountByStoryID counts the chapters belonging to a story. This is the
// authoritative chapter count; no denormalized field is trusted for it.
func (r *GORMChapterRepository) CountByStoryID(storyID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Chapter{}).Where("story_id = ?", storyID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count chapters for story %s: %w", storyID, err)
	}
	return count, nil
}
