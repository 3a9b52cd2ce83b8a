package repositories

import (
	"fmt"

	"mangashelf/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{
		db: db,
	}
}

// Create creates a new comment in the database.
func (r *GORMCommentRepository) Create(comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// FindByStoryID lists a story's comments newest first.
func (r *GORMCommentRepository) FindByStoryID(storyID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.
		Where("story_id = ?", storyID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find comments for story %s: %w", storyID, err)
	}
	return comments, nil
}
