package repositories

import (
	"errors"
	"fmt"

	"mangashelf/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMInteractionRepository is a GORM implementation of InteractionRepository.
type GORMInteractionRepository struct {
	db *gorm.DB
}

// NewGORMInteractionRepository creates a new instance of GORMInteractionRepository.
func NewGORMInteractionRepository(db *gorm.DB) *GORMInteractionRepository {
	return &GORMInteractionRepository{
		db: db,
	}
}

// GetByUserAndStory retrieves the single interaction record for a (user,
// story) pair.
func (r *GORMInteractionRepository) GetByUserAndStory(userID, storyID string) (*models.Interaction, error) {
	var interaction models.Interaction
	if err := r.db.First(&interaction, "user_id = ? AND story_id = ?", userID, storyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interaction for user %s story %s: %w", userID, storyID, err)
	}
	return &interaction, nil
}

// Upsert inserts or updates the interaction row for (userID, storyID),
// relying on the database's unique constraint on the compound key.
func (r *GORMInteractionRepository) Upsert(interaction *models.Interaction) error {
	if interaction.ID == "" {
		interaction.ID = uuid.New().String()
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "story_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_followed", "rating", "updated_at"}),
	}).Create(interaction).Error
	if err != nil {
		return fmt.Errorf("failed to upsert interaction for user %s story %s: %w",
			interaction.UserID, interaction.StoryID, err)
	}
	return nil
}
