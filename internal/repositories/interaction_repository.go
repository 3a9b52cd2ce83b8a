package repositories

import "mangashelf/internal/models"

// InteractionRepository defines the interface for per-user, per-story
// interaction records.
//
// GetByUserAndStory returns (nil, nil) when the pair has no record yet; a
// non-nil error always means the query itself failed.
type InteractionRepository interface {
	GetByUserAndStory(userID, storyID string) (*models.Interaction, error)
	// Upsert inserts the record or, if a row for (userID, storyID) already
	// exists, updates its follow state and rating. The compound unique index
	// guarantees a single row per pair even under concurrent writes.
	Upsert(interaction *models.Interaction) error
}
