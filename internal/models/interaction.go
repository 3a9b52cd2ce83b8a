package models

import "gorm.io/gorm"

// Interaction is the per-user, per-story association record holding follow
// state and rating. The compound unique index guarantees at most one row per
// (user, story) pair even under concurrent writes.
type Interaction struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string `json:"userId" gorm:"uniqueIndex:idx_user_story;type:varchar(36)" validate:"required"`
	StoryID    string `json:"storyId" gorm:"uniqueIndex:idx_user_story;type:varchar(36)" validate:"required"`
	IsFollowed bool   `json:"isFollowed" gorm:"default:false"`
	Rating     int    `json:"rating" gorm:"default:0" validate:"gte=0,lte=5"` // 0 means not rated
	gorm.Model
}
