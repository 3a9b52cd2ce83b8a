package models

import "gorm.io/gorm"

// Comment is a user's remark on a story, listed newest first per story. The
// denormalized TotalComments counter on Story is bumped by the comment
// mutation path, mirroring FollowerCount.
type Comment struct {
	ID      string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID  string `json:"userId" gorm:"type:varchar(36)" validate:"required"`
	StoryID string `json:"storyId" gorm:"index;type:varchar(36)" validate:"required"`
	Content string `json:"content" gorm:"type:text" validate:"required,min=1,max=2000"`
	gorm.Model
}
