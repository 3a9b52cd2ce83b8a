package models

import "gorm.io/gorm"

// Chapter represents a single chapter of a story. Content is the ordered list
// of page image URLs. Order defines both display and navigation sequence,
// ascending meaning chronological; uniqueness of order within a story is
// expected but not enforced at the model level.
type Chapter struct {
	ID      string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	StoryID string   `json:"storyId" gorm:"index;type:varchar(36)" validate:"required"`
	Title   string   `json:"title" validate:"required,min=1,max=255"`
	Content []string `json:"content" gorm:"serializer:json;type:text"`
	Order   float64  `json:"order" gorm:"column:chapter_order;default:0"`
	gorm.Model
}
