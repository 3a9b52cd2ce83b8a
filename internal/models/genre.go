package models

import "gorm.io/gorm"

// Genre is a browsable category. Slug is the external lookup key.
type Genre struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name string `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Slug string `json:"slug" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=1,max=100"`
	gorm.Model
}
