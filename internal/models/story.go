package models

import "gorm.io/gorm"

// Publication status values for a story.
const (
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusOnHold    = "on-hold"
	StatusDropped   = "dropped"
)

// Story represents a serialized story/manga title. The slug is the stable
// external lookup key; numeric stats are adjusted only by interaction
// mutations, never by read paths.
type Story struct {
	ID            string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Slug          string   `json:"slug" gorm:"uniqueIndex;type:varchar(255)" validate:"required,min=1,max=255"`
	Title         string   `json:"title" validate:"required,min=1,max=255"`
	Description   string   `json:"description" gorm:"type:text" validate:"omitempty,max=5000"`
	Status        string   `json:"status" gorm:"type:varchar(20);default:ongoing" validate:"omitempty,oneof=ongoing completed on-hold dropped"`
	Demographic   string   `json:"demographic" gorm:"type:varchar(50)"`
	Genres        []string `json:"genres" gorm:"serializer:json;type:text"`
	Tags          []string `json:"tags" gorm:"serializer:json;type:text"`
	ViewCount     int64    `json:"viewCount" gorm:"default:0"`
	RatingAvg     float64  `json:"ratingAvg" gorm:"default:0"`
	TotalRatings  int64    `json:"totalRatings" gorm:"default:0"`
	TotalComments int64    `json:"totalComments" gorm:"default:0"`
	FollowerCount int64    `json:"followerCount" gorm:"default:0"`
	CoverImage    string   `json:"coverImage" gorm:"type:varchar(500)"`
	BannerImage   string   `json:"bannerImage" gorm:"type:varchar(500)"`
	gorm.Model
}
