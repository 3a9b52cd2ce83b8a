package services

import (
	"time"

	"mangashelf/internal/models"
)

// View shapes returned by the read-model aggregator. They contain only plain
// strings and RFC 3339 timestamps; database handles and driver types never
// cross this boundary.

// StoryView is the serialized form of a story.
type StoryView struct {
	ID            string   `json:"id"`
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Status        string   `json:"status"`
	Demographic   string   `json:"demographic"`
	Genres        []string `json:"genres"`
	Tags          []string `json:"tags"`
	ViewCount     int64    `json:"viewCount"`
	RatingAvg     float64  `json:"ratingAvg"`
	TotalRatings  int64    `json:"totalRatings"`
	TotalComments int64    `json:"totalComments"`
	FollowerCount int64    `json:"followerCount"`
	CoverImage    string   `json:"coverImage"`
	BannerImage   string   `json:"bannerImage"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

// ChapterSummary is the listing shape of a chapter on a story page.
type ChapterSummary struct {
	ID            string  `json:"id"`
	StoryID       string  `json:"storyId"`
	Title         string  `json:"title"`
	ChapterNumber float64 `json:"chapterNumber"`
	ReleaseDate   string  `json:"releaseDate"`
}

// UserStatus surfaces the requesting principal's interaction with a story.
// The zero value is the documented default for users with no record.
type UserStatus struct {
	IsFollowed bool `json:"isFollowed"`
	Rating     int  `json:"rating"`
}

// StoryDetailView is the assembled story page: story, chapter listing (order
// descending), the authoritative live chapter count, and the requesting
// user's interaction state.
type StoryDetailView struct {
	Story         StoryView        `json:"story"`
	Chapters      []ChapterSummary `json:"chapters"`
	TotalChapters int64            `json:"totalChapters"`
	UserStatus    UserStatus       `json:"userStatus"`
}

// StoryRef is the minimal story shape embedded in a chapter view.
type StoryRef struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	CoverImage string `json:"coverImage"`
}

// ChapterNav is the minimal navigation shape of a sibling chapter. Callers
// derive next/previous from adjacency in the order-descending sequence.
type ChapterNav struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Order float64 `json:"order"`
}

// ChapterView is the full reading shape of a chapter.
type ChapterView struct {
	ID        string   `json:"id"`
	StoryID   string   `json:"storyId"`
	Title     string   `json:"title"`
	Content   []string `json:"content"`
	Order     float64  `json:"order"`
	CreatedAt string   `json:"createdAt"`
}

// ChapterContentView is the assembled reader page: the chapter, its parent
// story, and the sibling navigation sequence.
type ChapterContentView struct {
	Chapter  ChapterView  `json:"chapter"`
	Story    StoryRef     `json:"story"`
	Siblings []ChapterNav `json:"chapters"`
}

// RankingEntry is one row of a ranking listing.
type RankingEntry struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Slug         string  `json:"slug"`
	CoverImage   string  `json:"coverImage"`
	ViewCount    int64   `json:"viewCount"`
	RatingAvg    float64 `json:"ratingAvg"`
	TotalRatings int64   `json:"totalRatings"`
	Followers    int64   `json:"followers"`
}

// CommentView is the serialized form of a comment.
type CommentView struct {
	ID        string `json:"id"`
	StoryID   string `json:"storyId"`
	UserID    string `json:"userId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

func toCommentView(c *models.Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		StoryID:   c.StoryID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GenreView is the serialized form of a genre.
type GenreView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// HomeStats are the headline counters on the home page.
type HomeStats struct {
	TotalStories int64 `json:"totalStories"`
	Completed    int64 `json:"completed"`
	Users        int64 `json:"users"`
	NewStories   int64 `json:"newStories"`
}

// HomeData is the home page aggregate. Its zero value is the documented
// fallback when any sub-query fails.
type HomeData struct {
	Genres []GenreView `json:"genres"`
	Stats  HomeStats   `json:"stats"`
}

func toStoryView(s *models.Story) StoryView {
	genres := s.Genres
	if genres == nil {
		genres = []string{}
	}
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	return StoryView{
		ID:            s.ID,
		Slug:          s.Slug,
		Title:         s.Title,
		Description:   s.Description,
		Status:        s.Status,
		Demographic:   s.Demographic,
		Genres:        genres,
		Tags:          tags,
		ViewCount:     s.ViewCount,
		RatingAvg:     s.RatingAvg,
		TotalRatings:  s.TotalRatings,
		TotalComments: s.TotalComments,
		FollowerCount: s.FollowerCount,
		CoverImage:    s.CoverImage,
		BannerImage:   s.BannerImage,
		CreatedAt:     s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
