package services_test

import (
	"testing"

	"mangashelf/internal/models"
	"mangashelf/internal/repositories"
	"mangashelf/internal/services"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newInteractionService(db *gorm.DB) *services.InteractionService {
	return services.NewInteractionService(
		repositories.NewGORMInteractionRepository(db),
		repositories.NewGORMStoryRepository(db),
		repositories.NewGORMCommentRepository(db),
		nil, // no broker
	)
}

func interactionCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	assert.NoError(t, db.Model(&models.Interaction{}).Count(&count).Error)
	return count
}

func reloadStory(t *testing.T, db *gorm.DB, id string) *models.Story {
	t.Helper()
	story, err := repositories.NewGORMStoryRepository(db).GetByID(id)
	assert.NoError(t, err)
	assert.NotNil(t, story)
	return story
}

func TestInteractionService_SetFollow(t *testing.T) {
	db := setupTestDB(t)
	svc := newInteractionService(db)

	story := seedStory(t, db, &models.Story{Slug: "vinland", Title: "Vinland Saga"})

	status, err := svc.SetFollow("user-1", "vinland", true)
	assert.NoError(t, err)
	assert.True(t, status.IsFollowed)
	assert.Equal(t, int64(1), reloadStory(t, db, story.ID).FollowerCount)

	// Repeating the same follow updates the single row, never duplicates it,
	// and the counter does not double-count.
	status, err = svc.SetFollow("user-1", "vinland", true)
	assert.NoError(t, err)
	assert.True(t, status.IsFollowed)
	assert.Equal(t, int64(1), interactionCount(t, db))
	assert.Equal(t, int64(1), reloadStory(t, db, story.ID).FollowerCount)

	// Unfollow decrements on the actual transition.
	status, err = svc.SetFollow("user-1", "vinland", false)
	assert.NoError(t, err)
	assert.False(t, status.IsFollowed)
	assert.Equal(t, int64(1), interactionCount(t, db))
	assert.Equal(t, int64(0), reloadStory(t, db, story.ID).FollowerCount)

	// Unfollowing while not following never pushes the counter negative.
	_, err = svc.SetFollow("user-1", "vinland", false)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), reloadStory(t, db, story.ID).FollowerCount)

	// Unknown story is a typed not-found.
	_, err = svc.SetFollow("user-1", "unknown-slug", true)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestInteractionService_SetFollow_KeepsRating(t *testing.T) {
	db := setupTestDB(t)
	svc := newInteractionService(db)

	seedStory(t, db, &models.Story{Slug: "monster", Title: "Monster"})

	_, err := svc.Rate("user-1", "monster", 5)
	assert.NoError(t, err)

	// Toggling follow preserves the rating on the same row.
	status, err := svc.SetFollow("user-1", "monster", true)
	assert.NoError(t, err)
	assert.True(t, status.IsFollowed)
	assert.Equal(t, 5, status.Rating)
	assert.Equal(t, int64(1), interactionCount(t, db))
}

func TestInteractionService_Rate(t *testing.T) {
	db := setupTestDB(t)
	svc := newInteractionService(db)

	story := seedStory(t, db, &models.Story{Slug: "gantz", Title: "Gantz"})

	// First rating opens the aggregate.
	status, err := svc.Rate("user-1", "gantz", 4)
	assert.NoError(t, err)
	assert.Equal(t, 4, status.Rating)
	st := reloadStory(t, db, story.ID)
	assert.Equal(t, int64(1), st.TotalRatings)
	assert.InDelta(t, 4.0, st.RatingAvg, 0.001)

	// Changing a rating replaces the user's contribution without growing the
	// population.
	_, err = svc.Rate("user-1", "gantz", 2)
	assert.NoError(t, err)
	st = reloadStory(t, db, story.ID)
	assert.Equal(t, int64(1), st.TotalRatings)
	assert.InDelta(t, 2.0, st.RatingAvg, 0.001)
	assert.Equal(t, int64(1), interactionCount(t, db))

	// A second user's rating averages in.
	_, err = svc.Rate("user-2", "gantz", 5)
	assert.NoError(t, err)
	st = reloadStory(t, db, story.ID)
	assert.Equal(t, int64(2), st.TotalRatings)
	assert.InDelta(t, 3.5, st.RatingAvg, 0.001)
	assert.Equal(t, int64(2), interactionCount(t, db))

	// Clearing a rating (0) shrinks the population again.
	_, err = svc.Rate("user-1", "gantz", 0)
	assert.NoError(t, err)
	st = reloadStory(t, db, story.ID)
	assert.Equal(t, int64(1), st.TotalRatings)
	assert.InDelta(t, 5.0, st.RatingAvg, 0.001)

	// Out-of-range ratings are rejected.
	_, err = svc.Rate("user-1", "gantz", 6)
	assert.Error(t, err)
	_, err = svc.Rate("user-1", "gantz", -1)
	assert.Error(t, err)

	// Unknown story is a typed not-found.
	_, err = svc.Rate("user-1", "unknown-slug", 3)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestInteractionService_AddComment(t *testing.T) {
	db := setupTestDB(t)
	svc := newInteractionService(db)

	story := seedStory(t, db, &models.Story{Slug: "pluto", Title: "Pluto"})

	comment, err := svc.AddComment("user-1", "pluto", "great first chapter")
	assert.NoError(t, err)
	assert.Equal(t, "great first chapter", comment.Content)
	assert.Equal(t, "user-1", comment.UserID)
	assert.Equal(t, story.ID, comment.StoryID)
	assert.Equal(t, int64(1), reloadStory(t, db, story.ID).TotalComments)

	// Each comment is a new row and bumps the counter again.
	_, err = svc.AddComment("user-2", "pluto", "agreed")
	assert.NoError(t, err)
	st := reloadStory(t, db, story.ID)
	assert.Equal(t, int64(2), st.TotalComments)

	var count int64
	assert.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	// Blank content is rejected without touching the counter.
	_, err = svc.AddComment("user-1", "pluto", "   ")
	assert.Error(t, err)
	assert.Equal(t, int64(2), reloadStory(t, db, story.ID).TotalComments)

	// Unknown story is a typed not-found.
	_, err = svc.AddComment("user-1", "unknown-slug", "hello")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestInteractionService_RecordView(t *testing.T) {
	db := setupTestDB(t)
	svc := newInteractionService(db)

	story := seedStory(t, db, &models.Story{Slug: "akira", Title: "Akira"})

	assert.NoError(t, svc.RecordView("akira"))
	assert.NoError(t, svc.RecordView("akira"))
	assert.Equal(t, int64(2), reloadStory(t, db, story.ID).ViewCount)

	assert.ErrorIs(t, svc.RecordView("unknown-slug"), services.ErrNotFound)
}
