package services

import (
	"fmt"
	"log"
	"strings"

	"mangashelf/internal/models"
	"mangashelf/internal/repositories"
	"mangashelf/pkg/rabbitmq"
)

// InteractionService handles the write paths for per-user story interactions:
// following, rating, commenting, and explicit view recording. Story stat
// counters are adjusted only here; read paths never touch them.
type InteractionService struct {
	interactionRepo repositories.InteractionRepository
	storyRepo       repositories.StoryRepository
	commentRepo     repositories.CommentRepository
	mqClient        *rabbitmq.Client // nil disables event publishing
}

// NewInteractionService creates a new InteractionService. mqClient may be nil
// when no broker is configured.
func NewInteractionService(
	interactionRepo repositories.InteractionRepository,
	storyRepo repositories.StoryRepository,
	commentRepo repositories.CommentRepository,
	mqClient *rabbitmq.Client,
) *InteractionService {
	return &InteractionService{
		interactionRepo: interactionRepo,
		storyRepo:       storyRepo,
		commentRepo:     commentRepo,
		mqClient:        mqClient,
	}
}

// SetFollow sets the follow flag on the (user, story) interaction record,
// upserting the single row for the pair, and adjusts the story's follower
// counter on actual transitions. Returns the resulting interaction state.
func (s *InteractionService) SetFollow(userID, slug string, followed bool) (*UserStatus, error) {
	story, err := s.storyRepo.GetBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to look up story %s: %w", slug, err)
	}
	if story == nil {
		return nil, ErrNotFound
	}

	existing, err := s.interactionRepo.GetByUserAndStory(userID, story.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up interaction: %w", err)
	}

	interaction := &models.Interaction{
		UserID:     userID,
		StoryID:    story.ID,
		IsFollowed: followed,
	}
	wasFollowed := false
	if existing != nil {
		interaction.ID = existing.ID
		interaction.Rating = existing.Rating
		wasFollowed = existing.IsFollowed
	}

	if err := s.interactionRepo.Upsert(interaction); err != nil {
		return nil, err
	}

	if followed != wasFollowed {
		delta := int64(1)
		if !followed {
			delta = -1
		}
		if err := s.storyRepo.AdjustFollowerCount(story.ID, delta); err != nil {
			log.Printf("Error adjusting follower count for story %s: %v", story.ID, err)
		}
	}

	eventType := "follow"
	if !followed {
		eventType = "unfollow"
	}
	s.publish(rabbitmq.InteractionEvent{Type: eventType, UserID: userID, StoryID: story.ID})

	return &UserStatus{IsFollowed: interaction.IsFollowed, Rating: interaction.Rating}, nil
}

// Rate sets the user's rating for a story (0 clears it), upserting the single
// interaction row for the pair, and recomputes the story's denormalized
// rating aggregate from the transition. Returns the resulting interaction
// state.
func (s *InteractionService) Rate(userID, slug string, rating int) (*UserStatus, error) {
	if rating < 0 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 0 and 5")
	}

	story, err := s.storyRepo.GetBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to look up story %s: %w", slug, err)
	}
	if story == nil {
		return nil, ErrNotFound
	}

	existing, err := s.interactionRepo.GetByUserAndStory(userID, story.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up interaction: %w", err)
	}

	interaction := &models.Interaction{
		UserID:  userID,
		StoryID: story.ID,
		Rating:  rating,
	}
	prevRating := 0
	if existing != nil {
		interaction.ID = existing.ID
		interaction.IsFollowed = existing.IsFollowed
		prevRating = existing.Rating
	}

	if err := s.interactionRepo.Upsert(interaction); err != nil {
		return nil, err
	}

	if rating != prevRating {
		avg, total := nextRatingStats(story.RatingAvg, story.TotalRatings, prevRating, rating)
		if err := s.storyRepo.UpdateRatingStats(story.ID, avg, total); err != nil {
			log.Printf("Error updating rating stats for story %s: %v", story.ID, err)
		}
	}

	s.publish(rabbitmq.InteractionEvent{Type: "rating", UserID: userID, StoryID: story.ID, Rating: rating})

	return &UserStatus{IsFollowed: interaction.IsFollowed, Rating: interaction.Rating}, nil
}

// nextRatingStats derives the new rating aggregate from a single user's
// rating transition. A rating of 0 means "not rated", so transitions in and
// out of 0 change the rating population size.
func nextRatingStats(avg float64, total int64, prev, next int) (float64, int64) {
	sum := avg * float64(total)
	switch {
	case prev == 0 && next > 0:
		total++
		sum += float64(next)
	case prev > 0 && next == 0:
		if total > 0 {
			total--
		}
		sum -= float64(prev)
	case prev > 0 && next > 0:
		sum += float64(next - prev)
	}
	if total <= 0 {
		return 0, 0
	}
	if sum < 0 {
		sum = 0
	}
	return sum / float64(total), total
}

// AddComment records a user's comment on a story and bumps the story's
// denormalized comment counter. Returns the created comment.
func (s *InteractionService) AddComment(userID, slug, content string) (*CommentView, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("comment content must not be empty")
	}

	story, err := s.storyRepo.GetBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to look up story %s: %w", slug, err)
	}
	if story == nil {
		return nil, ErrNotFound
	}

	comment := &models.Comment{
		UserID:  userID,
		StoryID: story.ID,
		Content: content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	if err := s.storyRepo.IncrementCommentCount(story.ID); err != nil {
		log.Printf("Error incrementing comment count for story %s: %v", story.ID, err)
	}

	s.publish(rabbitmq.InteractionEvent{Type: "comment", UserID: userID, StoryID: story.ID})

	view := toCommentView(comment)
	return &view, nil
}

// RecordView bumps a story's view counter. Views are an explicit mutation so
// that read paths stay side-effect free.
func (s *InteractionService) RecordView(slug string) error {
	story, err := s.storyRepo.GetBySlug(slug)
	if err != nil {
		return fmt.Errorf("failed to look up story %s: %w", slug, err)
	}
	if story == nil {
		return ErrNotFound
	}

	if err := s.storyRepo.IncrementViewCount(story.ID); err != nil {
		return err
	}

	s.publish(rabbitmq.InteractionEvent{Type: "view", StoryID: story.ID})
	return nil
}

// publish sends an interaction event to the broker. Publishing is
// best-effort: failures are logged, never surfaced to the caller.
func (s *InteractionService) publish(event rabbitmq.InteractionEvent) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishInteractionEvent(event); err != nil {
		log.Printf("Failed to publish interaction event: %v", err)
	}
}
