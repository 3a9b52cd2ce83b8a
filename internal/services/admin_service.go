package services

import (
	"errors"
	"fmt"

	"mangashelf/internal/models"
	"mangashelf/internal/repositories"
)

// ErrDuplicateSlug is returned when creating a story or genre whose slug is
// already taken.
var ErrDuplicateSlug = errors.New("slug already in use")

// AdminService handles the admin-gated catalog management write paths.
type AdminService struct {
	storyRepo   repositories.StoryRepository
	chapterRepo repositories.ChapterRepository
	genreRepo   repositories.GenreRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	storyRepo repositories.StoryRepository,
	chapterRepo repositories.ChapterRepository,
	genreRepo repositories.GenreRepository,
) *AdminService {
	return &AdminService{
		storyRepo:   storyRepo,
		chapterRepo: chapterRepo,
		genreRepo:   genreRepo,
	}
}

// CreateStory creates a new story after checking slug uniqueness.
func (s *AdminService) CreateStory(story *models.Story) error {
	existing, err := s.storyRepo.GetBySlug(story.Slug)
	if err != nil {
		return fmt.Errorf("failed to check slug uniqueness: %w", err)
	}
	if existing != nil {
		return ErrDuplicateSlug
	}
	if story.Status == "" {
		story.Status = models.StatusOngoing
	}
	return s.storyRepo.Create(story)
}

// UpdateStory updates the editable fields of an existing story. Stat counters
// are owned by the interaction paths and left untouched.
func (s *AdminService) UpdateStory(slug string, updated *models.Story) (*models.Story, error) {
	story, err := s.storyRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, ErrNotFound
	}

	story.Title = updated.Title
	story.Description = updated.Description
	if updated.Status != "" {
		story.Status = updated.Status
	}
	story.Demographic = updated.Demographic
	story.Genres = updated.Genres
	story.Tags = updated.Tags
	story.CoverImage = updated.CoverImage
	story.BannerImage = updated.BannerImage

	if err := s.storyRepo.Update(story); err != nil {
		return nil, err
	}
	return story, nil
}

// CreateChapter creates a new chapter under an existing story.
func (s *AdminService) CreateChapter(storySlug string, chapter *models.Chapter) error {
	story, err := s.storyRepo.GetBySlug(storySlug)
	if err != nil {
		return fmt.Errorf("failed to look up story %s: %w", storySlug, err)
	}
	if story == nil {
		return ErrNotFound
	}
	chapter.StoryID = story.ID
	return s.chapterRepo.Create(chapter)
}

// CreateGenre creates a new genre after checking slug uniqueness.
func (s *AdminService) CreateGenre(genre *models.Genre) error {
	existing, err := s.genreRepo.GetBySlug(genre.Slug)
	if err != nil {
		return fmt.Errorf("failed to check slug uniqueness: %w", err)
	}
	if existing != nil {
		return ErrDuplicateSlug
	}
	return s.genreRepo.Create(genre)
}
