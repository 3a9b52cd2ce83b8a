package repositories

import (
	"errors"
	"fmt"

	"mangashelf/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMGenreRepository is a GORM implementation of GenreRepository.
type GORMGenreRepository struct {
	db *gorm.DB
}

// NewGORMGenreRepository creates a new instance of GORMGenreRepository.
func NewGORMGenreRepository(db *gorm.DB) *GORMGenreRepository {
	return &GORMGenreRepository{
		db: db,
	}
}

// Create creates a new genre in the database.
func (r *GORMGenreRepository) Create(genre *models.Genre) error {
	if genre.ID == "" {
		genre.ID = uuid.New().String()
	}
	if err := r.db.Create(genre).Error; err != nil {
		return fmt.Errorf("failed to create genre: %w", err)
	}
	return nil
}

// FindAll lists every genre sorted by name ascending.
func (r *GORMGenreRepository) FindAll() ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.Order("name ASC").Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to find genres: %w", err)
	}
	return genres, nil
}

// GetBySlug retrieves a genre by its slug. Returns (nil, nil) when absent.
func (r *GORMGenreRepository) GetBySlug(slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.First(&genre, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get genre by slug %s: %w", slug, err)
	}
	return &genre, nil
}
