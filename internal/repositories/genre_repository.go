package repositories

import "mangashelf/internal/models"

// GenreRepository defines the interface for genre data access.
type GenreRepository interface {
	Create(genre *models.Genre) error
	// FindAll lists every genre sorted by name ascending.
	FindAll() ([]models.Genre, error)
	GetBySlug(slug string) (*models.Genre, error)
}
