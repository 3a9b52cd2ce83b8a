package repositories

import "mangashelf/internal/models"

// UserRepository defines the interface for user data access.
//
// Lookup methods return (nil, nil) when no matching record exists; a non-nil
// error always means the query itself failed.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Update(user *models.User) error
	CountByRole(role string) (int64, error)
}
