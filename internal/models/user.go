package models

import "gorm.io/gorm"

// Roles a user account can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ProviderCredentials marks accounts that authenticate with an email/password
// pair. OAuth accounts carry their provider name instead and have no password hash.
const ProviderCredentials = "credentials"

// User represents a reader account.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"omitempty,min=6"` // No json tag for security
	Role       string `json:"role" gorm:"type:varchar(20);default:user"`
	Provider   string `json:"provider" gorm:"type:varchar(50);default:credentials"`
	Avatar     string `json:"avatar" gorm:"type:varchar(500)"`
	Bio        string `json:"bio" gorm:"type:text"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// IsAdmin reports whether the account holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
