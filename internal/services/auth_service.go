package services

import (
	"fmt"
	"log"
	"time"

	"mangashelf/internal/models"
	"mangashelf/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for authentication and authorization:
// credential verification, session token issuance and validation.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which the session token is valid
}

// NewAuthService creates a new AuthService. Rotating the secret invalidates
// all outstanding sessions.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenDuration time.Duration) *AuthService {
	if tokenDuration <= 0 {
		tokenDuration = 24 * time.Hour
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenDuration,
	}
}

// RegisterUser registers a new user, hashes their password, and saves them to
// the database. Field-level validation happens at the handler; this checks
// email uniqueness and applies account defaults. Registration does not log
// the user in.
func (s *AuthService) RegisterUser(user *models.User) error {
	existing, err := s.userRepo.GetByEmail(user.Email)
	if err != nil {
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing != nil {
		return ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword) // Store the hashed password
	user.Role = models.RoleUser
	user.Provider = models.ProviderCredentials

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// LoginUser verifies an email/password pair and returns a signed session
// token. Every failure path returns ErrInvalidCredentials so callers cannot
// tell an unknown email from a wrong password.
func (s *AuthService) LoginUser(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		log.Printf("Login lookup failed for email: %v", err)
		return "", ErrInvalidCredentials
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	// Accounts created through an OAuth provider have no password hash and
	// cannot log in with credentials.
	if user.Password == "" && user.Provider != models.ProviderCredentials {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(user.ID, user.Role, user.Username, user.Avatar)
}

// issueToken signs a session token carrying the principal's identity and
// display fields.
func (s *AuthService) issueToken(subjectID, role, username, avatar string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      subjectID,
		"role":     role,
		"username": username,
		"avatar":   avatar,
		"exp":      now.Add(s.tokenDurat).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// RefreshToken re-issues a session token with updated display fields, keeping
// the same subject and role and a fresh expiry. This is the session "update"
// trigger: it never re-checks credentials, only requires a currently valid
// token.
func (s *AuthService) RefreshToken(tokenString, username, avatar string) (string, error) {
	principal, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}

	if username == "" {
		username = principal.Username
	}
	if avatar == "" {
		avatar = principal.Avatar
	}

	return s.issueToken(principal.ID, principal.Role, username, avatar)
}

// GetProfile loads the account behind a principal. Returns ErrNotFound when
// the account no longer exists.
func (s *AuthService) GetProfile(userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile mutates the display fields of an account. Empty arguments
// leave the corresponding field untouched. The caller refreshes the session
// token afterwards to propagate the new display fields.
func (s *AuthService) UpdateProfile(userID, username, avatar, bio string) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if username != "" {
		user.Username = username
	}
	if avatar != "" {
		user.Avatar = avatar
	}
	if bio != "" {
		user.Bio = bio
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ValidateToken parses and verifies a session token, returning the embedded
// principal. Invalid, expired, or tampered tokens return an error and never a
// partially trusted principal.
func (s *AuthService) ValidateToken(tokenString string) (*models.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("invalid token: missing subject")
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleUser
	}
	username, _ := claims["username"].(string)
	avatar, _ := claims["avatar"].(string)

	return &models.Principal{
		ID:       sub,
		Role:     role,
		Username: username,
		Avatar:   avatar,
	}, nil
}
