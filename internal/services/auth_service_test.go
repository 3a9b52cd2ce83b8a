package services_test

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"mangashelf/internal/models"
	"mangashelf/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) CountByRole(role string) (int64, error) {
	args := m.Called(role)
	return args.Get(0).(int64), args.Error(1)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

const testJWTSecret = "test_jwt_secret"

func newAuthService(repo *MockUserRepository) *services.AuthService {
	return services.NewAuthService(repo, testJWTSecret, time.Hour)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	user := &models.User{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	}

	// Successful registration hashes the password and applies defaults.
	mockRepo.On("GetByEmail", user.Email).Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, models.ProviderCredentials, user.Provider)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Duplicate email is rejected.
	mockRepo.On("GetByEmail", user.Email).Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(user)
	assert.ErrorIs(t, err, services.ErrDuplicateEmail)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleUser,
		Provider: models.ProviderCredentials,
	}

	// Successful login returns a token with the expected claims.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, err := authService.LoginUser(user.Email, "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["sub"])
	assert.Equal(t, user.Role, claims["role"])
	assert.Equal(t, user.Username, claims["username"])
	mockRepo.AssertExpectations(t)

	// Wrong password fails with the generic credentials error.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.LoginUser(user.Email, "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Unknown email fails with the same error, revealing nothing.
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, nil).Once()
	_, err = authService.LoginUser("nobody@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser_PasswordMutations(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	password := "correct-horse"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Provider: models.ProviderCredentials,
	}

	// Any single-character mutation of the password must fail verification.
	for i := 0; i < len(password); i++ {
		mutated := []byte(password)
		mutated[i] ^= 0x01
		mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
		_, err := authService.LoginUser(user.Email, string(mutated))
		assert.ErrorIs(t, err, services.ErrInvalidCredentials, "mutation at index %d should fail", i)
	}
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser_OAuthAccount(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	// An OAuth account with no password hash can never log in with credentials.
	user := &models.User{
		ID:       "user-oauth",
		Email:    "oauth@example.com",
		Password: "",
		Provider: "google",
	}
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err := authService.LoginUser(user.Email, "anything")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	// A valid token decodes into a full principal.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "user-123",
		"role":     models.RoleAdmin,
		"username": "testadmin",
		"avatar":   "http://example.com/a.png",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	principal, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", principal.ID)
	assert.Equal(t, models.RoleAdmin, principal.Role)
	assert.Equal(t, "testadmin", principal.Username)
	assert.True(t, principal.IsAdmin())

	// Garbage tokens decode to nothing.
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)

	// Expired tokens decode to nothing.
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)

	// Tokens signed with a different key decode to nothing: holders cannot
	// forge role escalation.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-123",
		"role": models.RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	forgedString, _ := forged.SignedString([]byte("attacker_secret"))
	_, err = authService.ValidateToken(forgedString)
	assert.Error(t, err)
}

func TestAuthService_RefreshToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "oldname",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleUser,
		Provider: models.ProviderCredentials,
	}
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, err := authService.LoginUser(user.Email, "password123")
	assert.NoError(t, err)

	// The update trigger refreshes display fields without re-authenticating,
	// keeping subject and role.
	refreshed, err := authService.RefreshToken(token, "newname", "http://example.com/new.png")
	assert.NoError(t, err)

	principal, err := authService.ValidateToken(refreshed)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", principal.ID)
	assert.Equal(t, models.RoleUser, principal.Role)
	assert.Equal(t, "newname", principal.Username)
	assert.Equal(t, "http://example.com/new.png", principal.Avatar)

	// Empty fields keep the previous values.
	kept, err := authService.RefreshToken(refreshed, "", "")
	assert.NoError(t, err)
	principal, err = authService.ValidateToken(kept)
	assert.NoError(t, err)
	assert.Equal(t, "newname", principal.Username)

	// An invalid token cannot be refreshed.
	_, err = authService.RefreshToken("invalid.token.string", "x", "")
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}
