package handlers

import (
	"errors"
	"log"
	"time"

	"mangashelf/internal/middleware"
	"mangashelf/internal/models"
	"mangashelf/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication and sessions.
type AuthHandler struct {
	authService   *services.AuthService
	validate      *validator.Validate
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		validate:      validator.New(),
		tokenDuration: tokenDuration,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Post("/session", h.HandleSessionRefresh)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleRegister handles new user registration. Validation failures come back
// as a field-level error map; a taken email as 409. Registration does not log
// the user in.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	user := &models.User{
		Username: req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := h.authService.RegisterUser(user); err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Registration failed",
				"error":   err.Error(),
			})
		}
		log.Printf("Error registering user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
		})
	}

	// For security, do not return the password hash
	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin verifies credentials and establishes a session: the token goes
// into an http-only cookie and is also returned for API clients. The failure
// message never distinguishes an unknown email from a wrong password.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Email and password are required",
		})
	}

	token, err := h.authService.LoginUser(req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   services.ErrInvalidCredentials.Error(),
		})
	}

	h.setSessionCookie(c, token)
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// HandleLogout clears the session cookie.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// SessionUpdateRequest carries the display fields a session refresh may change.
type SessionUpdateRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// HandleSessionRefresh is the session "update" trigger: it re-issues the
// token with refreshed display fields (name, avatar) without re-checking
// credentials. Requires a currently valid session.
func (h *AuthHandler) HandleSessionRefresh(c *fiber.Ctx) error {
	tokenString := c.Cookies(middleware.SessionCookie)
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "No active session",
		})
	}

	var req SessionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing session update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	token, err := h.authService.RefreshToken(tokenString, req.Name, req.Image)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid or expired session",
		})
	}

	h.setSessionCookie(c, token)
	return c.JSON(fiber.Map{
		"message": "Session updated",
		"token":   token,
	})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(h.tokenDuration),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
