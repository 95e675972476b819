package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/unilink-app/unilink-backend/src/emails"
	"github.com/unilink-app/unilink-backend/src/lib"
	"github.com/unilink-app/unilink-backend/src/middleware"
	"github.com/unilink-app/unilink-backend/src/models"
	"github.com/unilink-app/unilink-backend/src/store"
)

type AuthController struct {
	Users     store.UserStore
	Mail      emails.Sender
	Log       zerolog.Logger
	JWTSecret string
	ClientURL string
}

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Signup handles user registration: validates input, checks for duplicates,
// hashes the password and returns a fresh token.
func (ac *AuthController) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("All fields are required and password must be at least 6 characters"))
	}

	if _, err := ac.Users.GetByEmail(c.Context(), req.Email); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Email already exists"))
	}
	if _, err := ac.Users.GetByUsername(c.Context(), req.Username); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Username already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), 11)
	if err != nil {
		ac.Log.Error().Err(err).Msg("failed to hash password")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}

	newUser := models.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
		UserType: models.UserTypeRegular,
		Headline: "UniLink User",
	}

	if err := ac.Users.Create(c.Context(), &newUser); err != nil {
		ac.Log.Error().Err(err).Msg("failed to create user")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to create user"))
	}

	token, err := lib.GenerateJWT(newUser.Id, ac.JWTSecret)
	if err != nil {
		ac.Log.Error().Err(err).Msg("failed to generate token")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to generate token"))
	}

	if ac.Mail != nil {
		profileURL := ac.ClientURL + "/profile/" + newUser.Username
		go func(email, name string) {
			subject, body := emails.WelcomeEmail(name, profileURL)
			if err := ac.Mail.SendHTML(email, subject, body); err != nil {
				ac.Log.Error().Err(err).Msg("failed to send welcome email")
			}
		}(newUser.Email, newUser.Name)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates a user by email and password and returns a token.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Email and password are required"))
	}

	user, err := ac.Users.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid credentials"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid credentials"))
	}

	token, err := lib.GenerateJWT(user.Id, ac.JWTSecret)
	if err != nil {
		ac.Log.Error().Err(err).Msg("failed to generate token")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	user.Sanitize()
	return c.JSON(fiber.Map{
		"success": true,
		"message": "success",
		"data": fiber.Map{
			"token": token,
			"user":  user,
		},
	})
}

// Logout clears the legacy auth cookie. The bearer token itself is held by
// the client and simply discarded.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt-unilink",
		Value:    "",
		Expires:  time.Now().Add(-1 * time.Hour),
		HTTPOnly: true,
		SameSite: "Strict",
		Path:     "/",
	})
	return c.JSON(lib.MessageResponse("Logged out successfully"))
}

// GetCurrentUser returns the currently authenticated user's data.
func (ac *AuthController) GetCurrentUser(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(user)
}
