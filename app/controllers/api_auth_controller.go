package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/guardtag/GuardTag/app/repository"
	"github.com/guardtag/GuardTag/internal/pkg/database"
	"github.com/guardtag/GuardTag/internal/pkg/session"
	"github.com/guardtag/GuardTag/internal/pkg/usercontext"
)

// AuthController handles admin session login and logout
type AuthController struct {
	db    *gorm.DB
	users repository.UserRepository
}

var authController *AuthController

// NewAuthController creates an auth controller bound to a database handle
func NewAuthController(db *gorm.DB) *AuthController {
	// user lookups are not request scoped; the factory's singleton
	// repositories are fine here
	return &AuthController{
		db:    db,
		users: repository.NewFactory(db).GetUserRepository(),
	}
}

// InitializeAuthController wires the controller to the shared database
func InitializeAuthController() {
	authController = NewAuthController(database.GetDB())
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin validates credentials and opens an admin session
func (ac *AuthController) HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "email and password required")
	}

	user, err := ac.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusUnauthorized, "unauthorized", "Invalid credentials")
		}
		log.Printf("Login lookup error: %v", err)
		return storeFailure(c, err)
	}

	if !user.IsActive() || !user.CheckPassword(req.Password) {
		return errorJSON(c, fiber.StatusUnauthorized, "unauthorized", "Invalid credentials")
	}
	if !user.IsAdmin() {
		return errorJSON(c, fiber.StatusForbidden, "forbidden", "admin role required")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		log.Printf("Session error: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Server error")
	}

	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.Name)
	sess.Set(usercontext.KeyIsAdmin, user.IsAdmin())

	if err := sess.Save(); err != nil {
		log.Printf("Session save error: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Server error")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := ac.users.Update(user); err != nil {
		log.Printf("Last login update error: %v", err)
	}

	return c.JSON(fiber.Map{
		"message": "Logged in",
		"data": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// HandleLogout destroys the current session
func (ac *AuthController) HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			log.Printf("Session destroy error: %v", err)
		}
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Package-level handlers used by the router

func HandleLogin(c *fiber.Ctx) error  { return authController.HandleLogin(c) }
func HandleLogout(c *fiber.Ctx) error { return authController.HandleLogout(c) }
