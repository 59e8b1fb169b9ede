package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"inventory-backend/internal/apperr"
	"inventory-backend/internal/models"
	"inventory-backend/internal/request"
	"inventory-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

type LoginResponse struct {
	Token string          `json:"token"`
	Role  models.UserRole `json:"role"`
}

const msgInvalidCredentials = "Invalid credentials."

func LoginHandler(users UserStore, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := request.Bind(c, &body, "Username and password are required."); err != nil {
			return err
		}

		user, err := users.GetUserByUsername(c.UserContext(), body.Username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperr.Unauthorized(msgInvalidCredentials)
			}
			return apperr.Internal("Server error.", err)
		}

		if !CheckPassword(user.PasswordHash, body.Password) {
			return apperr.Unauthorized(msgInvalidCredentials)
		}

		token, err := GenerateToken(secret, user, time.Now())
		if err != nil {
			return apperr.Internal("Server error.", err)
		}

		return c.JSON(LoginResponse{Token: token, Role: user.Role})
	}
}

func MeHandler(users UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := CurrentIdentity(c)
		if !ok {
			return apperr.Unauthorized(msgNoToken)
		}

		user, err := users.GetUser(c.UserContext(), id.UserID)
		if err != nil {
			// token outlived its user
			if errors.Is(err, store.ErrNotFound) {
				return apperr.Unauthorized(msgInvalidToken)
			}
			return apperr.Internal("Server error.", err)
		}

		return c.JSON(fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		})
	}
}
